// Package exports выгрузка бронирований в CSV и JSON
package exports

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	bookingModels "github.com/m0rven/STR-PropertyManager/internal/service/bookings/models"
	"github.com/m0rven/STR-PropertyManager/internal/service/exports/models"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// csvHeader колонки CSV-выгрузки
var csvHeader = []string{
	"id", "property", "check_in", "check_out", "nights",
	"guest_name", "guest_phone", "status", "source",
	"total_price", "currency", "notes",
}

// Service сервис выгрузки бронирований
type Service struct {
	bookingRepo      BookingRepository
	propertyRepo     PropertyRepository
	defaultDelimiter string
	logger           Logger
}

// NewService создает новый экземпляр сервиса выгрузок
func NewService(
	bookingRepo BookingRepository,
	propertyRepo PropertyRepository,
	defaultDelimiter string,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		propertyRepo:     propertyRepo,
		defaultDelimiter: defaultDelimiter,
		logger:           logger,
	}
}

// ExportBookings собирает выгрузку бронирований владельца в запрошенном формате
func (s *Service) ExportBookings(ctx context.Context, req *models.ExportBookingsRequest) (*models.ExportResult, error) {
	s.logger.Info("ExportBookings: exporting bookings for owner=%d, format=%s", req.OwnerID, req.Format)

	if req.Format != models.FormatCSV && req.Format != models.FormatJSON {
		s.logger.Warn("ExportBookings: invalid format=%s for owner=%d", req.Format, req.OwnerID)
		return nil, fmt.Errorf("%w: format must be csv or json", ErrInvalidInput)
	}

	delimiter, err := s.resolveDelimiter(req.Delimiter)
	if err != nil {
		s.logger.Warn("ExportBookings: invalid delimiter=%s for owner=%d", req.Delimiter, req.OwnerID)
		return nil, err
	}

	filter, err := s.buildFilter(req)
	if err != nil {
		s.logger.Warn("ExportBookings: invalid filter for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByOwnerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ExportBookings: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: ExportBookings - repository error: %v", ErrInternal, err)
	}

	propertyNames, err := s.propertyNames(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}

	rows := buildRows(bookings, propertyNames)

	var result *models.ExportResult
	switch req.Format {
	case models.FormatCSV:
		result, err = buildCSV(rows, delimiter)
	case models.FormatJSON:
		result, err = buildJSON(rows)
	}
	if err != nil {
		s.logger.Error("ExportBookings: failed to build %s for owner=%d: %v", req.Format, req.OwnerID, err)
		return nil, fmt.Errorf("%w: ExportBookings - build error: %v", ErrInternal, err)
	}

	s.logger.Info("ExportBookings: successfully exported %d bookings for owner=%d as %s", len(rows), req.OwnerID, result.FileName)
	return result, nil
}

// resolveDelimiter возвращает руну-разделитель CSV по имени из запроса/конфига
func (s *Service) resolveDelimiter(requested string) (rune, error) {
	name := requested
	if name == "" {
		name = s.defaultDelimiter
	}

	switch name {
	case models.DelimiterComma:
		return ',', nil
	case models.DelimiterSemicolon, "":
		return ';', nil
	default:
		return 0, fmt.Errorf("%w: delimiter must be comma or semicolon", ErrInvalidInput)
	}
}

func (s *Service) buildFilter(req *models.ExportBookingsRequest) (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		OwnerID:          req.OwnerID,
		PropertyID:       req.PropertyID,
		IncludeCancelled: req.IncludeCancelled,
	}

	if req.From != nil {
		from, err := types.NewDateStringFromString(*req.From)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if req.To != nil {
		to, err := types.NewDateStringFromString(*req.To)
		if err != nil {
			return filter, err
		}
		filter.To = &to
	}
	if req.Status != nil {
		status, err := bookingModels.ToDomainBookingStatus(*req.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// propertyNames возвращает названия площадок владельца по ID
func (s *Service) propertyNames(ctx context.Context, ownerID int64) (map[int64]string, error) {
	properties, err := s.propertyRepo.GetByOwner(ctx, ownerID, true)
	if err != nil {
		s.logger.Error("propertyNames: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: propertyNames - repository error: %v", ErrInternal, err)
	}

	names := make(map[int64]string, len(properties))
	for _, property := range properties {
		names[property.ID] = property.Name
	}
	return names, nil
}

func buildRows(bookings []*domain.Booking, propertyNames map[int64]string) []models.ExportedBooking {
	rows := make([]models.ExportedBooking, 0, len(bookings))

	for _, b := range bookings {
		nights, _ := b.Nights()

		notes := ""
		if b.Notes != nil {
			notes = *b.Notes
		}

		rows = append(rows, models.ExportedBooking{
			ID:           b.ID,
			PropertyName: propertyNames[b.PropertyID],
			CheckIn:      b.CheckIn.String(),
			CheckOut:     b.CheckOut.String(),
			Nights:       nights,
			GuestName:    b.GuestName,
			GuestPhone:   b.GuestPhone,
			Status:       string(b.Status),
			Source:       string(b.Source),
			TotalPrice:   b.TotalPrice,
			Currency:     b.Currency,
			Notes:        notes,
		})
	}

	return rows
}

func buildCSV(rows []models.ExportedBooking, delimiter rune) (*models.ExportResult, error) {
	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)
	writer.Comma = delimiter

	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.ID, 10),
			row.PropertyName,
			row.CheckIn,
			row.CheckOut,
			strconv.Itoa(row.Nights),
			row.GuestName,
			row.GuestPhone,
			row.Status,
			row.Source,
			strconv.FormatFloat(row.TotalPrice, 'f', 2, 64),
			row.Currency,
			row.Notes,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return &models.ExportResult{
		FileName:    exportFileName("csv"),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func buildJSON(rows []models.ExportedBooking) (*models.ExportResult, error) {
	payload := struct {
		Bookings []models.ExportedBooking `json:"bookings"`
	}{Bookings: rows}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}

	return &models.ExportResult{
		FileName:    exportFileName("json"),
		ContentType: "application/json",
		Data:        data,
	}, nil
}

// exportFileName собирает имя файла выгрузки: дата + короткий уникальный суффикс
func exportFileName(ext string) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("bookings_%s_%s.%s", time.Now().Format("2006-01-02"), suffix, ext)
}
