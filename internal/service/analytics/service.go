// Package analytics сводная статистика по площадкам:
// загрузка, количество бронирований и выручка за период.
package analytics

import (
	"context"
	"fmt"
	"math"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/internal/service/analytics/models"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// Service сервис аналитики
type Service struct {
	bookingRepo  BookingRepository
	propertyRepo PropertyRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса аналитики
func NewService(
	bookingRepo BookingRepository,
	propertyRepo PropertyRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// GetStats собирает статистику владельца за период [from, to).
// Занятость площадки = занятые ночи / количество ночей периода,
// ночи бронирований обрезаются границами периода.
func (s *Service) GetStats(ctx context.Context, req *models.GetStatsRequest) (*models.StatsResponse, error) {
	s.logger.Info("GetStats: building stats for owner=%d, period=%s..%s", req.OwnerID, req.From, req.To)

	from, to, periodDays, err := parsePeriod(req.From, req.To)
	if err != nil {
		s.logger.Warn("GetStats: invalid period for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rows, err := s.bookingRepo.GetStatsByOwner(ctx, req.OwnerID, from, to)
	if err != nil {
		s.logger.Error("GetStats: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetStats - repository error: %v", ErrInternal, err)
	}

	properties, err := s.propertyRepo.GetByOwner(ctx, req.OwnerID, true)
	if err != nil {
		s.logger.Error("GetStats: failed to fetch properties for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetStats - repository error: %v", ErrInternal, err)
	}

	statsByProperty := make(map[int64]models.PropertyStats, len(rows))
	for _, row := range rows {
		statsByProperty[row.PropertyID] = models.PropertyStats{
			PropertyID:    row.PropertyID,
			BookingsCount: row.BookingsCount,
			NightsBooked:  row.NightsBooked,
			Revenue:       row.Revenue,
			Occupancy:     occupancy(row.NightsBooked, periodDays),
		}
	}

	resp := &models.StatsResponse{
		From:       from.String(),
		To:         to.String(),
		PeriodDays: periodDays,
		Properties: make([]models.PropertyStats, 0, len(properties)),
	}

	// Площадки без бронирований тоже попадают в отчет с нулями
	for _, property := range properties {
		stats, ok := statsByProperty[property.ID]
		if !ok {
			stats = models.PropertyStats{PropertyID: property.ID}
		}
		stats.PropertyName = property.Name
		resp.Properties = append(resp.Properties, stats)

		resp.TotalBookings += stats.BookingsCount
		resp.TotalNights += stats.NightsBooked
		resp.TotalRevenue += stats.Revenue
	}

	if len(properties) > 0 {
		resp.Occupancy = occupancy(resp.TotalNights, periodDays*len(properties))
	}

	s.logger.Info("GetStats: successfully built stats for owner=%d, %d properties, %d bookings",
		req.OwnerID, len(resp.Properties), resp.TotalBookings)
	return resp, nil
}

func parsePeriod(fromStr, toStr string) (types.DateString, types.DateString, int, error) {
	from, err := types.NewDateStringFromString(fromStr)
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid from date: %v", err)
	}
	to, err := types.NewDateStringFromString(toStr)
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid to date: %v", err)
	}
	if !from.IsBefore(to) {
		return "", "", 0, fmt.Errorf("from must be before to")
	}

	days, err := from.DaysUntil(to)
	if err != nil {
		return "", "", 0, err
	}
	if days > domain.MaxCalendarWindowDays {
		return "", "", 0, fmt.Errorf("period exceeds %d days", domain.MaxCalendarWindowDays)
	}

	return from, to, days, nil
}

// occupancy считает долю занятых ночей, округляя до четырех знаков
func occupancy(nights, totalNights int) float64 {
	if totalNights <= 0 {
		return 0
	}
	return math.Round(float64(nights)/float64(totalNights)*10000) / 10000
}
