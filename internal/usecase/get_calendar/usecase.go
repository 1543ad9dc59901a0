// Package get_calendar use case сборки снимка календаря:
// ячейки с тарифами и бронирования, разложенные по рядам.
package get_calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	propertyRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/property"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// UseCase use case для получения календаря
type UseCase struct {
	bookingRepo  BookingRepository
	propertyRepo PropertyRepository
	rateRepo     RateRepository
	cache        SnapshotCache
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// cache может быть nil - тогда снимки собираются на каждый запрос.
func NewUseCase(
	bookingRepo BookingRepository,
	propertyRepo PropertyRepository,
	rateRepo RateRepository,
	cache SnapshotCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		rateRepo:     rateRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Execute выполняет use case получения календаря за окно [from, to)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendar: owner=%d, window=%s..%s", req.OwnerID, req.From, req.To)

	// 1. Валидация окна
	from, to, err := validateWindow(req)
	if err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	// 2. Пробуем отдать снимок из кеша
	if uc.cache != nil {
		if payload, err := uc.cache.Get(ctx, req.OwnerID, from, to, req.PropertyID); err == nil {
			var cached Response
			if err := json.Unmarshal(payload, &cached); err == nil {
				uc.logger.Info("GetCalendar: cache hit for owner=%d", req.OwnerID)
				return &cached, nil
			}
			uc.logger.Warn("GetCalendar: failed to unmarshal cached snapshot: %v", err)
		}
	}

	// 3. Определяем площадки
	properties, err := uc.resolveProperties(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Собираем календарь каждой площадки
	resp := &Response{
		From:       from.String(),
		To:         to.String(),
		Properties: make([]PropertyCalendar, 0, len(properties)),
	}

	for _, property := range properties {
		calendar, err := uc.buildPropertyCalendar(ctx, property, from, to)
		if err != nil {
			return nil, err
		}
		resp.Properties = append(resp.Properties, *calendar)
	}

	// 5. Кладем снимок в кеш
	if uc.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			uc.cache.Set(ctx, req.OwnerID, from, to, req.PropertyID, payload)
		}
	}

	uc.logger.Info("GetCalendar: successfully built calendar for owner=%d, %d properties", req.OwnerID, len(resp.Properties))
	return resp, nil
}

// resolveProperties возвращает запрошенную площадку либо все активные площадки владельца
func (uc *UseCase) resolveProperties(ctx context.Context, req *Request) ([]*domain.Property, error) {
	if req.PropertyID == nil {
		properties, err := uc.propertyRepo.GetByOwner(ctx, req.OwnerID, false)
		if err != nil {
			uc.logger.Error("GetCalendar: failed to get properties for owner=%d: %v", req.OwnerID, err)
			return nil, fmt.Errorf("%w: failed to get properties: %v", ErrInternal, err)
		}
		return properties, nil
	}

	property, err := uc.propertyRepo.GetByID(ctx, *req.PropertyID)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			uc.logger.Warn("GetCalendar: property id=%d not found", *req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("GetCalendar: failed to get property id=%d: %v", *req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	if property.OwnerID != req.OwnerID {
		uc.logger.Warn("GetCalendar: access denied for owner=%d to property id=%d", req.OwnerID, *req.PropertyID)
		return nil, ErrAccessDenied
	}

	return []*domain.Property{property}, nil
}

// buildPropertyCalendar собирает календарь одной площадки
func (uc *UseCase) buildPropertyCalendar(ctx context.Context, property *domain.Property, from, to types.DateString) (*PropertyCalendar, error) {
	bookings, err := uc.bookingRepo.GetByPropertyInWindow(ctx, property.ID, from, to)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get bookings for property id=%d: %v", property.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	rateOverrides, err := uc.rateRepo.GetByPropertyInWindow(ctx, property.ID, from, to)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get rates for property id=%d: %v", property.ID, err)
		return nil, fmt.Errorf("%w: failed to get rates: %v", ErrInternal, err)
	}

	rates := make(map[types.DateString]*domain.PropertyRate, len(rateOverrides))
	for _, rate := range rateOverrides {
		rates[rate.Date] = rate
	}

	placements := AssignLayers(bookings)

	days, err := buildDays(property, rates, placements, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build days: %v", ErrInternal, err)
	}

	placed := make([]PlacedBooking, 0, len(placements))
	for _, placement := range placements {
		placed = append(placed, PlacedBooking{
			ID:         placement.Booking.ID,
			CheckIn:    placement.Booking.CheckIn.String(),
			CheckOut:   placement.Booking.CheckOut.String(),
			GuestName:  placement.Booking.GuestName,
			Status:     string(placement.Booking.Status),
			Source:     string(placement.Booking.Source),
			TotalPrice: placement.Booking.TotalPrice,
			Layer:      placement.Layer,
		})
	}

	return &PropertyCalendar{
		PropertyID:   property.ID,
		PropertyName: property.Name,
		Currency:     property.Currency,
		Days:         days,
		Bookings:     placed,
		Layers:       LayerCount(placements),
	}, nil
}

// validateWindow парсит и валидирует окно календаря
func validateWindow(req *Request) (types.DateString, types.DateString, error) {
	if req.OwnerID <= 0 {
		return "", "", fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if req.PropertyID != nil && *req.PropertyID <= 0 {
		return "", "", fmt.Errorf("%w: propertyID must be positive", ErrInvalidInput)
	}

	from, err := types.NewDateStringFromString(req.From)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid from format: %v", ErrInvalidInput, err)
	}
	to, err := types.NewDateStringFromString(req.To)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid to format: %v", ErrInvalidInput, err)
	}
	if !from.IsBefore(to) {
		return "", "", fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	days, err := from.DaysUntil(to)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if days > domain.MaxCalendarWindowDays {
		return "", "", fmt.Errorf("%w: window exceeds %d days", ErrInvalidInput, domain.MaxCalendarWindowDays)
	}

	return from, to, nil
}
