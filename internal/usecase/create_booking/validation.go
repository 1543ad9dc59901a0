package create_booking

import (
	"fmt"
	"strings"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// parsedDates результат валидации диапазона дат запроса
type parsedDates struct {
	checkIn  types.DateString
	checkOut types.DateString
	nights   int
}

// validateRequest валидирует входные данные и парсит диапазон дат
func validateRequest(req *Request) (*parsedDates, error) {
	if req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if req.PropertyID <= 0 {
		return nil, fmt.Errorf("%w: propertyID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.GuestName) == "" {
		return nil, fmt.Errorf("%w: guestName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.GuestPhone) == "" {
		return nil, fmt.Errorf("%w: guestPhone is required", ErrInvalidInput)
	}

	checkIn, err := types.NewDateStringFromString(req.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid checkIn format: %v", ErrInvalidInput, err)
	}

	checkOut, err := types.NewDateStringFromString(req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid checkOut format: %v", ErrInvalidInput, err)
	}

	// Полуоткрытый диапазон [checkIn, checkOut): выезд строго позже заезда
	if !checkIn.IsBefore(checkOut) {
		return nil, fmt.Errorf("%w: checkOut must be after checkIn", ErrInvalidInput)
	}

	nights, err := checkIn.DaysUntil(checkOut)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to calculate nights: %v", ErrInternal, err)
	}
	if nights > domain.MaxStayNights {
		return nil, fmt.Errorf("%w: stay exceeds %d nights", ErrInvalidInput, domain.MaxStayNights)
	}

	if req.TotalPrice != nil && *req.TotalPrice < 0 {
		return nil, fmt.Errorf("%w: totalPrice must be non-negative", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if _, err := resolveStatus(req.Status); err != nil {
		return nil, err
	}
	if _, err := resolveSource(req.Source); err != nil {
		return nil, err
	}

	return &parsedDates{checkIn: checkIn, checkOut: checkOut, nights: nights}, nil
}

// resolveStatus возвращает статус нового бронирования (по умолчанию pending).
// Создание сразу отменённого бронирования смысла не имеет и запрещено.
func resolveStatus(status *string) (domain.BookingStatus, error) {
	if status == nil {
		return domain.StatusPending, nil
	}

	s := domain.BookingStatus(*status)
	for _, valid := range domain.ValidStatuses {
		if s == valid && s != domain.StatusCancelled {
			return s, nil
		}
	}

	return "", fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *status)
}

// resolveSource возвращает канал бронирования (по умолчанию direct)
func resolveSource(source *string) (domain.BookingSource, error) {
	if source == nil {
		return domain.SourceDirect, nil
	}

	s := domain.BookingSource(*source)
	for _, valid := range domain.ValidSources {
		if s == valid {
			return s, nil
		}
	}

	return "", fmt.Errorf("%w: invalid source %q", ErrInvalidInput, *source)
}

// findConflict ищет активное бронирование, пересекающееся с диапазоном [checkIn, checkOut).
// Смежные бронирования (выезд в день заезда) конфликтом не считаются.
func findConflict(bookings []*domain.Booking, checkIn, checkOut types.DateString) *domain.Booking {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if domain.RangesOverlap(checkIn, checkOut, booking.CheckIn, booking.CheckOut) {
			return booking
		}
	}
	return nil
}

// ratesByDate индексирует переопределения тарифов по дате
func ratesByDate(rates []*domain.PropertyRate) map[types.DateString]*domain.PropertyRate {
	indexed := make(map[types.DateString]*domain.PropertyRate, len(rates))
	for _, rate := range rates {
		indexed[rate.Date] = rate
	}
	return indexed
}

// calculatePrice суммирует эффективные цены по ночам диапазона [checkIn, checkOut)
func calculatePrice(property *domain.Property, rates map[types.DateString]*domain.PropertyRate, checkIn, checkOut types.DateString) (float64, error) {
	total := 0.0

	for date := checkIn; date.IsBefore(checkOut); {
		total += rates[date].EffectivePrice(property.BasePrice)

		next, err := date.AddDays(1)
		if err != nil {
			return 0, fmt.Errorf("%w: failed to advance date: %v", ErrInternal, err)
		}
		date = next
	}

	return total, nil
}
