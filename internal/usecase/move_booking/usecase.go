// Package move_booking use case переноса бронирования на другие даты
// и/или площадку (drag-and-drop в календаре).
package move_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/internal/infra/events"
	bookingRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/booking"
	propertyRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/property"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// UseCase use case для переноса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	propertyRepo PropertyRepository
	auditRepo    AuditRepository
	publisher    EventPublisher
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	propertyRepo PropertyRepository,
	auditRepo AuditRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		auditRepo:    auditRepo,
		publisher:    publisher,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования.
// Проверка занятости целевых дат и запись идут в одной сериализуемой
// транзакции: при конфликте транзакция откатывается и бронирование
// остается на исходных датах.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MoveBooking: owner=%d, booking=%d, newCheckIn=%s", req.OwnerID, req.BookingID, req.CheckIn)

	// 1. Валидация входных данных
	if req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.PropertyID != nil && *req.PropertyID <= 0 {
		return nil, fmt.Errorf("%w: propertyID must be positive", ErrInvalidInput)
	}

	newCheckIn, err := types.NewDateStringFromString(req.CheckIn)
	if err != nil {
		uc.logger.Warn("MoveBooking: invalid checkIn %q: %v", req.CheckIn, err)
		return nil, fmt.Errorf("%w: invalid checkIn format: %v", ErrInvalidInput, err)
	}

	var result *domain.Booking
	var nights int

	// 2. Выполняем перенос в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем бронирование с блокировкой (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("MoveBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("MoveBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.OwnerID != req.OwnerID {
			uc.logger.Warn("MoveBooking: access denied for owner=%d to booking id=%d", req.OwnerID, req.BookingID)
			return ErrAccessDenied
		}

		if !booking.CanBeMoved() {
			uc.logger.Warn("MoveBooking: booking id=%d cannot be moved, status=%s", req.BookingID, booking.Status)
			return ErrCannotMove
		}

		// 2.2. Вычисляем новый диапазон, сохраняя количество ночей
		nights, err = booking.Nights()
		if err != nil {
			return fmt.Errorf("%w: failed to calculate nights: %v", ErrInternal, err)
		}

		newCheckOut, err := newCheckIn.AddDays(nights)
		if err != nil {
			return fmt.Errorf("%w: failed to calculate checkOut: %v", ErrInternal, err)
		}

		// 2.3. Определяем целевую площадку
		targetPropertyID := booking.PropertyID
		if req.PropertyID != nil && *req.PropertyID != booking.PropertyID {
			targetPropertyID = *req.PropertyID

			property, err := uc.propertyRepo.GetByID(txCtx, targetPropertyID)
			if err != nil {
				if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
					uc.logger.Warn("MoveBooking: target property id=%d not found", targetPropertyID)
					return ErrPropertyNotFound
				}
				uc.logger.Error("MoveBooking: failed to get property id=%d: %v", targetPropertyID, err)
				return fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
			}
			if property.OwnerID != req.OwnerID {
				uc.logger.Warn("MoveBooking: access denied for owner=%d to property id=%d", req.OwnerID, targetPropertyID)
				return ErrAccessDenied
			}
			if !property.IsBookable() {
				uc.logger.Warn("MoveBooking: target property id=%d is archived", targetPropertyID)
				return ErrPropertyArchived
			}
		}

		// Перенос на те же даты и площадку - ничего не делаем
		if targetPropertyID == booking.PropertyID && newCheckIn == booking.CheckIn {
			uc.logger.Info("MoveBooking: booking id=%d already at target position", req.BookingID)
			result = booking
			return nil
		}

		// 2.4. Проверяем занятость целевых дат с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.GetByPropertyInWindow(txCtx, targetPropertyID, newCheckIn, newCheckOut)
		if err != nil {
			uc.logger.Error("MoveBooking: failed to get bookings in target window: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		for _, other := range existing {
			// Само переносимое бронирование конфликтом не считается
			if other.ID == booking.ID || !other.IsActive() {
				continue
			}
			if domain.RangesOverlap(newCheckIn, newCheckOut, other.CheckIn, other.CheckOut) {
				uc.logger.Warn("MoveBooking: target %s..%s occupied by booking id=%d (%s..%s)",
					newCheckIn, newCheckOut, other.ID, other.CheckIn, other.CheckOut)
				return ErrTargetOccupied
			}
		}

		// 2.5. Переносим бронирование
		if err := uc.bookingRepo.Move(txCtx, booking.ID, targetPropertyID, newCheckIn, newCheckOut); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("MoveBooking: failed to move booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to move booking: %v", ErrInternal, err)
		}

		// 2.6. Пишем запись журнала изменений
		if err := uc.writeAudit(txCtx, booking, targetPropertyID, newCheckIn, newCheckOut); err != nil {
			return err
		}

		booking.PropertyID = targetPropertyID
		booking.CheckIn = newCheckIn
		booking.CheckOut = newCheckOut
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 3. Публикуем событие после коммита
	if err := uc.publisher.Publish(ctx, events.BookingMoved, result.OwnerID, result.ID, nil); err != nil {
		uc.logger.Warn("MoveBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	uc.logger.Info("MoveBooking: successfully moved booking id=%d to property=%d, %s..%s",
		result.ID, result.PropertyID, result.CheckIn, result.CheckOut)

	return &Response{
		ID:         result.ID,
		PropertyID: result.PropertyID,
		CheckIn:    result.CheckIn,
		CheckOut:   result.CheckOut,
		Nights:     nights,
	}, nil
}

func (uc *UseCase) writeAudit(ctx context.Context, booking *domain.Booking, toProperty int64, toCheckIn, toCheckOut types.DateString) error {
	raw, err := json.Marshal(map[string]interface{}{
		"fromPropertyId": booking.PropertyID,
		"fromCheckIn":    booking.CheckIn,
		"fromCheckOut":   booking.CheckOut,
		"toPropertyId":   toProperty,
		"toCheckIn":      toCheckIn,
		"toCheckOut":     toCheckOut,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal audit details: %v", ErrInternal, err)
	}
	details := string(raw)

	_, err = uc.auditRepo.Create(ctx, &domain.BookingChange{
		BookingID: booking.ID,
		OwnerID:   booking.OwnerID,
		Action:    domain.ActionMoved,
		Details:   &details,
	})
	if err != nil {
		uc.logger.Error("MoveBooking: failed to write audit for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to write audit: %v", ErrInternal, err)
	}

	return nil
}
