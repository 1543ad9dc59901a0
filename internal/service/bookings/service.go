// Package bookings сервис работы с бронированиями:
// просмотр, обновление, отмена и журнал изменений.
// Создание и перенос бронирований живут в отдельных use case,
// так как требуют сериализуемой проверки пересечений.
package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/internal/infra/events"
	bookingRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/booking"
	"github.com/m0rven/STR-PropertyManager/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	auditRepo   AuditRepository
	publisher   EventPublisher
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	auditRepo AuditRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		auditRepo:   auditRepo,
		publisher:   publisher,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Владелец видит только бронирования своих площадок.
func (s *Service) GetByID(ctx context.Context, id int64, ownerID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for owner=%d", id, ownerID)

	booking, err := s.getOwned(ctx, id, ownerID, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования владельца с фильтрацией
// по площадке, периоду, статусу и каналу
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for owner=%d", req.OwnerID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByOwnerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings for owner=%d", len(bookings), req.OwnerID)
	return models.FromDomainBookingList(bookings), nil
}

// Update обновляет бронирование: контакты гостя, цену, статус и заметки.
// Даты и площадка этим методом не меняются - для переноса есть отдельная операция.
func (s *Service) Update(ctx context.Context, bookingID int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d by owner=%d", bookingID, req.OwnerID)

	var updated *domain.Booking

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getOwned(ctx, bookingID, req.OwnerID, "Update")
		if err != nil {
			return err
		}

		action := domain.ActionUpdated
		changed := map[string]interface{}{}

		if req.GuestID != nil {
			booking.GuestID = req.GuestID
			changed["guestId"] = *req.GuestID
		}
		if req.GuestName != nil {
			booking.GuestName = *req.GuestName
			changed["guestName"] = *req.GuestName
		}
		if req.GuestPhone != nil {
			booking.GuestPhone = *req.GuestPhone
			changed["guestPhone"] = *req.GuestPhone
		}
		if req.GuestEmail != nil {
			booking.GuestEmail = req.GuestEmail
			changed["guestEmail"] = *req.GuestEmail
		}
		if req.TotalPrice != nil {
			booking.TotalPrice = *req.TotalPrice
			changed["totalPrice"] = *req.TotalPrice
		}
		if req.Notes != nil {
			booking.Notes = req.Notes
			changed["notes"] = *req.Notes
		}
		if req.Status != nil {
			status, err := models.ToDomainBookingStatus(*req.Status)
			if err != nil {
				s.logger.Warn("Update: invalid status=%s for booking id=%d", *req.Status, bookingID)
				return fmt.Errorf("%w: invalid status", ErrInvalidInput)
			}
			if status != booking.Status {
				changed["statusFrom"] = string(booking.Status)
				changed["statusTo"] = string(status)
				booking.Status = status
				action = domain.ActionStatusChanged
			}
		}

		if len(changed) == 0 {
			s.logger.Info("Update: nothing to change for booking id=%d", bookingID)
			updated = booking
			return nil
		}

		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Update: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if err := s.writeAudit(ctx, booking, action, changed); err != nil {
			return err
		}

		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.BookingUpdated, updated)

	s.logger.Info("Update: successfully updated booking id=%d", bookingID)
	return models.FromDomainBooking(updated), nil
}

// Cancel отменяет бронирование с указанием причины.
// Запись остается в истории, даты освобождаются для новых бронирований.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by owner=%d", bookingID, req.OwnerID)

	var cancelled *domain.Booking

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getOwned(ctx, bookingID, req.OwnerID, "Cancel")
		if err != nil {
			return err
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if err := s.writeAudit(ctx, booking, domain.ActionCancelled, map[string]interface{}{
			"reason": req.CancellationReason,
		}); err != nil {
			return err
		}

		cancelled = booking
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.BookingCancelled, cancelled)

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// History возвращает журнал изменений бронирования
func (s *Service) History(ctx context.Context, bookingID int64, ownerID int64) (*models.ChangeListResponse, error) {
	s.logger.Info("History: fetching changes for booking id=%d, owner=%d", bookingID, ownerID)

	if _, err := s.getOwned(ctx, bookingID, ownerID, "History"); err != nil {
		return nil, err
	}

	changes, err := s.auditRepo.GetByBooking(ctx, bookingID)
	if err != nil {
		s.logger.Error("History: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: History - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainChangeList(changes), nil
}

// Вспомогательные методы

// getOwned получает бронирование и проверяет принадлежность владельцу
func (s *Service) getOwned(ctx context.Context, bookingID, ownerID int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.OwnerID != ownerID {
		s.logger.Warn("%s: access denied for owner=%d to booking id=%d", op, ownerID, bookingID)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// writeAudit пишет запись журнала изменений в той же транзакции
func (s *Service) writeAudit(ctx context.Context, booking *domain.Booking, action domain.ChangeAction, details map[string]interface{}) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("%w: writeAudit - failed to marshal details: %v", ErrInternal, err)
	}
	detailsStr := string(raw)

	_, err = s.auditRepo.Create(ctx, &domain.BookingChange{
		BookingID: booking.ID,
		OwnerID:   booking.OwnerID,
		Action:    action,
		Details:   &detailsStr,
	})
	if err != nil {
		s.logger.Error("writeAudit: failed to write change for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: writeAudit - repository error: %v", ErrInternal, err)
	}

	return nil
}

// publish публикует событие после коммита транзакции.
// Ошибка публикации не откатывает уже сохраненное изменение.
func (s *Service) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if booking == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, booking.OwnerID, booking.ID, nil); err != nil {
		s.logger.Warn("publish: failed to publish %s for booking id=%d: %v", eventType, booking.ID, err)
	}
}
