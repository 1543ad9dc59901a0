// Package guests сервис CRM-карточек гостей
package guests

import (
	"context"
	"errors"
	"fmt"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	guestRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/guest"
	bookingModels "github.com/m0rven/STR-PropertyManager/internal/service/bookings/models"
	"github.com/m0rven/STR-PropertyManager/internal/service/guests/models"
)

// Service сервис для работы с гостями
type Service struct {
	guestRepo   GuestRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса гостей
func NewService(
	guestRepo GuestRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		guestRepo:   guestRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Create создает карточку гостя
func (s *Service) Create(ctx context.Context, req *models.CreateGuestRequest) (*models.GuestResponse, error) {
	s.logger.Info("Create: creating guest %q for owner=%d", req.Name, req.OwnerID)

	if err := req.Validate(); err != nil {
		s.logger.Warn("Create: invalid request for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	guest, err := s.guestRepo.Create(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("Create: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created guest id=%d for owner=%d", guest.ID, req.OwnerID)
	return models.FromDomainGuest(guest), nil
}

// GetByID получает карточку гостя с проверкой владельца
func (s *Service) GetByID(ctx context.Context, id int64, ownerID int64) (*models.GuestResponse, error) {
	s.logger.Info("GetByID: fetching guest id=%d for owner=%d", id, ownerID)

	guest, err := s.getOwned(ctx, id, ownerID, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainGuest(guest), nil
}

// List получает гостей владельца с фильтрацией по метке и поиском по имени/телефону
func (s *Service) List(ctx context.Context, req *models.ListGuestsRequest) (*models.GuestListResponse, error) {
	s.logger.Info("List: fetching guests for owner=%d", req.OwnerID)

	guests, err := s.guestRepo.GetByOwnerWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d guests for owner=%d", len(guests), req.OwnerID)
	return models.FromDomainGuestList(guests), nil
}

// Update обновляет карточку гостя
func (s *Service) Update(ctx context.Context, guestID int64, req *models.UpdateGuestRequest) (*models.GuestResponse, error) {
	s.logger.Info("Update: updating guest id=%d by owner=%d", guestID, req.OwnerID)

	guest, err := s.getOwned(ctx, guestID, req.OwnerID, "Update")
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		guest.Name = *req.Name
	}
	if req.Phone != nil {
		guest.Phone = *req.Phone
	}
	if req.Email != nil {
		guest.Email = req.Email
	}
	if req.Tags != nil {
		guest.Tags = *req.Tags
	}
	if req.Notes != nil {
		guest.Notes = req.Notes
	}

	if guest.Name == "" || guest.Phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", ErrInvalidInput)
	}

	if err := s.guestRepo.Update(ctx, guest); err != nil {
		if errors.Is(err, guestRepo.ErrGuestNotFound) {
			return nil, ErrGuestNotFound
		}
		s.logger.Error("Update: repository error for guest id=%d: %v", guestID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated guest id=%d", guestID)
	return models.FromDomainGuest(guest), nil
}

// Bookings возвращает историю бронирований гостя (включая отменённые)
func (s *Service) Bookings(ctx context.Context, guestID int64, ownerID int64) (*bookingModels.BookingListResponse, error) {
	s.logger.Info("Bookings: fetching booking history for guest id=%d, owner=%d", guestID, ownerID)

	if _, err := s.getOwned(ctx, guestID, ownerID, "Bookings"); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByOwnerWithFilter(ctx, domain.BookingsFilter{
		OwnerID:          ownerID,
		GuestID:          &guestID,
		IncludeCancelled: true,
	})
	if err != nil {
		s.logger.Error("Bookings: repository error for guest id=%d: %v", guestID, err)
		return nil, fmt.Errorf("%w: Bookings - repository error: %v", ErrInternal, err)
	}

	return bookingModels.FromDomainBookingList(bookings), nil
}

// getOwned получает карточку гостя и проверяет принадлежность владельцу
func (s *Service) getOwned(ctx context.Context, guestID, ownerID int64, op string) (*domain.Guest, error) {
	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, guestRepo.ErrGuestNotFound) {
			s.logger.Warn("%s: guest id=%d not found", op, guestID)
			return nil, ErrGuestNotFound
		}
		s.logger.Error("%s: repository error for guest id=%d: %v", op, guestID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if guest.OwnerID != ownerID {
		s.logger.Warn("%s: access denied for owner=%d to guest id=%d", op, ownerID, guestID)
		return nil, ErrAccessDenied
	}

	return guest, nil
}
