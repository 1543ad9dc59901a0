// Package properties сервис управления площадками (объектами аренды)
package properties

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	propertyRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/property"
	"github.com/m0rven/STR-PropertyManager/internal/service/properties/models"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// Service сервис для работы с площадками
type Service struct {
	propertyRepo PropertyRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(
	propertyRepo PropertyRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		propertyRepo: propertyRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает новую площадку
func (s *Service) Create(ctx context.Context, req *models.CreatePropertyRequest) (*models.PropertyResponse, error) {
	s.logger.Info("Create: creating property %q for owner=%d", req.Name, req.OwnerID)

	if err := req.Validate(); err != nil {
		s.logger.Warn("Create: invalid request for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	property, err := s.propertyRepo.Create(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("Create: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created property id=%d for owner=%d", property.ID, req.OwnerID)
	return models.FromDomainProperty(property), nil
}

// GetByID получает площадку по ID с проверкой владельца
func (s *Service) GetByID(ctx context.Context, id int64, ownerID int64) (*models.PropertyResponse, error) {
	s.logger.Info("GetByID: fetching property id=%d for owner=%d", id, ownerID)

	property, err := s.getOwned(ctx, id, ownerID, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainProperty(property), nil
}

// List получает площадки владельца.
// Архивные площадки включаются только по запросу.
func (s *Service) List(ctx context.Context, ownerID int64, includeArchived bool) (*models.PropertyListResponse, error) {
	s.logger.Info("List: fetching properties for owner=%d, includeArchived=%v", ownerID, includeArchived)

	properties, err := s.propertyRepo.GetByOwner(ctx, ownerID, includeArchived)
	if err != nil {
		s.logger.Error("List: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d properties for owner=%d", len(properties), ownerID)
	return models.FromDomainPropertyList(properties), nil
}

// Update обновляет площадку. Архивация тоже идет этим методом (isArchived=true).
func (s *Service) Update(ctx context.Context, propertyID int64, req *models.UpdatePropertyRequest) (*models.PropertyResponse, error) {
	s.logger.Info("Update: updating property id=%d by owner=%d", propertyID, req.OwnerID)

	var updated *domain.Property

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		property, err := s.getOwned(ctx, propertyID, req.OwnerID, "Update")
		if err != nil {
			return err
		}

		if req.Name != nil {
			property.Name = *req.Name
		}
		if req.Type != nil {
			propertyType, err := models.ToDomainPropertyType(*req.Type)
			if err != nil {
				s.logger.Warn("Update: invalid type=%s for property id=%d", *req.Type, propertyID)
				return fmt.Errorf("%w: invalid type", ErrInvalidInput)
			}
			property.Type = propertyType
		}
		if req.Address != nil {
			property.Address = *req.Address
		}
		if req.Description != nil {
			property.Description = req.Description
		}
		if req.BasePrice != nil {
			if *req.BasePrice < 0 {
				return fmt.Errorf("%w: basePrice must be non-negative", ErrInvalidInput)
			}
			property.BasePrice = *req.BasePrice
		}
		if req.Currency != nil {
			property.Currency = *req.Currency
		}
		if req.Capacity != nil {
			if *req.Capacity <= 0 {
				return fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
			}
			property.Capacity = *req.Capacity
		}
		if req.MinStay != nil {
			if *req.MinStay < domain.MinStayNights {
				return fmt.Errorf("%w: minStay must be at least %d", ErrInvalidInput, domain.MinStayNights)
			}
			property.MinStay = *req.MinStay
		}
		if req.AvitoListingID != nil {
			property.AvitoListingID = req.AvitoListingID
		}
		if req.IsArchived != nil {
			property.IsArchived = *req.IsArchived
		}

		if err := s.propertyRepo.Update(ctx, property); err != nil {
			if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
				return ErrPropertyNotFound
			}
			s.logger.Error("Update: repository error for property id=%d: %v", propertyID, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		updated = property
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated property id=%d", propertyID)
	return models.FromDomainProperty(updated), nil
}

// Delete удаляет площадку.
// Удаление блокируется, если по площадке есть оплаченные
// или активные будущие бронирования - вместо удаления доступна архивация.
func (s *Service) Delete(ctx context.Context, propertyID int64, ownerID int64) error {
	s.logger.Info("Delete: deleting property id=%d by owner=%d", propertyID, ownerID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.getOwned(ctx, propertyID, ownerID, "Delete"); err != nil {
			return err
		}

		today := types.NewDateString(time.Now())
		blocking, err := s.bookingRepo.CountBlockingForProperty(ctx, propertyID, today)
		if err != nil {
			s.logger.Error("Delete: failed to count blocking bookings for property id=%d: %v", propertyID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		if blocking > 0 {
			s.logger.Warn("Delete: property id=%d has %d blocking bookings", propertyID, blocking)
			return ErrHasPaidBookings
		}

		if err := s.propertyRepo.Delete(ctx, propertyID); err != nil {
			if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
				return ErrPropertyNotFound
			}
			s.logger.Error("Delete: repository error for property id=%d: %v", propertyID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted property id=%d", propertyID)
	return nil
}

// getOwned получает площадку и проверяет принадлежность владельцу
func (s *Service) getOwned(ctx context.Context, propertyID, ownerID int64, op string) (*domain.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			s.logger.Warn("%s: property id=%d not found", op, propertyID)
			return nil, ErrPropertyNotFound
		}
		s.logger.Error("%s: repository error for property id=%d: %v", op, propertyID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if property.OwnerID != ownerID {
		s.logger.Warn("%s: access denied for owner=%d to property id=%d", op, ownerID, propertyID)
		return nil, ErrAccessDenied
	}

	return property, nil
}
