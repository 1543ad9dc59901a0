// Package rates сервис посуточных тарифов: переопределения цены
// и минимального количества ночей поверх базовых значений площадки.
package rates

import (
	"context"
	"errors"
	"fmt"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	propertyRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/property"
	"github.com/m0rven/STR-PropertyManager/internal/service/rates/models"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// Service сервис для работы с тарифами
type Service struct {
	rateRepo     RateRepository
	propertyRepo PropertyRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса тарифов
func NewService(
	rateRepo RateRepository,
	propertyRepo PropertyRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		rateRepo:     rateRepo,
		propertyRepo: propertyRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetWindow получает переопределения тарифов площадки за период [from, to)
func (s *Service) GetWindow(ctx context.Context, propertyID int64, req *models.GetRatesRequest) (*models.RateListResponse, error) {
	s.logger.Info("GetWindow: fetching rates for property=%d, period=%s..%s", propertyID, req.From, req.To)

	if _, err := s.checkOwnedProperty(ctx, propertyID, req.OwnerID, "GetWindow"); err != nil {
		return nil, err
	}

	from, to, err := parseWindow(req.From, req.To)
	if err != nil {
		s.logger.Warn("GetWindow: invalid window for property=%d: %v", propertyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rates, err := s.rateRepo.GetByPropertyInWindow(ctx, propertyID, from, to)
	if err != nil {
		s.logger.Error("GetWindow: repository error for property=%d: %v", propertyID, err)
		return nil, fmt.Errorf("%w: GetWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWindow: successfully fetched %d rate overrides for property=%d", len(rates), propertyID)
	return models.FromDomainRateList(propertyID, rates), nil
}

// BulkUpsert массово сохраняет переопределения тарифов площадки.
// Элементы без значений удаляют переопределение на свою дату.
// Все изменения применяются в одной транзакции.
func (s *Service) BulkUpsert(ctx context.Context, propertyID int64, req *models.BulkUpsertRequest) error {
	s.logger.Info("BulkUpsert: upserting %d rate items for property=%d by owner=%d", len(req.Rates), propertyID, req.OwnerID)

	if len(req.Rates) == 0 {
		return fmt.Errorf("%w: rates list is empty", ErrInvalidInput)
	}

	// Валидируем и конвертируем все элементы до открытия транзакции
	rates := make([]*domain.PropertyRate, 0, len(req.Rates))
	for _, item := range req.Rates {
		rate, err := item.ToDomainRate(propertyID)
		if err != nil {
			s.logger.Warn("BulkUpsert: invalid date %q for property=%d: %v", item.Date, propertyID, err)
			return fmt.Errorf("%w: invalid date %q", ErrInvalidInput, item.Date)
		}
		if rate.Price != nil && *rate.Price < 0 {
			return fmt.Errorf("%w: price must be non-negative for date %s", ErrInvalidInput, rate.Date)
		}
		if rate.MinStay != nil && *rate.MinStay < domain.MinStayNights {
			return fmt.Errorf("%w: minStay must be at least %d for date %s", ErrInvalidInput, domain.MinStayNights, rate.Date)
		}
		rates = append(rates, rate)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.checkOwnedProperty(ctx, propertyID, req.OwnerID, "BulkUpsert"); err != nil {
			return err
		}

		for _, rate := range rates {
			if rate.IsEmpty() {
				// Пустое переопределение = сброс на базовые значения площадки
				if err := s.rateRepo.DeleteByDate(ctx, propertyID, rate.Date); err != nil {
					s.logger.Error("BulkUpsert: failed to delete rate for property=%d date=%s: %v", propertyID, rate.Date, err)
					return fmt.Errorf("%w: BulkUpsert - repository error: %v", ErrInternal, err)
				}
				continue
			}

			if _, err := s.rateRepo.Upsert(ctx, rate); err != nil {
				s.logger.Error("BulkUpsert: failed to upsert rate for property=%d date=%s: %v", propertyID, rate.Date, err)
				return fmt.Errorf("%w: BulkUpsert - repository error: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("BulkUpsert: successfully upserted %d rate items for property=%d", len(rates), propertyID)
	return nil
}

// checkOwnedProperty проверяет существование площадки и принадлежность владельцу
func (s *Service) checkOwnedProperty(ctx context.Context, propertyID, ownerID int64, op string) (*domain.Property, error) {
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

// parseWindow парсит и валидирует период [from, to)
func parseWindow(fromStr, toStr string) (types.DateString, types.DateString, error) {
	from, err := types.NewDateStringFromString(fromStr)
	if err != nil {
		return "", "", fmt.Errorf("invalid from date: %v", err)
	}
	to, err := types.NewDateStringFromString(toStr)
	if err != nil {
		return "", "", fmt.Errorf("invalid to date: %v", err)
	}
	if !from.IsBefore(to) {
		return "", "", fmt.Errorf("from must be before to")
	}

	days, err := from.DaysUntil(to)
	if err != nil {
		return "", "", err
	}
	if days > domain.MaxCalendarWindowDays {
		return "", "", fmt.Errorf("window exceeds %d days", domain.MaxCalendarWindowDays)
	}

	return from, to, nil
}
