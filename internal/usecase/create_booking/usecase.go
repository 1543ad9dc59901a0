// Package create_booking use case создания бронирования
// с сериализуемой проверкой пересечения дат.
package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/internal/infra/events"
	propertyRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/property"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	propertyRepo PropertyRepository
	rateRepo     RateRepository
	auditRepo    AuditRepository
	publisher    EventPublisher
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	propertyRepo PropertyRepository,
	rateRepo RateRepository,
	auditRepo AuditRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		rateRepo:     rateRepo,
		auditRepo:    auditRepo,
		publisher:    publisher,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечения дат и запись идут в сериализуемой транзакции
// с блокировкой бронирований площадки - параллельное создание на те же
// даты получит ErrDatesConflict, а не два пересекающихся бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: owner=%d, property=%d, dates=%s..%s, guest=%s",
		req.OwnerID, req.PropertyID, req.CheckIn, req.CheckOut, req.GuestName)

	// 1. Валидация входных данных и парсинг дат
	dates, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// Статусы и канал уже провалидированы
	status, _ := resolveStatus(req.Status)
	source, _ := resolveSource(req.Source)

	// 2. Получаем площадку и проверяем владельца
	property, err := uc.propertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			uc.logger.Warn("CreateBooking: property id=%d not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("CreateBooking: failed to get property id=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	if property.OwnerID != req.OwnerID {
		uc.logger.Warn("CreateBooking: access denied for owner=%d to property id=%d", req.OwnerID, req.PropertyID)
		return nil, ErrAccessDenied
	}

	if !property.IsBookable() {
		uc.logger.Warn("CreateBooking: property id=%d is archived", req.PropertyID)
		return nil, ErrPropertyArchived
	}

	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Читаем активные бронирования в окне с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.GetByPropertyInWindow(txCtx, req.PropertyID, dates.checkIn, dates.checkOut)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings in window: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 3.2. Проверяем пересечение дат
		if conflict := findConflict(existing, dates.checkIn, dates.checkOut); conflict != nil {
			uc.logger.Warn("CreateBooking: dates %s..%s conflict with booking id=%d (%s..%s)",
				dates.checkIn, dates.checkOut, conflict.ID, conflict.CheckIn, conflict.CheckOut)
			return ErrDatesConflict
		}

		// 3.3. Загружаем переопределения тарифов на диапазон
		rateOverrides, err := uc.rateRepo.GetByPropertyInWindow(txCtx, req.PropertyID, dates.checkIn, dates.checkOut)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get rates: %v", err)
			return fmt.Errorf("%w: failed to get rates: %v", ErrInternal, err)
		}
		rates := ratesByDate(rateOverrides)

		// 3.4. Проверяем min stay по дате заезда
		minStay := rates[dates.checkIn].EffectiveMinStay(property.MinStay)
		if dates.nights < minStay {
			uc.logger.Warn("CreateBooking: %d nights is below min stay %d for property id=%d",
				dates.nights, minStay, req.PropertyID)
			return fmt.Errorf("%w: at least %d nights required", ErrMinStayViolation, minStay)
		}

		// 3.5. Считаем цену, если она не задана явно
		totalPrice := 0.0
		if req.TotalPrice != nil {
			totalPrice = *req.TotalPrice
		} else {
			totalPrice, err = calculatePrice(property, rates, dates.checkIn, dates.checkOut)
			if err != nil {
				return err
			}
			uc.logger.Info("CreateBooking: calculated price %.2f for %d nights", totalPrice, dates.nights)
		}

		// 3.6. Создаем бронирование
		booking := &domain.Booking{
			PropertyID: req.PropertyID,
			OwnerID:    req.OwnerID,
			GuestID:    req.GuestID,
			GuestName:  req.GuestName,
			GuestPhone: req.GuestPhone,
			GuestEmail: req.GuestEmail,
			CheckIn:    dates.checkIn,
			CheckOut:   dates.checkOut,
			TotalPrice: totalPrice,
			Currency:   property.Currency,
			Status:     status,
			Source:     source,
			Notes:      req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 3.7. Пишем запись журнала изменений
		if err := uc.writeAudit(txCtx, created); err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 4. Публикуем событие после коммита
	if err := uc.publisher.Publish(ctx, events.BookingCreated, result.OwnerID, result.ID, nil); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:         result.ID,
		PropertyID: result.PropertyID,
		OwnerID:    result.OwnerID,
		GuestID:    result.GuestID,
		GuestName:  result.GuestName,
		GuestPhone: result.GuestPhone,
		GuestEmail: result.GuestEmail,
		CheckIn:    result.CheckIn,
		CheckOut:   result.CheckOut,
		Nights:     dates.nights,
		TotalPrice: result.TotalPrice,
		Currency:   result.Currency,
		Status:     string(result.Status),
		Source:     string(result.Source),
		Notes:      result.Notes,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}

func (uc *UseCase) writeAudit(ctx context.Context, booking *domain.Booking) error {
	raw, err := json.Marshal(map[string]interface{}{
		"checkIn":    booking.CheckIn,
		"checkOut":   booking.CheckOut,
		"totalPrice": booking.TotalPrice,
		"status":     booking.Status,
		"source":     booking.Source,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal audit details: %v", ErrInternal, err)
	}
	details := string(raw)

	_, err = uc.auditRepo.Create(ctx, &domain.BookingChange{
		BookingID: booking.ID,
		OwnerID:   booking.OwnerID,
		Action:    domain.ActionCreated,
		Details:   &details,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to write audit for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to write audit: %v", ErrInternal, err)
	}

	return nil
}
