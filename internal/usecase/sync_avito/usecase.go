// Package sync_avito use case выгрузки цен и занятости площадки
// в привязанное объявление Авито.
package sync_avito

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	avitoStorage "github.com/m0rven/STR-PropertyManager/internal/infra/storage/avito"
	propertyRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/property"
	avitoClient "github.com/m0rven/STR-PropertyManager/internal/integrations/avito"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// defaultWindowDays окно синхронизации по умолчанию - год вперед
const defaultWindowDays = 365

// UseCase use case синхронизации с Авито
type UseCase struct {
	bookingRepo  BookingRepository
	propertyRepo PropertyRepository
	rateRepo     RateRepository
	accountRepo  AvitoAccountRepository
	client       AvitoClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	propertyRepo PropertyRepository,
	rateRepo RateRepository,
	accountRepo AvitoAccountRepository,
	client AvitoClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		rateRepo:     rateRepo,
		accountRepo:  accountRepo,
		client:       client,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case синхронизации.
// Цены и занятость выгружаются за окно [from, to); занятые интервалы
// соседних бронирований склеиваются (выезд одного в день заезда другого).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SyncAvito: owner=%d, property=%d", req.OwnerID, req.PropertyID)

	// 1. Валидация и нормализация окна
	from, to, err := uc.resolveWindow(req)
	if err != nil {
		uc.logger.Warn("SyncAvito: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем площадку, проверяем владельца и привязку к объявлению
	property, err := uc.propertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			uc.logger.Warn("SyncAvito: property id=%d not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("SyncAvito: failed to get property id=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	if property.OwnerID != req.OwnerID {
		uc.logger.Warn("SyncAvito: access denied for owner=%d to property id=%d", req.OwnerID, req.PropertyID)
		return nil, ErrAccessDenied
	}

	if !property.HasAvitoListing() {
		uc.logger.Warn("SyncAvito: property id=%d is not linked to an Avito listing", req.PropertyID)
		return nil, ErrNotLinked
	}
	listingID := *property.AvitoListingID

	// 3. Получаем токены и обновляем их при необходимости
	accessToken, err := uc.ensureToken(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}

	// 4. Собираем посуточные цены
	rateOverrides, err := uc.rateRepo.GetByPropertyInWindow(ctx, req.PropertyID, from, to)
	if err != nil {
		uc.logger.Error("SyncAvito: failed to get rates for property id=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get rates: %v", ErrInternal, err)
	}

	prices, err := buildDayPrices(property, rateOverrides, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build prices: %v", ErrInternal, err)
	}

	// 5. Собираем занятые интервалы
	bookings, err := uc.bookingRepo.GetByPropertyInWindow(ctx, req.PropertyID, from, to)
	if err != nil {
		uc.logger.Error("SyncAvito: failed to get bookings for property id=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	busy := mergeBusyRanges(bookings)

	// 6. Выгружаем цены и занятость
	if err := uc.client.PushPrices(ctx, accessToken, listingID, prices); err != nil {
		uc.logger.Error("SyncAvito: push prices failed for listing=%d: %v", listingID, err)
		return nil, err
	}

	if err := uc.client.PushAvailability(ctx, accessToken, listingID, busy); err != nil {
		uc.logger.Error("SyncAvito: push availability failed for listing=%d: %v", listingID, err)
		return nil, err
	}

	uc.logger.Info("SyncAvito: successfully synced property id=%d to listing=%d: %d prices, %d busy ranges",
		req.PropertyID, listingID, len(prices), len(busy))

	return &Response{
		PropertyID: req.PropertyID,
		ListingID:  listingID,
		From:       from.String(),
		To:         to.String(),
		PricesDays: len(prices),
		BusyRanges: len(busy),
	}, nil
}

// ensureToken возвращает действующий access_token,
// обновляя пару токенов при истечении
func (uc *UseCase) ensureToken(ctx context.Context, ownerID int64) (string, error) {
	account, err := uc.accountRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, avitoStorage.ErrAccountNotFound) {
			uc.logger.Warn("SyncAvito: no connected account for owner=%d", ownerID)
			return "", ErrNotConnected
		}
		uc.logger.Error("SyncAvito: failed to get account for owner=%d: %v", ownerID, err)
		return "", fmt.Errorf("%w: failed to get account: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	if !account.IsExpired(now) {
		return account.AccessToken, nil
	}

	uc.logger.Info("SyncAvito: access token expired for owner=%d, refreshing", ownerID)

	token, err := uc.client.RefreshToken(ctx, account.RefreshToken)
	if err != nil {
		uc.logger.Error("SyncAvito: token refresh failed for owner=%d: %v", ownerID, err)
		return "", ErrTokenRefreshFailed
	}

	refreshed, err := uc.accountRepo.Upsert(ctx, &domain.AvitoAccount{
		OwnerID:      ownerID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    now.Add(time.Duration(token.ExpiresIn) * time.Second),
	})
	if err != nil {
		uc.logger.Error("SyncAvito: failed to save refreshed tokens for owner=%d: %v", ownerID, err)
		return "", fmt.Errorf("%w: failed to save tokens: %v", ErrInternal, err)
	}

	return refreshed.AccessToken, nil
}

// resolveWindow валидирует запрос и возвращает окно синхронизации
func (uc *UseCase) resolveWindow(req *Request) (types.DateString, types.DateString, error) {
	if req.OwnerID <= 0 {
		return "", "", fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if req.PropertyID <= 0 {
		return "", "", fmt.Errorf("%w: propertyID must be positive", ErrInvalidInput)
	}

	if req.From == "" && req.To == "" {
		from := types.NewDateString(uc.timeProvider.Now())
		to, err := from.AddDays(defaultWindowDays)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return from, to, nil
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

// buildDayPrices собирает посуточные цены окна [from, to).
// Авито принимает цены в целых рублях, дробные округляются.
func buildDayPrices(property *domain.Property, overrides []*domain.PropertyRate, from, to types.DateString) ([]avitoClient.DayPrice, error) {
	rates := make(map[types.DateString]*domain.PropertyRate, len(overrides))
	for _, rate := range overrides {
		rates[rate.Date] = rate
	}

	prices := make([]avitoClient.DayPrice, 0)
	for date := from; date.IsBefore(to); {
		prices = append(prices, avitoClient.DayPrice{
			Date:  date,
			Price: int64(math.Round(rates[date].EffectivePrice(property.BasePrice))),
		})

		next, err := date.AddDays(1)
		if err != nil {
			return nil, err
		}
		date = next
	}

	return prices, nil
}

// mergeBusyRanges склеивает активные бронирования в занятые интервалы.
// Смежные диапазоны (выезд одного в день заезда другого) сливаются в один.
func mergeBusyRanges(bookings []*domain.Booking) []avitoClient.BusyRange {
	active := make([]*domain.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.IsActive() {
			active = append(active, booking)
		}
	}
	if len(active) == 0 {
		return []avitoClient.BusyRange{}
	}

	// Репозиторий отдает бронирования отсортированными по дате заезда
	merged := make([]avitoClient.BusyRange, 0, len(active))
	current := avitoClient.BusyRange{DateFrom: active[0].CheckIn, DateTo: active[0].CheckOut}

	for _, booking := range active[1:] {
		// Заезд не позже конца текущего интервала - продлеваем его
		if !current.DateTo.IsBefore(booking.CheckIn) {
			if current.DateTo.IsBefore(booking.CheckOut) {
				current.DateTo = booking.CheckOut
			}
			continue
		}
		merged = append(merged, current)
		current = avitoClient.BusyRange{DateFrom: booking.CheckIn, DateTo: booking.CheckOut}
	}
	merged = append(merged, current)

	return merged
}
