package sync_avito

import (
	"context"
	"time"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	avitoClient "github.com/m0rven/STR-PropertyManager/internal/integrations/avito"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByPropertyInWindow(ctx context.Context, propertyID int64, from, to types.DateString) ([]*domain.Booking, error)
}

// PropertyRepository интерфейс репозитория площадок
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

// RateRepository интерфейс репозитория переопределений тарифов
type RateRepository interface {
	GetByPropertyInWindow(ctx context.Context, propertyID int64, from, to types.DateString) ([]*domain.PropertyRate, error)
}

// AvitoAccountRepository интерфейс хранилища токенов аккаунтов Авито
type AvitoAccountRepository interface {
	GetByOwner(ctx context.Context, ownerID int64) (*domain.AvitoAccount, error)
	Upsert(ctx context.Context, account *domain.AvitoAccount) (*domain.AvitoAccount, error)
}

// AvitoClient интерфейс клиента API Авито
type AvitoClient interface {
	RefreshToken(ctx context.Context, refreshToken string) (*avitoClient.TokenResponse, error)
	PushPrices(ctx context.Context, accessToken string, listingID int64, prices []avitoClient.DayPrice) error
	PushAvailability(ctx context.Context, accessToken string, listingID int64, busy []avitoClient.BusyRange) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
