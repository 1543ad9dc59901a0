package get_calendar

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByPropertyInWindow(ctx context.Context, propertyID int64, from, to types.DateString) ([]*domain.Booking, error)
}

// PropertyRepository интерфейс репозитория площадок
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetByOwner(ctx context.Context, ownerID int64, includeArchived bool) ([]*domain.Property, error)
}

// RateRepository интерфейс репозитория переопределений тарифов
type RateRepository interface {
	GetByPropertyInWindow(ctx context.Context, propertyID int64, from, to types.DateString) ([]*domain.PropertyRate, error)
}

// SnapshotCache кеш собранных снимков календаря.
// Реализация поверх Redis; при выключенном кеше подставляется nil.
type SnapshotCache interface {
	Get(ctx context.Context, ownerID int64, from, to types.DateString, propertyID *int64) ([]byte, error)
	Set(ctx context.Context, ownerID int64, from, to types.DateString, propertyID *int64, payload []byte)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
