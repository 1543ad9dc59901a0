package exports

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByOwnerWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// PropertyRepository интерфейс репозитория площадок
// (для подстановки названий площадок в выгрузку)
type PropertyRepository interface {
	GetByOwner(ctx context.Context, ownerID int64, includeArchived bool) ([]*domain.Property, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
