package guests

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
)

// GuestRepository интерфейс репозитория гостей
type GuestRepository interface {
	Create(ctx context.Context, guest *domain.Guest) (*domain.Guest, error)
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
	GetByOwnerWithFilter(ctx context.Context, filter domain.GuestsFilter) ([]*domain.Guest, error)
	Update(ctx context.Context, guest *domain.Guest) error
}

// BookingRepository интерфейс репозитория бронирований
// (для истории бронирований в карточке гостя)
type BookingRepository interface {
	GetByOwnerWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
