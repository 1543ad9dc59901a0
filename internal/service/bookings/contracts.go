package bookings

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByOwnerWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// AuditRepository интерфейс журнала изменений бронирований
type AuditRepository interface {
	Create(ctx context.Context, change *domain.BookingChange) (*domain.BookingChange, error)
	GetByBooking(ctx context.Context, bookingID int64) ([]*domain.BookingChange, error)
}

// EventPublisher интерфейс публикации событий изменений
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, ownerID, entityID int64, payload interface{}) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
