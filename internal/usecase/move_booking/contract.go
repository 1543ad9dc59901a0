package move_booking

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByPropertyInWindow(ctx context.Context, propertyID int64, from, to types.DateString) ([]*domain.Booking, error)
	Move(ctx context.Context, id int64, propertyID int64, checkIn, checkOut types.DateString) error
}

// PropertyRepository интерфейс репозитория площадок
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

// AuditRepository интерфейс журнала изменений бронирований
type AuditRepository interface {
	Create(ctx context.Context, change *domain.BookingChange) (*domain.BookingChange, error)
}

// EventPublisher интерфейс публикации событий изменений
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, ownerID, entityID int64, payload interface{}) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
