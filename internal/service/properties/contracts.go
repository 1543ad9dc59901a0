package properties

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// PropertyRepository интерфейс репозитория площадок
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetByOwner(ctx context.Context, ownerID int64, includeArchived bool) ([]*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
// (для проверки блокирующих бронирований перед удалением площадки)
type BookingRepository interface {
	CountBlockingForProperty(ctx context.Context, propertyID int64, today types.DateString) (int, error)
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
