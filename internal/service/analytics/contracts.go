package analytics

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/internal/infra/storage/booking"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetStatsByOwner(ctx context.Context, ownerID int64, from, to types.DateString) ([]booking.PropertyStatsRow, error)
}

// PropertyRepository интерфейс репозитория площадок
type PropertyRepository interface {
	GetByOwner(ctx context.Context, ownerID int64, includeArchived bool) ([]*domain.Property, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
