package rates

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// RateRepository интерфейс репозитория переопределений тарифов
type RateRepository interface {
	Upsert(ctx context.Context, rate *domain.PropertyRate) (*domain.PropertyRate, error)
	GetByPropertyInWindow(ctx context.Context, propertyID int64, from, to types.DateString) ([]*domain.PropertyRate, error)
	DeleteByDate(ctx context.Context, propertyID int64, date types.DateString) error
}

// PropertyRepository интерфейс репозитория площадок
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
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
