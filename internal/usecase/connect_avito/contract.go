package connect_avito

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	avitoClient "github.com/m0rven/STR-PropertyManager/internal/integrations/avito"
)

// AvitoAccountRepository интерфейс хранилища токенов аккаунтов Авито
type AvitoAccountRepository interface {
	Upsert(ctx context.Context, account *domain.AvitoAccount) (*domain.AvitoAccount, error)
	Delete(ctx context.Context, ownerID int64) error
}

// AvitoClient интерфейс клиента API Авито
type AvitoClient interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*avitoClient.TokenResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
