package chats

import (
	"context"
	"time"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
)

// ChatRepository интерфейс репозитория чатов и сообщений
type ChatRepository interface {
	UpsertChat(ctx context.Context, chat *domain.Chat) (*domain.Chat, error)
	GetByID(ctx context.Context, id int64) (*domain.Chat, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]*domain.Chat, error)
	InsertMessage(ctx context.Context, message *domain.Message) (*domain.Message, error)
	GetMessages(ctx context.Context, chatID int64, limit int) ([]*domain.Message, error)
	TouchChat(ctx context.Context, chatID int64, lastMessageAt time.Time, incrementUnread bool) error
	ResetUnread(ctx context.Context, chatID int64) error
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
