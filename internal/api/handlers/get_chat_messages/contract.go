package get_chat_messages

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/service/chats/models"
)

type ChatService interface {
	ListMessages(ctx context.Context, chatID int64, ownerID int64) (*models.MessageListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
