package list_chats

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/service/chats/models"
)

type ChatService interface {
	ListChats(ctx context.Context, ownerID int64) (*models.ChatListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
