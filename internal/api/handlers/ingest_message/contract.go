package ingest_message

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/service/chats/models"
)

type ChatService interface {
	IngestMessage(ctx context.Context, req *models.IngestMessageRequest) (*models.ChatResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
