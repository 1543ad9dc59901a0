package create_guest

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/service/guests/models"
)

type GuestService interface {
	Create(ctx context.Context, req *models.CreateGuestRequest) (*models.GuestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
