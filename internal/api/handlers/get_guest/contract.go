package get_guest

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/service/guests/models"
)

type GuestService interface {
	GetByID(ctx context.Context, id int64, ownerID int64) (*models.GuestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
