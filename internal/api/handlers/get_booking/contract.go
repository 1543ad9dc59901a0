package get_booking

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id int64, ownerID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
