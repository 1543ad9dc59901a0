package get_booking_history

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/service/bookings/models"
)

type BookingService interface {
	History(ctx context.Context, bookingID int64, ownerID int64) (*models.ChangeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
