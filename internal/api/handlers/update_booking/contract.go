package update_booking

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/service/bookings/models"
)

type BookingService interface {
	Update(ctx context.Context, bookingID int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
