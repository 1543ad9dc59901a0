package get_guest_bookings

import (
	"context"

	bookingModels "github.com/m0rven/STR-PropertyManager/internal/service/bookings/models"
)

type GuestService interface {
	Bookings(ctx context.Context, guestID int64, ownerID int64) (*bookingModels.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
