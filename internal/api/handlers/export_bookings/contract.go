package export_bookings

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/service/exports/models"
)

type ExportService interface {
	ExportBookings(ctx context.Context, req *models.ExportBookingsRequest) (*models.ExportResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
