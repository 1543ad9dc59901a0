package get_rates

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/service/rates/models"
)

type RateService interface {
	GetWindow(ctx context.Context, propertyID int64, req *models.GetRatesRequest) (*models.RateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
