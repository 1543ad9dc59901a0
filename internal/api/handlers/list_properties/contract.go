package list_properties

import (
	"context"

	"github.com/m0rven/STR-PropertyManager/internal/service/properties/models"
)

type PropertyService interface {
	List(ctx context.Context, ownerID int64, includeArchived bool) (*models.PropertyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
