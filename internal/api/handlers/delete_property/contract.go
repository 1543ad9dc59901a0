package delete_property

import (
	"context"
)

type PropertyService interface {
	Delete(ctx context.Context, propertyID int64, ownerID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
