package disconnect_avito

import (
	"context"
)

type ConnectAvitoUseCase interface {
	Disconnect(ctx context.Context, ownerID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
