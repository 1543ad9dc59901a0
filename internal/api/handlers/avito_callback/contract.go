package avito_callback

import (
	"context"

	connectAvito "github.com/m0rven/STR-PropertyManager/internal/usecase/connect_avito"
)

type ConnectAvitoUseCase interface {
	Callback(ctx context.Context, req *connectAvito.CallbackRequest) (*connectAvito.CallbackResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
