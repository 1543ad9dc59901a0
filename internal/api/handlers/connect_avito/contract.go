package connect_avito

import (
	"context"

	connectAvito "github.com/m0rven/STR-PropertyManager/internal/usecase/connect_avito"
)

type ConnectAvitoUseCase interface {
	Start(ctx context.Context, req *connectAvito.StartRequest) (*connectAvito.StartResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
