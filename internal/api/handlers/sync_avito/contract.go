package sync_avito

import (
	"context"

	syncAvito "github.com/m0rven/STR-PropertyManager/internal/usecase/sync_avito"
)

type SyncAvitoUseCase interface {
	Execute(ctx context.Context, req *syncAvito.Request) (*syncAvito.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
