package disconnect_avito

import (
	"errors"
	"net/http"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	connectAvito "github.com/m0rven/STR-PropertyManager/internal/usecase/connect_avito"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotConnected  = "аккаунт Авито не подключен"
)

type Handler struct {
	useCase ConnectAvitoUseCase
	logger  Logger
}

func NewHandler(useCase ConnectAvitoUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/avito/connect
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /avito/connect - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err := h.useCase.Disconnect(r.Context(), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, connectAvito.ErrNotConnected):
			h.logger.Warn("DELETE /avito/connect - Account not connected: owner_id=%d", ownerID)
			handlers.RespondNotFound(w, msgNotConnected)

		default:
			h.logger.Error("DELETE /avito/connect - Failed to disconnect: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /avito/connect - Account disconnected successfully: owner_id=%d", ownerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
