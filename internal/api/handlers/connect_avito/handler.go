package connect_avito

import (
	"errors"
	"net/http"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	connectAvito "github.com/m0rven/STR-PropertyManager/internal/usecase/connect_avito"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidInput  = "некорректные данные запроса"
)

// StartResponse HTTP response model
type StartResponse struct {
	AuthorizeURL string `json:"authorizeUrl"`
}

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

// Handle POST /api/v1/avito/connect
// Возвращает URL авторизации, на который фронт редиректит владельца.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /avito/connect - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Start(r.Context(), &connectAvito.StartRequest{OwnerID: ownerID})
	if err != nil {
		switch {
		case errors.Is(err, connectAvito.ErrInvalidInput):
			h.logger.Warn("POST /avito/connect - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /avito/connect - Failed to start OAuth: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /avito/connect - OAuth started successfully: owner_id=%d", ownerID)
	handlers.RespondJSON(w, http.StatusOK, StartResponse{AuthorizeURL: result.AuthorizeURL})
}
