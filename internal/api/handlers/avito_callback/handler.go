package avito_callback

import (
	"errors"
	"net/http"
	"time"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	connectAvito "github.com/m0rven/STR-PropertyManager/internal/usecase/connect_avito"
)

const (
	msgMissingParams   = "отсутствуют параметры code или state"
	msgInvalidState    = "некорректный параметр state"
	msgExchangeFailed  = "Авито отклонил код авторизации, попробуйте подключиться заново"
	msgInternalFailure = "не удалось завершить подключение аккаунта"
)

// CallbackResponse HTTP response model
type CallbackResponse struct {
	OwnerID   int64  `json:"ownerId"`
	ExpiresAt string `json:"expiresAt"` // ISO 8601 format
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

// Handle GET /auth/avito-callback
// Публичный роут: Авито возвращает владельца без авторизационного
// заголовка, владелец восстанавливается из подписанного state.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		h.logger.Warn("GET /auth/avito-callback - Missing code or state")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	result, err := h.useCase.Callback(r.Context(), &connectAvito.CallbackRequest{
		Code:  code,
		State: state,
	})
	if err != nil {
		switch {
		case errors.Is(err, connectAvito.ErrInvalidState):
			h.logger.Warn("GET /auth/avito-callback - Invalid state: %v", err)
			handlers.RespondBadRequest(w, msgInvalidState)

		case errors.Is(err, connectAvito.ErrExchangeFailed):
			h.logger.Warn("GET /auth/avito-callback - Code exchange rejected: %v", err)
			handlers.RespondBadRequest(w, msgExchangeFailed)

		case errors.Is(err, connectAvito.ErrInvalidInput):
			h.logger.Warn("GET /auth/avito-callback - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingParams)

		default:
			h.logger.Error("GET /auth/avito-callback - Failed to complete connection: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgInternalFailure)
		}
		return
	}

	h.logger.Info("GET /auth/avito-callback - Account connected successfully: owner_id=%d", result.OwnerID)
	handlers.RespondJSON(w, http.StatusOK, CallbackResponse{
		OwnerID:   result.OwnerID,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
	})
}
