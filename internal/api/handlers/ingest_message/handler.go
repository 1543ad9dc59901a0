package ingest_message

import (
	"errors"
	"net/http"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	"github.com/m0rven/STR-PropertyManager/internal/service/chats"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные сообщения"
)

type Handler struct {
	service ChatService
	logger  Logger
}

func NewHandler(service ChatService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/chats/messages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /chats/messages - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req IngestMessageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /chats/messages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.IngestMessage(r.Context(), req.ToServiceRequest(ownerID))
	if err != nil {
		switch {
		case errors.Is(err, chats.ErrInvalidInput):
			h.logger.Warn("POST /chats/messages - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /chats/messages - Failed to ingest message: owner_id=%d, chat=%s, error=%v",
				ownerID, req.AvitoChatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /chats/messages - Message ingested successfully: owner_id=%d, chat_id=%d, message_id=%s",
		ownerID, result.ID, req.MessageID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
