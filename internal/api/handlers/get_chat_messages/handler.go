package get_chat_messages

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	"github.com/m0rven/STR-PropertyManager/internal/service/chats"
)

const (
	msgInvalidChatID = "некорректный ID чата"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "чат не найден"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/chats/{chatId}/messages
// Просмотр сообщений сбрасывает счетчик непрочитанных.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	chatID, err := strconv.ParseInt(vars["chatId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /chats/{id}/messages - Invalid chat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChatID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /chats/{id}/messages - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListMessages(r.Context(), chatID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, chats.ErrChatNotFound):
			h.logger.Warn("GET /chats/{id}/messages - Chat not found: chat_id=%d", chatID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, chats.ErrAccessDenied):
			h.logger.Warn("GET /chats/{id}/messages - Access denied: chat_id=%d, owner_id=%d", chatID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /chats/{id}/messages - Failed to get messages: chat_id=%d, error=%v", chatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /chats/{id}/messages - Messages retrieved successfully: chat_id=%d, count=%d",
		chatID, len(result.Messages))
	handlers.RespondJSON(w, http.StatusOK, result)
}
