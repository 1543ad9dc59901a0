package update_guest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	"github.com/m0rven/STR-PropertyManager/internal/service/guests"
)

const (
	msgInvalidGuestID     = "некорректный ID гостя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "гость не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные гостя"
)

type Handler struct {
	service GuestService
	logger  Logger
}

func NewHandler(service GuestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/guests/{guestId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	guestID, err := strconv.ParseInt(vars["guestId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /guests/{id} - Invalid guest ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGuestID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /guests/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateGuestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /guests/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), guestID, req.ToServiceRequest(ownerID))
	if err != nil {
		switch {
		case errors.Is(err, guests.ErrGuestNotFound):
			h.logger.Warn("PATCH /guests/{id} - Guest not found: guest_id=%d", guestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, guests.ErrAccessDenied):
			h.logger.Warn("PATCH /guests/{id} - Access denied: guest_id=%d, owner_id=%d", guestID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, guests.ErrInvalidInput):
			h.logger.Warn("PATCH /guests/{id} - Invalid input: guest_id=%d, error=%v", guestID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /guests/{id} - Failed to update guest: guest_id=%d, error=%v", guestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /guests/{id} - Guest updated successfully: guest_id=%d, owner_id=%d", guestID, ownerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
