package get_guest_bookings

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
	msgInvalidGuestID = "некорректный ID гостя"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "гость не найден"
	msgForbidden      = "доступ запрещен"
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

// Handle GET /api/v1/guests/{guestId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	guestID, err := strconv.ParseInt(vars["guestId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /guests/{id}/bookings - Invalid guest ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGuestID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /guests/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Bookings(r.Context(), guestID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, guests.ErrGuestNotFound):
			h.logger.Warn("GET /guests/{id}/bookings - Guest not found: guest_id=%d", guestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, guests.ErrAccessDenied):
			h.logger.Warn("GET /guests/{id}/bookings - Access denied: guest_id=%d, owner_id=%d", guestID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /guests/{id}/bookings - Failed to get bookings: guest_id=%d, error=%v",
				guestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /guests/{id}/bookings - Bookings retrieved successfully: guest_id=%d, count=%d",
		guestID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
