package delete_property

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	"github.com/m0rven/STR-PropertyManager/internal/service/properties"
)

const (
	msgInvalidPropertyID = "некорректный ID площадки"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "площадка не найдена"
	msgForbidden         = "доступ запрещен"
	msgHasPaidBookings   = "у площадки есть оплаченные или предстоящие бронирования, используйте архивацию"
)

type Handler struct {
	service PropertyService
	logger  Logger
}

func NewHandler(service PropertyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/properties/{propertyId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /properties/{id} - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /properties/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Delete(r.Context(), propertyID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrPropertyNotFound):
			h.logger.Warn("DELETE /properties/{id} - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, properties.ErrAccessDenied):
			h.logger.Warn("DELETE /properties/{id} - Access denied: property_id=%d, owner_id=%d",
				propertyID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, properties.ErrHasPaidBookings):
			h.logger.Warn("DELETE /properties/{id} - Has paid bookings: property_id=%d", propertyID)
			handlers.RespondError(w, http.StatusConflict, msgHasPaidBookings)

		default:
			h.logger.Error("DELETE /properties/{id} - Failed to delete property: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /properties/{id} - Property deleted successfully: property_id=%d, owner_id=%d",
		propertyID, ownerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
