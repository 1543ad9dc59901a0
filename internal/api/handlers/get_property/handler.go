package get_property

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

// Handle GET /api/v1/properties/{propertyId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id} - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /properties/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	property, err := h.service.GetByID(r.Context(), propertyID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id} - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, properties.ErrAccessDenied):
			h.logger.Warn("GET /properties/{id} - Access denied: property_id=%d, owner_id=%d", propertyID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /properties/{id} - Failed to get property: property_id=%d, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{id} - Property retrieved successfully: property_id=%d, owner_id=%d",
		propertyID, ownerID)
	handlers.RespondJSON(w, http.StatusOK, property)
}
