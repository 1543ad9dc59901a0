package update_property

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
	msgInvalidPropertyID  = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные площадки"
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

// Handle PATCH /api/v1/properties/{propertyId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /properties/{id} - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /properties/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdatePropertyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /properties/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), propertyID, req.ToServiceRequest(ownerID))
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrPropertyNotFound):
			h.logger.Warn("PATCH /properties/{id} - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, properties.ErrAccessDenied):
			h.logger.Warn("PATCH /properties/{id} - Access denied: property_id=%d, owner_id=%d",
				propertyID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, properties.ErrInvalidInput):
			h.logger.Warn("PATCH /properties/{id} - Invalid input: property_id=%d, error=%v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /properties/{id} - Failed to update property: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /properties/{id} - Property updated successfully: property_id=%d, owner_id=%d",
		propertyID, ownerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
