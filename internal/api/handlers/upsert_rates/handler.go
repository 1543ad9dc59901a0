package upsert_rates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	"github.com/m0rven/STR-PropertyManager/internal/service/rates"
)

const (
	msgInvalidPropertyID  = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные тарифов"
)

type Handler struct {
	service RateService
	logger  Logger
}

func NewHandler(service RateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/properties/{propertyId}/rates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /properties/{id}/rates - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /properties/{id}/rates - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpsertRatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /properties/{id}/rates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.BulkUpsert(r.Context(), propertyID, req.ToServiceRequest(ownerID))
	if err != nil {
		switch {
		case errors.Is(err, rates.ErrPropertyNotFound):
			h.logger.Warn("PUT /properties/{id}/rates - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rates.ErrAccessDenied):
			h.logger.Warn("PUT /properties/{id}/rates - Access denied: property_id=%d, owner_id=%d",
				propertyID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rates.ErrInvalidInput):
			h.logger.Warn("PUT /properties/{id}/rates - Invalid input: property_id=%d, error=%v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /properties/{id}/rates - Failed to upsert rates: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /properties/{id}/rates - Rates updated successfully: property_id=%d, owner_id=%d, count=%d",
		propertyID, ownerID, len(req.Rates))
	handlers.RespondJSON(w, http.StatusOK, nil)
}
