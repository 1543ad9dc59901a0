package get_rates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	"github.com/m0rven/STR-PropertyManager/internal/service/rates"
	"github.com/m0rven/STR-PropertyManager/internal/service/rates/models"
)

const (
	msgInvalidPropertyID = "некорректный ID площадки"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "площадка не найдена"
	msgForbidden         = "доступ запрещен"
	msgInvalidWindow     = "некорректное окно тарифов, ожидаются from и to в формате YYYY-MM-DD"
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

// Handle GET /api/v1/properties/{propertyId}/rates
// Query параметры: from, to (обязательные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/rates - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /properties/{id}/rates - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq := &models.GetRatesRequest{
		OwnerID: ownerID,
		From:    query.Get("from"),
		To:      query.Get("to"),
	}

	result, err := h.service.GetWindow(r.Context(), propertyID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, rates.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id}/rates - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rates.ErrAccessDenied):
			h.logger.Warn("GET /properties/{id}/rates - Access denied: property_id=%d, owner_id=%d",
				propertyID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rates.ErrInvalidInput):
			h.logger.Warn("GET /properties/{id}/rates - Invalid window: property_id=%d, error=%v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /properties/{id}/rates - Failed to get rates: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{id}/rates - Rates retrieved successfully: property_id=%d, count=%d",
		propertyID, len(result.Rates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
