package list_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	"github.com/m0rven/STR-PropertyManager/internal/service/bookings"
	"github.com/m0rven/STR-PropertyManager/internal/service/bookings/models"
)

const (
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidPropertyID = "некорректный ID площадки"
	msgInvalidFilter     = "некорректные параметры фильтра"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query параметры: propertyId, from, to, status, source, includeCancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()

	serviceReq := &models.ListBookingsRequest{
		OwnerID:          ownerID,
		IncludeCancelled: query.Get("includeCancelled") == "true",
	}

	if propertyIDStr := query.Get("propertyId"); propertyIDStr != "" {
		propertyID, err := strconv.ParseInt(propertyIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid property ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPropertyID)
			return
		}
		serviceReq.PropertyID = &propertyID
	}

	if from := query.Get("from"); from != "" {
		serviceReq.From = &from
	}
	if to := query.Get("to"); to != "" {
		serviceReq.To = &to
	}
	if status := query.Get("status"); status != "" {
		serviceReq.Status = &status
	}
	if source := query.Get("source"); source != "" {
		serviceReq.Source = &source
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: owner_id=%d, count=%d",
		ownerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
