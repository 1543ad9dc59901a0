package export_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	"github.com/m0rven/STR-PropertyManager/internal/service/exports"
	"github.com/m0rven/STR-PropertyManager/internal/service/exports/models"
)

const (
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidPropertyID = "некорректный ID площадки"
	msgInvalidParams     = "некорректные параметры выгрузки"
)

type Handler struct {
	service ExportService
	logger  Logger
}

func NewHandler(service ExportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/exports/bookings
// Query параметры: format (csv/json), delimiter, propertyId, from, to,
// status, includeCancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /exports/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()

	format := query.Get("format")
	if format == "" {
		format = models.FormatCSV
	}

	serviceReq := &models.ExportBookingsRequest{
		OwnerID:          ownerID,
		Format:           format,
		Delimiter:        query.Get("delimiter"),
		IncludeCancelled: query.Get("includeCancelled") == "true",
	}

	if propertyIDStr := query.Get("propertyId"); propertyIDStr != "" {
		propertyID, err := strconv.ParseInt(propertyIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /exports/bookings - Invalid property ID: %v", err)
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

	result, err := h.service.ExportBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, exports.ErrInvalidInput):
			h.logger.Warn("GET /exports/bookings - Invalid params: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /exports/bookings - Failed to export: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /exports/bookings - Export built successfully: owner_id=%d, file=%s, size=%d",
		ownerID, result.FileName, len(result.Data))
	handlers.RespondFile(w, result.ContentType, result.FileName, result.Data)
}
