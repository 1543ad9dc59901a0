package get_stats

import (
	"errors"
	"net/http"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	"github.com/m0rven/STR-PropertyManager/internal/service/analytics"
	"github.com/m0rven/STR-PropertyManager/internal/service/analytics/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidPeriod = "некорректный период, ожидаются from и to в формате YYYY-MM-DD"
)

type Handler struct {
	service AnalyticsService
	logger  Logger
}

func NewHandler(service AnalyticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/analytics/stats
// Query параметры: from, to (обязательные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /analytics/stats - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq := &models.GetStatsRequest{
		OwnerID: ownerID,
		From:    query.Get("from"),
		To:      query.Get("to"),
	}

	result, err := h.service.GetStats(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrInvalidInput):
			h.logger.Warn("GET /analytics/stats - Invalid period: owner_id=%d, from=%s, to=%s",
				ownerID, serviceReq.From, serviceReq.To)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /analytics/stats - Failed to get stats: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /analytics/stats - Stats retrieved successfully: owner_id=%d, properties=%d",
		ownerID, len(result.Properties))
	handlers.RespondJSON(w, http.StatusOK, result)
}
