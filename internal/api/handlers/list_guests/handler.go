package list_guests

import (
	"net/http"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	"github.com/m0rven/STR-PropertyManager/internal/service/guests/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
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

// Handle GET /api/v1/guests
// Query параметры: tag, search
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /guests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq := &models.ListGuestsRequest{OwnerID: ownerID}

	if tag := query.Get("tag"); tag != "" {
		serviceReq.Tag = &tag
	}
	if search := query.Get("search"); search != "" {
		serviceReq.Search = &search
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /guests - Failed to list guests: owner_id=%d, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /guests - Guests retrieved successfully: owner_id=%d, count=%d",
		ownerID, len(result.Guests))
	handlers.RespondJSON(w, http.StatusOK, result)
}
