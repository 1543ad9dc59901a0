package list_properties

import (
	"net/http"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
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

// Handle GET /api/v1/properties
// Query параметры: includeArchived
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /properties - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	includeArchived := r.URL.Query().Get("includeArchived") == "true"

	result, err := h.service.List(r.Context(), ownerID, includeArchived)
	if err != nil {
		h.logger.Error("GET /properties - Failed to list properties: owner_id=%d, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /properties - Properties retrieved successfully: owner_id=%d, count=%d",
		ownerID, len(result.Properties))
	handlers.RespondJSON(w, http.StatusOK, result)
}
