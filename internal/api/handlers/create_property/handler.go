package create_property

import (
	"errors"
	"net/http"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	"github.com/m0rven/STR-PropertyManager/internal/service/properties"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
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

// Handle POST /api/v1/properties
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /properties - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreatePropertyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /properties - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(ownerID))
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrInvalidInput):
			h.logger.Warn("POST /properties - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /properties - Failed to create property: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /properties - Property created successfully: property_id=%d, owner_id=%d",
		result.ID, ownerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
