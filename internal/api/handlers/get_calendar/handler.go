package get_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	getCalendar "github.com/m0rven/STR-PropertyManager/internal/usecase/get_calendar"
)

const (
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidPropertyID = "некорректный ID площадки"
	msgPropertyNotFound  = "площадка не найдена"
	msgForbidden         = "доступ запрещен"
	msgInvalidWindow     = "некорректное окно календаря, ожидаются from и to в формате YYYY-MM-DD"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar
// Query параметры: from, to (обязательные), propertyId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /calendar - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()

	useCaseReq := &getCalendar.Request{
		OwnerID: ownerID,
		From:    query.Get("from"),
		To:      query.Get("to"),
	}

	if propertyIDStr := query.Get("propertyId"); propertyIDStr != "" {
		propertyID, err := strconv.ParseInt(propertyIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /calendar - Invalid property ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPropertyID)
			return
		}
		useCaseReq.PropertyID = &propertyID
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrPropertyNotFound):
			h.logger.Warn("GET /calendar - Property not found: owner_id=%d", ownerID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, getCalendar.ErrAccessDenied):
			h.logger.Warn("GET /calendar - Access denied: owner_id=%d", ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /calendar - Invalid window: owner_id=%d, from=%s, to=%s, error=%v",
				ownerID, useCaseReq.From, useCaseReq.To, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /calendar - Failed to build calendar: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendar - Calendar retrieved successfully: owner_id=%d, properties=%d",
		ownerID, len(result.Properties))
	handlers.RespondJSON(w, http.StatusOK, result)
}
