package create_booking

import (
	"errors"
	"net/http"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	createBooking "github.com/m0rven/STR-PropertyManager/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPropertyNotFound   = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
	msgPropertyArchived   = "площадка в архиве, бронирование невозможно"
	msgDatesConflict      = "даты пересекаются с существующим бронированием"
	msgMinStayViolation   = "срок проживания меньше минимального"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(ownerID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrPropertyNotFound):
			h.logger.Warn("POST /bookings - Property not found: property_id=%d", req.PropertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings - Access denied: owner_id=%d, property_id=%d", ownerID, req.PropertyID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrPropertyArchived):
			h.logger.Warn("POST /bookings - Property archived: property_id=%d", req.PropertyID)
			handlers.RespondBadRequest(w, msgPropertyArchived)

		case errors.Is(err, createBooking.ErrDatesConflict):
			h.logger.Warn("POST /bookings - Dates conflict: property_id=%d, check_in=%s, check_out=%s",
				req.PropertyID, req.CheckIn, req.CheckOut)
			handlers.RespondError(w, http.StatusConflict, msgDatesConflict)

		case errors.Is(err, createBooking.ErrMinStayViolation):
			h.logger.Warn("POST /bookings - Min stay violation: property_id=%d, check_in=%s", req.PropertyID, req.CheckIn)
			handlers.RespondBadRequest(w, msgMinStayViolation)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: owner_id=%d, property_id=%d, error=%v",
				ownerID, req.PropertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, owner_id=%d, property_id=%d",
		result.ID, ownerID, req.PropertyID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
