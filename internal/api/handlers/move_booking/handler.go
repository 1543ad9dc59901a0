package move_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m0rven/STR-PropertyManager/internal/api/handlers"
	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	moveBooking "github.com/m0rven/STR-PropertyManager/internal/usecase/move_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgPropertyNotFound   = "целевая площадка не найдена"
	msgForbidden          = "доступ запрещен"
	msgCannotMove         = "бронирование не может быть перенесено"
	msgPropertyArchived   = "целевая площадка в архиве"
	msgTargetOccupied     = "целевые даты заняты другим бронированием"
	msgInvalidInput       = "некорректные данные переноса"
)

type Handler struct {
	useCase MoveBookingUseCase
	logger  Logger
}

func NewHandler(useCase MoveBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/move - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/move - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req MoveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(ownerID, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, moveBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/move - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, moveBooking.ErrPropertyNotFound):
			h.logger.Warn("PATCH /bookings/{id}/move - Target property not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, moveBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/move - Access denied: booking_id=%d, owner_id=%d", bookingID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, moveBooking.ErrCannotMove):
			h.logger.Warn("PATCH /bookings/{id}/move - Cannot move: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCannotMove)

		case errors.Is(err, moveBooking.ErrPropertyArchived):
			h.logger.Warn("PATCH /bookings/{id}/move - Target property archived: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgPropertyArchived)

		case errors.Is(err, moveBooking.ErrTargetOccupied):
			h.logger.Warn("PATCH /bookings/{id}/move - Target dates occupied: booking_id=%d, check_in=%s",
				bookingID, req.CheckIn)
			handlers.RespondError(w, http.StatusConflict, msgTargetOccupied)

		case errors.Is(err, moveBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/move - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/move - Failed to move booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/move - Booking moved successfully: booking_id=%d, property_id=%d, check_in=%s",
		result.ID, result.PropertyID, result.CheckIn)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
