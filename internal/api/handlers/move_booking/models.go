package move_booking

import (
	moveBooking "github.com/m0rven/STR-PropertyManager/internal/usecase/move_booking"
)

// MoveBookingRequest HTTP request model.
// PropertyID nil означает перенос в рамках текущей площадки.
type MoveBookingRequest struct {
	CheckIn    string `json:"checkIn"` // Новая дата заезда "2026-08-10"
	PropertyID *int64 `json:"propertyId,omitempty"`
}

// MoveBookingResponse HTTP response model
type MoveBookingResponse struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"propertyId"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	Nights     int    `json:"nights"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *MoveBookingRequest) ToUseCaseRequest(ownerID, bookingID int64) *moveBooking.Request {
	return &moveBooking.Request{
		OwnerID:    ownerID,
		BookingID:  bookingID,
		CheckIn:    r.CheckIn,
		PropertyID: r.PropertyID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *moveBooking.Response) *MoveBookingResponse {
	return &MoveBookingResponse{
		ID:         resp.ID,
		PropertyID: resp.PropertyID,
		CheckIn:    resp.CheckIn.String(),
		CheckOut:   resp.CheckOut.String(),
		Nights:     resp.Nights,
	}
}
