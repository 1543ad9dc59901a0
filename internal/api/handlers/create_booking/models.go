package create_booking

import (
	"time"

	createBooking "github.com/m0rven/STR-PropertyManager/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PropertyID int64  `json:"propertyId"`
	GuestID    *int64 `json:"guestId,omitempty"`

	GuestName  string  `json:"guestName"`
	GuestPhone string  `json:"guestPhone"`
	GuestEmail *string `json:"guestEmail,omitempty"`

	CheckIn  string `json:"checkIn"`  // "2026-08-01"
	CheckOut string `json:"checkOut"` // "2026-08-05", день выезда свободен

	TotalPrice *float64 `json:"totalPrice,omitempty"` // nil = посчитать по тарифам
	Status     *string  `json:"status,omitempty"`     // nil = pending
	Source     *string  `json:"source,omitempty"`     // nil = direct
	Notes      *string  `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"propertyId"`
	OwnerID    int64  `json:"ownerId"`
	GuestID    *int64 `json:"guestId,omitempty"`

	GuestName  string  `json:"guestName"`
	GuestPhone string  `json:"guestPhone"`
	GuestEmail *string `json:"guestEmail,omitempty"`

	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Nights   int    `json:"nights"`

	TotalPrice float64 `json:"totalPrice"`
	Currency   string  `json:"currency"`
	Status     string  `json:"status"`
	Source     string  `json:"source"`
	Notes      *string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Владелец берется из контекста аутентификации, а не из тела запроса.
func (r *CreateBookingRequest) ToUseCaseRequest(ownerID int64) *createBooking.Request {
	return &createBooking.Request{
		OwnerID:    ownerID,
		PropertyID: r.PropertyID,
		GuestID:    r.GuestID,
		GuestName:  r.GuestName,
		GuestPhone: r.GuestPhone,
		GuestEmail: r.GuestEmail,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		TotalPrice: r.TotalPrice,
		Status:     r.Status,
		Source:     r.Source,
		Notes:      r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		PropertyID: resp.PropertyID,
		OwnerID:    resp.OwnerID,
		GuestID:    resp.GuestID,
		GuestName:  resp.GuestName,
		GuestPhone: resp.GuestPhone,
		GuestEmail: resp.GuestEmail,
		CheckIn:    resp.CheckIn.String(),
		CheckOut:   resp.CheckOut.String(),
		Nights:     resp.Nights,
		TotalPrice: resp.TotalPrice,
		Currency:   resp.Currency,
		Status:     resp.Status,
		Source:     resp.Source,
		Notes:      resp.Notes,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
