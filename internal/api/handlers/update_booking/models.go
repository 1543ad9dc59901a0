package update_booking

import (
	"github.com/m0rven/STR-PropertyManager/internal/service/bookings/models"
)

// UpdateBookingRequest HTTP request model.
// Передаются только изменяемые поля, nil означает "не менять".
type UpdateBookingRequest struct {
	GuestID    *int64   `json:"guestId,omitempty"`
	GuestName  *string  `json:"guestName,omitempty"`
	GuestPhone *string  `json:"guestPhone,omitempty"`
	GuestEmail *string  `json:"guestEmail,omitempty"`
	TotalPrice *float64 `json:"totalPrice,omitempty"`
	Status     *string  `json:"status,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest(ownerID int64) *models.UpdateBookingRequest {
	return &models.UpdateBookingRequest{
		OwnerID:    ownerID,
		GuestID:    r.GuestID,
		GuestName:  r.GuestName,
		GuestPhone: r.GuestPhone,
		GuestEmail: r.GuestEmail,
		TotalPrice: r.TotalPrice,
		Status:     r.Status,
		Notes:      r.Notes,
	}
}
