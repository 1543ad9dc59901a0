package cancel_booking

import (
	"github.com/m0rven/STR-PropertyManager/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(ownerID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		OwnerID:            ownerID,
		CancellationReason: r.CancellationReason,
	}
}
