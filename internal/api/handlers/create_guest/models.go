package create_guest

import (
	"github.com/m0rven/STR-PropertyManager/internal/service/guests/models"
)

// CreateGuestRequest HTTP request model
type CreateGuestRequest struct {
	Name  string   `json:"name"`
	Phone string   `json:"phone"`
	Email *string  `json:"email,omitempty"`
	Tags  []string `json:"tags,omitempty"`
	Notes *string  `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateGuestRequest) ToServiceRequest(ownerID int64) *models.CreateGuestRequest {
	return &models.CreateGuestRequest{
		OwnerID: ownerID,
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Tags:    r.Tags,
		Notes:   r.Notes,
	}
}
