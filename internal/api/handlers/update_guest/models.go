package update_guest

import (
	"github.com/m0rven/STR-PropertyManager/internal/service/guests/models"
)

// UpdateGuestRequest HTTP request model.
// Передаются только изменяемые поля, nil означает "не менять".
// Tags заменяются целиком.
type UpdateGuestRequest struct {
	Name  *string   `json:"name,omitempty"`
	Phone *string   `json:"phone,omitempty"`
	Email *string   `json:"email,omitempty"`
	Tags  *[]string `json:"tags,omitempty"`
	Notes *string   `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateGuestRequest) ToServiceRequest(ownerID int64) *models.UpdateGuestRequest {
	return &models.UpdateGuestRequest{
		OwnerID: ownerID,
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Tags:    r.Tags,
		Notes:   r.Notes,
	}
}
