package update_property

import (
	"github.com/m0rven/STR-PropertyManager/internal/service/properties/models"
)

// UpdatePropertyRequest HTTP request model.
// Передаются только изменяемые поля, nil означает "не менять".
type UpdatePropertyRequest struct {
	Name        *string `json:"name,omitempty"`
	Type        *string `json:"type,omitempty"`
	Address     *string `json:"address,omitempty"`
	Description *string `json:"description,omitempty"`

	BasePrice *float64 `json:"basePrice,omitempty"`
	Currency  *string  `json:"currency,omitempty"`
	Capacity  *int     `json:"capacity,omitempty"`
	MinStay   *int     `json:"minStay,omitempty"`

	AvitoListingID *int64 `json:"avitoListingId,omitempty"`
	IsArchived     *bool  `json:"isArchived,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdatePropertyRequest) ToServiceRequest(ownerID int64) *models.UpdatePropertyRequest {
	return &models.UpdatePropertyRequest{
		OwnerID:        ownerID,
		Name:           r.Name,
		Type:           r.Type,
		Address:        r.Address,
		Description:    r.Description,
		BasePrice:      r.BasePrice,
		Currency:       r.Currency,
		Capacity:       r.Capacity,
		MinStay:        r.MinStay,
		AvitoListingID: r.AvitoListingID,
		IsArchived:     r.IsArchived,
	}
}
