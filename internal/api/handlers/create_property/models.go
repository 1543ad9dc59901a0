package create_property

import (
	"github.com/m0rven/STR-PropertyManager/internal/service/properties/models"
)

// CreatePropertyRequest HTTP request model
type CreatePropertyRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"` // apartment / house / room / studio
	Address     string  `json:"address"`
	Description *string `json:"description,omitempty"`

	BasePrice float64 `json:"basePrice"`
	Currency  string  `json:"currency,omitempty"` // По умолчанию RUB
	Capacity  int     `json:"capacity"`
	MinStay   int     `json:"minStay,omitempty"` // По умолчанию 1 ночь

	AvitoListingID *int64 `json:"avitoListingId,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreatePropertyRequest) ToServiceRequest(ownerID int64) *models.CreatePropertyRequest {
	return &models.CreatePropertyRequest{
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
	}
}
