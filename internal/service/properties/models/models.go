package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
)

var (
	// ErrInvalidType возвращается при некорректном типе площадки
	ErrInvalidType = errors.New("invalid property type")
)

// Request модели

// CreatePropertyRequest запрос на создание площадки
type CreatePropertyRequest struct {
	OwnerID     int64   `json:"ownerId"`
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

// Validate проверяет корректность запроса
func (r *CreatePropertyRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Address) == "" {
		return errors.New("address is required")
	}
	if r.BasePrice < 0 {
		return errors.New("basePrice must be non-negative")
	}
	if r.Capacity <= 0 {
		return errors.New("capacity must be positive")
	}
	if r.MinStay < 0 {
		return errors.New("minStay must be non-negative")
	}
	if _, err := ToDomainPropertyType(r.Type); err != nil {
		return err
	}
	return nil
}

// ToDomain конвертирует запрос в domain модель, подставляя значения по умолчанию
func (r *CreatePropertyRequest) ToDomain() *domain.Property {
	currency := r.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	minStay := r.MinStay
	if minStay == 0 {
		minStay = domain.DefaultMinStay
	}

	return &domain.Property{
		OwnerID:        r.OwnerID,
		Name:           strings.TrimSpace(r.Name),
		Type:           domain.PropertyType(r.Type),
		Address:        strings.TrimSpace(r.Address),
		Description:    r.Description,
		BasePrice:      r.BasePrice,
		Currency:       currency,
		Capacity:       r.Capacity,
		MinStay:        minStay,
		AvitoListingID: r.AvitoListingID,
	}
}

// UpdatePropertyRequest запрос на обновление площадки.
// Передаются только изменяемые поля, nil означает "не менять".
type UpdatePropertyRequest struct {
	OwnerID     int64   `json:"ownerId"`
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

// Response модели

// PropertyResponse ответ с данными площадки
type PropertyResponse struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"ownerId"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Address     string  `json:"address"`
	Description *string `json:"description,omitempty"`

	BasePrice float64 `json:"basePrice"`
	Currency  string  `json:"currency"`
	Capacity  int     `json:"capacity"`
	MinStay   int     `json:"minStay"`

	AvitoListingID *int64 `json:"avitoListingId,omitempty"`
	IsArchived     bool   `json:"isArchived"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PropertyListResponse ответ со списком площадок
type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
}

// Методы конвертации

// FromDomainProperty конвертирует domain модель в DTO
func FromDomainProperty(p *domain.Property) *PropertyResponse {
	if p == nil {
		return nil
	}

	return &PropertyResponse{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		Name:           p.Name,
		Type:           string(p.Type),
		Address:        p.Address,
		Description:    p.Description,
		BasePrice:      p.BasePrice,
		Currency:       p.Currency,
		Capacity:       p.Capacity,
		MinStay:        p.MinStay,
		AvitoListingID: p.AvitoListingID,
		IsArchived:     p.IsArchived,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// FromDomainPropertyList конвертирует список domain моделей в DTO
func FromDomainPropertyList(properties []*domain.Property) *PropertyListResponse {
	resp := &PropertyListResponse{
		Properties: make([]PropertyResponse, 0, len(properties)),
	}

	for _, property := range properties {
		if propertyResp := FromDomainProperty(property); propertyResp != nil {
			resp.Properties = append(resp.Properties, *propertyResp)
		}
	}

	return resp
}

// ToDomainPropertyType конвертирует строку в domain.PropertyType с валидацией
func ToDomainPropertyType(propertyType string) (domain.PropertyType, error) {
	t := domain.PropertyType(propertyType)

	for _, valid := range domain.ValidPropertyTypes {
		if t == valid {
			return t, nil
		}
	}

	return "", ErrInvalidType
}
