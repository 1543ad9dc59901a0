package models

import (
	"time"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// Request модели

// RateItem одно переопределение тарифа на дату.
// Оба поля nil означают сброс переопределения на эту дату.
type RateItem struct {
	Date    string   `json:"date"` // "2026-08-01"
	Price   *float64 `json:"price,omitempty"`
	MinStay *int     `json:"minStay,omitempty"`
}

// BulkUpsertRequest запрос на массовое обновление тарифов площадки
type BulkUpsertRequest struct {
	OwnerID int64      `json:"ownerId"`
	Rates   []RateItem `json:"rates"`
}

// GetRatesRequest запрос на получение тарифов площадки за период
type GetRatesRequest struct {
	OwnerID int64  `json:"ownerId"`
	From    string `json:"from"` // "2026-08-01"
	To      string `json:"to"`   // "2026-09-01", не включается
}

// Response модели

// RateResponse переопределение тарифа на дату
type RateResponse struct {
	PropertyID int64     `json:"propertyId"`
	Date       string    `json:"date"`
	Price      *float64  `json:"price,omitempty"`
	MinStay    *int      `json:"minStay,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RateListResponse ответ со списком переопределений тарифов
type RateListResponse struct {
	PropertyID int64          `json:"propertyId"`
	Rates      []RateResponse `json:"rates"`
}

// Методы конвертации

// ToDomainRate конвертирует элемент запроса в domain модель
func (i *RateItem) ToDomainRate(propertyID int64) (*domain.PropertyRate, error) {
	date, err := types.NewDateStringFromString(i.Date)
	if err != nil {
		return nil, err
	}

	return &domain.PropertyRate{
		PropertyID: propertyID,
		Date:       date,
		Price:      i.Price,
		MinStay:    i.MinStay,
	}, nil
}

// FromDomainRateList конвертирует список domain моделей в DTO
func FromDomainRateList(propertyID int64, rates []*domain.PropertyRate) *RateListResponse {
	resp := &RateListResponse{
		PropertyID: propertyID,
		Rates:      make([]RateResponse, 0, len(rates)),
	}

	for _, rate := range rates {
		resp.Rates = append(resp.Rates, RateResponse{
			PropertyID: rate.PropertyID,
			Date:       rate.Date.String(),
			Price:      rate.Price,
			MinStay:    rate.MinStay,
			UpdatedAt:  rate.UpdatedAt,
		})
	}

	return resp
}
