package domain

import (
	"time"

	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// PropertyRate represents a per-date override of price and/or minimum stay.
// Уникальна для пары (property_id, date); перекрывает базовые значения площадки.
type PropertyRate struct {
	ID         int64
	PropertyID int64
	Date       types.DateString
	Price      *float64 // nil = базовая цена площадки
	MinStay    *int     // nil = базовый min stay площадки
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EffectivePrice возвращает цену за ночь с учетом переопределения
func (r *PropertyRate) EffectivePrice(basePrice float64) float64 {
	if r != nil && r.Price != nil {
		return *r.Price
	}
	return basePrice
}

// EffectiveMinStay возвращает минимальное количество ночей с учетом переопределения
func (r *PropertyRate) EffectiveMinStay(baseMinStay int) int {
	if r != nil && r.MinStay != nil {
		return *r.MinStay
	}
	return baseMinStay
}

// IsEmpty returns true if the override carries no values
// (такие переопределения удаляются вместо сохранения)
func (r *PropertyRate) IsEmpty() bool {
	return r.Price == nil && r.MinStay == nil
}
