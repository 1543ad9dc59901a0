package domain

import "time"

// PropertyType represents the kind of rental property
type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyRoom      PropertyType = "room"
	PropertyStudio    PropertyType = "studio"
)

// Property represents a short-term rental unit
type Property struct {
	ID          int64
	OwnerID     int64
	Name        string
	Type        PropertyType
	Address     string
	Description *string

	BasePrice float64 // Цена за ночь по умолчанию
	Currency  string
	Capacity  int // Максимальное количество гостей
	MinStay   int // Минимальное количество ночей по умолчанию

	AvitoListingID *int64 // ID объявления на Авито (nil = не привязано)
	IsArchived     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAvitoListing returns true if the property is linked to an Avito listing
func (p *Property) HasAvitoListing() bool {
	return p.AvitoListingID != nil
}

// IsBookable returns true if new bookings can be created for the property
func (p *Property) IsBookable() bool {
	return !p.IsArchived
}
