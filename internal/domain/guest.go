package domain

import "time"

// Guest represents a guest card in the CRM
type Guest struct {
	ID      int64
	OwnerID int64
	Name    string
	Phone   string
	Email   *string
	Tags    []string // Произвольные метки ("постоянный", "залог", ...)
	Notes   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasTag returns true if the guest carries the given tag
func (g *Guest) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// GuestsFilter фильтр для получения списка гостей
type GuestsFilter struct {
	OwnerID int64   // Обязательный параметр
	Tag     *string // Фильтр по метке (опционально)
	Search  *string // Поиск по имени/телефону (опционально)
}
