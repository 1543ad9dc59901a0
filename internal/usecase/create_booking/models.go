package create_booking

import (
	"time"

	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	OwnerID    int64  // ID владельца
	PropertyID int64  // ID площадки
	GuestID    *int64 // Ссылка на карточку гостя (опционально)

	GuestName  string  // Имя гостя
	GuestPhone string  // Телефон гостя
	GuestEmail *string // Email гостя (опционально)

	CheckIn  string // Дата заезда "2026-08-01"
	CheckOut string // Дата выезда "2026-08-05", день выезда свободен

	TotalPrice *float64 // Итоговая цена; nil = посчитать по тарифам
	Status     *string  // Статус; nil = pending
	Source     *string  // Канал; nil = direct
	Notes      *string  // Заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	PropertyID int64
	OwnerID    int64
	GuestID    *int64

	GuestName  string
	GuestPhone string
	GuestEmail *string

	CheckIn  types.DateString
	CheckOut types.DateString
	Nights   int

	TotalPrice float64
	Currency   string
	Status     string
	Source     string
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
