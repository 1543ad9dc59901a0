package move_booking

import "github.com/m0rven/STR-PropertyManager/pkg/types"

// Request модель запроса на перенос бронирования.
// Количество ночей сохраняется: дата выезда вычисляется
// от новой даты заезда.
type Request struct {
	OwnerID   int64  // ID владельца
	BookingID int64  // ID переносимого бронирования
	CheckIn   string // Новая дата заезда "2026-08-10"

	// Новая площадка; nil = остается текущая (drag по вертикали календаря)
	PropertyID *int64
}

// Response модель ответа с результатом переноса
type Response struct {
	ID         int64
	PropertyID int64
	CheckIn    types.DateString
	CheckOut   types.DateString
	Nights     int
}
