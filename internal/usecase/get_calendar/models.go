package get_calendar

// Request модель запроса календаря за окно [From, To)
type Request struct {
	OwnerID int64  // ID владельца
	From    string // Начало окна "2026-08-01"
	To      string // Конец окна "2026-09-01", не включается

	// Конкретная площадка; nil = все активные площадки владельца
	PropertyID *int64
}

// Response снимок календаря владельца
type Response struct {
	From       string             `json:"from"`
	To         string             `json:"to"`
	Properties []PropertyCalendar `json:"properties"`
}

// PropertyCalendar календарь одной площадки
type PropertyCalendar struct {
	PropertyID   int64  `json:"propertyId"`
	PropertyName string `json:"propertyName"`
	Currency     string `json:"currency"`

	Days     []DayCell       `json:"days"`
	Bookings []PlacedBooking `json:"bookings"`
	Layers   int             `json:"layers"` // Количество визуальных рядов
}

// DayCell ячейка календаря: эффективные тариф и min stay на дату
type DayCell struct {
	Date        string  `json:"date"`
	Price       float64 `json:"price"`
	MinStay     int     `json:"minStay"`
	HasOverride bool    `json:"hasOverride"`
	Occupied    bool    `json:"occupied"`
}

// PlacedBooking бронирование, размещенное в ряду календаря.
// Бронирования одного ряда не пересекаются по датам.
type PlacedBooking struct {
	ID         int64   `json:"id"`
	CheckIn    string  `json:"checkIn"`
	CheckOut   string  `json:"checkOut"`
	GuestName  string  `json:"guestName"`
	Status     string  `json:"status"`
	Source     string  `json:"source"`
	TotalPrice float64 `json:"totalPrice"`
	Layer      int     `json:"layer"`
}
