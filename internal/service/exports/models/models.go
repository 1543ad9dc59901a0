package models

// Форматы выгрузки
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Разделители CSV
const (
	DelimiterComma     = "comma"
	DelimiterSemicolon = "semicolon" // Excel с русской локалью ожидает точку с запятой
)

// ExportBookingsRequest запрос на выгрузку бронирований
type ExportBookingsRequest struct {
	OwnerID    int64   `json:"ownerId"`
	Format     string  `json:"format"`              // csv / json
	Delimiter  string  `json:"delimiter,omitempty"` // comma / semicolon, только для CSV
	PropertyID *int64  `json:"propertyId,omitempty"`
	From       *string `json:"from,omitempty"` // "2026-08-01"
	To         *string `json:"to,omitempty"`
	Status     *string `json:"status,omitempty"`

	IncludeCancelled bool `json:"includeCancelled,omitempty"`
}

// ExportResult готовая выгрузка
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportedBooking строка JSON-выгрузки
type ExportedBooking struct {
	ID           int64   `json:"id"`
	PropertyName string  `json:"propertyName"`
	CheckIn      string  `json:"checkIn"`
	CheckOut     string  `json:"checkOut"`
	Nights       int     `json:"nights"`
	GuestName    string  `json:"guestName"`
	GuestPhone   string  `json:"guestPhone"`
	Status       string  `json:"status"`
	Source       string  `json:"source"`
	TotalPrice   float64 `json:"totalPrice"`
	Currency     string  `json:"currency"`
	Notes        string  `json:"notes,omitempty"`
}
