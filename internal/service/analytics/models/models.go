package models

// GetStatsRequest запрос сводной статистики за период [from, to)
type GetStatsRequest struct {
	OwnerID int64  `json:"ownerId"`
	From    string `json:"from"` // "2026-08-01"
	To      string `json:"to"`   // "2026-09-01", не включается
}

// PropertyStats статистика одной площадки за период
type PropertyStats struct {
	PropertyID    int64   `json:"propertyId"`
	PropertyName  string  `json:"propertyName"`
	BookingsCount int     `json:"bookingsCount"`
	NightsBooked  int     `json:"nightsBooked"`
	Revenue       float64 `json:"revenue"`
	Occupancy     float64 `json:"occupancy"` // Доля занятых ночей периода, 0..1
}

// StatsResponse сводная статистика владельца за период
type StatsResponse struct {
	From       string          `json:"from"`
	To         string          `json:"to"`
	PeriodDays int             `json:"periodDays"`
	Properties []PropertyStats `json:"properties"`

	TotalBookings int     `json:"totalBookings"`
	TotalNights   int     `json:"totalNights"`
	TotalRevenue  float64 `json:"totalRevenue"`
	Occupancy     float64 `json:"occupancy"` // Средняя занятость по всем площадкам
}
