package domain

import "github.com/m0rven/STR-PropertyManager/pkg/types"

// CalendarPlacement размещение бронирования в сетке календаря.
// Layer задает номер визуального ряда: бронирования одного ряда не пересекаются.
type CalendarPlacement struct {
	Booking *Booking
	Layer   int
}

// CalendarDay ячейка календаря для одной площадки и даты
type CalendarDay struct {
	Date        types.DateString
	Price       float64 // Эффективная цена (переопределение либо базовая)
	MinStay     int     // Эффективный min stay
	HasOverride bool
	Occupied    bool
}
