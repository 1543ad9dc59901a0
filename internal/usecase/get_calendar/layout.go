package get_calendar

import (
	"sort"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// AssignLayers раскладывает бронирования по визуальным рядам календаря.
//
// Жадный first-fit: бронирования сортируются по дате заезда (при равенстве -
// более длинное раньше, затем по ID), каждое кладется в ряд с наименьшим
// номером, где оно не пересекается с уже размещенными. Пересечение считается
// по полуоткрытым диапазонам, поэтому бронирование с заездом в день выезда
// предыдущего может занять тот же ряд.
func AssignLayers(bookings []*domain.Booking) []domain.CalendarPlacement {
	active := make([]*domain.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.IsActive() {
			active = append(active, booking)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].CheckIn != active[j].CheckIn {
			return active[i].CheckIn.IsBefore(active[j].CheckIn)
		}
		// Более длинное бронирование раньше - занимает нижний ряд
		if active[i].CheckOut != active[j].CheckOut {
			return active[j].CheckOut.IsBefore(active[i].CheckOut)
		}
		return active[i].ID < active[j].ID
	})

	placements := make([]domain.CalendarPlacement, 0, len(active))

	// Для каждого ряда достаточно помнить дату выезда последнего бронирования:
	// заезды отсортированы по возрастанию, пересечение возможно только с ним
	layerEnds := make([]types.DateString, 0)

	for _, booking := range active {
		layer := -1
		for i, end := range layerEnds {
			if !booking.CheckIn.IsBefore(end) {
				layer = i
				break
			}
		}

		if layer == -1 {
			layer = len(layerEnds)
			layerEnds = append(layerEnds, booking.CheckOut)
		} else {
			layerEnds[layer] = booking.CheckOut
		}

		placements = append(placements, domain.CalendarPlacement{
			Booking: booking,
			Layer:   layer,
		})
	}

	return placements
}

// LayerCount возвращает количество занятых рядов
func LayerCount(placements []domain.CalendarPlacement) int {
	max := 0
	for _, placement := range placements {
		if placement.Layer+1 > max {
			max = placement.Layer + 1
		}
	}
	return max
}

// buildDays собирает ячейки календаря на окно [from, to)
func buildDays(
	property *domain.Property,
	rates map[types.DateString]*domain.PropertyRate,
	placements []domain.CalendarPlacement,
	from, to types.DateString,
) ([]DayCell, error) {
	days := make([]DayCell, 0)

	for date := from; date.IsBefore(to); {
		rate := rates[date]

		occupied := false
		for _, placement := range placements {
			if placement.Booking.OccupiesDate(date) {
				occupied = true
				break
			}
		}

		days = append(days, DayCell{
			Date:        date.String(),
			Price:       rate.EffectivePrice(property.BasePrice),
			MinStay:     rate.EffectiveMinStay(property.MinStay),
			HasOverride: rate != nil,
			Occupied:    occupied,
		})

		next, err := date.AddDays(1)
		if err != nil {
			return nil, err
		}
		date = next
	}

	return days, nil
}
