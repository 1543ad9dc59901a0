package get_calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

func booking(id int64, checkIn, checkOut string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:       id,
		CheckIn:  types.DateString(checkIn),
		CheckOut: types.DateString(checkOut),
		Status:   status,
	}
}

func layerByID(t *testing.T, placements []domain.CalendarPlacement, id int64) int {
	t.Helper()
	for _, p := range placements {
		if p.Booking.ID == id {
			return p.Layer
		}
	}
	t.Fatalf("booking %d not placed", id)
	return -1
}

func TestAssignLayers_OverlappingBookingsGetDifferentLayers(t *testing.T) {
	placements := AssignLayers([]*domain.Booking{
		booking(1, "2026-01-01", "2026-01-05", domain.StatusConfirmed),
		booking(2, "2026-01-03", "2026-01-07", domain.StatusConfirmed),
	})

	require.Len(t, placements, 2)
	assert.NotEqual(t, layerByID(t, placements, 1), layerByID(t, placements, 2))
	assert.Equal(t, 2, LayerCount(placements))
}

func TestAssignLayers_BackToBackSharesLayer(t *testing.T) {
	// Выезд 05-го, заезд 05-го: ряд освобождается в день выезда
	placements := AssignLayers([]*domain.Booking{
		booking(1, "2026-01-01", "2026-01-05", domain.StatusConfirmed),
		booking(2, "2026-01-03", "2026-01-07", domain.StatusConfirmed),
		booking(3, "2026-01-05", "2026-01-08", domain.StatusConfirmed),
	})

	require.Len(t, placements, 3)
	assert.Equal(t, layerByID(t, placements, 1), layerByID(t, placements, 3))
	assert.Equal(t, 2, LayerCount(placements))
}

func TestAssignLayers_NoSameLayerOverlaps(t *testing.T) {
	placements := AssignLayers([]*domain.Booking{
		booking(1, "2026-01-01", "2026-01-10", domain.StatusConfirmed),
		booking(2, "2026-01-02", "2026-01-04", domain.StatusPaid),
		booking(3, "2026-01-04", "2026-01-06", domain.StatusConfirmed),
		booking(4, "2026-01-05", "2026-01-12", domain.StatusPending),
		booking(5, "2026-01-10", "2026-01-15", domain.StatusConfirmed),
	})

	for i := range placements {
		for j := i + 1; j < len(placements); j++ {
			if placements[i].Layer != placements[j].Layer {
				continue
			}
			assert.False(t, placements[i].Booking.Overlaps(placements[j].Booking),
				"bookings %d and %d share layer %d but overlap",
				placements[i].Booking.ID, placements[j].Booking.ID, placements[i].Layer)
		}
	}
}

func TestAssignLayers_CancelledBookingsExcluded(t *testing.T) {
	placements := AssignLayers([]*domain.Booking{
		booking(1, "2026-01-01", "2026-01-05", domain.StatusCancelled),
		booking(2, "2026-01-01", "2026-01-05", domain.StatusConfirmed),
	})

	require.Len(t, placements, 1)
	assert.Equal(t, int64(2), placements[0].Booking.ID)
	assert.Equal(t, 0, placements[0].Layer)
}

func TestAssignLayers_LongerBookingTakesLowerLayer(t *testing.T) {
	placements := AssignLayers([]*domain.Booking{
		booking(1, "2026-01-01", "2026-01-03", domain.StatusConfirmed),
		booking(2, "2026-01-01", "2026-01-09", domain.StatusConfirmed),
	})

	assert.Equal(t, 0, layerByID(t, placements, 2))
	assert.Equal(t, 1, layerByID(t, placements, 1))
}

func TestAssignLayers_Empty(t *testing.T) {
	placements := AssignLayers(nil)
	assert.Empty(t, placements)
	assert.Equal(t, 0, LayerCount(placements))
}
