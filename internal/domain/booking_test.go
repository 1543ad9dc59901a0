package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

func makeBooking(checkIn, checkOut string) *Booking {
	return &Booking{
		CheckIn:  types.DateString(checkIn),
		CheckOut: types.DateString(checkOut),
		Status:   StatusConfirmed,
	}
}

func TestBooking_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    *Booking
		b    *Booking
		want bool
	}{
		{
			name: "partial overlap",
			a:    makeBooking("2026-01-01", "2026-01-05"),
			b:    makeBooking("2026-01-03", "2026-01-07"),
			want: true,
		},
		{
			name: "contained range",
			a:    makeBooking("2026-01-01", "2026-01-10"),
			b:    makeBooking("2026-01-03", "2026-01-05"),
			want: true,
		},
		{
			name: "back to back is not an overlap",
			a:    makeBooking("2026-01-01", "2026-01-05"),
			b:    makeBooking("2026-01-05", "2026-01-08"),
			want: false,
		},
		{
			name: "disjoint ranges",
			a:    makeBooking("2026-01-01", "2026-01-03"),
			b:    makeBooking("2026-01-10", "2026-01-12"),
			want: false,
		},
		{
			name: "identical ranges",
			a:    makeBooking("2026-01-01", "2026-01-05"),
			b:    makeBooking("2026-01-01", "2026-01-05"),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestBooking_OccupiesDate(t *testing.T) {
	b := makeBooking("2026-01-05", "2026-01-08")

	assert.True(t, b.OccupiesDate(types.DateString("2026-01-05")))
	assert.True(t, b.OccupiesDate(types.DateString("2026-01-07")))
	// День выезда свободен
	assert.False(t, b.OccupiesDate(types.DateString("2026-01-08")))
	assert.False(t, b.OccupiesDate(types.DateString("2026-01-04")))
}

func TestBooking_Nights(t *testing.T) {
	b := makeBooking("2026-01-05", "2026-01-08")

	nights, err := b.Nights()
	assert.NoError(t, err)
	assert.Equal(t, 3, nights)
}

func TestBooking_StatusRules(t *testing.T) {
	b := makeBooking("2026-01-01", "2026-01-03")

	b.Status = StatusConfirmed
	assert.True(t, b.IsActive())
	assert.True(t, b.CanBeCancelled())
	assert.True(t, b.CanBeMoved())

	b.Status = StatusCancelled
	assert.False(t, b.IsActive())
	assert.False(t, b.CanBeCancelled())
	assert.False(t, b.CanBeMoved())

	b.Status = StatusCompleted
	assert.True(t, b.IsActive())
	assert.False(t, b.CanBeCancelled())
	assert.False(t, b.CanBeMoved())

	b.Status = StatusPaid
	assert.True(t, b.IsPaid())
	assert.True(t, b.CanBeCancelled())
}
