package sync_avito

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	avitoClient "github.com/m0rven/STR-PropertyManager/internal/integrations/avito"
	"github.com/m0rven/STR-PropertyManager/pkg/ptr"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

func busyBooking(checkIn, checkOut string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		CheckIn:  types.DateString(checkIn),
		CheckOut: types.DateString(checkOut),
		Status:   status,
	}
}

func TestMergeBusyRanges(t *testing.T) {
	tests := []struct {
		name     string
		bookings []*domain.Booking
		want     []avitoClient.BusyRange
	}{
		{
			name:     "empty input",
			bookings: nil,
			want:     []avitoClient.BusyRange{},
		},
		{
			name: "single booking",
			bookings: []*domain.Booking{
				busyBooking("2026-08-01", "2026-08-05", domain.StatusConfirmed),
			},
			want: []avitoClient.BusyRange{
				{DateFrom: "2026-08-01", DateTo: "2026-08-05"},
			},
		},
		{
			name: "adjacent bookings merge into one range",
			bookings: []*domain.Booking{
				busyBooking("2026-08-01", "2026-08-05", domain.StatusConfirmed),
				busyBooking("2026-08-05", "2026-08-08", domain.StatusPaid),
			},
			want: []avitoClient.BusyRange{
				{DateFrom: "2026-08-01", DateTo: "2026-08-08"},
			},
		},
		{
			name: "gap keeps ranges separate",
			bookings: []*domain.Booking{
				busyBooking("2026-08-01", "2026-08-05", domain.StatusConfirmed),
				busyBooking("2026-08-07", "2026-08-10", domain.StatusConfirmed),
			},
			want: []avitoClient.BusyRange{
				{DateFrom: "2026-08-01", DateTo: "2026-08-05"},
				{DateFrom: "2026-08-07", DateTo: "2026-08-10"},
			},
		},
		{
			name: "contained booking does not shrink range",
			bookings: []*domain.Booking{
				busyBooking("2026-08-01", "2026-08-10", domain.StatusConfirmed),
				busyBooking("2026-08-03", "2026-08-05", domain.StatusConfirmed),
			},
			want: []avitoClient.BusyRange{
				{DateFrom: "2026-08-01", DateTo: "2026-08-10"},
			},
		},
		{
			name: "cancelled bookings are skipped",
			bookings: []*domain.Booking{
				busyBooking("2026-08-01", "2026-08-05", domain.StatusCancelled),
				busyBooking("2026-08-07", "2026-08-10", domain.StatusConfirmed),
			},
			want: []avitoClient.BusyRange{
				{DateFrom: "2026-08-07", DateTo: "2026-08-10"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeBusyRanges(tt.bookings))
		})
	}
}

func TestBuildDayPrices(t *testing.T) {
	property := &domain.Property{BasePrice: 3500.60}
	overrides := []*domain.PropertyRate{
		{Date: "2026-08-02", Price: ptr.To(4200.40)},
	}

	prices, err := buildDayPrices(property, overrides, "2026-08-01", "2026-08-04")
	require.NoError(t, err)

	require.Len(t, prices, 3)
	// Дробные цены округляются до целых рублей
	assert.Equal(t, avitoClient.DayPrice{Date: "2026-08-01", Price: 3501}, prices[0])
	assert.Equal(t, avitoClient.DayPrice{Date: "2026-08-02", Price: 4200}, prices[1])
	assert.Equal(t, avitoClient.DayPrice{Date: "2026-08-03", Price: 3501}, prices[2])
}
