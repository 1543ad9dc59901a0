package create_booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/ptr"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

func validRequest() *Request {
	return &Request{
		OwnerID:    1,
		PropertyID: 10,
		GuestName:  "Иван Петров",
		GuestPhone: "+79001234567",
		CheckIn:    "2026-08-01",
		CheckOut:   "2026-08-05",
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
		ok     bool
	}{
		{name: "valid request", mutate: func(req *Request) {}, ok: true},
		{name: "missing owner", mutate: func(req *Request) { req.OwnerID = 0 }},
		{name: "missing property", mutate: func(req *Request) { req.PropertyID = 0 }},
		{name: "blank guest name", mutate: func(req *Request) { req.GuestName = "   " }},
		{name: "blank guest phone", mutate: func(req *Request) { req.GuestPhone = "" }},
		{name: "bad check-in format", mutate: func(req *Request) { req.CheckIn = "01.08.2026" }},
		{name: "bad check-out format", mutate: func(req *Request) { req.CheckOut = "2026-13-40" }},
		{name: "check-out before check-in", mutate: func(req *Request) {
			req.CheckIn = "2026-08-05"
			req.CheckOut = "2026-08-01"
		}},
		{name: "zero nights", mutate: func(req *Request) { req.CheckOut = req.CheckIn }},
		{name: "negative price", mutate: func(req *Request) { req.TotalPrice = ptr.To(-100.0) }},
		{name: "unknown status", mutate: func(req *Request) { req.Status = ptr.To("reserved") }},
		{name: "cancelled status forbidden", mutate: func(req *Request) { req.Status = ptr.To("cancelled") }},
		{name: "unknown source", mutate: func(req *Request) { req.Source = ptr.To("booking.com") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			parsed, err := validateRequest(req)
			if !tt.ok {
				require.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, types.DateString("2026-08-01"), parsed.checkIn)
			assert.Equal(t, types.DateString("2026-08-05"), parsed.checkOut)
			assert.Equal(t, 4, parsed.nights)
		})
	}
}

func TestValidateRequest_StayTooLong(t *testing.T) {
	req := validRequest()
	req.CheckIn = "2026-01-01"
	req.CheckOut = "2027-01-02" // 366 ночей

	_, err := validateRequest(req)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestResolveStatus(t *testing.T) {
	status, err := resolveStatus(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, status)

	status, err = resolveStatus(ptr.To("paid"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, status)
}

func TestResolveSource(t *testing.T) {
	source, err := resolveSource(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceDirect, source)

	source, err = resolveSource(ptr.To("avito"))
	require.NoError(t, err)
	assert.Equal(t, domain.SourceAvito, source)
}

func TestFindConflict(t *testing.T) {
	existing := []*domain.Booking{
		{ID: 1, CheckIn: "2026-08-01", CheckOut: "2026-08-05", Status: domain.StatusConfirmed},
		{ID: 2, CheckIn: "2026-08-10", CheckOut: "2026-08-12", Status: domain.StatusCancelled},
	}

	// Пересечение с активным бронированием
	conflict := findConflict(existing, "2026-08-04", "2026-08-06")
	require.NotNil(t, conflict)
	assert.Equal(t, int64(1), conflict.ID)

	// Смежный диапазон свободен
	assert.Nil(t, findConflict(existing, "2026-08-05", "2026-08-08"))

	// Отменённое бронирование не блокирует даты
	assert.Nil(t, findConflict(existing, "2026-08-10", "2026-08-12"))
}

func TestCalculatePrice(t *testing.T) {
	property := &domain.Property{BasePrice: 1000}
	rates := ratesByDate([]*domain.PropertyRate{
		{Date: "2026-08-02", Price: ptr.To(1500.0)},
		{Date: "2026-08-03", Price: ptr.To(2000.0)},
	})

	// Ночи 01, 02, 03: base + override + override
	total, err := calculatePrice(property, rates, "2026-08-01", "2026-08-04")
	require.NoError(t, err)
	assert.Equal(t, 4500.0, total)
}
