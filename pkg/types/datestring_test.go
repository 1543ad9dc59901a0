package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "2026-03-15", wantErr: false},
		{name: "invalid format", input: "15.03.2026", wantErr: true},
		{name: "invalid day", input: "2026-02-30", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "datetime instead of date", input: "2026-03-15T10:00:00Z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDateStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, d.String())
		})
	}
}

func TestDateString_Comparisons(t *testing.T) {
	a := DateString("2026-01-05")
	b := DateString("2026-01-10")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))
}

func TestDateString_AddDays(t *testing.T) {
	d := DateString("2026-02-27")

	next, err := d.AddDays(2)
	require.NoError(t, err)
	assert.Equal(t, DateString("2026-03-01"), next)

	prev, err := d.AddDays(-27)
	require.NoError(t, err)
	assert.Equal(t, DateString("2026-01-31"), prev)
}

func TestDateString_DaysUntil(t *testing.T) {
	from := DateString("2026-01-05")
	to := DateString("2026-01-10")

	days, err := from.DaysUntil(to)
	require.NoError(t, err)
	assert.Equal(t, 5, days)

	back, err := to.DaysUntil(from)
	require.NoError(t, err)
	assert.Equal(t, -5, back)

	same, err := from.DaysUntil(from)
	require.NoError(t, err)
	assert.Equal(t, 0, same)
}

func TestDateString_Time(t *testing.T) {
	d := DateString("2026-07-01")

	tm, err := d.Time()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), tm)

	_, err = DateString("garbage").Time()
	require.Error(t, err)
}

func TestNewDateString(t *testing.T) {
	tm := time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, DateString("2026-12-31"), NewDateString(tm))
}
