package exports

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/internal/service/exports/models"
	"github.com/m0rven/STR-PropertyManager/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings   []*domain.Booking
	lastFilter domain.BookingsFilter
}

func (f *fakeBookingRepo) GetByOwnerWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.bookings, nil
}

type fakePropertyRepo struct {
	properties []*domain.Property
}

func (f *fakePropertyRepo) GetByOwner(_ context.Context, _ int64, _ bool) ([]*domain.Property, error) {
	return f.properties, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBookings() []*domain.Booking {
	return []*domain.Booking{
		{
			ID:         1,
			PropertyID: 10,
			OwnerID:    100,
			GuestName:  "Мария; Кузнецова",
			GuestPhone: "+79001112233",
			CheckIn:    "2026-08-01",
			CheckOut:   "2026-08-04",
			TotalPrice: 10500.50,
			Currency:   "RUB",
			Status:     domain.StatusPaid,
			Source:     domain.SourceAvito,
			Notes:      ptr.To("поздний заезд"),
		},
		{
			ID:         2,
			PropertyID: 10,
			OwnerID:    100,
			GuestName:  "Олег Смирнов",
			GuestPhone: "+79004445566",
			CheckIn:    "2026-08-10",
			CheckOut:   "2026-08-11",
			TotalPrice: 3000,
			Currency:   "RUB",
			Status:     domain.StatusConfirmed,
			Source:     domain.SourceDirect,
		},
	}
}

func newTestService(repo *fakeBookingRepo) *Service {
	properties := &fakePropertyRepo{
		properties: []*domain.Property{
			{ID: 10, OwnerID: 100, Name: "Студия на Арбате"},
		},
	}
	return NewService(repo, properties, models.DelimiterSemicolon, nopLogger{})
}

func TestExportBookings_CSV(t *testing.T) {
	service := newTestService(&fakeBookingRepo{bookings: testBookings()})

	result, err := service.ExportBookings(context.Background(), &models.ExportBookingsRequest{
		OwnerID: 100,
		Format:  models.FormatCSV,
	})

	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", result.ContentType)
	assert.True(t, strings.HasSuffix(result.FileName, ".csv"))

	reader := csv.NewReader(strings.NewReader(string(result.Data)))
	reader.Comma = ';'
	records, err := reader.ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3) // заголовок + 2 строки
	assert.Equal(t, csvHeader, records[0])
	// Точка с запятой в имени гостя не ломает разбор
	assert.Equal(t, "Мария; Кузнецова", records[1][5])
	assert.Equal(t, "3", records[1][4]) // ночи
	assert.Equal(t, "10500.50", records[1][9])
	assert.Equal(t, "поздний заезд", records[1][11])
	assert.Equal(t, "Студия на Арбате", records[2][1])
}

func TestExportBookings_CSVWithCommaDelimiter(t *testing.T) {
	service := newTestService(&fakeBookingRepo{bookings: testBookings()})

	result, err := service.ExportBookings(context.Background(), &models.ExportBookingsRequest{
		OwnerID:   100,
		Format:    models.FormatCSV,
		Delimiter: models.DelimiterComma,
	})

	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(string(result.Data)))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Олег Смирнов", records[2][5])
}

func TestExportBookings_JSON(t *testing.T) {
	service := newTestService(&fakeBookingRepo{bookings: testBookings()})

	result, err := service.ExportBookings(context.Background(), &models.ExportBookingsRequest{
		OwnerID: 100,
		Format:  models.FormatJSON,
	})

	require.NoError(t, err)
	assert.Equal(t, "application/json", result.ContentType)
	assert.True(t, strings.HasSuffix(result.FileName, ".json"))

	var payload struct {
		Bookings []models.ExportedBooking `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(result.Data, &payload))
	require.Len(t, payload.Bookings, 2)
	assert.Equal(t, "Студия на Арбате", payload.Bookings[0].PropertyName)
	assert.Equal(t, 3, payload.Bookings[0].Nights)
	assert.Equal(t, "avito", payload.Bookings[0].Source)
}

func TestExportBookings_FilterPassedToRepository(t *testing.T) {
	repo := &fakeBookingRepo{}
	service := newTestService(repo)

	_, err := service.ExportBookings(context.Background(), &models.ExportBookingsRequest{
		OwnerID:          100,
		Format:           models.FormatCSV,
		PropertyID:       ptr.To(int64(10)),
		From:             ptr.To("2026-08-01"),
		To:               ptr.To("2026-09-01"),
		IncludeCancelled: true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100), repo.lastFilter.OwnerID)
	require.NotNil(t, repo.lastFilter.PropertyID)
	assert.Equal(t, int64(10), *repo.lastFilter.PropertyID)
	require.NotNil(t, repo.lastFilter.From)
	assert.Equal(t, "2026-08-01", repo.lastFilter.From.String())
	assert.True(t, repo.lastFilter.IncludeCancelled)
}

func TestExportBookings_InvalidInput(t *testing.T) {
	service := newTestService(&fakeBookingRepo{})

	_, err := service.ExportBookings(context.Background(), &models.ExportBookingsRequest{
		OwnerID: 100,
		Format:  "xlsx",
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.ExportBookings(context.Background(), &models.ExportBookingsRequest{
		OwnerID:   100,
		Format:    models.FormatCSV,
		Delimiter: "tab",
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.ExportBookings(context.Background(), &models.ExportBookingsRequest{
		OwnerID: 100,
		Format:  models.FormatCSV,
		From:    ptr.To("01.08.2026"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestResolveDelimiter_DefaultFromConfig(t *testing.T) {
	service := newTestService(&fakeBookingRepo{})

	delimiter, err := service.resolveDelimiter("")
	require.NoError(t, err)
	assert.Equal(t, ';', delimiter)
}
