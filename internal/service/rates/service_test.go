package rates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/internal/service/rates/models"
	"github.com/m0rven/STR-PropertyManager/pkg/ptr"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

type fakeRateRepo struct {
	upserted []*domain.PropertyRate
	deleted  []types.DateString
}

func (f *fakeRateRepo) Upsert(_ context.Context, rate *domain.PropertyRate) (*domain.PropertyRate, error) {
	f.upserted = append(f.upserted, rate)
	return rate, nil
}

func (f *fakeRateRepo) GetByPropertyInWindow(_ context.Context, _ int64, _, _ types.DateString) ([]*domain.PropertyRate, error) {
	return nil, nil
}

func (f *fakeRateRepo) DeleteByDate(_ context.Context, _ int64, date types.DateString) error {
	f.deleted = append(f.deleted, date)
	return nil
}

type fakePropertyRepo struct {
	property *domain.Property
}

func (f *fakePropertyRepo) GetByID(_ context.Context, _ int64) (*domain.Property, error) {
	return f.property, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeRateRepo) *Service {
	properties := &fakePropertyRepo{
		property: &domain.Property{ID: 10, OwnerID: 100},
	}
	return NewService(repo, properties, fakeTxManager{}, nopLogger{})
}

func TestBulkUpsert_PartialOverrides(t *testing.T) {
	repo := &fakeRateRepo{}
	service := newTestService(repo)

	err := service.BulkUpsert(context.Background(), 10, &models.BulkUpsertRequest{
		OwnerID: 100,
		Rates: []models.RateItem{
			{Date: "2026-08-01", Price: ptr.To(4500.0)},
			// Переопределение только min stay, цена остается базовой
			{Date: "2026-08-02", MinStay: ptr.To(3)},
			{Date: "2026-08-03", Price: ptr.To(5000.0), MinStay: ptr.To(2)},
		},
	})

	require.NoError(t, err)
	require.Len(t, repo.upserted, 3)

	minStayOnly := repo.upserted[1]
	assert.Equal(t, types.DateString("2026-08-02"), minStayOnly.Date)
	assert.Nil(t, minStayOnly.Price)
	require.NotNil(t, minStayOnly.MinStay)
	assert.Equal(t, 3, *minStayOnly.MinStay)

	priceOnly := repo.upserted[0]
	assert.Nil(t, priceOnly.MinStay)
	require.NotNil(t, priceOnly.Price)
	assert.Equal(t, 4500.0, *priceOnly.Price)

	assert.Empty(t, repo.deleted)
}

func TestBulkUpsert_EmptyItemResetsOverride(t *testing.T) {
	repo := &fakeRateRepo{}
	service := newTestService(repo)

	err := service.BulkUpsert(context.Background(), 10, &models.BulkUpsertRequest{
		OwnerID: 100,
		Rates: []models.RateItem{
			{Date: "2026-08-01"},
		},
	})

	require.NoError(t, err)
	assert.Empty(t, repo.upserted)
	assert.Equal(t, []types.DateString{"2026-08-01"}, repo.deleted)
}

func TestBulkUpsert_Validation(t *testing.T) {
	tests := []struct {
		name  string
		rates []models.RateItem
	}{
		{name: "empty list", rates: nil},
		{name: "bad date", rates: []models.RateItem{{Date: "01.08.2026", Price: ptr.To(1000.0)}}},
		{name: "negative price", rates: []models.RateItem{{Date: "2026-08-01", Price: ptr.To(-1.0)}}},
		{name: "zero min stay", rates: []models.RateItem{{Date: "2026-08-01", MinStay: ptr.To(0)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRateRepo{}
			service := newTestService(repo)

			err := service.BulkUpsert(context.Background(), 10, &models.BulkUpsertRequest{
				OwnerID: 100,
				Rates:   tt.rates,
			})

			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.upserted)
			assert.Empty(t, repo.deleted)
		})
	}
}

func TestBulkUpsert_AccessDenied(t *testing.T) {
	repo := &fakeRateRepo{}
	service := newTestService(repo)

	err := service.BulkUpsert(context.Background(), 10, &models.BulkUpsertRequest{
		OwnerID: 999,
		Rates:   []models.RateItem{{Date: "2026-08-01", Price: ptr.To(1000.0)}},
	})

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.upserted)
}
