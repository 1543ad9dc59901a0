package move_booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	bookingRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/booking"
	propertyRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/property"
	"github.com/m0rven/STR-PropertyManager/pkg/ptr"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	inWindow []*domain.Booking

	movedID       int64
	movedProperty int64
	movedCheckIn  types.DateString
	movedCheckOut types.DateString
	moveCalls     int
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByPropertyInWindow(_ context.Context, _ int64, _, _ types.DateString) ([]*domain.Booking, error) {
	return f.inWindow, nil
}

func (f *fakeBookingRepo) Move(_ context.Context, id, propertyID int64, checkIn, checkOut types.DateString) error {
	f.moveCalls++
	f.movedID = id
	f.movedProperty = propertyID
	f.movedCheckIn = checkIn
	f.movedCheckOut = checkOut
	return nil
}

type fakePropertyRepo struct {
	properties map[int64]*domain.Property
}

func (f *fakePropertyRepo) GetByID(_ context.Context, id int64) (*domain.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return nil, propertyRepo.ErrPropertyNotFound
	}
	return p, nil
}

type fakeAuditRepo struct {
	changes []*domain.BookingChange
}

func (f *fakeAuditRepo) Create(_ context.Context, change *domain.BookingChange) (*domain.BookingChange, error) {
	f.changes = append(f.changes, change)
	return change, nil
}

type fakePublisher struct {
	events []string
}

func (f *fakePublisher) Publish(_ context.Context, eventType string, _, _ int64, _ interface{}) error {
	f.events = append(f.events, eventType)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(bookings *fakeBookingRepo, properties *fakePropertyRepo) (*UseCase, *fakeAuditRepo, *fakePublisher) {
	audit := &fakeAuditRepo{}
	publisher := &fakePublisher{}
	uc := NewUseCase(bookings, properties, audit, publisher, fakeTxManager{}, nopLogger{})
	return uc, audit, publisher
}

func TestExecute_MovesToFreeDates(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			1: {
				ID:         1,
				PropertyID: 10,
				OwnerID:    100,
				CheckIn:    "2026-08-01",
				CheckOut:   "2026-08-04",
				Status:     domain.StatusConfirmed,
			},
		},
	}
	uc, audit, publisher := newTestUseCase(bookings, &fakePropertyRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		OwnerID:   100,
		BookingID: 1,
		CheckIn:   "2026-08-10",
	})

	require.NoError(t, err)
	assert.Equal(t, types.DateString("2026-08-10"), resp.CheckIn)
	// Количество ночей сохраняется
	assert.Equal(t, types.DateString("2026-08-13"), resp.CheckOut)
	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, int64(10), resp.PropertyID)

	assert.Equal(t, 1, bookings.moveCalls)
	assert.Equal(t, types.DateString("2026-08-10"), bookings.movedCheckIn)
	require.Len(t, audit.changes, 1)
	assert.Equal(t, domain.ActionMoved, audit.changes[0].Action)
	assert.Len(t, publisher.events, 1)
}

func TestExecute_TargetOccupied(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			1: {
				ID:         1,
				PropertyID: 10,
				OwnerID:    100,
				CheckIn:    "2026-08-01",
				CheckOut:   "2026-08-04",
				Status:     domain.StatusConfirmed,
			},
		},
		inWindow: []*domain.Booking{
			{ID: 2, CheckIn: "2026-08-11", CheckOut: "2026-08-14", Status: domain.StatusPaid},
		},
	}
	uc, audit, publisher := newTestUseCase(bookings, &fakePropertyRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		OwnerID:   100,
		BookingID: 1,
		CheckIn:   "2026-08-10",
	})

	require.ErrorIs(t, err, ErrTargetOccupied)
	// При конфликте перенос не выполняется
	assert.Equal(t, 0, bookings.moveCalls)
	assert.Empty(t, audit.changes)
	assert.Empty(t, publisher.events)
}

func TestExecute_SelfOverlapIsNotConflict(t *testing.T) {
	current := &domain.Booking{
		ID:         1,
		PropertyID: 10,
		OwnerID:    100,
		CheckIn:    "2026-08-01",
		CheckOut:   "2026-08-04",
		Status:     domain.StatusConfirmed,
	}
	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{1: current},
		// Сдвиг на один день: окно пересекается с самим переносимым бронированием
		inWindow: []*domain.Booking{current},
	}
	uc, _, _ := newTestUseCase(bookings, &fakePropertyRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		OwnerID:   100,
		BookingID: 1,
		CheckIn:   "2026-08-02",
	})

	require.NoError(t, err)
	assert.Equal(t, types.DateString("2026-08-02"), resp.CheckIn)
	assert.Equal(t, 1, bookings.moveCalls)
}

func TestExecute_MoveToAnotherProperty(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			1: {
				ID:         1,
				PropertyID: 10,
				OwnerID:    100,
				CheckIn:    "2026-08-01",
				CheckOut:   "2026-08-04",
				Status:     domain.StatusConfirmed,
			},
		},
	}
	properties := &fakePropertyRepo{
		properties: map[int64]*domain.Property{
			20: {ID: 20, OwnerID: 100},
		},
	}
	uc, _, _ := newTestUseCase(bookings, properties)

	resp, err := uc.Execute(context.Background(), &Request{
		OwnerID:    100,
		BookingID:  1,
		CheckIn:    "2026-08-01",
		PropertyID: ptr.To(int64(20)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(20), resp.PropertyID)
	assert.Equal(t, int64(20), bookings.movedProperty)
}

func TestExecute_TargetPropertyArchived(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			1: {
				ID:         1,
				PropertyID: 10,
				OwnerID:    100,
				CheckIn:    "2026-08-01",
				CheckOut:   "2026-08-04",
				Status:     domain.StatusConfirmed,
			},
		},
	}
	properties := &fakePropertyRepo{
		properties: map[int64]*domain.Property{
			20: {ID: 20, OwnerID: 100, IsArchived: true},
		},
	}
	uc, _, _ := newTestUseCase(bookings, properties)

	_, err := uc.Execute(context.Background(), &Request{
		OwnerID:    100,
		BookingID:  1,
		CheckIn:    "2026-08-01",
		PropertyID: ptr.To(int64(20)),
	})

	require.ErrorIs(t, err, ErrPropertyArchived)
	assert.Equal(t, 0, bookings.moveCalls)
}

func TestExecute_AccessDenied(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			1: {
				ID:         1,
				PropertyID: 10,
				OwnerID:    100,
				CheckIn:    "2026-08-01",
				CheckOut:   "2026-08-04",
				Status:     domain.StatusConfirmed,
			},
		},
	}
	uc, _, _ := newTestUseCase(bookings, &fakePropertyRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		OwnerID:   999,
		BookingID: 1,
		CheckIn:   "2026-08-10",
	})

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_CancelledBookingCannotBeMoved(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			1: {
				ID:         1,
				PropertyID: 10,
				OwnerID:    100,
				CheckIn:    "2026-08-01",
				CheckOut:   "2026-08-04",
				Status:     domain.StatusCancelled,
			},
		},
	}
	uc, _, _ := newTestUseCase(bookings, &fakePropertyRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		OwnerID:   100,
		BookingID: 1,
		CheckIn:   "2026-08-10",
	})

	require.ErrorIs(t, err, ErrCannotMove)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeBookingRepo{bookings: map[int64]*domain.Booking{}}, &fakePropertyRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		OwnerID:   100,
		BookingID: 42,
		CheckIn:   "2026-08-10",
	})

	require.ErrorIs(t, err, ErrBookingNotFound)
}
