package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m0rven/STR-PropertyManager/internal/api/middleware"
	createBooking "github.com/m0rven/STR-PropertyManager/internal/usecase/create_booking"
)

type fakeUseCase struct {
	lastReq *createBooking.Request
	resp    *createBooking.Response
	err     error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const requestBody = `{
	"propertyId": 10,
	"guestName": "Иван Петров",
	"guestPhone": "+79001234567",
	"checkIn": "2026-08-01",
	"checkOut": "2026-08-05"
}`

func doRequest(t *testing.T, uc *fakeUseCase, body string, withUser bool) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if withUser {
		req.Header.Set(middleware.HeaderUserID, "100")
	}
	rec := httptest.NewRecorder()

	router := middleware.Auth(http.HandlerFunc(handler.Handle))
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_CreatesBooking(t *testing.T) {
	uc := &fakeUseCase{
		resp: &createBooking.Response{
			ID:         1,
			PropertyID: 10,
			OwnerID:    100,
			GuestName:  "Иван Петров",
			GuestPhone: "+79001234567",
			CheckIn:    "2026-08-01",
			CheckOut:   "2026-08-05",
			Nights:     4,
			TotalPrice: 14000,
			Currency:   "RUB",
			Status:     "pending",
			Source:     "direct",
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		},
	}

	rec := doRequest(t, uc, requestBody, true)

	require.Equal(t, http.StatusCreated, rec.Code)

	// OwnerID берется из заголовка авторизации, не из тела
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(100), uc.lastReq.OwnerID)
	assert.Equal(t, int64(10), uc.lastReq.PropertyID)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2026-08-01", resp.CheckIn)
	assert.Equal(t, 4, resp.Nights)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "property not found", err: createBooking.ErrPropertyNotFound, wantStatus: http.StatusNotFound},
		{name: "access denied", err: createBooking.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "property archived", err: createBooking.ErrPropertyArchived, wantStatus: http.StatusBadRequest},
		{name: "dates conflict", err: createBooking.ErrDatesConflict, wantStatus: http.StatusConflict},
		{name: "min stay violation", err: createBooking.ErrMinStayViolation, wantStatus: http.StatusBadRequest},
		{name: "invalid input", err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal error", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, requestBody, true)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, "{not json", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_Unauthorized(t *testing.T) {
	uc := &fakeUseCase{}
	rec := doRequest(t, uc, requestBody, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.lastReq)
}
