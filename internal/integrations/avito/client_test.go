package avito

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(baseURL string, maxRetries int) *Client {
	return NewClient(baseURL, "client-id", "client-secret", "http://localhost/callback", 5*time.Second, maxRetries, nopLogger{})
}

func TestAuthorizeURL(t *testing.T) {
	client := newTestClient("https://api.avito.ru", 0)

	raw := client.AuthorizeURL("state-token")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/oauth", parsed.Path)

	query := parsed.Query()
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "http://localhost/callback", query.Get("redirect_uri"))
	assert.Equal(t, "state-token", query.Get("state"))
}

func TestExchangeCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/token", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))

		_ = json.NewEncoder(w).Encode(TokenResponse{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresIn:    86400,
			TokenType:    "Bearer",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)

	token, err := client.ExchangeCode(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "access", token.AccessToken)
	assert.Equal(t, "refresh", token.RefreshToken)
	assert.Equal(t, int64(86400), token.ExpiresIn)
}

func TestExchangeCode_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)

	_, err := client.ExchangeCode(context.Background(), "bad-code")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "old-refresh", r.PostForm.Get("refresh_token"))

		_ = json.NewEncoder(w).Encode(TokenResponse{AccessToken: "new-access", RefreshToken: "new-refresh"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)

	token, err := client.RefreshToken(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", token.AccessToken)
}

func TestPushPrices_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)

	err := client.PushPrices(context.Background(), "token", 123, []DayPrice{
		{Date: "2026-08-01", Price: 3500},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestPushPrices_ClientErrorIsFinal(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)

	err := client.PushPrices(context.Background(), "token", 123, nil)

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, http.StatusNotFound, syncErr.StatusCode)
	assert.Equal(t, "push_prices", syncErr.Operation)
	// 4xx кроме 429 не ретраится
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPushAvailability_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)

	err := client.PushAvailability(context.Background(), "token", 123, []BusyRange{
		{DateFrom: "2026-08-01", DateTo: "2026-08-05"},
	})

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, http.StatusTooManyRequests, syncErr.StatusCode)
	assert.Contains(t, syncErr.Recommendation, "лимит")
}
