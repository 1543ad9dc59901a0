// Package avito клиент API Авито: обмен OAuth-кодов на токены
// и выгрузка цен и занятости по объявлениям.
package avito

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с API Авито
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	redirectURL  string
	maxRetries   int
	httpClient   *http.Client
	log          Logger
}

// NewClient создает новый экземпляр клиента Авито
func NewClient(baseURL, clientID, clientSecret, redirectURL string, timeout time.Duration, maxRetries int, log Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		maxRetries:   maxRetries,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// AuthorizeURL собирает URL авторизации для редиректа владельца на Авито
func (c *Client) AuthorizeURL(state string) string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURL)
	params.Set("scope", "messenger:read,short_term_rent:read,short_term_rent:write")
	params.Set("state", state)

	return fmt.Sprintf("%s/oauth?%s", c.baseURL, params.Encode())
}

// ExchangeCode обменивает код авторизации на пару токенов
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("redirect_uri", c.redirectURL)

	return c.requestToken(ctx, form)
}

// RefreshToken обновляет пару токенов по refresh_token
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	return c.requestToken(ctx, form)
}

func (c *Client) requestToken(ctx context.Context, form url.Values) (*TokenResponse, error) {
	endpoint := fmt.Sprintf("%s/token", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create token request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute token request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: token request rejected, status %d: %s", ErrUnauthorized, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var token TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("%w: failed to decode token response: %v", ErrInvalidResponse, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access_token in response", ErrInvalidResponse)
	}

	return &token, nil
}

// PushPrices выгружает посуточные цены объявления
func (c *Client) PushPrices(ctx context.Context, accessToken string, listingID int64, prices []DayPrice) error {
	endpoint := fmt.Sprintf("%s/realty/v1/items/%d/prices", c.baseURL, listingID)

	payload := struct {
		Prices []DayPrice `json:"prices"`
	}{Prices: prices}

	return c.pushWithRetry(ctx, "push_prices", endpoint, accessToken, payload)
}

// PushAvailability выгружает занятые интервалы объявления.
// Авито перезаписывает занятость целиком, поэтому передаются все интервалы окна.
func (c *Client) PushAvailability(ctx context.Context, accessToken string, listingID int64, busy []BusyRange) error {
	endpoint := fmt.Sprintf("%s/realty/v1/items/%d/bookings", c.baseURL, listingID)

	payload := struct {
		Bookings []BusyRange `json:"bookings"`
	}{Bookings: busy}

	return c.pushWithRetry(ctx, "push_availability", endpoint, accessToken, payload)
}

// pushWithRetry выполняет POST с ретраями по экспоненциальному бэкоффу.
// Ретраим сетевые ошибки, 429 и 5xx; 4xx (кроме 429) финальны.
func (c *Client) pushWithRetry(ctx context.Context, operation, endpoint, accessToken string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %s - failed to marshal payload: %v", ErrInternal, operation, err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * 500 * time.Millisecond
			c.log.Warn("avito: retrying %s, attempt=%d, backoff=%s, last error: %v", operation, attempt, backoff, lastErr)

			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %s - context cancelled: %v", ErrInternal, operation, ctx.Err())
			case <-time.After(backoff):
			}
		}

		statusCode, err := c.doPush(ctx, endpoint, accessToken, body)
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case statusCode == http.StatusOK || statusCode == http.StatusNoContent:
			return nil
		case statusCode == http.StatusTooManyRequests || statusCode >= 500:
			lastErr = NewSyncError(operation, statusCode)
			continue
		default:
			return NewSyncError(operation, statusCode)
		}
	}

	c.log.Error("avito: %s failed after %d attempts: %v", operation, c.maxRetries+1, lastErr)
	return lastErr
}

func (c *Client) doPush(ctx context.Context, endpoint, accessToken string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Тело ответа не нужно, но вычитываем его для переиспользования соединения
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
