package avito

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("avito client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от API Авито
	ErrInvalidResponse = errors.New("avito client: invalid response")

	// ErrUnauthorized возвращается при отклоненном или протухшем токене
	ErrUnauthorized = errors.New("avito client: unauthorized")

	// ErrInvalidState возвращается при некорректном параметре state в OAuth-колбеке
	ErrInvalidState = errors.New("avito client: invalid state parameter")
)

// SyncError ошибка синхронизации с Авито.
// Несет статус-код ответа и рекомендацию для владельца.
type SyncError struct {
	Operation      string // "push_prices" или "push_availability"
	StatusCode     int
	Recommendation string
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("avito sync failed: %s, status=%d: %s", e.Operation, e.StatusCode, e.Recommendation)
}

// NewSyncError создает SyncError с рекомендацией по статус-коду
func NewSyncError(operation string, statusCode int) *SyncError {
	return &SyncError{
		Operation:      operation,
		StatusCode:     statusCode,
		Recommendation: recommendationFor(statusCode),
	}
}

func recommendationFor(statusCode int) string {
	switch {
	case statusCode == 401 || statusCode == 403:
		return "Переподключите аккаунт Авито: авторизация истекла"
	case statusCode == 404:
		return "Объявление не найдено на Авито, проверьте привязку объекта"
	case statusCode == 429:
		return "Превышен лимит запросов Авито, повторите синхронизацию позже"
	case statusCode >= 500:
		return "Авито временно недоступно, повторите синхронизацию позже"
	default:
		return "Проверьте данные объекта и повторите синхронизацию"
	}
}
