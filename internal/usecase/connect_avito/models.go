package connect_avito

import "time"

// StartRequest запрос на начало OAuth-подключения аккаунта Авито
type StartRequest struct {
	OwnerID int64
}

// StartResponse URL авторизации для редиректа владельца на Авито
type StartResponse struct {
	AuthorizeURL string
}

// CallbackRequest параметры OAuth-колбека от Авито
type CallbackRequest struct {
	Code  string // Код авторизации
	State string // base64(JSON) с владельцем, выданный на старте
}

// CallbackResponse результат подключения аккаунта
type CallbackResponse struct {
	OwnerID   int64
	ExpiresAt time.Time // Срок действия access_token
}
