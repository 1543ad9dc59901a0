package sync_avito

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда площадка не найдена
	ErrPropertyNotFound = errors.New("sync_avito: property not found")

	// ErrAccessDenied возвращается, когда площадка принадлежит другому владельцу
	ErrAccessDenied = errors.New("sync_avito: access denied")

	// ErrNotLinked возвращается, когда площадка не привязана к объявлению Авито
	ErrNotLinked = errors.New("sync_avito: property is not linked to an Avito listing")

	// ErrNotConnected возвращается, когда у владельца нет подключенного аккаунта Авито
	ErrNotConnected = errors.New("sync_avito: avito account is not connected")

	// ErrTokenRefreshFailed возвращается, когда не удалось обновить протухший токен;
	// владельцу нужно переподключить аккаунт
	ErrTokenRefreshFailed = errors.New("sync_avito: token refresh failed, reconnect required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("sync_avito: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("sync_avito: internal error")
)
