package connect_avito

import "errors"

var (
	// ErrInvalidState возвращается при некорректном параметре state OAuth-колбека
	ErrInvalidState = errors.New("connect_avito: invalid state parameter")

	// ErrExchangeFailed возвращается, когда Авито отклонило обмен кода на токены
	ErrExchangeFailed = errors.New("connect_avito: code exchange rejected")

	// ErrNotConnected возвращается, когда у владельца нет подключенного аккаунта
	ErrNotConnected = errors.New("connect_avito: account is not connected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("connect_avito: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("connect_avito: internal error")
)
