package rates

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда площадка не найдена
	ErrPropertyNotFound = errors.New("property not found")

	// ErrAccessDenied возвращается, когда площадка принадлежит другому владельцу
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("rates service: internal error")
)
