package get_calendar

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда запрошенная площадка не найдена
	ErrPropertyNotFound = errors.New("get_calendar: property not found")

	// ErrAccessDenied возвращается, когда площадка принадлежит другому владельцу
	ErrAccessDenied = errors.New("get_calendar: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_calendar: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_calendar: internal error")
)
