package properties

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда площадка не найдена
	ErrPropertyNotFound = errors.New("property not found")

	// ErrAccessDenied возвращается, когда площадка принадлежит другому владельцу
	ErrAccessDenied = errors.New("access denied")

	// ErrHasPaidBookings возвращается при попытке удалить площадку
	// с оплаченными или активными будущими бронированиями
	ErrHasPaidBookings = errors.New("property has paid or upcoming bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("properties service: internal error")
)
