package move_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("move_booking: booking not found")

	// ErrPropertyNotFound возвращается, когда целевая площадка не найдена
	ErrPropertyNotFound = errors.New("move_booking: target property not found")

	// ErrAccessDenied возвращается, когда бронирование или площадка
	// принадлежат другому владельцу
	ErrAccessDenied = errors.New("move_booking: access denied")

	// ErrCannotMove возвращается, когда бронирование нельзя переносить
	// (отменено или завершено)
	ErrCannotMove = errors.New("move_booking: booking cannot be moved")

	// ErrPropertyArchived возвращается при переносе на архивную площадку
	ErrPropertyArchived = errors.New("move_booking: target property is archived")

	// ErrTargetOccupied возвращается, когда целевые даты заняты другим
	// бронированием; исходное бронирование при этом остается без изменений
	ErrTargetOccupied = errors.New("move_booking: target dates are occupied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("move_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("move_booking: internal error")
)
