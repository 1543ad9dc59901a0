package create_booking

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда площадка не найдена
	ErrPropertyNotFound = errors.New("create_booking: property not found")

	// ErrAccessDenied возвращается, когда площадка принадлежит другому владельцу
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrPropertyArchived возвращается при попытке бронирования архивной площадки
	ErrPropertyArchived = errors.New("create_booking: property is archived")

	// ErrDatesConflict возвращается, когда запрошенные даты пересекаются
	// с активным бронированием площадки
	ErrDatesConflict = errors.New("create_booking: dates conflict with existing booking")

	// ErrMinStayViolation возвращается, когда бронирование короче
	// минимального количества ночей на дату заезда
	ErrMinStayViolation = errors.New("create_booking: stay is shorter than minimum")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
