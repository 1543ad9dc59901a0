package domain

// Default values
const (
	DefaultCurrency = "RUB"
	DefaultMinStay  = 1
)

// Business validation constants
const (
	MinStayNights         = 1
	MaxStayNights         = 365
	MaxCalendarWindowDays = 366
	MaxNotesLength        = 1000
	MaxCancellationReason = 500
	MaxGuestTagLength     = 50
	MaxGuestTags          = 20
)

// Date format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, занимающих даты в календаре
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusPaid,
	StatusCompleted,
}

// ValidStatuses все допустимые статусы бронирования
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusPaid,
	StatusCompleted,
	StatusCancelled,
}

// ValidSources все допустимые каналы бронирования
var ValidSources = []BookingSource{
	SourceDirect,
	SourceAvito,
	SourcePhone,
	SourceOther,
}

// ValidPropertyTypes все допустимые типы площадок
var ValidPropertyTypes = []PropertyType{
	PropertyApartment,
	PropertyHouse,
	PropertyRoom,
	PropertyStudio,
}
