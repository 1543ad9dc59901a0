package domain

import (
	"time"

	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusPaid      BookingStatus = "paid"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// BookingSource represents the channel the booking came from
type BookingSource string

const (
	SourceDirect BookingSource = "direct"
	SourceAvito  BookingSource = "avito"
	SourcePhone  BookingSource = "phone"
	SourceOther  BookingSource = "other"
)

// Booking represents a property reservation.
// Диапазон занятости полуоткрытый: [CheckIn, CheckOut), день выезда свободен.
type Booking struct {
	ID         int64
	PropertyID int64
	OwnerID    int64
	GuestID    *int64 // Ссылка на карточку гостя в CRM (опционально)

	// Контактные данные гостя (денормализованы в бронирование)
	GuestName  string
	GuestPhone string
	GuestEmail *string

	CheckIn  types.DateString
	CheckOut types.DateString

	TotalPrice float64
	Currency   string
	Status     BookingStatus
	Source     BookingSource
	Notes      *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its dates
// (отменённые бронирования не участвуют в проверках пересечений)
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsPaid returns true if the booking has been paid for
func (b *Booking) IsPaid() bool {
	return b.Status == StatusPaid
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status != StatusCancelled && b.Status != StatusCompleted
}

// CanBeMoved returns true if the booking can be relocated to other dates/property
func (b *Booking) CanBeMoved() bool {
	return b.Status != StatusCancelled && b.Status != StatusCompleted
}

// Nights возвращает количество ночей бронирования
func (b *Booking) Nights() (int, error) {
	return b.CheckIn.DaysUntil(b.CheckOut)
}

// Overlaps проверяет пересечение с другим бронированием на той же площадке.
// Полуоткрытые интервалы: выезд в день заезда другого гостя пересечением не считается.
func (b *Booking) Overlaps(other *Booking) bool {
	return RangesOverlap(b.CheckIn, b.CheckOut, other.CheckIn, other.CheckOut)
}

// OccupiesDate возвращает true, если дата входит в занятый диапазон [CheckIn, CheckOut)
func (b *Booking) OccupiesDate(date types.DateString) bool {
	return !date.IsBefore(b.CheckIn) && date.IsBefore(b.CheckOut)
}

// RangesOverlap проверяет пересечение двух полуоткрытых диапазонов дат [s1, e1) и [s2, e2)
func RangesOverlap(s1, e1, s2, e2 types.DateString) bool {
	return s1.IsBefore(e2) && s2.IsBefore(e1)
}

// BookingsFilter фильтр для получения списка бронирований
type BookingsFilter struct {
	OwnerID          int64             // Обязательный параметр
	PropertyID       *int64            // Фильтр по площадке (опционально)
	GuestID          *int64            // Фильтр по карточке гостя (опционально)
	From             *types.DateString // Начало периода (опционально)
	To               *types.DateString // Конец периода (опционально)
	Status           *BookingStatus    // Фильтр по статусу (опционально)
	Source           *BookingSource    // Фильтр по каналу (опционально)
	IncludeCancelled bool              // Включать ли отменённые бронирования
}
