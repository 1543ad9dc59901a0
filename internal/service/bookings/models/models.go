package models

import (
	"errors"
	"time"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidSource возвращается при некорректном канале бронирования
	ErrInvalidSource = errors.New("invalid booking source")
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований владельца
type ListBookingsRequest struct {
	OwnerID          int64   `json:"ownerId"`
	PropertyID       *int64  `json:"propertyId,omitempty"`       // Фильтр по площадке (опционально)
	From             *string `json:"from,omitempty"`             // Начало периода YYYY-MM-DD (опционально)
	To               *string `json:"to,omitempty"`               // Конец периода YYYY-MM-DD (опционально)
	Status           *string `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	Source           *string `json:"source,omitempty"`           // Фильтр по каналу (опционально)
	IncludeCancelled bool    `json:"includeCancelled,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		OwnerID:          r.OwnerID,
		PropertyID:       r.PropertyID,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.From != nil {
		from, err := types.NewDateStringFromString(*r.From)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if r.To != nil {
		to, err := types.NewDateStringFromString(*r.To)
		if err != nil {
			return filter, err
		}
		filter.To = &to
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	if r.Source != nil {
		source, err := ToDomainBookingSource(*r.Source)
		if err != nil {
			return filter, err
		}
		filter.Source = &source
	}

	return filter, nil
}

// UpdateBookingRequest запрос на обновление бронирования.
// Передаются только изменяемые поля, nil означает "не менять".
type UpdateBookingRequest struct {
	OwnerID    int64    `json:"ownerId"`
	GuestID    *int64   `json:"guestId,omitempty"`
	GuestName  *string  `json:"guestName,omitempty"`
	GuestPhone *string  `json:"guestPhone,omitempty"`
	GuestEmail *string  `json:"guestEmail,omitempty"`
	TotalPrice *float64 `json:"totalPrice,omitempty"`
	Status     *string  `json:"status,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	OwnerID            int64  `json:"ownerId"`
	CancellationReason string `json:"cancellationReason"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"propertyId"`
	OwnerID    int64  `json:"ownerId"`
	GuestID    *int64 `json:"guestId,omitempty"`

	GuestName  string  `json:"guestName"`
	GuestPhone string  `json:"guestPhone"`
	GuestEmail *string `json:"guestEmail,omitempty"`

	CheckIn  string `json:"checkIn"`  // "2026-08-01"
	CheckOut string `json:"checkOut"` // "2026-08-05", день выезда свободен
	Nights   int    `json:"nights"`

	TotalPrice float64 `json:"totalPrice"`
	Currency   string  `json:"currency"`
	Status     string  `json:"status"`
	Source     string  `json:"source"`
	Notes      *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ChangeResponse запись журнала изменений бронирования
type ChangeResponse struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"bookingId"`
	Action    string    `json:"action"`
	Details   *string   `json:"details,omitempty"` // JSON с деталями изменения
	CreatedAt time.Time `json:"createdAt"`
}

// ChangeListResponse ответ с историей изменений бронирования
type ChangeListResponse struct {
	Changes []ChangeResponse `json:"changes"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	// Ошибка невозможна: диапазон валидируется при создании
	nights, _ := b.Nights()

	resp := &BookingResponse{
		ID:                 b.ID,
		PropertyID:         b.PropertyID,
		OwnerID:            b.OwnerID,
		GuestID:            b.GuestID,
		GuestName:          b.GuestName,
		GuestPhone:         b.GuestPhone,
		GuestEmail:         b.GuestEmail,
		CheckIn:            b.CheckIn.String(),
		CheckOut:           b.CheckOut.String(),
		Nights:             nights,
		TotalPrice:         b.TotalPrice,
		Currency:           b.Currency,
		Status:             string(b.Status),
		Source:             string(b.Source),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainChangeList конвертирует журнал изменений в DTO
func FromDomainChangeList(changes []*domain.BookingChange) *ChangeListResponse {
	resp := &ChangeListResponse{
		Changes: make([]ChangeResponse, 0, len(changes)),
	}

	for _, change := range changes {
		resp.Changes = append(resp.Changes, ChangeResponse{
			ID:        change.ID,
			BookingID: change.BookingID,
			Action:    string(change.Action),
			Details:   change.Details,
			CreatedAt: change.CreatedAt,
		})
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.ValidStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

// ToDomainBookingSource конвертирует строку в domain.BookingSource с валидацией
func ToDomainBookingSource(source string) (domain.BookingSource, error) {
	s := domain.BookingSource(source)

	for _, valid := range domain.ValidSources {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidSource
}
