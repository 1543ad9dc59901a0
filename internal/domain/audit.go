package domain

import "time"

// ChangeAction тип изменения бронирования в журнале аудита
type ChangeAction string

const (
	ActionCreated       ChangeAction = "created"
	ActionUpdated       ChangeAction = "updated"
	ActionMoved         ChangeAction = "moved"
	ActionCancelled     ChangeAction = "cancelled"
	ActionStatusChanged ChangeAction = "status_changed"
)

// BookingChange запись журнала изменений бронирований.
// Details содержит JSON с деталями изменения (старые/новые значения).
type BookingChange struct {
	ID        int64
	BookingID int64
	OwnerID   int64
	Action    ChangeAction
	Details   *string
	CreatedAt time.Time
}
