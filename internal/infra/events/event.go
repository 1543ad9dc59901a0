// Package events публикация и приём событий изменений через RabbitMQ.
// Серверная замена realtime-канала: подписчики (включая собственный
// консьюмер инвалидации кеша) получают события booking.* и chat.*.
package events

import (
	"encoding/json"
	"time"
)

// Routing keys событий
const (
	BookingCreated   = "booking.created"
	BookingUpdated   = "booking.updated"
	BookingMoved     = "booking.moved"
	BookingCancelled = "booking.cancelled"
	ChatMessage      = "chat.message"
)

// Event событие изменения данных
type Event struct {
	ID         string          `json:"id"` // UUID события
	Type       string          `json:"type"`
	OwnerID    int64           `json:"ownerId"`
	EntityID   int64           `json:"entityId"` // ID бронирования или чата
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}
