package domain

import "time"

// MessageDirection направление сообщения в чате
type MessageDirection string

const (
	DirectionIncoming MessageDirection = "in"
	DirectionOutgoing MessageDirection = "out"
)

// Chat represents a mirrored Avito messenger conversation
type Chat struct {
	ID            int64
	OwnerID       int64
	AvitoChatID   string // Внешний ID чата в мессенджере Авито
	PropertyID    *int64 // Площадка, к которой относится чат (если известна)
	GuestName     string
	UnreadCount   int
	LastMessageAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasUnread returns true if the chat has unread incoming messages
func (c *Chat) HasUnread() bool {
	return c.UnreadCount > 0
}

// Message represents a single mirrored messenger message
type Message struct {
	ID             int64
	ChatID         int64
	AvitoMessageID string // Внешний ID сообщения (для идемпотентного приёма)
	Direction      MessageDirection
	Text           string
	SentAt         time.Time
	CreatedAt      time.Time
}

// IsIncoming returns true for messages sent by the guest
func (m *Message) IsIncoming() bool {
	return m.Direction == DirectionIncoming
}
