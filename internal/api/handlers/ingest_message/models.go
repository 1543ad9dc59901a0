package ingest_message

import (
	"time"

	"github.com/m0rven/STR-PropertyManager/internal/service/chats/models"
)

// IngestMessageRequest HTTP request model.
// Повторная отправка того же messageId безопасна: приём идемпотентен.
type IngestMessageRequest struct {
	AvitoChatID string    `json:"avitoChatId"`
	MessageID   string    `json:"messageId"`
	Direction   string    `json:"direction"` // in / out
	Text        string    `json:"text"`
	SentAt      time.Time `json:"sentAt"`
	GuestName   string    `json:"guestName,omitempty"`
	PropertyID  *int64    `json:"propertyId,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *IngestMessageRequest) ToServiceRequest(ownerID int64) *models.IngestMessageRequest {
	return &models.IngestMessageRequest{
		OwnerID:     ownerID,
		AvitoChatID: r.AvitoChatID,
		MessageID:   r.MessageID,
		Direction:   r.Direction,
		Text:        r.Text,
		SentAt:      r.SentAt,
		GuestName:   r.GuestName,
		PropertyID:  r.PropertyID,
	}
}
