package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
)

// Request модели

// IngestMessageRequest входящее сообщение из мессенджера Авито.
// Приём идемпотентен по (chatId, messageId).
type IngestMessageRequest struct {
	OwnerID     int64     `json:"ownerId"`
	AvitoChatID string    `json:"avitoChatId"`
	MessageID   string    `json:"messageId"`
	Direction   string    `json:"direction"` // in / out
	Text        string    `json:"text"`
	SentAt      time.Time `json:"sentAt"`
	GuestName   string    `json:"guestName,omitempty"`
	PropertyID  *int64    `json:"propertyId,omitempty"`
}

// Validate проверяет корректность запроса
func (r *IngestMessageRequest) Validate() error {
	if strings.TrimSpace(r.AvitoChatID) == "" {
		return errors.New("avitoChatId is required")
	}
	if strings.TrimSpace(r.MessageID) == "" {
		return errors.New("messageId is required")
	}
	if r.Direction != string(domain.DirectionIncoming) && r.Direction != string(domain.DirectionOutgoing) {
		return errors.New("direction must be in or out")
	}
	if r.SentAt.IsZero() {
		return errors.New("sentAt is required")
	}
	return nil
}

// Response модели

// ChatResponse ответ с данными чата
type ChatResponse struct {
	ID            int64      `json:"id"`
	OwnerID       int64      `json:"ownerId"`
	AvitoChatID   string     `json:"avitoChatId"`
	PropertyID    *int64     `json:"propertyId,omitempty"`
	GuestName     string     `json:"guestName"`
	UnreadCount   int        `json:"unreadCount"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ChatListResponse ответ со списком чатов
type ChatListResponse struct {
	Chats []ChatResponse `json:"chats"`
}

// MessageResponse ответ с данными сообщения
type MessageResponse struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chatId"`
	MessageID string    `json:"messageId"` // Внешний ID сообщения в Авито
	Direction string    `json:"direction"`
	Text      string    `json:"text"`
	SentAt    time.Time `json:"sentAt"`
}

// MessageListResponse ответ со списком сообщений чата
type MessageListResponse struct {
	ChatID   int64             `json:"chatId"`
	Messages []MessageResponse `json:"messages"`
}

// Методы конвертации

// FromDomainChat конвертирует domain модель в DTO
func FromDomainChat(c *domain.Chat) *ChatResponse {
	if c == nil {
		return nil
	}

	return &ChatResponse{
		ID:            c.ID,
		OwnerID:       c.OwnerID,
		AvitoChatID:   c.AvitoChatID,
		PropertyID:    c.PropertyID,
		GuestName:     c.GuestName,
		UnreadCount:   c.UnreadCount,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
}

// FromDomainChatList конвертирует список domain моделей в DTO
func FromDomainChatList(chats []*domain.Chat) *ChatListResponse {
	resp := &ChatListResponse{
		Chats: make([]ChatResponse, 0, len(chats)),
	}

	for _, chat := range chats {
		if chatResp := FromDomainChat(chat); chatResp != nil {
			resp.Chats = append(resp.Chats, *chatResp)
		}
	}

	return resp
}

// FromDomainMessageList конвертирует список сообщений в DTO
func FromDomainMessageList(chatID int64, messages []*domain.Message) *MessageListResponse {
	resp := &MessageListResponse{
		ChatID:   chatID,
		Messages: make([]MessageResponse, 0, len(messages)),
	}

	for _, message := range messages {
		resp.Messages = append(resp.Messages, MessageResponse{
			ID:        message.ID,
			ChatID:    message.ChatID,
			MessageID: message.AvitoMessageID,
			Direction: string(message.Direction),
			Text:      message.Text,
			SentAt:    message.SentAt,
		})
	}

	return resp
}
