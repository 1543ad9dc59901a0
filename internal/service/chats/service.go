// Package chats сервис зеркала переписки Авито.
// Чаты и сообщения приходят снаружи (вебхук / периодический опрос)
// и складываются локально, чтобы владелец видел переписку в одном месте.
package chats

import (
	"context"
	"errors"
	"fmt"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/internal/infra/events"
	chatRepo "github.com/m0rven/STR-PropertyManager/internal/infra/storage/chat"
	"github.com/m0rven/STR-PropertyManager/internal/service/chats/models"
)

// defaultMessagesLimit максимум сообщений, отдаваемых за один запрос
const defaultMessagesLimit = 200

// Service сервис для работы с чатами
type Service struct {
	chatRepo  ChatRepository
	publisher EventPublisher
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса чатов
func NewService(
	chatRepo ChatRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		chatRepo:  chatRepo,
		publisher: publisher,
		txManager: txManager,
		logger:    logger,
	}
}

// ListChats получает чаты владельца, свежие сверху
func (s *Service) ListChats(ctx context.Context, ownerID int64) (*models.ChatListResponse, error) {
	s.logger.Info("ListChats: fetching chats for owner=%d", ownerID)

	chats, err := s.chatRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListChats: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListChats - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListChats: successfully fetched %d chats for owner=%d", len(chats), ownerID)
	return models.FromDomainChatList(chats), nil
}

// ListMessages получает сообщения чата и сбрасывает счетчик непрочитанных.
// Открытие переписки владельцем и означает прочтение.
func (s *Service) ListMessages(ctx context.Context, chatID int64, ownerID int64) (*models.MessageListResponse, error) {
	s.logger.Info("ListMessages: fetching messages for chat id=%d, owner=%d", chatID, ownerID)

	chat, err := s.getOwned(ctx, chatID, ownerID, "ListMessages")
	if err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.GetMessages(ctx, chatID, defaultMessagesLimit)
	if err != nil {
		s.logger.Error("ListMessages: repository error for chat id=%d: %v", chatID, err)
		return nil, fmt.Errorf("%w: ListMessages - repository error: %v", ErrInternal, err)
	}

	if chat.HasUnread() {
		if err := s.chatRepo.ResetUnread(ctx, chatID); err != nil {
			// Счетчик непрочитанных не критичен для выдачи сообщений
			s.logger.Warn("ListMessages: failed to reset unread for chat id=%d: %v", chatID, err)
		}
	}

	return models.FromDomainMessageList(chatID, messages), nil
}

// IngestMessage принимает сообщение из мессенджера Авито.
// Создает чат при первом сообщении, повторный приём того же
// сообщения (по внешнему ID) игнорируется.
func (s *Service) IngestMessage(ctx context.Context, req *models.IngestMessageRequest) (*models.ChatResponse, error) {
	s.logger.Info("IngestMessage: ingesting message %s for owner=%d, chat=%s", req.MessageID, req.OwnerID, req.AvitoChatID)

	if err := req.Validate(); err != nil {
		s.logger.Warn("IngestMessage: invalid request for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var chat *domain.Chat
	duplicate := false

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		chat, err = s.chatRepo.UpsertChat(ctx, &domain.Chat{
			OwnerID:     req.OwnerID,
			AvitoChatID: req.AvitoChatID,
			PropertyID:  req.PropertyID,
			GuestName:   req.GuestName,
		})
		if err != nil {
			s.logger.Error("IngestMessage: failed to upsert chat %s for owner=%d: %v", req.AvitoChatID, req.OwnerID, err)
			return fmt.Errorf("%w: IngestMessage - repository error: %v", ErrInternal, err)
		}

		_, err = s.chatRepo.InsertMessage(ctx, &domain.Message{
			ChatID:         chat.ID,
			AvitoMessageID: req.MessageID,
			Direction:      domain.MessageDirection(req.Direction),
			Text:           req.Text,
			SentAt:         req.SentAt,
		})
		if err != nil {
			if errors.Is(err, chatRepo.ErrDuplicateMessage) {
				s.logger.Info("IngestMessage: duplicate message %s for chat id=%d, skipping", req.MessageID, chat.ID)
				duplicate = true
				return nil
			}
			s.logger.Error("IngestMessage: failed to insert message %s for chat id=%d: %v", req.MessageID, chat.ID, err)
			return fmt.Errorf("%w: IngestMessage - repository error: %v", ErrInternal, err)
		}

		// Непрочитанные считаем только по входящим сообщениям
		incrementUnread := req.Direction == string(domain.DirectionIncoming)
		if err := s.chatRepo.TouchChat(ctx, chat.ID, req.SentAt, incrementUnread); err != nil {
			s.logger.Error("IngestMessage: failed to touch chat id=%d: %v", chat.ID, err)
			return fmt.Errorf("%w: IngestMessage - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if !duplicate {
		if err := s.publisher.Publish(ctx, events.ChatMessage, req.OwnerID, chat.ID, nil); err != nil {
			s.logger.Warn("IngestMessage: failed to publish event for chat id=%d: %v", chat.ID, err)
		}
	}

	s.logger.Info("IngestMessage: successfully ingested message %s into chat id=%d", req.MessageID, chat.ID)
	return models.FromDomainChat(chat), nil
}

// getOwned получает чат и проверяет принадлежность владельцу
func (s *Service) getOwned(ctx context.Context, chatID, ownerID int64, op string) (*domain.Chat, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, chatRepo.ErrChatNotFound) {
			s.logger.Warn("%s: chat id=%d not found", op, chatID)
			return nil, ErrChatNotFound
		}
		s.logger.Error("%s: repository error for chat id=%d: %v", op, chatID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if chat.OwnerID != ownerID {
		s.logger.Warn("%s: access denied for owner=%d to chat id=%d", op, ownerID, chatID)
		return nil, ErrAccessDenied
	}

	return chat, nil
}
