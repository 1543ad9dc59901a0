// Package connect_avito use case OAuth-подключения аккаунта Авито.
// Start выдает URL авторизации с подписанным state,
// Callback обменивает код на токены и привязывает их к владельцу.
package connect_avito

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	avitoStorage "github.com/m0rven/STR-PropertyManager/internal/infra/storage/avito"
	avitoClient "github.com/m0rven/STR-PropertyManager/internal/integrations/avito"
)

// UseCase use case подключения аккаунта Авито
type UseCase struct {
	accountRepo  AvitoAccountRepository
	client       AvitoClient
	nonces       *nonceStore
	timeProvider func() time.Time
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	accountRepo AvitoAccountRepository,
	client AvitoClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		accountRepo:  accountRepo,
		client:       client,
		nonces:       newNonceStore(),
		timeProvider: time.Now,
		logger:       logger,
	}
}

// Start собирает URL авторизации на Авито.
// В state кодируется владелец: колбек придет без авторизационного
// заголовка, и привязка токенов к владельцу идет только через state.
func (uc *UseCase) Start(ctx context.Context, req *StartRequest) (*StartResponse, error) {
	uc.logger.Info("ConnectAvito: starting OAuth for owner=%d", req.OwnerID)

	if req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	nonce := uuid.NewString()
	state, err := avitoClient.EncodeState(avitoClient.StatePayload{
		OwnerID: req.OwnerID,
		Nonce:   nonce,
	})
	if err != nil {
		uc.logger.Error("ConnectAvito: failed to encode state for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to encode state: %v", ErrInternal, err)
	}

	uc.nonces.Issue(nonce, uc.timeProvider())

	return &StartResponse{AuthorizeURL: uc.client.AuthorizeURL(state)}, nil
}

// Callback обрабатывает OAuth-колбек: декодирует state,
// обменивает код на токены и сохраняет их
func (uc *UseCase) Callback(ctx context.Context, req *CallbackRequest) (*CallbackResponse, error) {
	uc.logger.Info("ConnectAvito: handling OAuth callback")

	// 1. Валидация входных данных
	if req.Code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if req.State == "" {
		return nil, fmt.Errorf("%w: state is required", ErrInvalidInput)
	}

	// 2. Декодируем state и определяем владельца
	payload, err := avitoClient.DecodeState(req.State)
	if err != nil {
		uc.logger.Warn("ConnectAvito: failed to decode state: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	// 2.1. Nonce одноразовый: state, который мы не выдавали
	// или уже приняли, отклоняется
	if !uc.nonces.Consume(payload.Nonce, uc.timeProvider()) {
		uc.logger.Warn("ConnectAvito: unknown or reused state nonce for owner=%d", payload.OwnerID)
		return nil, fmt.Errorf("%w: unknown or expired nonce", ErrInvalidState)
	}

	// 3. Обмениваем код на токены
	token, err := uc.client.ExchangeCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, avitoClient.ErrUnauthorized) {
			uc.logger.Warn("ConnectAvito: code exchange rejected for owner=%d: %v", payload.OwnerID, err)
			return nil, ErrExchangeFailed
		}
		uc.logger.Error("ConnectAvito: code exchange failed for owner=%d: %v", payload.OwnerID, err)
		return nil, fmt.Errorf("%w: code exchange failed: %v", ErrInternal, err)
	}

	// 4. Сохраняем токены аккаунта
	expiresAt := uc.timeProvider().Add(time.Duration(token.ExpiresIn) * time.Second)

	account, err := uc.accountRepo.Upsert(ctx, &domain.AvitoAccount{
		OwnerID:      payload.OwnerID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    expiresAt,
	})
	if err != nil {
		uc.logger.Error("ConnectAvito: failed to save account for owner=%d: %v", payload.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to save account: %v", ErrInternal, err)
	}

	uc.logger.Info("ConnectAvito: successfully connected account for owner=%d, expires=%s",
		account.OwnerID, account.ExpiresAt.Format(time.RFC3339))

	return &CallbackResponse{
		OwnerID:   account.OwnerID,
		ExpiresAt: account.ExpiresAt,
	}, nil
}

// Disconnect отключает интеграцию, удаляя сохраненные токены
func (uc *UseCase) Disconnect(ctx context.Context, ownerID int64) error {
	uc.logger.Info("ConnectAvito: disconnecting account for owner=%d", ownerID)

	if ownerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if err := uc.accountRepo.Delete(ctx, ownerID); err != nil {
		if errors.Is(err, avitoStorage.ErrAccountNotFound) {
			uc.logger.Warn("ConnectAvito: no connected account for owner=%d", ownerID)
			return ErrNotConnected
		}
		uc.logger.Error("ConnectAvito: failed to delete account for owner=%d: %v", ownerID, err)
		return fmt.Errorf("%w: failed to delete account: %v", ErrInternal, err)
	}

	uc.logger.Info("ConnectAvito: successfully disconnected account for owner=%d", ownerID)
	return nil
}
