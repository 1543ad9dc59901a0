package connect_avito

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	avitoStorage "github.com/m0rven/STR-PropertyManager/internal/infra/storage/avito"
	avitoClient "github.com/m0rven/STR-PropertyManager/internal/integrations/avito"
)

type fakeAccountRepo struct {
	accounts map[int64]*domain.AvitoAccount
}

func (f *fakeAccountRepo) Upsert(_ context.Context, account *domain.AvitoAccount) (*domain.AvitoAccount, error) {
	f.accounts[account.OwnerID] = account
	return account, nil
}

func (f *fakeAccountRepo) Delete(_ context.Context, ownerID int64) error {
	if _, ok := f.accounts[ownerID]; !ok {
		return avitoStorage.ErrAccountNotFound
	}
	delete(f.accounts, ownerID)
	return nil
}

type fakeClient struct {
	lastState string
}

func (f *fakeClient) AuthorizeURL(state string) string {
	f.lastState = state
	return "https://avito.example/oauth?state=" + state
}

func (f *fakeClient) ExchangeCode(_ context.Context, _ string) (*avitoClient.TokenResponse, error) {
	return &avitoClient.TokenResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresIn:    86400,
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase() (*UseCase, *fakeAccountRepo, *fakeClient) {
	repo := &fakeAccountRepo{accounts: make(map[int64]*domain.AvitoAccount)}
	client := &fakeClient{}
	uc := NewUseCase(repo, client, nopLogger{})
	return uc, repo, client
}

func TestStartThenCallback(t *testing.T) {
	uc, repo, client := newTestUseCase()
	ctx := context.Background()

	start, err := uc.Start(ctx, &StartRequest{OwnerID: 100})
	require.NoError(t, err)
	assert.Contains(t, start.AuthorizeURL, client.lastState)

	resp, err := uc.Callback(ctx, &CallbackRequest{Code: "auth-code", State: client.lastState})
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.OwnerID)

	account := repo.accounts[100]
	require.NotNil(t, account)
	assert.Equal(t, "access", account.AccessToken)
	assert.Equal(t, "refresh", account.RefreshToken)
}

func TestCallback_StateReplayRejected(t *testing.T) {
	uc, _, client := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Start(ctx, &StartRequest{OwnerID: 100})
	require.NoError(t, err)

	_, err = uc.Callback(ctx, &CallbackRequest{Code: "auth-code", State: client.lastState})
	require.NoError(t, err)

	// Повторный колбек с тем же state отклоняется
	_, err = uc.Callback(ctx, &CallbackRequest{Code: "auth-code", State: client.lastState})
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestCallback_ForgedStateRejected(t *testing.T) {
	uc, repo, _ := newTestUseCase()

	// Синтаксически корректный state, который сервис не выдавал
	forged, err := avitoClient.EncodeState(avitoClient.StatePayload{OwnerID: 100, Nonce: "forged"})
	require.NoError(t, err)

	_, err = uc.Callback(context.Background(), &CallbackRequest{Code: "auth-code", State: forged})
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Empty(t, repo.accounts)
}

func TestCallback_ExpiredStateRejected(t *testing.T) {
	uc, _, client := newTestUseCase()
	ctx := context.Background()

	issued := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	uc.timeProvider = func() time.Time { return issued }

	_, err := uc.Start(ctx, &StartRequest{OwnerID: 100})
	require.NoError(t, err)

	uc.timeProvider = func() time.Time { return issued.Add(stateTTL + time.Minute) }

	_, err = uc.Callback(ctx, &CallbackRequest{Code: "auth-code", State: client.lastState})
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestDisconnect(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	ctx := context.Background()

	repo.accounts[100] = &domain.AvitoAccount{OwnerID: 100}

	require.NoError(t, uc.Disconnect(ctx, 100))
	assert.Empty(t, repo.accounts)

	require.ErrorIs(t, uc.Disconnect(ctx, 100), ErrNotConnected)
}
