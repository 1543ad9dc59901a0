// Package avito хранение OAuth-токенов подключенных аккаунтов Авито
package avito

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/dbmetrics"
	"github.com/m0rven/STR-PropertyManager/pkg/psqlbuilder"
)

// Repository репозиторий токенов аккаунтов Авито
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аккаунтов Авито
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert сохраняет токены аккаунта (одна запись на владельца)
func (r *Repository) Upsert(ctx context.Context, account *domain.AvitoAccount) (*domain.AvitoAccount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("avito_accounts").
		Columns("owner_id", "access_token", "refresh_token", "expires_at").
		Values(account.OwnerID, account.AccessToken, account.RefreshToken, account.ExpiresAt).
		Suffix(`ON CONFLICT (owner_id)
			DO UPDATE SET access_token = EXCLUDED.access_token,
				refresh_token = EXCLUDED.refresh_token,
				expires_at = EXCLUDED.expires_at,
				updated_at = NOW()
			RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return account, nil
}

// GetByOwner получает токены аккаунта владельца
func (r *Repository) GetByOwner(ctx context.Context, ownerID int64) (*domain.AvitoAccount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"owner_id",
		"access_token",
		"refresh_token",
		"expires_at",
		"created_at",
		"updated_at",
	).
		From("avito_accounts").
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - build select query: %v", ErrBuildQuery, err)
	}

	var account domain.AvitoAccount
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&account.OwnerID,
		&account.AccessToken,
		&account.RefreshToken,
		&account.ExpiresAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - scan account: %v", ErrScanRow, err)
	}

	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}

// Delete удаляет токены аккаунта (отключение интеграции)
func (r *Repository) Delete(ctx context.Context, ownerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("avito_accounts").
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}
