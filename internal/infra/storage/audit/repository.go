// Package audit журнал изменений бронирований
package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/dbmetrics"
	"github.com/m0rven/STR-PropertyManager/pkg/psqlbuilder"
)

// Repository репозиторий журнала изменений бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал.
// Вызывается в той же транзакции, что и само изменение бронирования.
func (r *Repository) Create(ctx context.Context, change *domain.BookingChange) (*domain.BookingChange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_changes").
		Columns("booking_id", "owner_id", "action", "details").
		Values(change.BookingID, change.OwnerID, change.Action, change.Details).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&change.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	change.CreatedAt = createdAt.Time

	return change, nil
}

// GetByBooking получает историю изменений бронирования, свежие сверху
func (r *Repository) GetByBooking(ctx context.Context, bookingID int64) ([]*domain.BookingChange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"owner_id",
		"action",
		"details",
		"created_at",
	).
		From("booking_changes").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	changes := make([]*domain.BookingChange, 0)
	for rows.Next() {
		var change domain.BookingChange
		var createdAt sql.NullTime

		err := rows.Scan(
			&change.ID,
			&change.BookingID,
			&change.OwnerID,
			&change.Action,
			&change.Details,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBooking - scan row: %v", ErrScanRow, err)
		}

		change.CreatedAt = createdAt.Time
		changes = append(changes, &change)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBooking - rows error: %v", ErrScanRow, err)
	}

	return changes, nil
}
