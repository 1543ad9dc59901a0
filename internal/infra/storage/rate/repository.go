package rate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/dbmetrics"
	"github.com/m0rven/STR-PropertyManager/pkg/psqlbuilder"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

// Repository репозиторий для работы с переопределениями тарифов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет переопределение тарифа на дату.
// Уникальность пары (property_id, rate_date) обеспечивается констрейнтом.
func (r *Repository) Upsert(ctx context.Context, rate *domain.PropertyRate) (*domain.PropertyRate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("property_rates").
		Columns("property_id", "rate_date", "price", "min_stay").
		Values(rate.PropertyID, rate.Date, rate.Price, rate.MinStay).
		Suffix(`ON CONFLICT (property_id, rate_date)
			DO UPDATE SET price = EXCLUDED.price, min_stay = EXCLUDED.min_stay, updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rate.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	rate.CreatedAt = createdAt.Time
	rate.UpdatedAt = updatedAt.Time

	return rate, nil
}

// GetByPropertyInWindow получает переопределения тарифов площадки
// на даты в окне [from, to)
func (r *Repository) GetByPropertyInWindow(ctx context.Context, propertyID int64, from, to types.DateString) ([]*domain.PropertyRate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"property_id",
		"rate_date",
		"price",
		"min_stay",
		"created_at",
		"updated_at",
	).
		From("property_rates").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.GtOrEq{"rate_date": from}).
		Where(squirrel.Lt{"rate_date": to}).
		OrderBy("rate_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyInWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rates := make([]*domain.PropertyRate, 0)
	for rows.Next() {
		var rate domain.PropertyRate
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rate.ID,
			&rate.PropertyID,
			&rate.Date,
			&rate.Price,
			&rate.MinStay,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByPropertyInWindow - scan row: %v", ErrScanRow, err)
		}

		rate.CreatedAt = createdAt.Time
		rate.UpdatedAt = updatedAt.Time

		rates = append(rates, &rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyInWindow - rows error: %v", ErrScanRow, err)
	}

	return rates, nil
}

// DeleteByDate удаляет переопределение тарифа на конкретную дату
func (r *Repository) DeleteByDate(ctx context.Context, propertyID int64, date types.DateString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("property_rates").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.Eq{"rate_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByDate - build delete query: %v", ErrBuildQuery, err)
	}

	// Отсутствие строки не ошибка: снятие несуществующего переопределения идемпотентно
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByDate - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
