package property

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/dbmetrics"
	"github.com/m0rven/STR-PropertyManager/pkg/psqlbuilder"
)

var propertyColumns = []string{
	"id",
	"owner_id",
	"name",
	"type",
	"address",
	"description",
	"base_price",
	"currency",
	"capacity",
	"min_stay",
	"avito_listing_id",
	"is_archived",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с площадками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую площадку
func (r *Repository) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("properties").
		Columns(
			"owner_id",
			"name",
			"type",
			"address",
			"description",
			"base_price",
			"currency",
			"capacity",
			"min_stay",
			"avito_listing_id",
		).
		Values(
			property.OwnerID,
			property.Name,
			property.Type,
			property.Address,
			property.Description,
			property.BasePrice,
			property.Currency,
			property.Capacity,
			property.MinStay,
			property.AvitoListingID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&property.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	property.CreatedAt = createdAt.Time
	property.UpdatedAt = updatedAt.Time

	return property, nil
}

// GetByID получает площадку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(propertyColumns...).
		From("properties").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	property, err := scanProperty(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan property: %v", ErrScanRow, err)
	}

	return property, nil
}

// GetByOwner получает площадки владельца.
// По умолчанию архивные не возвращаются.
func (r *Repository) GetByOwner(ctx context.Context, ownerID int64, includeArchived bool) ([]*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(propertyColumns...).
		From("properties").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("name ASC, id ASC")

	if !includeArchived {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_archived": false})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	properties := make([]*domain.Property, 0)
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByOwner - scan row: %v", ErrScanRow, err)
		}
		properties = append(properties, property)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - rows error: %v", ErrScanRow, err)
	}

	return properties, nil
}

// Update обновляет площадку
func (r *Repository) Update(ctx context.Context, property *domain.Property) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("properties").
		Set("name", property.Name).
		Set("type", property.Type).
		Set("address", property.Address).
		Set("description", property.Description).
		Set("base_price", property.BasePrice).
		Set("currency", property.Currency).
		Set("capacity", property.Capacity).
		Set("min_stay", property.MinStay).
		Set("avito_listing_id", property.AvitoListingID).
		Set("is_archived", property.IsArchived).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": property.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPropertyNotFound
	}

	return nil
}

// Delete физически удаляет площадку.
// Сервисный слой обязан предварительно проверить блокирующие бронирования.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("properties").
		Where(squirrel.Eq{"id": id}).
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
		return ErrPropertyNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (*domain.Property, error) {
	var property domain.Property
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&property.ID,
		&property.OwnerID,
		&property.Name,
		&property.Type,
		&property.Address,
		&property.Description,
		&property.BasePrice,
		&property.Currency,
		&property.Capacity,
		&property.MinStay,
		&property.AvitoListingID,
		&property.IsArchived,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	property.CreatedAt = createdAt.Time
	property.UpdatedAt = updatedAt.Time

	return &property, nil
}
