package guest

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/dbmetrics"
	"github.com/m0rven/STR-PropertyManager/pkg/psqlbuilder"
)

var guestColumns = []string{
	"id",
	"owner_id",
	"name",
	"phone",
	"email",
	"tags",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с гостями (CRM)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория гостей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает карточку гостя
func (r *Repository) Create(ctx context.Context, guest *domain.Guest) (*domain.Guest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("guests").
		Columns("owner_id", "name", "phone", "email", "tags", "notes").
		Values(
			guest.OwnerID,
			guest.Name,
			guest.Phone,
			guest.Email,
			pq.Array(guest.Tags),
			guest.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&guest.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	guest.CreatedAt = createdAt.Time
	guest.UpdatedAt = updatedAt.Time

	return guest, nil
}

// GetByID получает карточку гостя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(guestColumns...).
		From("guests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	guest, err := scanGuest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan guest: %v", ErrScanRow, err)
	}

	return guest, nil
}

// GetByOwnerWithFilter получает гостей владельца с фильтрацией
// по метке и поиском по имени/телефону
func (r *Repository) GetByOwnerWithFilter(ctx context.Context, filter domain.GuestsFilter) ([]*domain.Guest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(guestColumns...).
		From("guests").
		Where(squirrel.Eq{"owner_id": filter.OwnerID}).
		OrderBy("name ASC, id ASC")

	if filter.Tag != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("? = ANY(tags)", *filter.Tag))
	}

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"phone": pattern},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	guests := make([]*domain.Guest, 0)
	for rows.Next() {
		guest, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByOwnerWithFilter - scan row: %v", ErrScanRow, err)
		}
		guests = append(guests, guest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerWithFilter - rows error: %v", ErrScanRow, err)
	}

	return guests, nil
}

// Update обновляет карточку гостя
func (r *Repository) Update(ctx context.Context, guest *domain.Guest) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("guests").
		Set("name", guest.Name).
		Set("phone", guest.Phone).
		Set("email", guest.Email).
		Set("tags", pq.Array(guest.Tags)).
		Set("notes", guest.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": guest.ID}).
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
		return ErrGuestNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGuest(row rowScanner) (*domain.Guest, error) {
	var guest domain.Guest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&guest.ID,
		&guest.OwnerID,
		&guest.Name,
		&guest.Phone,
		&guest.Email,
		pq.Array(&guest.Tags),
		&guest.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	guest.CreatedAt = createdAt.Time
	guest.UpdatedAt = updatedAt.Time

	return &guest, nil
}
