package booking

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

var bookingColumns = []string{
	"id",
	"property_id",
	"owner_id",
	"guest_id",
	"guest_name",
	"guest_phone",
	"guest_email",
	"check_in",
	"check_out",
	"total_price",
	"currency",
	"status",
	"source",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её:
// создание с проверкой пересечения дат обязано выполняться в транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"property_id",
			"owner_id",
			"guest_id",
			"guest_name",
			"guest_phone",
			"guest_email",
			"check_in",
			"check_out",
			"total_price",
			"currency",
			"status",
			"source",
			"notes",
		).
		Values(
			booking.PropertyID,
			booking.OwnerID,
			booking.GuestID,
			booking.GuestName,
			booking.GuestPhone,
			booking.GuestEmail,
			booking.CheckIn,
			booking.CheckOut,
			booking.TotalPrice,
			booking.Currency,
			booking.Status,
			booking.Source,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку - чтение перед переносом/отменой
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByOwnerWithFilter получает бронирования владельца с гибкой фильтрацией
// по площадке, периоду, статусу и каналу
func (r *Repository) GetByOwnerWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"owner_id": filter.OwnerID})

	if filter.PropertyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"property_id": *filter.PropertyID})
	}

	if filter.GuestID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"guest_id": *filter.GuestID})
	}

	// Фильтрация по периоду: берём бронирования, пересекающие [From, To)
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"check_out": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"check_in": *filter.To})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	if filter.Source != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"source": *filter.Source})
	}

	selectBuilder = selectBuilder.OrderBy("check_in ASC, id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByPropertyInWindow получает активные бронирования площадки,
// пересекающие окно [from, to).
// Внутри транзакции добавляет FOR UPDATE - так проверка пересечения дат
// при создании/переносе исключает гонку параллельных записей.
func (r *Repository) GetByPropertyInWindow(ctx context.Context, propertyID int64, from, to types.DateString) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		Where(squirrel.Gt{"check_out": from}).
		Where(squirrel.Lt{"check_in": to}).
		OrderBy("check_in ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyInWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Update обновляет редактируемые поля бронирования
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("guest_id", booking.GuestID).
		Set("guest_name", booking.GuestName).
		Set("guest_phone", booking.GuestPhone).
		Set("guest_email", booking.GuestEmail).
		Set("total_price", booking.TotalPrice).
		Set("currency", booking.Currency).
		Set("status", booking.Status).
		Set("source", booking.Source).
		Set("notes", booking.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return requireRowsAffected(result, "Update")
}

// Move переносит бронирование на другую площадку и/или даты
func (r *Repository) Move(ctx context.Context, id int64, propertyID int64, checkIn, checkOut types.DateString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("property_id", propertyID).
		Set("check_in", checkIn).
		Set("check_out", checkOut).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Move - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Move - execute update: %v", ErrExecQuery, err)
	}

	return requireRowsAffected(result, "Move")
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return requireRowsAffected(result, "UpdateStatus")
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return requireRowsAffected(result, "Cancel")
}

// CountBlockingForProperty считает бронирования, блокирующие удаление площадки:
// оплаченные, а также активные с датой выезда не раньше today
func (r *Repository) CountBlockingForProperty(ctx context.Context, propertyID int64, today types.DateString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.Or{
			squirrel.Eq{"status": string(domain.StatusPaid)},
			squirrel.And{
				squirrel.NotEq{"status": string(domain.StatusCancelled)},
				squirrel.NotEq{"status": string(domain.StatusCompleted)},
				squirrel.GtOrEq{"check_out": today},
			},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountBlockingForProperty - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBlockingForProperty - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// PropertyStatsRow агрегированная статистика бронирований по площадке за период
type PropertyStatsRow struct {
	PropertyID    int64
	BookingsCount int
	NightsBooked  int
	Revenue       float64
}

// GetStatsByOwner возвращает агрегаты по неотменённым бронированиям владельца,
// пересекающим период [from, to). Ночи обрезаются границами периода.
func (r *Repository) GetStatsByOwner(ctx context.Context, ownerID int64, from, to types.DateString) ([]PropertyStatsRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"property_id",
		"COUNT(*) AS bookings_count",
		"COALESCE(SUM(LEAST(check_out, ?::date) - GREATEST(check_in, ?::date)), 0) AS nights_booked",
		"COALESCE(SUM(total_price), 0) AS revenue",
	).
		From("bookings").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		Where(squirrel.Gt{"check_out": from}).
		Where(squirrel.Lt{"check_in": to}).
		GroupBy("property_id").
		OrderBy("property_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStatsByOwner - build select query: %v", ErrBuildQuery, err)
	}

	// Первые два плейсхолдера - границы периода из SELECT-выражения
	args = append([]interface{}{to, from}, args...)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStatsByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := make([]PropertyStatsRow, 0)
	for rows.Next() {
		var row PropertyStatsRow
		if err := rows.Scan(&row.PropertyID, &row.BookingsCount, &row.NightsBooked, &row.Revenue); err != nil {
			return nil, fmt.Errorf("%w: GetStatsByOwner - scan row: %v", ErrScanRow, err)
		}
		stats = append(stats, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStatsByOwner - rows error: %v", ErrScanRow, err)
	}

	return stats, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.PropertyID,
		&booking.OwnerID,
		&booking.GuestID,
		&booking.GuestName,
		&booking.GuestPhone,
		&booking.GuestEmail,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.TotalPrice,
		&booking.Currency,
		&booking.Status,
		&booking.Source,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func requireRowsAffected(result sql.Result, method string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
