package chat

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
	"github.com/m0rven/STR-PropertyManager/pkg/dbmetrics"
	"github.com/m0rven/STR-PropertyManager/pkg/psqlbuilder"
)

var chatColumns = []string{
	"id",
	"owner_id",
	"avito_chat_id",
	"property_id",
	"guest_name",
	"unread_count",
	"last_message_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с зеркалом чатов мессенджера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория чатов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertChat создает чат либо возвращает существующий по (owner_id, avito_chat_id).
// При повторном приёме обновляет имя гостя и привязку к площадке.
func (r *Repository) UpsertChat(ctx context.Context, chat *domain.Chat) (*domain.Chat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("chats").
		Columns("owner_id", "avito_chat_id", "property_id", "guest_name").
		Values(chat.OwnerID, chat.AvitoChatID, chat.PropertyID, chat.GuestName).
		Suffix(`ON CONFLICT (owner_id, avito_chat_id)
			DO UPDATE SET guest_name = EXCLUDED.guest_name,
				property_id = COALESCE(EXCLUDED.property_id, chats.property_id),
				updated_at = NOW()
			RETURNING id, unread_count, last_message_at, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertChat - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt, lastMessageAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&chat.ID,
		&chat.UnreadCount,
		&lastMessageAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertChat - execute insert: %v", ErrExecQuery, err)
	}

	if lastMessageAt.Valid {
		chat.LastMessageAt = &lastMessageAt.Time
	}
	chat.CreatedAt = createdAt.Time
	chat.UpdatedAt = updatedAt.Time

	return chat, nil
}

// GetByID получает чат по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Chat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(chatColumns...).
		From("chats").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	chat, err := scanChat(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrChatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan chat: %v", ErrScanRow, err)
	}

	return chat, nil
}

// GetByOwner получает чаты владельца, свежие сверху
func (r *Repository) GetByOwner(ctx context.Context, ownerID int64) ([]*domain.Chat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(chatColumns...).
		From("chats").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("last_message_at DESC NULLS LAST, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	chats := make([]*domain.Chat, 0)
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByOwner - scan row: %v", ErrScanRow, err)
		}
		chats = append(chats, chat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - rows error: %v", ErrScanRow, err)
	}

	return chats, nil
}

// InsertMessage добавляет сообщение в чат.
// Приём идемпотентен: повтор по (chat_id, avito_message_id) возвращает ErrDuplicateMessage.
func (r *Repository) InsertMessage(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("messages").
		Columns("chat_id", "avito_message_id", "direction", "text", "sent_at").
		Values(message.ChatID, message.AvitoMessageID, message.Direction, message.Text, message.SentAt).
		Suffix("ON CONFLICT (chat_id, avito_message_id) DO NOTHING RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: InsertMessage - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&message.ID, &createdAt)
	if err == sql.ErrNoRows {
		// DO NOTHING не вернул строку - сообщение уже принято ранее
		return nil, ErrDuplicateMessage
	}
	if err != nil {
		return nil, fmt.Errorf("%w: InsertMessage - execute insert: %v", ErrExecQuery, err)
	}

	message.CreatedAt = createdAt.Time

	return message, nil
}

// GetMessages получает последние limit сообщений чата в хронологическом порядке.
// Читаем от новых к старым, чтобы лимит отсекал старые сообщения,
// и разворачиваем результат перед возвратом.
func (r *Repository) GetMessages(ctx context.Context, chatID int64, limit int) ([]*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"chat_id",
		"avito_message_id",
		"direction",
		"text",
		"sent_at",
		"created_at",
	).
		From("messages").
		Where(squirrel.Eq{"chat_id": chatID}).
		OrderBy("sent_at DESC, id DESC")

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(limit))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMessages - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMessages - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		var message domain.Message
		var createdAt sql.NullTime

		err := rows.Scan(
			&message.ID,
			&message.ChatID,
			&message.AvitoMessageID,
			&message.Direction,
			&message.Text,
			&message.SentAt,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetMessages - scan row: %v", ErrScanRow, err)
		}

		message.CreatedAt = createdAt.Time
		messages = append(messages, &message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetMessages - rows error: %v", ErrScanRow, err)
	}

	reverseMessages(messages)

	return messages, nil
}

// reverseMessages разворачивает выборку от новых к старым
// в хронологический порядок
func reverseMessages(messages []*domain.Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}

// TouchChat обновляет время последнего сообщения и счетчик непрочитанных.
// incrementUnread = true для входящих сообщений.
func (r *Repository) TouchChat(ctx context.Context, chatID int64, lastMessageAt time.Time, incrementUnread bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("chats").
		Set("last_message_at", squirrel.Expr("GREATEST(COALESCE(last_message_at, ?::timestamptz), ?::timestamptz)", lastMessageAt, lastMessageAt)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": chatID})

	if incrementUnread {
		updateBuilder = updateBuilder.Set("unread_count", squirrel.Expr("unread_count + 1"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: TouchChat - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: TouchChat - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: TouchChat - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrChatNotFound
	}

	return nil
}

// ResetUnread сбрасывает счетчик непрочитанных сообщений чата
func (r *Repository) ResetUnread(ctx context.Context, chatID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("chats").
		Set("unread_count", 0).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": chatID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ResetUnread - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ResetUnread - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChat(row rowScanner) (*domain.Chat, error) {
	var chat domain.Chat
	var createdAt, updatedAt, lastMessageAt sql.NullTime

	err := row.Scan(
		&chat.ID,
		&chat.OwnerID,
		&chat.AvitoChatID,
		&chat.PropertyID,
		&chat.GuestName,
		&chat.UnreadCount,
		&lastMessageAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastMessageAt.Valid {
		chat.LastMessageAt = &lastMessageAt.Time
	}
	chat.CreatedAt = createdAt.Time
	chat.UpdatedAt = updatedAt.Time

	return &chat, nil
}
