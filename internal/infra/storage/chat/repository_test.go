package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m0rven/STR-PropertyManager/internal/domain"
)

func messageAt(id int64, sentAt time.Time) *domain.Message {
	return &domain.Message{ID: id, SentAt: sentAt}
}

// Выборка идет от новых к старым, чтобы лимит отсекал старые сообщения;
// ответ при этом обязан быть хронологическим.
func TestReverseMessages(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	newestFirst := []*domain.Message{
		messageAt(3, base.Add(2*time.Hour)),
		messageAt(2, base.Add(time.Hour)),
		messageAt(1, base),
	}

	reverseMessages(newestFirst)

	assert.Equal(t, int64(1), newestFirst[0].ID)
	assert.Equal(t, int64(2), newestFirst[1].ID)
	assert.Equal(t, int64(3), newestFirst[2].ID)
	assert.True(t, newestFirst[0].SentAt.Before(newestFirst[1].SentAt))
	assert.True(t, newestFirst[1].SentAt.Before(newestFirst[2].SentAt))
}

func TestReverseMessages_EvenAndDegenerate(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	pair := []*domain.Message{
		messageAt(2, base.Add(time.Hour)),
		messageAt(1, base),
	}
	reverseMessages(pair)
	assert.Equal(t, int64(1), pair[0].ID)
	assert.Equal(t, int64(2), pair[1].ID)

	single := []*domain.Message{messageAt(1, base)}
	reverseMessages(single)
	assert.Equal(t, int64(1), single[0].ID)

	reverseMessages(nil)
}
