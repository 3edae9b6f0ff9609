package repositories

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"room-service/internal/models"
)

// ErrRoomGone signals an insert against a room that no longer exists.
var ErrRoomGone = errors.New("room no longer exists")

// MessageRepository defines interactions with a room's message log.
type MessageRepository interface {
	CreateMessage(ctx context.Context, roomID int, senderName string, content string) (models.Message, error)
	ListMessages(ctx context.Context, roomID int) ([]models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateMessage appends a message to a room's log. An empty sender name
// falls back to the anonymous default. A foreign key violation means the
// room was swept between the caller's validity check and this insert.
func (r *MessageRepo) CreateMessage(ctx context.Context, roomID int, senderName string, content string) (models.Message, error) {
	if senderName == "" {
		senderName = models.DefaultSenderName
	}

	var msg models.Message
	err := r.db.QueryRowxContext(ctx, `INSERT INTO messages (room_id, sender_name, content) VALUES ($1, $2, $3)
        RETURNING id, room_id, sender_name, content, created_at`,
		roomID, senderName, content).
		Scan(&msg.ID, &msg.RoomID, &msg.SenderName, &msg.Content, &msg.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return models.Message{}, ErrRoomGone
		}
		return models.Message{}, err
	}
	return msg, nil
}

// ListMessages returns the room's messages ordered by creation time,
// insertion order breaking ties.
func (r *MessageRepo) ListMessages(ctx context.Context, roomID int) ([]models.Message, error) {
	query := `SELECT id, room_id, sender_name, content, created_at
        FROM messages
        WHERE room_id=$1
        ORDER BY created_at ASC, id ASC`
	msgs := []models.Message{}
	err := r.db.SelectContext(ctx, &msgs, query, roomID)
	return msgs, err
}
