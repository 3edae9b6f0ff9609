package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"room-service/internal/models"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	// ErrCodeTaken signals a room code collision; callers regenerate and retry.
	ErrCodeTaken = errors.New("room code already taken")
)

// RoomRepository abstracts room persistence.
type RoomRepository interface {
	CreateRoom(ctx context.Context, code string, durationMinutes int, createdAt, expiresAt time.Time) (models.Room, error)
	GetRoomByCode(ctx context.Context, code string) (models.Room, error)
	GetRoomByID(ctx context.Context, roomID int) (models.Room, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// RoomRepo is a sqlx implementation of RoomRepository.
type RoomRepo struct {
	db *sqlx.DB
}

// NewRoomRepo constructs a RoomRepo.
func NewRoomRepo(db *sqlx.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// CreateRoom inserts a room. A unique violation on the code column is
// reported as ErrCodeTaken so the caller can retry with a fresh code.
func (r *RoomRepo) CreateRoom(ctx context.Context, code string, durationMinutes int, createdAt, expiresAt time.Time) (models.Room, error) {
	var room models.Room
	err := r.db.QueryRowxContext(ctx, `INSERT INTO rooms (code, duration_minutes, created_at, expires_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, code, duration_minutes, created_at, expires_at`,
		code, durationMinutes, createdAt, expiresAt).
		Scan(&room.ID, &room.Code, &room.DurationMinutes, &room.CreatedAt, &room.ExpiresAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return models.Room{}, ErrCodeTaken
		}
		return models.Room{}, err
	}
	return room, nil
}

// GetRoomByCode fetches a room by its public code. The code must already
// be normalized to uppercase. Expiry is not evaluated here; validity is
// derived by the caller from ExpiresAt.
func (r *RoomRepo) GetRoomByCode(ctx context.Context, code string) (models.Room, error) {
	var room models.Room
	err := r.db.GetContext(ctx, &room, `SELECT id, code, duration_minutes, created_at, expires_at FROM rooms WHERE code=$1`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Room{}, ErrRoomNotFound
	}
	return room, err
}

// GetRoomByID fetches a room by id.
func (r *RoomRepo) GetRoomByID(ctx context.Context, roomID int) (models.Room, error) {
	var room models.Room
	err := r.db.GetContext(ctx, &room, `SELECT id, code, duration_minutes, created_at, expires_at FROM rooms WHERE id=$1`, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Room{}, ErrRoomNotFound
	}
	return room, err
}

// DeleteExpired removes every room whose validity window has passed and
// returns how many were removed. Messages go with their room via the
// ON DELETE CASCADE constraint. Safe to call concurrently; a room deleted
// by another sweep simply no longer matches the filter.
func (r *RoomRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
