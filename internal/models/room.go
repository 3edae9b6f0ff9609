package models

import "time"

// Room is a disposable chat room joined by its public code.
type Room struct {
	ID              int       `db:"id" json:"id"`
	Code            string    `db:"code" json:"code"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	ExpiresAt       time.Time `db:"expires_at" json:"expires_at"`
}

// Expired reports whether the room's validity window has passed.
// Validity is always derived from ExpiresAt, never stored.
func (r Room) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
