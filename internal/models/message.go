package models

import "time"

// DefaultSenderName is used when a message arrives without a sender name.
const DefaultSenderName = "Anonymous"

// Message is a single immutable entry in a room's message log.
type Message struct {
	ID         int       `db:"id" json:"id"`
	RoomID     int       `db:"room_id" json:"room_id"`
	SenderName string    `db:"sender_name" json:"sender_name"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// RoomEvent is broadcasted through websockets to room subscribers.
type RoomEvent struct {
	Type    string   `json:"type"`
	Message *Message `json:"message,omitempty"`
}
