package model

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two users. The log is append-only.
// ID is a monotonically increasing sequence; it breaks ties when two
// messages share a timestamp.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uuid.UUID `json:"sender_id" gorm:"type:char(36);not null;index"`
	ReceiverID uuid.UUID `json:"receiver_id" gorm:"type:char(36);not null;index"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at"`
}
