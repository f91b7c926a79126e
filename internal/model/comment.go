package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment is an append-only remark on a project. Comments are never edited
// or deleted through the public API.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null"`
	UserName  string    `json:"user_name,omitempty" gorm:"-"` // resolved at read time
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}
