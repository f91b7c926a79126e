package model

import (
	"time"

	"github.com/google/uuid"
)

// Rating is one user's score for a project. The unique index enforces at
// most one rating per (project, user) pair; resubmitting replaces the score.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:char(36);not null;uniqueIndex:idx_ratings_project_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_ratings_project_user"`
	Score     int       `json:"score" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
