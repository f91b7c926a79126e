package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role is the closed set of access levels. Anything outside this set is
// denied by Role.Meets.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Meets reports whether r satisfies the required role. Admins satisfy every
// requirement; an unrecognized role satisfies none.
func (r Role) Meets(required Role) bool {
	switch required {
	case RoleAdmin:
		return r == RoleAdmin
	case RoleMember:
		return r == RoleMember || r == RoleAdmin
	default:
		return false
	}
}

// User represents a registered member of the platform.
type User struct {
	ID             uuid.UUID                   `json:"id" gorm:"type:char(36);primaryKey"`
	Name           string                      `json:"name" gorm:"size:255;not null"`
	Email          string                      `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string                      `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role           Role                        `json:"role" gorm:"type:varchar(20);not null;default:'member'"`
	Department     string                      `json:"department,omitempty" gorm:"size:255"`
	GraduationYear int                         `json:"graduation_year,omitempty"`
	Skills         datatypes.JSONSlice[string] `json:"skills"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
