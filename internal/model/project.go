package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Resource is an external link attached to a project.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Project represents a published project. Comments and ratings live in their
// own tables keyed by ProjectID.
type Project struct {
	ID                    uuid.UUID                     `json:"id" gorm:"type:char(36);primaryKey"`
	Title                 string                        `json:"title" gorm:"size:255;not null"`
	Description           string                        `json:"description" gorm:"type:text;not null"`
	Technologies          datatypes.JSONSlice[string]   `json:"technologies"`
	CreatorID             uuid.UUID                     `json:"creator_id" gorm:"type:char(36);not null;index"`
	ImplementationDetails string                        `json:"implementation_details,omitempty" gorm:"type:text"`
	Resources             datatypes.JSONSlice[Resource] `json:"resources"`
	CreatedAt             time.Time                     `json:"created_at"`
	UpdatedAt             time.Time                     `json:"updated_at"`

	// Relations
	Creator User `json:"-" gorm:"foreignKey:CreatorID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
