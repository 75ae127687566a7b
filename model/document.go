package model

import (
	"time"

	"gorm.io/gorm"
)

// Document is an opaque reference to a file uploaded to Spaces and attached to
// a program template or an assignment instance. The platform stores only the
// descriptor; file bytes live in object storage.
type Document struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	FileName         string         `gorm:"not null" json:"file_name"`
	SpacesURL        string         `gorm:"not null" json:"spaces_url"`
	SpacesKey        string         `gorm:"not null" json:"spaces_key"`
	ContentType      string         `gorm:"type:varchar(100)" json:"content_type"`
	FileSize         int64          `gorm:"default:0" json:"file_size"`
	PageCount        int            `gorm:"default:0" json:"page_count"`
	UploadedByUserID uint           `gorm:"index" json:"uploaded_by_user_id"`

	// Owner foreign keys (one of)
	InstitutionalProgramID *uint `gorm:"index" json:"institutional_program_id,omitempty"`
	MenteeMentorProgramID  *uint `gorm:"index" json:"mentee_mentor_program_id,omitempty"`
}
