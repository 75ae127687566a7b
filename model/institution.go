package model

import (
	"time"

	"gorm.io/gorm"
)

// Institution represents the organization that owns mentoring program templates
type Institution struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	InstitutionName    string         `gorm:"not null;uniqueIndex" json:"institution_name"`
	ParentOrganization string         `gorm:"type:varchar(255)" json:"parent_organization"`
	City               string         `gorm:"type:varchar(100)" json:"city"`
	Email              string         `gorm:"type:varchar(255)" json:"email"`
	Phone              string         `gorm:"type:varchar(30)" json:"phone"`
	Description        string         `gorm:"type:text" json:"description"`

	// Relationships
	Programs []InstitutionalProgram `gorm:"foreignKey:InstitutionID;constraint:OnDelete:CASCADE" json:"programs,omitempty"`
}
