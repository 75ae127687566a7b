package model

import (
	"time"

	"gorm.io/gorm"
)

// Goal is one step of a program template. Goals are ordered within their
// program and own their tasks and useful links exclusively.
type Goal struct {
	ID                     uint           `gorm:"primaryKey" json:"id"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
	InstitutionalProgramID uint           `gorm:"not null;index" json:"institutional_program_id"`
	Number                 int            `gorm:"not null" json:"number"`
	Subject                string         `gorm:"type:varchar(255)" json:"subject"`
	Description            string         `gorm:"type:text" json:"description"`
	DurationInDays         int            `gorm:"default:0" json:"duration_in_days"`

	// Relationships
	Tasks       []Task       `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE" json:"tasks"`
	UsefulLinks []UsefulLink `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE" json:"useful_links"`
}
