package model

import (
	"time"

	"gorm.io/gorm"
)

// Responsibility is a scalar row of a program template describing what the
// mentee and the mentor each commit to. Unlike goals and tasks, cloning a
// program copies responsibilities by value with no reference back to the
// template row.
type Responsibility struct {
	ID                     uint           `gorm:"primaryKey" json:"id"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
	InstitutionalProgramID uint           `gorm:"not null;index" json:"institutional_program_id"`
	Number                 int            `gorm:"not null" json:"number"`
	Title                  string         `gorm:"not null" json:"title"`
	Date                   *time.Time     `json:"date,omitempty"`
	MenteeResponsibility   string         `gorm:"type:text" json:"mentee_responsibility"`
	MentorResponsibility   string         `gorm:"type:text" json:"mentor_responsibility"`
}
