package model

import (
	"time"

	"gorm.io/gorm"
)

// UsefulLink is a titled URL attached to a program, goal or task. Exactly one
// owner foreign key is set per row; assignment instances get their own copies
// at clone time so template links and instance links diverge independently.
type UsefulLink struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Title     string         `gorm:"not null" json:"title"`
	Address   string         `gorm:"not null;type:text" json:"address"`

	// Owner foreign keys (one of)
	InstitutionalProgramID *uint `gorm:"index" json:"institutional_program_id,omitempty"`
	GoalID                 *uint `gorm:"index" json:"goal_id,omitempty"`
	TaskID                 *uint `gorm:"index" json:"task_id,omitempty"`
	MenteeMentorProgramID  *uint `gorm:"index" json:"mentee_mentor_program_id,omitempty"`
	MenteeMentorGoalID     *uint `gorm:"index" json:"mentee_mentor_goal_id,omitempty"`
}
