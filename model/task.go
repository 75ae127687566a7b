package model

import (
	"time"

	"gorm.io/gorm"
)

// Task is one unit of work inside a goal template. A task may carry a
// custom-data payload binding it to a specific mentee/mentor pair; tasks
// belonging to a pristine template normally have none.
type Task struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	GoalID         uint           `gorm:"not null;index" json:"goal_id"`
	Number         int            `gorm:"not null" json:"number"`
	Description    string         `gorm:"type:text" json:"description"`
	DurationInDays int            `gorm:"default:0" json:"duration_in_days"`

	// Relationships
	UsefulLinks []UsefulLink    `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"useful_links"`
	CustomData  *TaskCustomData `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"custom_data,omitempty"`
}

// TaskCustomData binds a task to a mentee/mentor pairing.
type TaskCustomData struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	TaskID    uint           `gorm:"not null;uniqueIndex" json:"task_id"`
	MenteeID  uint           `gorm:"not null;index" json:"mentee_id"`
	MentorID  uint           `gorm:"not null;index" json:"mentor_id"`

	// Relationships
	Mentee User `gorm:"foreignKey:MenteeID;constraint:OnDelete:CASCADE" json:"mentee,omitempty"`
	Mentor User `gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE" json:"mentor,omitempty"`
}
