package model

import (
	"time"

	"gorm.io/gorm"
)

// MenteeMentorProgram is an independent, mutable instance of a program
// template created when a mentee and mentor are paired. It keeps a read-only
// back-link to the originating template; the back-link is set at clone time
// and never re-pointed. Deleting the template later leaves the back-link
// dangling on purpose.
type MenteeMentorProgram struct {
	ID                     uint           `gorm:"primaryKey" json:"id"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
	InstitutionalProgramID uint           `gorm:"not null;index" json:"institutional_program_id"`
	MenteeID               uint           `gorm:"not null;index" json:"mentee_id"`
	MentorID               uint           `gorm:"not null;index" json:"mentor_id"`
	CompletedOn            *time.Time     `json:"completed_on,omitempty"`

	// Relationships
	InstitutionalProgram InstitutionalProgram         `gorm:"foreignKey:InstitutionalProgramID" json:"institutional_program,omitempty"`
	Mentee               User                         `gorm:"foreignKey:MenteeID" json:"mentee,omitempty"`
	Mentor               User                         `gorm:"foreignKey:MentorID" json:"mentor,omitempty"`
	Goals                []MenteeMentorGoal           `gorm:"foreignKey:MenteeMentorProgramID;constraint:OnDelete:CASCADE" json:"goals"`
	Responsibilities     []MenteeMentorResponsibility `gorm:"foreignKey:MenteeMentorProgramID;constraint:OnDelete:CASCADE" json:"responsibilities"`
	UsefulLinks          []UsefulLink                 `gorm:"foreignKey:MenteeMentorProgramID;constraint:OnDelete:CASCADE" json:"useful_links"`
	Documents            []Document                   `gorm:"foreignKey:MenteeMentorProgramID;constraint:OnDelete:CASCADE" json:"documents"`
}

// MenteeMentorGoal is the per-pairing instance of a template goal.
type MenteeMentorGoal struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
	MenteeMentorProgramID uint           `gorm:"not null;index" json:"mentee_mentor_program_id"`
	GoalID                uint           `gorm:"not null;index" json:"goal_id"`
	CompletedOn           *time.Time     `json:"completed_on,omitempty"`

	// Relationships
	Goal        Goal               `gorm:"foreignKey:GoalID" json:"goal,omitempty"`
	Tasks       []MenteeMentorTask `gorm:"foreignKey:MenteeMentorGoalID;constraint:OnDelete:CASCADE" json:"tasks"`
	UsefulLinks []UsefulLink       `gorm:"foreignKey:MenteeMentorGoalID;constraint:OnDelete:CASCADE" json:"useful_links"`
}

// MenteeMentorTask is the per-pairing instance of a template task. Progress
// state lives here and never touches the template.
type MenteeMentorTask struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	MenteeMentorGoalID uint           `gorm:"not null;index" json:"mentee_mentor_goal_id"`
	TaskID             uint           `gorm:"not null;index" json:"task_id"`
	StartedOn          *time.Time     `json:"started_on,omitempty"`
	CompletedOn        *time.Time     `json:"completed_on,omitempty"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}

// MenteeMentorResponsibility is a value snapshot of a template responsibility
// taken at clone time. It deliberately carries no reference to the template
// row: the pair's copy and the template evolve independently.
type MenteeMentorResponsibility struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
	MenteeMentorProgramID uint           `gorm:"not null;index" json:"mentee_mentor_program_id"`
	Number                int            `gorm:"not null" json:"number"`
	Title                 string         `gorm:"not null" json:"title"`
	Date                  *time.Time     `json:"date,omitempty"`
	MenteeResponsibility  string         `gorm:"type:text" json:"mentee_responsibility"`
	MentorResponsibility  string         `gorm:"type:text" json:"mentor_responsibility"`
}
