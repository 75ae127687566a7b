package services

import (
	"context"
	"fmt"
	"time"

	"github.com/livingprogress/mentorme-api/model"
	"github.com/livingprogress/mentorme-api/utils/query"
	"gorm.io/gorm"
)

// AssignmentService creates and serves per-pairing program instances. The
// clone algorithm is split in two: BuildAssignment assembles the complete
// instance graph in memory without touching the store, and Instantiate
// commits that graph atomically. The template is read-only throughout.
type AssignmentService struct {
	db *gorm.DB
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{db: db}
}

// BuildAssignment walks a fully loaded program template and produces the
// unpersisted instance graph for one mentee/mentor pairing. Goals and tasks
// keep back-links to their template rows; useful links and documents are
// copied by value; responsibilities are value snapshots with no back-link.
// Every sequence preserves the template's order.
func BuildAssignment(template *model.InstitutionalProgram, menteeID, mentorID uint) *model.MenteeMentorProgram {
	instance := &model.MenteeMentorProgram{
		InstitutionalProgramID: template.ID,
		MenteeID:               menteeID,
		MentorID:               mentorID,
		Goals:                  make([]model.MenteeMentorGoal, 0, len(template.Goals)),
		Responsibilities:       make([]model.MenteeMentorResponsibility, 0, len(template.Responsibilities)),
		UsefulLinks:            copyUsefulLinks(template.UsefulLinks),
		Documents:              copyDocuments(template.Documents),
	}

	for _, goal := range template.Goals {
		instanceGoal := model.MenteeMentorGoal{
			GoalID:      goal.ID,
			Tasks:       make([]model.MenteeMentorTask, 0, len(goal.Tasks)),
			UsefulLinks: copyUsefulLinks(goal.UsefulLinks),
		}
		for _, task := range goal.Tasks {
			instanceGoal.Tasks = append(instanceGoal.Tasks, model.MenteeMentorTask{
				TaskID: task.ID,
			})
		}
		instance.Goals = append(instance.Goals, instanceGoal)
	}

	for _, responsibility := range template.Responsibilities {
		instance.Responsibilities = append(instance.Responsibilities, model.MenteeMentorResponsibility{
			Number:               responsibility.Number,
			Title:                responsibility.Title,
			Date:                 copyTime(responsibility.Date),
			MenteeResponsibility: responsibility.MenteeResponsibility,
			MentorResponsibility: responsibility.MentorResponsibility,
		})
	}

	return instance
}

func copyUsefulLinks(links []model.UsefulLink) []model.UsefulLink {
	copies := make([]model.UsefulLink, 0, len(links))
	for _, link := range links {
		copies = append(copies, model.UsefulLink{
			Title:   link.Title,
			Address: link.Address,
		})
	}
	return copies
}

func copyDocuments(documents []model.Document) []model.Document {
	copies := make([]model.Document, 0, len(documents))
	for _, document := range documents {
		copies = append(copies, model.Document{
			FileName:         document.FileName,
			SpacesURL:        document.SpacesURL,
			SpacesKey:        document.SpacesKey,
			ContentType:      document.ContentType,
			FileSize:         document.FileSize,
			PageCount:        document.PageCount,
			UploadedByUserID: document.UploadedByUserID,
		})
	}
	return copies
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}

// Instantiate clones a program template for a mentee/mentor pairing. The new
// graph is committed as a single transaction: either the whole instance
// becomes visible or none of it does. Instantiation is deliberately not
// idempotent; assigning the same template to the same pair twice produces two
// independent instances.
func (s *AssignmentService) Instantiate(ctx context.Context, programID, menteeID, mentorID uint) (*model.MenteeMentorProgram, error) {
	var template model.InstitutionalProgram
	err := s.db.WithContext(ctx).
		Preload("Goals", orderByID).
		Preload("Goals.Tasks", orderByID).
		Preload("Goals.UsefulLinks", orderByID).
		Preload("Responsibilities", orderByID).
		Preload("UsefulLinks", orderByID).
		Preload("Documents", orderByID).
		First(&template, programID).Error
	if err != nil {
		return nil, fmt.Errorf("program %d: %w", programID, err)
	}

	if err := s.requireUser(ctx, menteeID, model.RoleMentee); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, mentorID, model.RoleMentor); err != nil {
		return nil, err
	}

	instance := BuildAssignment(&template, menteeID, mentorID)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(instance).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetAssignment(ctx, instance.ID)
}

func (s *AssignmentService) requireUser(ctx context.Context, id uint, role string) error {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return fmt.Errorf("%s %d: %w", role, id, err)
	}
	if user.Role != role {
		return fmt.Errorf("%s %d: %w", role, id, gorm.ErrRecordNotFound)
	}
	return nil
}

// GetAssignment loads an instance with its full graph, including the
// template rows its back-links point at.
func (s *AssignmentService) GetAssignment(ctx context.Context, id uint) (*model.MenteeMentorProgram, error) {
	var assignment model.MenteeMentorProgram
	err := s.db.WithContext(ctx).
		Preload("InstitutionalProgram").
		Preload("Mentee").
		Preload("Mentor").
		Preload("Goals", orderByID).
		Preload("Goals.Goal").
		Preload("Goals.Tasks", orderByID).
		Preload("Goals.Tasks.Task").
		Preload("Goals.UsefulLinks", orderByID).
		Preload("Responsibilities", orderByID).
		Preload("UsefulLinks", orderByID).
		Preload("Documents", orderByID).
		First(&assignment, id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// AssignmentSearchCriteria holds the optional filter fields for assignment
// search.
type AssignmentSearchCriteria struct {
	MenteeID               *uint
	MentorID               *uint
	InstitutionalProgramID *uint
}

var assignmentSearchDefinition = query.Definition[model.MenteeMentorProgram]{
	DefaultSort: "id",
	Comparators: map[string]query.Comparator[model.MenteeMentorProgram]{
		"id": func(a, b model.MenteeMentorProgram) int {
			return query.CompareUint(a.ID, b.ID)
		},
		"menteeId": func(a, b model.MenteeMentorProgram) int {
			return query.CompareUint(a.MenteeID, b.MenteeID)
		},
		"mentorId": func(a, b model.MenteeMentorProgram) int {
			return query.CompareUint(a.MentorID, b.MentorID)
		},
		"createdOn": func(a, b model.MenteeMentorProgram) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		},
	},
}

func (c AssignmentSearchCriteria) predicates() []query.Predicate[model.MenteeMentorProgram] {
	var predicates []query.Predicate[model.MenteeMentorProgram]

	if c.MenteeID != nil {
		id := *c.MenteeID
		predicates = append(predicates, func(a model.MenteeMentorProgram) bool {
			return a.MenteeID == id
		})
	}
	if c.MentorID != nil {
		id := *c.MentorID
		predicates = append(predicates, func(a model.MenteeMentorProgram) bool {
			return a.MentorID == id
		})
	}
	if c.InstitutionalProgramID != nil {
		id := *c.InstitutionalProgramID
		predicates = append(predicates, func(a model.MenteeMentorProgram) bool {
			return a.InstitutionalProgramID == id
		})
	}

	return predicates
}

// Search filters, sorts and paginates assignment instances.
func (s *AssignmentService) Search(ctx context.Context, criteria AssignmentSearchCriteria, opts query.Options) (query.Result[model.MenteeMentorProgram], error) {
	var assignments []model.MenteeMentorProgram
	if err := s.db.WithContext(ctx).
		Preload("Mentee").
		Preload("Mentor").
		Order("id ASC").
		Find(&assignments).Error; err != nil {
		return query.Result[model.MenteeMentorProgram]{}, err
	}

	return query.Search(assignments, criteria.predicates(), opts, assignmentSearchDefinition)
}

// SetTaskProgress marks an instance task started or completed. Progress is
// instance state only; the template task is never written.
func (s *AssignmentService) SetTaskProgress(ctx context.Context, taskID uint, completed bool) (*model.MenteeMentorTask, error) {
	var task model.MenteeMentorTask
	if err := s.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	if task.StartedOn == nil {
		task.StartedOn = &now
	}
	if completed {
		task.CompletedOn = &now
	} else {
		task.CompletedOn = nil
	}

	if err := s.db.WithContext(ctx).Save(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}
