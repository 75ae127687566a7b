package services

import (
	"context"
	"strings"

	"github.com/livingprogress/mentorme-api/model"
	"github.com/livingprogress/mentorme-api/utils/query"
	"gorm.io/gorm"
)

// TaskService implements search and lookup over template tasks.
type TaskService struct {
	db *gorm.DB
}

// NewTaskService creates a new task service
func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// TaskSearchCriteria holds the optional filter fields for task search.
type TaskSearchCriteria struct {
	Description string
	GoalID      *uint
	Custom      *bool // presence test: task has (or has not) custom data attached
}

var taskSearchDefinition = query.Definition[model.Task]{
	DefaultSort: "id",
	Comparators: map[string]query.Comparator[model.Task]{
		"id": func(a, b model.Task) int {
			return query.CompareUint(a.ID, b.ID)
		},
		"number": func(a, b model.Task) int {
			return query.CompareInt(a.Number, b.Number)
		},
		"description": func(a, b model.Task) int {
			return strings.Compare(a.Description, b.Description)
		},
		"durationInDays": func(a, b model.Task) int {
			return query.CompareInt(a.DurationInDays, b.DurationInDays)
		},
	},
}

func (c TaskSearchCriteria) predicates() []query.Predicate[model.Task] {
	var predicates []query.Predicate[model.Task]

	if c.Description != "" {
		description := strings.ToLower(c.Description)
		predicates = append(predicates, func(t model.Task) bool {
			return strings.Contains(strings.ToLower(t.Description), description)
		})
	}
	if c.GoalID != nil {
		id := *c.GoalID
		predicates = append(predicates, func(t model.Task) bool {
			return t.GoalID == id
		})
	}
	if c.Custom != nil {
		custom := *c.Custom
		predicates = append(predicates, func(t model.Task) bool {
			return (t.CustomData != nil) == custom
		})
	}

	return predicates
}

// Search filters, sorts and paginates template tasks.
func (s *TaskService) Search(ctx context.Context, criteria TaskSearchCriteria, opts query.Options) (query.Result[model.Task], error) {
	var tasks []model.Task
	if err := s.db.WithContext(ctx).
		Preload("CustomData").
		Preload("UsefulLinks", orderByID).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return query.Result[model.Task]{}, err
	}

	return query.Search(tasks, criteria.predicates(), opts, taskSearchDefinition)
}

// GetTask loads one task with its links and custom data.
func (s *TaskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := s.db.WithContext(ctx).
		Preload("CustomData").
		Preload("UsefulLinks", orderByID).
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}
