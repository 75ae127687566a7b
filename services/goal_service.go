package services

import (
	"context"
	"fmt"

	"github.com/livingprogress/mentorme-api/model"
	"gorm.io/gorm"
)

// GoalService manages template goals and their nested tasks. Goals only exist
// inside a program template, so every operation is scoped by program.
type GoalService struct {
	db *gorm.DB
}

// NewGoalService creates a new goal service
func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

// ListGoals returns the goals of one program in ascending identity order.
func (s *GoalService) ListGoals(ctx context.Context, programID uint) ([]model.Goal, error) {
	var program model.InstitutionalProgram
	if err := s.db.WithContext(ctx).First(&program, programID).Error; err != nil {
		return nil, fmt.Errorf("program %d: %w", programID, err)
	}

	var goals []model.Goal
	err := s.db.WithContext(ctx).
		Preload("Tasks", orderByID).
		Preload("Tasks.UsefulLinks", orderByID).
		Preload("UsefulLinks", orderByID).
		Where("institutional_program_id = ?", programID).
		Order("id ASC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// GetGoal loads one goal of a program with its tasks and links.
func (s *GoalService) GetGoal(ctx context.Context, programID, goalID uint) (*model.Goal, error) {
	var goal model.Goal
	err := s.db.WithContext(ctx).
		Preload("Tasks", orderByID).
		Preload("Tasks.UsefulLinks", orderByID).
		Preload("Tasks.CustomData").
		Preload("UsefulLinks", orderByID).
		Where("institutional_program_id = ?", programID).
		First(&goal, goalID).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// CreateGoal persists a new goal with its nested tasks under a program.
func (s *GoalService) CreateGoal(ctx context.Context, programID uint, goal *model.Goal) error {
	var program model.InstitutionalProgram
	if err := s.db.WithContext(ctx).First(&program, programID).Error; err != nil {
		return fmt.Errorf("program %d: %w", programID, err)
	}

	goal.InstitutionalProgramID = programID
	if goal.Tasks == nil {
		goal.Tasks = []model.Task{}
	}
	if goal.UsefulLinks == nil {
		goal.UsefulLinks = []model.UsefulLink{}
	}
	return s.db.WithContext(ctx).Create(goal).Error
}

// UpdateGoal saves scalar field changes on an already-loaded goal.
func (s *GoalService) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	return s.db.WithContext(ctx).Save(goal).Error
}

// DeleteGoal removes a goal and the tasks, links and custom data it owns, in
// one transaction.
func (s *GoalService) DeleteGoal(ctx context.Context, programID, goalID uint) error {
	goal, err := s.GetGoal(ctx, programID, goalID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := make([]uint, 0, len(goal.Tasks))
		for _, task := range goal.Tasks {
			taskIDs = append(taskIDs, task.ID)
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&model.TaskCustomData{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&model.UsefulLink{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", taskIDs).Delete(&model.Task{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("goal_id = ?", goalID).Delete(&model.UsefulLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Goal{}, goalID).Error
	})
}

// CreateTask persists a new task under a goal of a program.
func (s *GoalService) CreateTask(ctx context.Context, programID, goalID uint, task *model.Task) error {
	if _, err := s.GetGoal(ctx, programID, goalID); err != nil {
		return err
	}

	task.GoalID = goalID
	if task.UsefulLinks == nil {
		task.UsefulLinks = []model.UsefulLink{}
	}
	return s.db.WithContext(ctx).Create(task).Error
}

// UpdateTask saves scalar field changes on an already-loaded task.
func (s *GoalService) UpdateTask(ctx context.Context, task *model.Task) error {
	return s.db.WithContext(ctx).Save(task).Error
}

// DeleteTask removes a task with its links and custom data.
func (s *GoalService) DeleteTask(ctx context.Context, taskID uint) error {
	var task model.Task
	if err := s.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.TaskCustomData{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&model.UsefulLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Task{}, taskID).Error
	})
}

// SetTaskCustomData creates or replaces the per-pairing custom data row of a
// template task.
func (s *GoalService) SetTaskCustomData(ctx context.Context, taskID uint, data *model.TaskCustomData) error {
	var task model.Task
	if err := s.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return fmt.Errorf("task %d: %w", taskID, err)
	}

	var existing model.TaskCustomData
	err := s.db.WithContext(ctx).Where("task_id = ?", taskID).First(&existing).Error
	switch {
	case err == nil:
		data.ID = existing.ID
		data.TaskID = taskID
		return s.db.WithContext(ctx).Save(data).Error
	case err == gorm.ErrRecordNotFound:
		data.TaskID = taskID
		return s.db.WithContext(ctx).Create(data).Error
	default:
		return err
	}
}
