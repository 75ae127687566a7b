package services

import (
	"context"
	"testing"

	"github.com/livingprogress/mentorme-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestListGoalsReturnsProgramGoalsInOrder(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewGoalService(db)

	goals, err := svc.ListGoals(context.Background(), programs[0].ID)
	require.NoError(t, err)

	require.Len(t, goals, 2)
	assert.Equal(t, "Self assessment", goals[0].Subject)
	assert.Equal(t, "Application essays", goals[1].Subject)
	assert.Len(t, goals[0].Tasks, 2)
}

func TestListGoalsMissingProgram(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := NewGoalService(db)

	_, err := svc.ListGoals(context.Background(), 9999)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetGoalIsScopedToProgram(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewGoalService(db)
	ctx := context.Background()

	goals, err := svc.ListGoals(ctx, programs[0].ID)
	require.NoError(t, err)
	goalID := goals[0].ID

	goal, err := svc.GetGoal(ctx, programs[0].ID, goalID)
	require.NoError(t, err)
	assert.Equal(t, "Self assessment", goal.Subject)

	// The same goal id under a different program is not found.
	_, err = svc.GetGoal(ctx, programs[1].ID, goalID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateGoalUnderProgram(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewGoalService(db)
	ctx := context.Background()

	goal := &model.Goal{
		Number:  3,
		Subject: "Campus visits",
		Tasks: []model.Task{
			{Number: 1, Description: "Book a campus tour"},
		},
	}
	require.NoError(t, svc.CreateGoal(ctx, programs[0].ID, goal))

	assert.Equal(t, programs[0].ID, goal.InstitutionalProgramID)
	assert.NotZero(t, goal.ID)

	loaded, err := svc.GetGoal(ctx, programs[0].ID, goal.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Tasks, 1)
	assert.Equal(t, "Book a campus tour", loaded.Tasks[0].Description)
}

func TestCreateGoalMissingProgram(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := NewGoalService(db)

	err := svc.CreateGoal(context.Background(), 9999, &model.Goal{Number: 1, Subject: "Orphan"})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteGoalRemovesOwnedRows(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewGoalService(db)
	ctx := context.Background()

	goals, err := svc.ListGoals(ctx, programs[0].ID)
	require.NoError(t, err)
	goal := goals[0]

	require.NoError(t, svc.DeleteGoal(ctx, programs[0].ID, goal.ID))

	_, err = svc.GetGoal(ctx, programs[0].ID, goal.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var taskCount int64
	require.NoError(t, db.Model(&model.Task{}).Where("goal_id = ?", goal.ID).Count(&taskCount).Error)
	assert.Equal(t, int64(0), taskCount)

	var linkCount int64
	require.NoError(t, db.Model(&model.UsefulLink{}).Where("goal_id = ?", goal.ID).Count(&linkCount).Error)
	assert.Equal(t, int64(0), linkCount)

	// The sibling goal is untouched.
	remaining, err := svc.ListGoals(ctx, programs[0].ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestCreateAndDeleteTask(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewGoalService(db)
	ctx := context.Background()

	goals, err := svc.ListGoals(ctx, programs[0].ID)
	require.NoError(t, err)
	goalID := goals[1].ID

	task := &model.Task{Number: 2, Description: "Request recommendation letters"}
	require.NoError(t, svc.CreateTask(ctx, programs[0].ID, goalID, task))
	assert.Equal(t, goalID, task.GoalID)
	assert.NotZero(t, task.ID)

	require.NoError(t, svc.DeleteTask(ctx, task.ID))

	err = svc.DeleteTask(ctx, task.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateTaskUnderWrongProgram(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewGoalService(db)
	ctx := context.Background()

	goals, err := svc.ListGoals(ctx, programs[0].ID)
	require.NoError(t, err)

	task := &model.Task{Number: 1, Description: "Misplaced task"}
	err = svc.CreateTask(ctx, programs[1].ID, goals[0].ID, task)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSetTaskCustomDataUpserts(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	mentee, mentor := seedPair(t, db)
	svc := NewGoalService(db)
	ctx := context.Background()

	goals, err := svc.ListGoals(ctx, programs[0].ID)
	require.NoError(t, err)
	taskID := goals[0].Tasks[0].ID

	require.NoError(t, svc.SetTaskCustomData(ctx, taskID, &model.TaskCustomData{MenteeID: mentee.ID, MentorID: mentor.ID}))

	var data model.TaskCustomData
	require.NoError(t, db.Where("task_id = ?", taskID).First(&data).Error)
	assert.Equal(t, mentee.ID, data.MenteeID)

	// A second write replaces the existing row instead of adding one.
	other := model.User{Email: "second.mentee@example.com", PasswordHash: "x", Name: "Aisha Khan", Role: model.RoleMentee}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, svc.SetTaskCustomData(ctx, taskID, &model.TaskCustomData{MenteeID: other.ID, MentorID: mentor.ID}))

	var count int64
	require.NoError(t, db.Model(&model.TaskCustomData{}).Where("task_id = ?", taskID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, db.Where("task_id = ?", taskID).First(&data).Error)
	assert.Equal(t, other.ID, data.MenteeID)
}

func TestSetTaskCustomDataMissingTask(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := NewGoalService(db)

	err := svc.SetTaskCustomData(context.Background(), 9999, &model.TaskCustomData{MenteeID: 1, MentorID: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
