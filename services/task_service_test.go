package services

import (
	"context"
	"testing"

	"github.com/livingprogress/mentorme-api/model"
	"github.com/livingprogress/mentorme-api/utils/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTaskSearchByDescription(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := NewTaskService(db)

	result, err := svc.Search(context.Background(), TaskSearchCriteria{Description: "questionnaire"}, query.Options{})
	require.NoError(t, err)

	require.Len(t, result.Entities, 1)
	assert.Equal(t, "Complete the interests questionnaire", result.Entities[0].Description)
}

func TestTaskSearchByGoal(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewTaskService(db)
	ctx := context.Background()

	goals, err := NewGoalService(db).ListGoals(ctx, programs[0].ID)
	require.NoError(t, err)

	result, err := svc.Search(ctx, TaskSearchCriteria{GoalID: uintPtr(goals[0].ID)}, query.Options{})
	require.NoError(t, err)
	assert.Len(t, result.Entities, 2)

	result, err = svc.Search(ctx, TaskSearchCriteria{GoalID: uintPtr(goals[1].ID)}, query.Options{})
	require.NoError(t, err)
	assert.Len(t, result.Entities, 1)
}

func TestTaskSearchByCustomFlag(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	mentee, mentor := seedPair(t, db)
	svc := NewTaskService(db)
	ctx := context.Background()

	goals, err := NewGoalService(db).ListGoals(ctx, programs[0].ID)
	require.NoError(t, err)
	taskID := goals[0].Tasks[0].ID
	require.NoError(t, NewGoalService(db).SetTaskCustomData(ctx, taskID, &model.TaskCustomData{MenteeID: mentee.ID, MentorID: mentor.ID}))

	customized, err := svc.Search(ctx, TaskSearchCriteria{Custom: boolPtr(true)}, query.Options{})
	require.NoError(t, err)
	require.Len(t, customized.Entities, 1)
	assert.Equal(t, taskID, customized.Entities[0].ID)

	pristine, err := svc.Search(ctx, TaskSearchCriteria{Custom: boolPtr(false)}, query.Options{})
	require.NoError(t, err)
	assert.Len(t, pristine.Entities, 2)
}

func TestTaskSearchSortsByNumber(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := NewTaskService(db)

	result, err := svc.Search(context.Background(), TaskSearchCriteria{}, query.Options{SortColumn: "number", SortOrder: "DESC"})
	require.NoError(t, err)

	require.Len(t, result.Entities, 3)
	assert.Equal(t, 2, result.Entities[0].Number)
}

func TestGetTask(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewTaskService(db)
	ctx := context.Background()

	goals, err := NewGoalService(db).ListGoals(ctx, programs[0].ID)
	require.NoError(t, err)

	task, err := svc.GetTask(ctx, goals[0].Tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Complete the interests questionnaire", task.Description)

	_, err = svc.GetTask(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
