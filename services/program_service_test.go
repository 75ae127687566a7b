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

func programIDs(entities []model.InstitutionalProgram) []uint {
	result := make([]uint, 0, len(entities))
	for _, p := range entities {
		result = append(result, p.ID)
	}
	return result
}

func TestProgramSearchReturnsAllByDefault(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewProgramService(db, nil)

	result, err := svc.Search(context.Background(), ProgramSearchCriteria{}, query.Options{})
	require.NoError(t, err)

	assert.Equal(t, int64(6), result.Total)
	assert.Equal(t, []uint{programs[0].ID, programs[1].ID, programs[2].ID, programs[3].ID, programs[4].ID, programs[5].ID}, programIDs(result.Entities))
}

func TestProgramSearchByNameSubstring(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewProgramService(db, nil)

	result, err := svc.Search(context.Background(), ProgramSearchCriteria{ProgramName: "program 5"}, query.Options{})
	require.NoError(t, err)

	require.Len(t, result.Entities, 1)
	assert.Equal(t, programs[4].ID, result.Entities[0].ID)
}

func TestProgramSearchByInstitution(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewProgramService(db, nil)

	criteria := ProgramSearchCriteria{InstitutionID: uintPtr(programs[2].InstitutionID)}
	result, err := svc.Search(context.Background(), criteria, query.Options{})
	require.NoError(t, err)

	require.Len(t, result.Entities, 1)
	assert.Equal(t, programs[2].ID, result.Entities[0].ID)
}

func TestProgramSearchByDurationBounds(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewProgramService(db, nil)
	ctx := context.Background()

	// Only program 1 runs 20 days or longer.
	result, err := svc.Search(ctx, ProgramSearchCriteria{MinDurationInDays: intPtr(20)}, query.Options{})
	require.NoError(t, err)
	assert.Equal(t, []uint{programs[0].ID}, programIDs(result.Entities))

	// The bound is inclusive.
	result, err = svc.Search(ctx, ProgramSearchCriteria{MinDurationInDays: intPtr(25)}, query.Options{})
	require.NoError(t, err)
	assert.Equal(t, []uint{programs[0].ID}, programIDs(result.Entities))

	// Only program 6 runs 5 days or shorter.
	result, err = svc.Search(ctx, ProgramSearchCriteria{MaxDurationInDays: intPtr(5)}, query.Options{})
	require.NoError(t, err)
	assert.Equal(t, []uint{programs[5].ID}, programIDs(result.Entities))

	// Combined bounds.
	criteria := ProgramSearchCriteria{MinDurationInDays: intPtr(12), MaxDurationInDays: intPtr(18)}
	result, err = svc.Search(ctx, criteria, query.Options{})
	require.NoError(t, err)
	assert.Equal(t, []uint{programs[1].ID, programs[3].ID, programs[4].ID}, programIDs(result.Entities))
}

func TestProgramSearchLocaleNarrowsAndProjects(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewProgramService(db, nil)
	ctx := context.Background()

	result, err := svc.Search(ctx, ProgramSearchCriteria{Locale: "es"}, query.Options{})
	require.NoError(t, err)

	require.Len(t, result.Entities, 2)
	assert.Equal(t, programs[2].ID, result.Entities[0].ID)
	assert.Equal(t, "Programa Tres", result.Entities[0].ProgramName)
	assert.Equal(t, "Liderazgo comunitario.", result.Entities[0].Description)
	assert.Equal(t, programs[5].ID, result.Entities[1].ID)

	result, err = svc.Search(ctx, ProgramSearchCriteria{Locale: "en"}, query.Options{})
	require.NoError(t, err)
	assert.Len(t, result.Entities, 4)
}

func TestProgramSearchLocaleWithoutOverlaysIsEmpty(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := NewProgramService(db, nil)

	result, err := svc.Search(context.Background(), ProgramSearchCriteria{Locale: "fr"}, query.Options{})
	require.NoError(t, err)

	assert.Empty(t, result.Entities)
	assert.Equal(t, int64(0), result.Total)
}

func TestProgramSearchSortsByLocalizedName(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewProgramService(db, nil)

	// In base names program 3 sorts before program 6, but the Spanish
	// overlays reverse that: "Programa Seis" sorts before "Programa Tres".
	criteria := ProgramSearchCriteria{Locale: "es"}
	opts := query.Options{SortColumn: "programName"}
	result, err := svc.Search(context.Background(), criteria, opts)
	require.NoError(t, err)

	require.Len(t, result.Entities, 2)
	assert.Equal(t, programs[5].ID, result.Entities[0].ID)
	assert.Equal(t, programs[2].ID, result.Entities[1].ID)
}

func TestProgramSearchNameDescendingPaged(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewProgramService(db, nil)

	opts := query.Options{
		SortColumn: "programName",
		SortOrder:  "DESC",
		PageNumber: intPtr(2),
		PageSize:   intPtr(2),
	}
	result, err := svc.Search(context.Background(), ProgramSearchCriteria{}, opts)
	require.NoError(t, err)

	assert.Equal(t, []uint{programs[1].ID, programs[0].ID}, programIDs(result.Entities))
	assert.Equal(t, int64(6), result.Total)
	assert.Equal(t, int64(3), result.TotalPages)
}

func TestProgramSearchRejectsUnknownSortColumn(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := NewProgramService(db, nil)

	_, err := svc.Search(context.Background(), ProgramSearchCriteria{}, query.Options{SortColumn: "password"})
	require.Error(t, err)
	assert.ErrorIs(t, err, query.ErrInvalid)
}

func TestGetProgramLoadsFullGraphInOrder(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewProgramService(db, nil)

	program, err := svc.GetProgram(context.Background(), programs[0].ID)
	require.NoError(t, err)

	require.Len(t, program.Goals, 2)
	assert.Equal(t, "Self assessment", program.Goals[0].Subject)
	assert.Equal(t, "Application essays", program.Goals[1].Subject)
	require.Len(t, program.Goals[0].Tasks, 2)
	assert.Equal(t, "Complete the interests questionnaire", program.Goals[0].Tasks[0].Description)
	assert.Len(t, program.Goals[0].UsefulLinks, 1)
	assert.Len(t, program.Responsibilities, 2)
	assert.Len(t, program.UsefulLinks, 1)
	assert.Len(t, program.Locales, 1)
}

func TestGetProgramNotFound(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := NewProgramService(db, nil)

	_, err := svc.GetProgram(context.Background(), 9999)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateProgramRequiresInstitution(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := NewProgramService(db, nil)

	program := &model.InstitutionalProgram{InstitutionID: 9999, ProgramName: "Orphan Program"}
	err := svc.CreateProgram(context.Background(), program)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateProgramNormalizesNilCollections(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewProgramService(db, nil)

	program := &model.InstitutionalProgram{
		InstitutionID: programs[0].InstitutionID,
		ProgramName:   "Program 7",
	}
	require.NoError(t, svc.CreateProgram(context.Background(), program))

	assert.NotNil(t, program.Goals)
	assert.NotNil(t, program.Responsibilities)
	assert.NotNil(t, program.UsefulLinks)
	assert.NotZero(t, program.ID)
}

func TestUpdateProgramPersistsChanges(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewProgramService(db, nil)
	ctx := context.Background()

	program, err := svc.GetProgram(ctx, programs[1].ID)
	require.NoError(t, err)

	program.Description = "Updated description"
	program.DurationInDays = 30
	require.NoError(t, svc.UpdateProgram(ctx, program))

	reloaded, err := svc.GetProgram(ctx, programs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated description", reloaded.Description)
	assert.Equal(t, 30, reloaded.DurationInDays)
}

func TestDeleteProgramRemovesOwnedGraph(t *testing.T) {
	db := newTestDB(t)
	programs := seedCatalog(t, db)
	svc := NewProgramService(db, nil)
	ctx := context.Background()

	require.NoError(t, svc.DeleteProgram(ctx, programs[0].ID))

	_, err := svc.GetProgram(ctx, programs[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var goalCount int64
	require.NoError(t, db.Model(&model.Goal{}).Where("institutional_program_id = ?", programs[0].ID).Count(&goalCount).Error)
	assert.Equal(t, int64(0), goalCount)

	var localeCount int64
	require.NoError(t, db.Model(&model.InstitutionalProgramLocale{}).Where("institutional_program_id = ?", programs[0].ID).Count(&localeCount).Error)
	assert.Equal(t, int64(0), localeCount)

	// Deleting again reports not found.
	err = svc.DeleteProgram(ctx, programs[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
