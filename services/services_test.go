package services

import (
	"fmt"
	"testing"

	"github.com/livingprogress/mentorme-api/database"
	"github.com/livingprogress/mentorme-api/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database migrated to the full
// schema. The database is named after the test so pooled connections share it.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

// seedCatalog populates institutions and six program templates with a known
// shape: durations 25, 15, 10, 18, 12 and 5 days, "en" overlays on programs
// 1, 2, 4 and 5, "es" overlays on programs 3 and 6, and a full goal graph on
// program 1.
func seedCatalog(t *testing.T, db *gorm.DB) []model.InstitutionalProgram {
	t.Helper()

	institutions := []model.Institution{
		{InstitutionName: "Lincoln High School", City: "Portland"},
		{InstitutionName: "Riverside Community College", City: "Riverside"},
		{InstitutionName: "Bright Futures Foundation", City: "Chicago"},
	}
	require.NoError(t, db.Create(&institutions).Error)

	programs := []model.InstitutionalProgram{
		{
			InstitutionID:  institutions[0].ID,
			ProgramName:    "Program 1",
			Description:    "College readiness track.",
			DurationInDays: 25,
			Goals: []model.Goal{
				{
					Number:  1,
					Subject: "Self assessment",
					Tasks: []model.Task{
						{Number: 1, Description: "Complete the interests questionnaire", DurationInDays: 2},
						{Number: 2, Description: "Draft a list of target schools", DurationInDays: 3},
					},
					UsefulLinks: []model.UsefulLink{
						{Title: "Choosing a college", Address: "https://example.org/choosing"},
					},
				},
				{
					Number:  2,
					Subject: "Application essays",
					Tasks: []model.Task{
						{Number: 1, Description: "Outline the personal statement", DurationInDays: 3},
					},
				},
			},
			Responsibilities: []model.Responsibility{
				{Number: 1, Title: "Weekly check-in", MenteeResponsibility: "Prepare questions.", MentorResponsibility: "Give feedback."},
				{Number: 2, Title: "Essay review", MenteeResponsibility: "Share drafts early.", MentorResponsibility: "Return comments."},
			},
			UsefulLinks: []model.UsefulLink{
				{Title: "Program handbook", Address: "https://example.org/handbook"},
			},
		},
		{InstitutionID: institutions[1].ID, ProgramName: "Program 2", DurationInDays: 15},
		{InstitutionID: institutions[2].ID, ProgramName: "Program 3", DurationInDays: 10},
		{InstitutionID: institutions[0].ID, ProgramName: "Program 4", DurationInDays: 18},
		{InstitutionID: institutions[1].ID, ProgramName: "Program 5", DurationInDays: 12},
		{InstitutionID: institutions[0].ID, ProgramName: "Program 6", DurationInDays: 5},
	}
	require.NoError(t, db.Create(&programs).Error)

	locales := []model.InstitutionalProgramLocale{
		{InstitutionalProgramID: programs[0].ID, LocaleCode: "en", ProgramName: "Program 1"},
		{InstitutionalProgramID: programs[1].ID, LocaleCode: "en", ProgramName: "Program 2"},
		{InstitutionalProgramID: programs[2].ID, LocaleCode: "es", ProgramName: "Programa Tres", Description: "Liderazgo comunitario."},
		{InstitutionalProgramID: programs[3].ID, LocaleCode: "en", ProgramName: "Program 4"},
		{InstitutionalProgramID: programs[4].ID, LocaleCode: "en", ProgramName: "Program 5"},
		{InstitutionalProgramID: programs[5].ID, LocaleCode: "es", ProgramName: "Programa Seis"},
	}
	require.NoError(t, db.Create(&locales).Error)

	return programs
}

// seedPair creates one mentee and one mentor and returns them.
func seedPair(t *testing.T, db *gorm.DB) (mentee, mentor model.User) {
	t.Helper()

	mentee = model.User{Email: "mentee@example.com", PasswordHash: "x", Name: "Maria Lopez", Role: model.RoleMentee}
	mentor = model.User{Email: "mentor@example.com", PasswordHash: "x", Name: "Daniel Reed", Role: model.RoleMentor}
	require.NoError(t, db.Create(&mentee).Error)
	require.NoError(t, db.Create(&mentor).Error)
	return mentee, mentor
}

func uintPtr(v uint) *uint {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
