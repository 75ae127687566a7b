package program

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/livingprogress/mentorme-api/database"
	"github.com/livingprogress/mentorme-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/livingprogress/mentorme-api/services"
)

type fixture struct {
	app      *fiber.App
	db       *gorm.DB
	programs []model.InstitutionalProgram
	mentee   model.User
	mentor   model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	institution := model.Institution{InstitutionName: "Lincoln High School", City: "Portland"}
	require.NoError(t, db.Create(&institution).Error)

	programs := []model.InstitutionalProgram{
		{
			InstitutionID:  institution.ID,
			ProgramName:    "College Readiness Program",
			DurationInDays: 25,
			Goals: []model.Goal{
				{Number: 1, Subject: "Self assessment", Tasks: []model.Task{{Number: 1, Description: "Questionnaire"}}},
			},
			Responsibilities: []model.Responsibility{
				{Number: 1, Title: "Weekly check-in"},
			},
		},
		{InstitutionID: institution.ID, ProgramName: "Career Exploration Program", DurationInDays: 15},
	}
	require.NoError(t, db.Create(&programs).Error)

	mentee := model.User{Email: "mentee@example.com", PasswordHash: "x", Name: "Maria Lopez", Role: model.RoleMentee}
	mentor := model.User{Email: "mentor@example.com", PasswordHash: "x", Name: "Daniel Reed", Role: model.RoleMentor}
	require.NoError(t, db.Create(&mentee).Error)
	require.NoError(t, db.Create(&mentor).Error)

	handler := NewProgramHandler(services.NewProgramService(db, nil), services.NewAssignmentService(db))

	app := fiber.New()
	group := app.Group("/institutionalPrograms")
	group.Get("/", handler.Search)
	group.Post("/", handler.Create)
	group.Get("/:id", handler.Get)
	group.Put("/:id", handler.Update)
	group.Delete("/:id", handler.Delete)
	group.Post("/:id/clone", handler.Clone)
	group.Get("/:id/assignments", handler.Assignments)

	return &fixture{app: app, db: db, programs: programs, mentee: mentee, mentor: mentor}
}

func (f *fixture) request(t *testing.T, method, target string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestSearchEndpointReturnsEnvelope(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, http.MethodGet, "/institutionalPrograms/?programName=career", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Entities   []model.InstitutionalProgram `json:"entities"`
		Total      int64                        `json:"total"`
		TotalPages int64                        `json:"totalPages"`
	}
	decodeBody(t, resp, &body)

	require.Len(t, body.Entities, 1)
	assert.Equal(t, "Career Exploration Program", body.Entities[0].ProgramName)
	assert.Equal(t, int64(1), body.Total)
	assert.Equal(t, int64(1), body.TotalPages)
}

func TestSearchEndpointRejectsBadSort(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, http.MethodGet, "/institutionalPrograms/?sortColumn=secret", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.request(t, http.MethodGet, "/institutionalPrograms/?sortOrder=SIDEWAYS", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchEndpointRejectsBadPaging(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, http.MethodGet, "/institutionalPrograms/?pageNumber=1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.request(t, http.MethodGet, "/institutionalPrograms/?pageNumber=abc&pageSize=5", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetEndpoint(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, http.MethodGet, fmt.Sprintf("/institutionalPrograms/%d", f.programs[0].ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ProgramName string       `json:"program_name"`
			Goals       []model.Goal `json:"goals"`
		} `json:"data"`
	}
	decodeBody(t, resp, &body)
	assert.True(t, body.Success)
	assert.Equal(t, "College Readiness Program", body.Data.ProgramName)
	assert.Len(t, body.Data.Goals, 1)
}

func TestGetEndpointNotFound(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, http.MethodGet, "/institutionalPrograms/9999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.request(t, http.MethodGet, "/institutionalPrograms/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCloneEndpoint(t *testing.T) {
	f := newFixture(t)

	body := map[string]uint{"menteeId": f.mentee.ID, "mentorId": f.mentor.ID}
	resp := f.request(t, http.MethodPost, fmt.Sprintf("/institutionalPrograms/%d/clone", f.programs[0].ID), body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Success bool                      `json:"success"`
		Data    model.MenteeMentorProgram `json:"data"`
	}
	decodeBody(t, resp, &envelope)

	assert.True(t, envelope.Success)
	assert.Equal(t, f.programs[0].ID, envelope.Data.InstitutionalProgramID)
	assert.Equal(t, f.mentee.ID, envelope.Data.MenteeID)
	require.Len(t, envelope.Data.Goals, 1)
	assert.Len(t, envelope.Data.Goals[0].Tasks, 1)
	assert.Len(t, envelope.Data.Responsibilities, 1)
}

func TestCloneEndpointValidation(t *testing.T) {
	f := newFixture(t)
	target := fmt.Sprintf("/institutionalPrograms/%d/clone", f.programs[0].ID)

	resp := f.request(t, http.MethodPost, target, map[string]uint{"menteeId": 0, "mentorId": f.mentor.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = f.request(t, http.MethodPost, target, map[string]uint{"menteeId": 9999, "mentorId": f.mentor.ID})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.request(t, http.MethodPost, "/institutionalPrograms/9999/clone", map[string]uint{"menteeId": f.mentee.ID, "mentorId": f.mentor.ID})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAssignmentsEndpoint(t *testing.T) {
	f := newFixture(t)

	body := map[string]uint{"menteeId": f.mentee.ID, "mentorId": f.mentor.ID}
	resp := f.request(t, http.MethodPost, fmt.Sprintf("/institutionalPrograms/%d/clone", f.programs[0].ID), body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.request(t, http.MethodGet, fmt.Sprintf("/institutionalPrograms/%d/assignments", f.programs[0].ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Entities []model.MenteeMentorProgram `json:"entities"`
		Total    int64                       `json:"total"`
	}
	decodeBody(t, resp, &envelope)
	require.Len(t, envelope.Entities, 1)
	assert.Equal(t, int64(1), envelope.Total)

	// The sibling template has no assignments.
	resp = f.request(t, http.MethodGet, fmt.Sprintf("/institutionalPrograms/%d/assignments", f.programs[1].ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &envelope)
	assert.Empty(t, envelope.Entities)
}

func TestCreateAndDeleteEndpoints(t *testing.T) {
	f := newFixture(t)

	createBody := map[string]interface{}{
		"institution_id":   f.programs[0].InstitutionID,
		"program_name":     "Orientation Week",
		"duration_in_days": 5,
	}
	resp := f.request(t, http.MethodPost, "/institutionalPrograms/", createBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var envelope struct {
		Data model.InstitutionalProgram `json:"data"`
	}
	decodeBody(t, resp, &envelope)
	require.NotZero(t, envelope.Data.ID)

	resp = f.request(t, http.MethodDelete, fmt.Sprintf("/institutionalPrograms/%d", envelope.Data.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Deleting twice is a 404.
	resp = f.request(t, http.MethodDelete, fmt.Sprintf("/institutionalPrograms/%d", envelope.Data.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateEndpointRejectsMissingFields(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, http.MethodPost, "/institutionalPrograms/", map[string]interface{}{"description": "no name"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = f.request(t, http.MethodPost, "/institutionalPrograms/", map[string]interface{}{
		"institution_id": 9999,
		"program_name":   "Orphan",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
