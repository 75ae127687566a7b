package program

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/livingprogress/mentorme-api/handlers"
	"github.com/livingprogress/mentorme-api/model"
	"github.com/livingprogress/mentorme-api/services"
	"github.com/livingprogress/mentorme-api/utils/query"
	"github.com/livingprogress/mentorme-api/utils/response"
	"github.com/livingprogress/mentorme-api/utils/validation"
	"gorm.io/gorm"
)

// ProgramHandler handles program template requests
type ProgramHandler struct {
	programs    *services.ProgramService
	assignments *services.AssignmentService
	validator   *validation.Validator
}

// NewProgramHandler creates a new program handler
func NewProgramHandler(programs *services.ProgramService, assignments *services.AssignmentService) *ProgramHandler {
	return &ProgramHandler{
		programs:    programs,
		assignments: assignments,
		validator:   validation.NewValidator(),
	}
}

// Search handles GET /institutionalPrograms. Filter, sort and pagination
// criteria all arrive as query parameters; the response is the standard
// entities/total/totalPages envelope.
func (h *ProgramHandler) Search(c *fiber.Ctx) error {
	opts, err := handlers.ParseQueryOptions(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	criteria := services.ProgramSearchCriteria{
		ProgramName: c.Query("programName"),
		Locale:      c.Query("locale"),
	}
	if criteria.InstitutionID, err = handlers.QueryUint(c, "institutionId"); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if criteria.MinDurationInDays, err = handlers.QueryInt(c, "minDurationInDays"); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if criteria.MaxDurationInDays, err = handlers.QueryInt(c, "maxDurationInDays"); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.programs.Search(c.Context(), criteria, opts)
	if err != nil {
		if errors.Is(err, query.ErrInvalid) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to search programs")
	}

	return c.JSON(result)
}

// Get handles GET /institutionalPrograms/:id
func (h *ProgramHandler) Get(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	program, err := h.programs.GetProgram(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to load program")
	}

	return response.Success(c, program)
}

// CreateProgramRequest carries the writable fields of a program template.
type CreateProgramRequest struct {
	InstitutionID    uint                   `json:"institution_id" validate:"required,min=1"`
	ProgramName      string                 `json:"program_name" validate:"required,min=1"`
	Description      string                 `json:"description"`
	DurationInDays   int                    `json:"duration_in_days" validate:"gte=0"`
	StartDate        *time.Time             `json:"start_date"`
	EndDate          *time.Time             `json:"end_date"`
	LocaleCode       string                 `json:"locale_code"`
	Goals            []model.Goal           `json:"goals"`
	Responsibilities []model.Responsibility `json:"responsibilities"`
	UsefulLinks      []model.UsefulLink     `json:"useful_links"`
}

// Create handles POST /institutionalPrograms
func (h *ProgramHandler) Create(c *fiber.Ctx) error {
	var req CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	program := model.InstitutionalProgram{
		InstitutionID:    req.InstitutionID,
		ProgramName:      req.ProgramName,
		Description:      req.Description,
		DurationInDays:   req.DurationInDays,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		LocaleCode:       req.LocaleCode,
		Goals:            req.Goals,
		Responsibilities: req.Responsibilities,
		UsefulLinks:      req.UsefulLinks,
	}

	if err := h.programs.CreateProgram(c.Context(), &program); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Institution not found")
		}
		return response.InternalServerError(c, "Failed to create program")
	}

	return response.Created(c, program)
}

// UpdateProgramRequest carries partial updates to a program template's scalar
// fields. Nested collections are managed through their own endpoints.
type UpdateProgramRequest struct {
	ProgramName    *string    `json:"program_name"`
	Description    *string    `json:"description"`
	DurationInDays *int       `json:"duration_in_days"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	LocaleCode     *string    `json:"locale_code"`
}

// Update handles PUT /institutionalPrograms/:id
func (h *ProgramHandler) Update(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req UpdateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	program, err := h.programs.GetProgram(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to load program")
	}

	if req.ProgramName != nil {
		program.ProgramName = *req.ProgramName
	}
	if req.Description != nil {
		program.Description = *req.Description
	}
	if req.DurationInDays != nil {
		program.DurationInDays = *req.DurationInDays
	}
	if req.StartDate != nil {
		program.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		program.EndDate = req.EndDate
	}
	if req.LocaleCode != nil {
		program.LocaleCode = *req.LocaleCode
	}

	if err := h.programs.UpdateProgram(c.Context(), program); err != nil {
		return response.InternalServerError(c, "Failed to update program")
	}

	return response.Success(c, program)
}

// Delete handles DELETE /institutionalPrograms/:id. Deleting an already
// deleted program is a 404; the operation is not idempotent.
func (h *ProgramHandler) Delete(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.programs.DeleteProgram(c.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to delete program")
	}

	return response.Success(c, fiber.Map{"message": "Program deleted"})
}
