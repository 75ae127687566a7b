package program

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/livingprogress/mentorme-api/handlers"
	"github.com/livingprogress/mentorme-api/services"
	"github.com/livingprogress/mentorme-api/utils/query"
	"github.com/livingprogress/mentorme-api/utils/response"
	"gorm.io/gorm"
)

// CloneRequest names the mentee/mentor pair a template is instantiated for.
type CloneRequest struct {
	MenteeID uint `json:"menteeId" validate:"required,min=1"`
	MentorID uint `json:"mentorId" validate:"required,min=1"`
}

// Clone handles POST /institutionalPrograms/:id/clone. Each call produces a
// fresh, fully independent assignment graph; calling twice for the same pair
// produces two.
func (h *ProgramHandler) Clone(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req CloneRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	assignment, err := h.assignments.Instantiate(c.Context(), id, req.MenteeID, req.MentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to clone program")
	}

	return response.Success(c, assignment)
}

// Assignments handles GET /institutionalPrograms/:id/assignments, listing the
// instances cloned from one template.
func (h *ProgramHandler) Assignments(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if _, err := h.programs.GetProgram(c.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to load program")
	}

	opts, err := handlers.ParseQueryOptions(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	criteria := services.AssignmentSearchCriteria{InstitutionalProgramID: &id}
	result, err := h.assignments.Search(c.Context(), criteria, opts)
	if err != nil {
		if errors.Is(err, query.ErrInvalid) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to list assignments")
	}

	return c.JSON(result)
}
