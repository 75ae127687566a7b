package assignment

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/livingprogress/mentorme-api/handlers"
	"github.com/livingprogress/mentorme-api/services"
	"github.com/livingprogress/mentorme-api/utils/query"
	"github.com/livingprogress/mentorme-api/utils/response"
	"github.com/livingprogress/mentorme-api/utils/validation"
	"gorm.io/gorm"
)

// AssignmentHandler handles mentee/mentor program instance requests
type AssignmentHandler struct {
	assignments *services.AssignmentService
	validator   *validation.Validator
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignments *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignments: assignments,
		validator:   validation.NewValidator(),
	}
}

// Search handles GET /menteeMentorPrograms
func (h *AssignmentHandler) Search(c *fiber.Ctx) error {
	opts, err := handlers.ParseQueryOptions(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var criteria services.AssignmentSearchCriteria
	if criteria.MenteeID, err = handlers.QueryUint(c, "menteeId"); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if criteria.MentorID, err = handlers.QueryUint(c, "mentorId"); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if criteria.InstitutionalProgramID, err = handlers.QueryUint(c, "institutionalProgramId"); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.assignments.Search(c.Context(), criteria, opts)
	if err != nil {
		if errors.Is(err, query.ErrInvalid) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to search assignments")
	}

	return c.JSON(result)
}

// Get handles GET /menteeMentorPrograms/:id
func (h *AssignmentHandler) Get(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	assignment, err := h.assignments.GetAssignment(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Assignment not found")
		}
		return response.InternalServerError(c, "Failed to load assignment")
	}

	return response.Success(c, assignment)
}

// TaskProgressRequest toggles completion state of an instance task.
type TaskProgressRequest struct {
	Completed bool `json:"completed"`
}

// SetTaskProgress handles PUT /menteeMentorPrograms/tasks/:taskId/progress
func (h *AssignmentHandler) SetTaskProgress(c *fiber.Ctx) error {
	taskID, err := handlers.ParseID(c, "taskId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req TaskProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	task, err := h.assignments.SetTaskProgress(c.Context(), taskID, req.Completed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Task not found")
		}
		return response.InternalServerError(c, "Failed to update task progress")
	}

	return response.Success(c, task)
}
