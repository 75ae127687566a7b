package goal

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/livingprogress/mentorme-api/handlers"
	"github.com/livingprogress/mentorme-api/model"
	"github.com/livingprogress/mentorme-api/services"
	"github.com/livingprogress/mentorme-api/utils/response"
	"github.com/livingprogress/mentorme-api/utils/validation"
	"gorm.io/gorm"
)

// GoalHandler handles template goal and task requests
type GoalHandler struct {
	goals     *services.GoalService
	validator *validation.Validator
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goals *services.GoalService) *GoalHandler {
	return &GoalHandler{
		goals:     goals,
		validator: validation.NewValidator(),
	}
}

// List handles GET /institutionalPrograms/:id/goals
func (h *GoalHandler) List(c *fiber.Ctx) error {
	programID, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	goals, err := h.goals.ListGoals(c.Context(), programID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to list goals")
	}

	return response.Success(c, goals)
}

// Get handles GET /institutionalPrograms/:id/goals/:goalId
func (h *GoalHandler) Get(c *fiber.Ctx) error {
	programID, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	goalID, err := handlers.ParseID(c, "goalId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	goal, err := h.goals.GetGoal(c.Context(), programID, goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Goal not found")
		}
		return response.InternalServerError(c, "Failed to load goal")
	}

	return response.Success(c, goal)
}

// CreateGoalRequest carries the writable fields of a template goal.
type CreateGoalRequest struct {
	Number         int          `json:"number" validate:"gte=0"`
	Subject        string       `json:"subject" validate:"required,min=1"`
	Description    string       `json:"description"`
	DurationInDays int          `json:"duration_in_days" validate:"gte=0"`
	Tasks          []model.Task `json:"tasks"`
}

// Create handles POST /institutionalPrograms/:id/goals
func (h *GoalHandler) Create(c *fiber.Ctx) error {
	programID, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	goal := model.Goal{
		Number:         req.Number,
		Subject:        req.Subject,
		Description:    req.Description,
		DurationInDays: req.DurationInDays,
		Tasks:          req.Tasks,
	}

	if err := h.goals.CreateGoal(c.Context(), programID, &goal); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to create goal")
	}

	return response.Created(c, goal)
}

// Update handles PUT /institutionalPrograms/:id/goals/:goalId
func (h *GoalHandler) Update(c *fiber.Ctx) error {
	programID, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	goalID, err := handlers.ParseID(c, "goalId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	goal, err := h.goals.GetGoal(c.Context(), programID, goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Goal not found")
		}
		return response.InternalServerError(c, "Failed to load goal")
	}

	goal.Number = req.Number
	goal.Subject = req.Subject
	goal.Description = req.Description
	goal.DurationInDays = req.DurationInDays

	if err := h.goals.UpdateGoal(c.Context(), goal); err != nil {
		return response.InternalServerError(c, "Failed to update goal")
	}

	return response.Success(c, goal)
}

// Delete handles DELETE /institutionalPrograms/:id/goals/:goalId
func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	programID, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	goalID, err := handlers.ParseID(c, "goalId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.goals.DeleteGoal(c.Context(), programID, goalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Goal not found")
		}
		return response.InternalServerError(c, "Failed to delete goal")
	}

	return response.Success(c, fiber.Map{"message": "Goal deleted"})
}

// CreateTaskRequest carries the writable fields of a template task.
type CreateTaskRequest struct {
	Number         int    `json:"number" validate:"gte=0"`
	Description    string `json:"description" validate:"required,min=1"`
	DurationInDays int    `json:"duration_in_days" validate:"gte=0"`
}

// CreateTask handles POST /institutionalPrograms/:id/goals/:goalId/tasks
func (h *GoalHandler) CreateTask(c *fiber.Ctx) error {
	programID, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	goalID, err := handlers.ParseID(c, "goalId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	task := model.Task{
		Number:         req.Number,
		Description:    req.Description,
		DurationInDays: req.DurationInDays,
	}

	if err := h.goals.CreateTask(c.Context(), programID, goalID, &task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Goal not found")
		}
		return response.InternalServerError(c, "Failed to create task")
	}

	return response.Created(c, task)
}
