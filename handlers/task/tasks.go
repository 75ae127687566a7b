package task

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/livingprogress/mentorme-api/handlers"
	"github.com/livingprogress/mentorme-api/model"
	"github.com/livingprogress/mentorme-api/services"
	"github.com/livingprogress/mentorme-api/utils/query"
	"github.com/livingprogress/mentorme-api/utils/response"
	"github.com/livingprogress/mentorme-api/utils/validation"
	"gorm.io/gorm"
)

// TaskHandler handles template task requests
type TaskHandler struct {
	tasks     *services.TaskService
	goals     *services.GoalService
	validator *validation.Validator
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(tasks *services.TaskService, goals *services.GoalService) *TaskHandler {
	return &TaskHandler{
		tasks:     tasks,
		goals:     goals,
		validator: validation.NewValidator(),
	}
}

// Search handles GET /tasks
func (h *TaskHandler) Search(c *fiber.Ctx) error {
	opts, err := handlers.ParseQueryOptions(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	criteria := services.TaskSearchCriteria{
		Description: c.Query("description"),
	}
	if criteria.GoalID, err = handlers.QueryUint(c, "goalId"); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if criteria.Custom, err = handlers.QueryBool(c, "custom"); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.tasks.Search(c.Context(), criteria, opts)
	if err != nil {
		if errors.Is(err, query.ErrInvalid) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to search tasks")
	}

	return c.JSON(result)
}

// Get handles GET /tasks/:id
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	task, err := h.tasks.GetTask(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Task not found")
		}
		return response.InternalServerError(c, "Failed to load task")
	}

	return response.Success(c, task)
}

// CustomDataRequest carries the per-pairing custom data of a template task.
type CustomDataRequest struct {
	MenteeID uint `json:"mentee_id" validate:"required,min=1"`
	MentorID uint `json:"mentor_id" validate:"required,min=1"`
}

// SetCustomData handles PUT /tasks/:id/customData
func (h *TaskHandler) SetCustomData(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req CustomDataRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	data := model.TaskCustomData{
		MenteeID: req.MenteeID,
		MentorID: req.MentorID,
	}
	if err := h.goals.SetTaskCustomData(c.Context(), id, &data); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Task not found")
		}
		return response.InternalServerError(c, "Failed to set custom data")
	}

	return response.Success(c, data)
}

// Delete handles DELETE /tasks/:id
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.goals.DeleteTask(c.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Task not found")
		}
		return response.InternalServerError(c, "Failed to delete task")
	}

	return response.Success(c, fiber.Map{"message": "Task deleted"})
}
