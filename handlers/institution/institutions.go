package institution

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

// InstitutionHandler handles institution requests
type InstitutionHandler struct {
	institutions *services.InstitutionService
	validator    *validation.Validator
}

// NewInstitutionHandler creates a new institution handler
func NewInstitutionHandler(institutions *services.InstitutionService) *InstitutionHandler {
	return &InstitutionHandler{
		institutions: institutions,
		validator:    validation.NewValidator(),
	}
}

// Search handles GET /institutions
func (h *InstitutionHandler) Search(c *fiber.Ctx) error {
	opts, err := handlers.ParseQueryOptions(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	criteria := services.InstitutionSearchCriteria{
		InstitutionName: c.Query("institutionName"),
		City:            c.Query("city"),
	}

	result, err := h.institutions.Search(c.Context(), criteria, opts)
	if err != nil {
		if errors.Is(err, query.ErrInvalid) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to search institutions")
	}

	return c.JSON(result)
}

// Get handles GET /institutions/:id
func (h *InstitutionHandler) Get(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	institution, err := h.institutions.GetInstitution(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Institution not found")
		}
		return response.InternalServerError(c, "Failed to load institution")
	}

	return response.Success(c, institution)
}

// CreateInstitutionRequest carries the writable fields of an institution.
type CreateInstitutionRequest struct {
	InstitutionName    string `json:"institution_name" validate:"required,min=1"`
	ParentOrganization string `json:"parent_organization"`
	City               string `json:"city"`
	Email              string `json:"email" validate:"omitempty,email"`
	Phone              string `json:"phone"`
	Description        string `json:"description"`
}

// Create handles POST /institutions
func (h *InstitutionHandler) Create(c *fiber.Ctx) error {
	var req CreateInstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	institution := model.Institution{
		InstitutionName:    validation.SanitizeString(req.InstitutionName),
		ParentOrganization: req.ParentOrganization,
		City:               req.City,
		Email:              req.Email,
		Phone:              req.Phone,
		Description:        req.Description,
	}

	if err := h.institutions.CreateInstitution(c.Context(), &institution); err != nil {
		return response.InternalServerError(c, "Failed to create institution")
	}

	return response.Created(c, institution)
}

// Update handles PUT /institutions/:id
func (h *InstitutionHandler) Update(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req CreateInstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	institution, err := h.institutions.GetInstitution(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Institution not found")
		}
		return response.InternalServerError(c, "Failed to load institution")
	}

	institution.InstitutionName = validation.SanitizeString(req.InstitutionName)
	institution.ParentOrganization = req.ParentOrganization
	institution.City = req.City
	institution.Email = req.Email
	institution.Phone = req.Phone
	institution.Description = req.Description

	if err := h.institutions.UpdateInstitution(c.Context(), institution); err != nil {
		return response.InternalServerError(c, "Failed to update institution")
	}

	return response.Success(c, institution)
}

// Delete handles DELETE /institutions/:id
func (h *InstitutionHandler) Delete(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.institutions.DeleteInstitution(c.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Institution not found")
		}
		return response.InternalServerError(c, "Failed to delete institution")
	}

	return response.Success(c, fiber.Map{"message": "Institution deleted"})
}
