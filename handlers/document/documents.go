package document

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/livingprogress/mentorme-api/handlers"
	"github.com/livingprogress/mentorme-api/services"
	"github.com/livingprogress/mentorme-api/utils/middleware"
	"github.com/livingprogress/mentorme-api/utils/response"
	"gorm.io/gorm"
)

// DocumentHandler handles program document requests
type DocumentHandler struct {
	documents *services.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documents *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// Upload handles POST /institutionalPrograms/:id/documents. Expects a
// multipart form with a "file" field.
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	programID, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "Missing file upload")
	}

	document, err := h.documents.UploadProgramDocument(c.Context(), programID, userID, file)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return response.NotFound(c, "Program not found")
		case errors.Is(err, services.ErrInvalidDocument):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to upload document")
		}
	}

	return response.Created(c, document)
}

// Get handles GET /documents/:id
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	document, err := h.documents.GetDocument(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Document not found")
		}
		return response.InternalServerError(c, "Failed to load document")
	}

	return response.Success(c, document)
}

// Delete handles DELETE /documents/:id
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.documents.DeleteDocument(c.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Document not found")
		}
		return response.InternalServerError(c, "Failed to delete document")
	}

	return response.Success(c, fiber.Map{"message": "Document deleted"})
}
