package middleware

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/livingprogress/mentorme-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditTrail records catalog mutations performed by administrators. It runs
// after the handler and only writes a row when the mutation succeeded; a
// failed audit write is logged, never surfaced to the client.
func AuditTrail(db *gorm.DB, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() >= fiber.StatusBadRequest {
			return nil
		}

		adminID, ok := GetUserID(c)
		if !ok {
			return nil
		}

		detail, err := json.Marshal(fiber.Map{
			"method": c.Method(),
			"path":   c.Path(),
		})
		if err != nil {
			return nil
		}

		entry := model.AdminAuditLog{
			AdminID:    adminID,
			Action:     auditAction(resource, c.Method()),
			Resource:   resource,
			ResourceID: auditResourceID(c),
			Detail:     datatypes.JSON(detail),
			IPAddress:  c.IP(),
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("Failed to write audit log entry: %v", err)
		}
		return nil
	}
}

func auditAction(resource, method string) string {
	switch method {
	case fiber.MethodPost:
		return resource + "_create"
	case fiber.MethodPut, fiber.MethodPatch:
		return resource + "_update"
	case fiber.MethodDelete:
		return resource + "_delete"
	default:
		return resource + "_" + strings.ToLower(method)
	}
}

func auditResourceID(c *fiber.Ctx) uint {
	raw := c.Params("id")
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
