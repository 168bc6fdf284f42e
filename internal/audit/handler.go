package audit

import (
	"textile-erp-backend/internal/database"
	"textile-erp-backend/internal/models"
	"textile-erp-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?entity_type=&limit=
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		q := database.DB.Order("created_at DESC").Limit(limit)
		if et := c.Query("entity_type"); et != "" {
			q = q.Where("entity_type = ?", et)
		}

		var logs []models.AuditLog
		if err := q.Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list audit logs")
		}

		return web.OK(c, logs)
	}
}
