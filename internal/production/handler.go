package production

import (
	"fmt"
	"time"

	"textile-erp-backend/internal/apperr"
	"textile-erp-backend/internal/audit"
	"textile-erp-backend/internal/auth"
	"textile-erp-backend/internal/database"
	"textile-erp-backend/internal/models"
	"textile-erp-backend/internal/stock"
	"textile-erp-backend/internal/validate"
	"textile-erp-backend/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateProductionRequest struct {
	Date           string          `json:"date" validate:"required"` // "2006-01-02"
	ProductID      uint            `json:"product_id" validate:"required"`
	PackingTypeID  uint            `json:"packing_type_id" validate:"required"`
	WeightPerBag   decimal.Decimal `json:"weight_per_bag"`
	PrevClosingKgs decimal.Decimal `json:"prev_closing_kgs"`
	ProductionKgs  decimal.Decimal `json:"production_kgs"`
}

// POST /api/production: RG1 entry plus mill stock sync, one transaction.
func CreateProductionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductionRequest
		if err := web.Bind(c, &body, "product_id", "packing_type_id"); err != nil {
			return err
		}
		if err := validate.Struct(body); err != nil {
			return err
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return apperr.New(apperr.Validation, "date must be 'YYYY-MM-DD'")
		}

		entry, err := stock.CreateProductionEntry(database.DB, stock.ProductionInput{
			Date:           d,
			ProductID:      body.ProductID,
			PackingTypeID:  body.PackingTypeID,
			WeightPerBag:   body.WeightPerBag,
			PrevClosingKgs: body.PrevClosingKgs,
			ProductionKgs:  body.ProductionKgs,
		})
		if err != nil {
			return err
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "rg1_production",
			EntityID:    entry.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("production %s kgs, closing %s kgs", body.ProductionKgs, entry.StockKgs),
			After:       entry,
		})

		return web.Created(c, entry)
	}
}

// GET /api/production?start&end
func ListProductionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.
			Preload("Product").
			Preload("PackingType").
			Order("date DESC, id DESC")

		if start := c.Query("start"); start != "" {
			d, err := time.Parse("2006-01-02", start)
			if err != nil {
				return apperr.New(apperr.Validation, "start must be 'YYYY-MM-DD'")
			}
			q = q.Where("date >= ?", d)
		}
		if end := c.Query("end"); end != "" {
			d, err := time.Parse("2006-01-02", end)
			if err != nil {
				return apperr.New(apperr.Validation, "end must be 'YYYY-MM-DD'")
			}
			q = q.Where("date < ?", d.AddDate(0, 0, 1))
		}

		var entries []models.RG1Production
		if err := q.Find(&entries).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not list production entries")
		}
		return web.OK(c, entries)
	}
}
