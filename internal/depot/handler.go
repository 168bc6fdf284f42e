// Package depot exposes the depot-side movements: inward sync from mill
// invoices, opening balances, outward sales/transfers and the derived
// inventory view.
package depot

import (
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

type DepotReceivedRequest struct {
	InvoiceNo string `json:"invoice_no" validate:"required"`
	DepotID   uint   `json:"depot_id" validate:"required"`
	Date      string `json:"date" validate:"required"` // "2006-01-02"
}

// POST /api/depot-received: inward sync from a mill invoice.
func CreateDepotReceivedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DepotReceivedRequest
		if err := web.Bind(c, &body, "depot_id"); err != nil {
			return err
		}
		if err := validate.Struct(body); err != nil {
			return err
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return apperr.New(apperr.Validation, "date must be 'YYYY-MM-DD'")
		}

		received, err := stock.SyncDepotInward(database.DB, body.InvoiceNo, body.DepotID, d)
		if err != nil {
			return err
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "depot_received",
			EntityID:    received.ID,
			Action:      models.AuditActionCreate,
			Description: "inward " + body.InvoiceNo,
			After:       received,
		})

		return web.Created(c, received)
	}
}

type DepotOpeningRequest struct {
	DepotID   uint            `json:"depot_id" validate:"required"`
	ProductID uint            `json:"product_id" validate:"required"`
	Date      string          `json:"date" validate:"required"`
	QtyKgs    decimal.Decimal `json:"qty_kgs"`
}

// POST /api/depot-opening
func CreateDepotOpeningHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DepotOpeningRequest
		if err := web.Bind(c, &body, "depot_id", "product_id"); err != nil {
			return err
		}
		if err := validate.Struct(body); err != nil {
			return err
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return apperr.New(apperr.Validation, "date must be 'YYYY-MM-DD'")
		}

		received, err := stock.RecordDepotOpening(database.DB, body.DepotID, body.ProductID, d, body.QtyKgs)
		if err != nil {
			return err
		}
		return web.Created(c, received)
	}
}

// GET /api/depot-received?depot_id=
func ListDepotReceivedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.
			Preload("Depot").
			Preload("Product").
			Preload("InvoiceHeader").
			Preload("DirectInvoiceHeader").
			Order("date DESC, id DESC")
		if depotID := c.QueryInt("depot_id"); depotID > 0 {
			q = q.Where("depot_id = ?", depotID)
		}

		var rows []models.DepotReceived
		if err := q.Find(&rows).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not list depot received rows")
		}
		return web.OK(c, rows)
	}
}

type DepotSalesRequest struct {
	DepotID   uint                    `json:"depot_id" validate:"required"`
	Date      string                  `json:"date" validate:"required"`
	SalesType models.DepotSalesType   `json:"sales_type" validate:"required"`
	AccountID *uint                   `json:"account_id"`
	ToDepotID *uint                   `json:"to_depot_id"`
	Remarks   string                  `json:"remarks"`
	Details   []DepotSalesDetailInput `json:"details" validate:"required,min=1,dive"`
}

type DepotSalesDetailInput struct {
	ProductID uint            `json:"product_id" validate:"required"`
	QtyKgs    decimal.Decimal `json:"qty_kgs"`
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
}

// POST /api/depot-sales
func CreateDepotSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DepotSalesRequest
		if err := web.Bind(c, &body, "depot_id", "account_id", "to_depot_id"); err != nil {
			return err
		}
		if err := validate.Struct(body); err != nil {
			return err
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return apperr.New(apperr.Validation, "date must be 'YYYY-MM-DD'")
		}

		header := models.DepotSalesHeader{
			DepotID:   body.DepotID,
			Date:      d,
			SalesType: body.SalesType,
			AccountID: body.AccountID,
			ToDepotID: body.ToDepotID,
			Remarks:   body.Remarks,
		}
		details := make([]models.DepotSalesDetail, 0, len(body.Details))
		for _, in := range body.Details {
			details = append(details, models.DepotSalesDetail{
				ProductID: in.ProductID,
				QtyKgs:    in.QtyKgs,
				Rate:      in.Rate,
				Amount:    in.Amount,
			})
		}

		if err := stock.CreateDepotSale(database.DB, &header, details); err != nil {
			return err
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "depot_sales",
			EntityID:    header.ID,
			Action:      models.AuditActionCreate,
			Description: string(header.SalesType),
			After:       header,
		})

		return web.Created(c, header)
	}
}

// GET /api/depot-sales?depot_id=
func ListDepotSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.
			Preload("Depot").
			Preload("Account").
			Preload("ToDepot").
			Preload("Details").
			Preload("Details.Product").
			Order("date DESC, id DESC")
		if depotID := c.QueryInt("depot_id"); depotID > 0 {
			q = q.Where("depot_id = ?", depotID)
		}

		var headers []models.DepotSalesHeader
		if err := q.Find(&headers).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not list depot sales")
		}
		return web.OK(c, headers)
	}
}

// GET /api/depots/:id/inventory: derived, clamped at zero.
func DepotInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.New(apperr.Validation, "invalid id")
		}

		inventory, err := stock.ComputeDepotInventory(database.DB, uint(id))
		if err != nil {
			return err
		}
		return web.OK(c, inventory)
	}
}
