package invoices

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

type DirectInvoiceRequest struct {
	OrderNo     string                     `json:"order_no"`
	Date        string                     `json:"date" validate:"required"` // "2006-01-02"
	AccountID   uint                       `json:"account_id" validate:"required"`
	TransportID *uint                      `json:"transport_id"`
	VehicleNo   string                     `json:"vehicle_no"`
	SubTotal    decimal.Decimal            `json:"sub_total"`
	TaxAmount   decimal.Decimal            `json:"tax_amount"`
	GrandTotal  decimal.Decimal            `json:"grand_total"`
	Details     []DirectInvoiceDetailInput `json:"details" validate:"required,min=1,dive"`
}

type DirectInvoiceDetailInput struct {
	ProductID uint            `json:"product_id" validate:"required"`
	QtyKgs    decimal.Decimal `json:"qty_kgs"`
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
}

func (r DirectInvoiceRequest) toModels() (*models.DirectInvoiceHeader, []models.DirectInvoiceDetail, error) {
	d, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, nil, apperr.New(apperr.Validation, "date must be 'YYYY-MM-DD'")
	}

	header := &models.DirectInvoiceHeader{
		OrderNo:     r.OrderNo,
		Date:        d,
		AccountID:   r.AccountID,
		TransportID: r.TransportID,
		VehicleNo:   r.VehicleNo,
		SubTotal:    r.SubTotal,
		TaxAmount:   r.TaxAmount,
		GrandTotal:  r.GrandTotal,
	}

	details := make([]models.DirectInvoiceDetail, 0, len(r.Details))
	for _, in := range r.Details {
		details = append(details, models.DirectInvoiceDetail{
			ProductID: in.ProductID,
			QtyKgs:    in.QtyKgs,
			Rate:      in.Rate,
			Amount:    in.Amount,
		})
	}
	return header, details, nil
}

// POST /api/direct-invoices
func CreateDirectInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DirectInvoiceRequest
		if err := web.Bind(c, &body, "account_id", "transport_id"); err != nil {
			return err
		}
		if err := validate.Struct(body); err != nil {
			return err
		}

		header, details, err := body.toModels()
		if err != nil {
			return err
		}

		if err := stock.CreateDirectInvoice(database.DB, header, details); err != nil {
			return err
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "direct_invoice",
			EntityID:    header.ID,
			Action:      models.AuditActionCreate,
			Description: "direct invoice " + header.OrderNo,
			After:       header,
		})

		return web.Created(c, header)
	}
}

// GET /api/direct-invoices
func ListDirectInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var headers []models.DirectInvoiceHeader
		if err := database.DB.
			Preload("Account").
			Preload("Details").
			Preload("Details.Product").
			Order("date DESC, id DESC").
			Find(&headers).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not list direct invoices")
		}
		return web.OK(c, headers)
	}
}

// PUT /api/direct-invoices/:id: full detail replacement, see
// stock.UpdateDirectInvoice for the stock contract.
func UpdateDirectInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.New(apperr.Validation, "invalid id")
		}

		var body DirectInvoiceRequest
		if err := web.Bind(c, &body, "account_id", "transport_id"); err != nil {
			return err
		}
		if err := validate.Struct(body); err != nil {
			return err
		}

		header, details, err := body.toModels()
		if err != nil {
			return err
		}

		updated, err := stock.UpdateDirectInvoice(database.DB, uint(id), header, details)
		if err != nil {
			return err
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			UserName:   userName,
			EntityType: "direct_invoice",
			EntityID:   updated.ID,
			Action:     models.AuditActionUpdate,
			After:      updated,
		})

		return web.OK(c, updated)
	}
}
