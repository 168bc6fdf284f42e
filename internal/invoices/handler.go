package invoices

import (
	"errors"
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
	"gorm.io/gorm"
)

type CreateInvoiceRequest struct {
	InvoiceNo     string               `json:"invoice_no" validate:"required"`
	Date          string               `json:"date" validate:"required"` // "2006-01-02"
	AccountID     uint                 `json:"account_id" validate:"required"`
	OrderHeaderID *uint                `json:"order_header_id"`
	BrokerID      *uint                `json:"broker_id"`
	TransportID   *uint                `json:"transport_id"`
	InvoiceTypeID *uint                `json:"invoice_type_id"`
	VehicleNo     string               `json:"vehicle_no"`
	SubTotal      decimal.Decimal      `json:"sub_total"`
	TaxAmount     decimal.Decimal      `json:"tax_amount"`
	GrandTotal    decimal.Decimal      `json:"grand_total"`
	Details       []InvoiceDetailInput `json:"details" validate:"required,min=1,dive"`
}

type InvoiceDetailInput struct {
	ProductID uint            `json:"product_id" validate:"required"`
	Bags      int             `json:"bags"`
	TotalKgs  decimal.Decimal `json:"total_kgs"`
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
}

// POST /api/invoices: document insert plus per-line mill stock decrement,
// one transaction.
func CreateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInvoiceRequest
		if err := web.Bind(c, &body,
			"account_id", "order_header_id", "broker_id", "transport_id", "invoice_type_id"); err != nil {
			return err
		}
		if err := validate.Struct(body); err != nil {
			return err
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return apperr.New(apperr.Validation, "date must be 'YYYY-MM-DD'")
		}

		header := models.InvoiceHeader{
			InvoiceNo:     body.InvoiceNo,
			Date:          d,
			AccountID:     body.AccountID,
			OrderHeaderID: body.OrderHeaderID,
			BrokerID:      body.BrokerID,
			TransportID:   body.TransportID,
			InvoiceTypeID: body.InvoiceTypeID,
			VehicleNo:     body.VehicleNo,
			SubTotal:      body.SubTotal,
			TaxAmount:     body.TaxAmount,
			GrandTotal:    body.GrandTotal,
		}

		details := make([]models.InvoiceDetail, 0, len(body.Details))
		for _, in := range body.Details {
			details = append(details, models.InvoiceDetail{
				ProductID: in.ProductID,
				Bags:      in.Bags,
				TotalKgs:  in.TotalKgs,
				Rate:      in.Rate,
				Amount:    in.Amount,
			})
		}

		if err := stock.CreateInvoice(database.DB, &header, details); err != nil {
			return err
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "invoice",
			EntityID:    header.ID,
			Action:      models.AuditActionCreate,
			Description: "invoice " + header.InvoiceNo,
			After:       header,
		})

		return web.Created(c, header)
	}
}

// PUT /api/invoices/:id: full detail replacement, see stock.UpdateInvoice
// for the stock contract.
func UpdateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.New(apperr.Validation, "invalid id")
		}

		var body CreateInvoiceRequest
		if err := web.Bind(c, &body,
			"account_id", "order_header_id", "broker_id", "transport_id", "invoice_type_id"); err != nil {
			return err
		}
		if err := validate.Struct(body); err != nil {
			return err
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return apperr.New(apperr.Validation, "date must be 'YYYY-MM-DD'")
		}

		header := models.InvoiceHeader{
			Date:          d,
			AccountID:     body.AccountID,
			OrderHeaderID: body.OrderHeaderID,
			BrokerID:      body.BrokerID,
			TransportID:   body.TransportID,
			InvoiceTypeID: body.InvoiceTypeID,
			VehicleNo:     body.VehicleNo,
			SubTotal:      body.SubTotal,
			TaxAmount:     body.TaxAmount,
			GrandTotal:    body.GrandTotal,
		}
		details := make([]models.InvoiceDetail, 0, len(body.Details))
		for _, in := range body.Details {
			details = append(details, models.InvoiceDetail{
				ProductID: in.ProductID,
				Bags:      in.Bags,
				TotalKgs:  in.TotalKgs,
				Rate:      in.Rate,
				Amount:    in.Amount,
			})
		}

		updated, err := stock.UpdateInvoice(database.DB, uint(id), &header, details)
		if err != nil {
			return err
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			UserName:   userName,
			EntityType: "invoice",
			EntityID:   updated.ID,
			Action:     models.AuditActionUpdate,
			After:      updated,
		})

		return web.OK(c, updated)
	}
}

// GET /api/invoices?start&end
func ListInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.
			Preload("Account").
			Preload("Details").
			Preload("Details.Product").
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

		var headers []models.InvoiceHeader
		if err := q.Find(&headers).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not list invoices")
		}
		return web.OK(c, headers)
	}
}

// GET /api/invoices/:id
func GetInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.New(apperr.Validation, "invalid id")
		}
		header, err := loadInvoice(uint(id))
		if err != nil {
			return err
		}
		return web.OK(c, header)
	}
}

// PUT /api/invoices/approve/:id: status flag only, no stock effect.
func ApproveInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.New(apperr.Validation, "invalid id")
		}

		if err := stock.ApproveInvoice(database.DB, uint(id)); err != nil {
			return err
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			UserName:   userName,
			EntityType: "invoice",
			EntityID:   uint(id),
			Action:     models.AuditActionApprove,
		})

		return web.Message(c, "invoice approved")
	}
}

// PUT /api/invoices/reject/:id: compensating stock reversal, then delete.
func RejectInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.New(apperr.Validation, "invalid id")
		}

		header, err := stock.RejectInvoice(database.DB, uint(id))
		if err != nil {
			return err
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "invoice",
			EntityID:    header.ID,
			Action:      models.AuditActionReject,
			Description: "invoice " + header.InvoiceNo + " rejected, stock restored",
			Before:      header,
		})

		return web.Message(c, "invoice rejected")
	}
}

// GET /api/invoices/print/:id: everything the print template needs, nested.
func PrintInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.New(apperr.Validation, "invalid id")
		}

		var header models.InvoiceHeader
		if err := database.DB.
			Preload("Account").
			Preload("Account.Broker").
			Preload("Broker").
			Preload("Transport").
			Preload("InvoiceType").
			Preload("OrderHeader").
			Preload("Depot").
			Preload("Details").
			Preload("Details.Product").
			Preload("Details.Product.TariffSubHead").
			First(&header, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Newf(apperr.NotFound, "invoice %d not found", id)
			}
			return apperr.Wrap(apperr.Persistence, err, "could not load invoice")
		}
		return web.OK(c, header)
	}
}

func loadInvoice(id uint) (*models.InvoiceHeader, error) {
	var header models.InvoiceHeader
	if err := database.DB.
		Preload("Account").
		Preload("Broker").
		Preload("Transport").
		Preload("Details").
		Preload("Details.Product").
		First(&header, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.NotFound, "invoice %d not found", id)
		}
		return nil, apperr.Wrap(apperr.Persistence, err, "could not load invoice")
	}
	return &header, nil
}
