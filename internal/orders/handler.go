package orders

import (
	"errors"
	"time"

	"textile-erp-backend/internal/apperr"
	"textile-erp-backend/internal/audit"
	"textile-erp-backend/internal/auth"
	"textile-erp-backend/internal/database"
	"textile-erp-backend/internal/models"
	"textile-erp-backend/internal/validate"
	"textile-erp-backend/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateOrderRequest struct {
	OrderNo   string             `json:"order_no" validate:"required"`
	Date      string             `json:"date" validate:"required"` // "2006-01-02"
	AccountID uint               `json:"account_id" validate:"required"`
	BrokerID  *uint              `json:"broker_id"`
	Remarks   string             `json:"remarks"`
	Details   []OrderDetailInput `json:"details" validate:"required,min=1,dive"`
}

type OrderDetailInput struct {
	ProductID    uint            `json:"product_id" validate:"required"`
	QtyKgs       decimal.Decimal `json:"qty_kgs"`
	Rate         decimal.Decimal `json:"rate"`
	DeliveryDate string          `json:"delivery_date"`
}

// POST /api/orders: header and detail lines in one transaction. Orders
// reserve nothing: no stock effect.
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
		if err := web.Bind(c, &body, "account_id", "broker_id"); err != nil {
			return err
		}
		if err := validate.Struct(body); err != nil {
			return err
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return apperr.New(apperr.Validation, "date must be 'YYYY-MM-DD'")
		}

		header := models.OrderHeader{
			OrderNo:   body.OrderNo,
			Date:      d,
			AccountID: body.AccountID,
			BrokerID:  body.BrokerID,
			Remarks:   body.Remarks,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit(clause.Associations).Create(&header).Error; err != nil {
				return apperr.Wrap(apperr.Persistence, err, "could not create order")
			}
			for _, in := range body.Details {
				detail := models.OrderDetail{
					OrderHeaderID: header.ID,
					ProductID:     in.ProductID,
					QtyKgs:        in.QtyKgs,
					Rate:          in.Rate,
				}
				if in.DeliveryDate != "" {
					dd, err := time.Parse("2006-01-02", in.DeliveryDate)
					if err != nil {
						return apperr.New(apperr.Validation, "delivery_date must be 'YYYY-MM-DD'")
					}
					detail.DeliveryDate = &dd
				}
				if err := tx.Omit(clause.Associations).Create(&detail).Error; err != nil {
					return apperr.Wrap(apperr.Persistence, err, "could not create order detail")
				}
				header.Details = append(header.Details, detail)
			}
			return nil
		})
		if err != nil {
			return err
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "order",
			EntityID:    header.ID,
			Action:      models.AuditActionCreate,
			Description: "order " + header.OrderNo,
			After:       header,
		})

		return web.Created(c, header)
	}
}

// GET /api/orders
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var headers []models.OrderHeader
		if err := database.DB.
			Preload("Account").
			Preload("Broker").
			Preload("Details").
			Preload("Details.Product").
			Order("date DESC, id DESC").
			Find(&headers).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not list orders")
		}
		return web.OK(c, headers)
	}
}

// GET /api/orders/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.New(apperr.Validation, "invalid id")
		}

		var header models.OrderHeader
		if err := database.DB.
			Preload("Account").
			Preload("Broker").
			Preload("Details").
			Preload("Details.Product").
			First(&header, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Newf(apperr.NotFound, "order %d not found", id)
			}
			return apperr.Wrap(apperr.Persistence, err, "could not load order")
		}
		return web.OK(c, header)
	}
}
