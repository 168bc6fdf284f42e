package stock

import (
	"errors"
	"time"

	"textile-erp-backend/internal/apperr"
	"textile-erp-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SyncDepotInward marks a mill invoice as physically received at a depot and
// appends the INWARD row that makes its detail lines count toward the depot's
// balance. Lookup order: standard invoice by invoice_no first, then direct
// invoice by order_no; first match wins.
func SyncDepotInward(db *gorm.DB, invoiceNo string, depotID uint, date time.Time) (*models.DepotReceived, error) {
	if invoiceNo == "" {
		return nil, apperr.New(apperr.Validation, "invoice_no is required")
	}
	if depotID == 0 {
		return nil, apperr.New(apperr.Validation, "depot_id is required")
	}

	var received models.DepotReceived
	err := db.Transaction(func(tx *gorm.DB) error {
		var std models.InvoiceHeader
		err := tx.First(&std, "invoice_no = ?", invoiceNo).Error
		switch {
		case err == nil:
			if std.IsDepotInwarded {
				return apperr.Newf(apperr.Validation, "invoice %s is already depot-inwarded", invoiceNo)
			}
			if err := tx.Model(&std).
				Updates(map[string]any{"is_depot_inwarded": true, "depot_id": depotID}).Error; err != nil {
				return apperr.Wrap(apperr.Persistence, err, "could not flag invoice as inwarded")
			}
			received = models.DepotReceived{
				DepotID:         depotID,
				Date:            date,
				ReceivedType:    models.DepotReceivedInward,
				InvoiceHeaderID: &std.ID,
				InvoiceNo:       std.InvoiceNo,
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			var direct models.DirectInvoiceHeader
			err := tx.First(&direct, "order_no = ?", invoiceNo).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Newf(apperr.SyncNotFound, "no invoice or direct invoice matches %s", invoiceNo)
			}
			if err != nil {
				return apperr.Wrap(apperr.Persistence, err, "could not look up direct invoice")
			}
			if direct.IsDepotInwarded {
				return apperr.Newf(apperr.Validation, "direct invoice %s is already depot-inwarded", invoiceNo)
			}
			if err := tx.Model(&direct).
				Updates(map[string]any{"is_depot_inwarded": true, "depot_id": depotID}).Error; err != nil {
				return apperr.Wrap(apperr.Persistence, err, "could not flag direct invoice as inwarded")
			}
			received = models.DepotReceived{
				DepotID:               depotID,
				Date:                  date,
				ReceivedType:          models.DepotReceivedInward,
				DirectInvoiceHeaderID: &direct.ID,
				InvoiceNo:             direct.OrderNo,
			}
		default:
			return apperr.Wrap(apperr.Persistence, err, "could not look up invoice")
		}

		if err := tx.Omit(clause.Associations).Create(&received).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not record depot inward")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &received, nil
}

// RecordDepotOpening seeds a depot's initial balance for one product.
func RecordDepotOpening(db *gorm.DB, depotID, productID uint, date time.Time, qtyKgs decimal.Decimal) (*models.DepotReceived, error) {
	if depotID == 0 {
		return nil, apperr.New(apperr.Validation, "depot_id is required")
	}
	if productID == 0 {
		return nil, apperr.New(apperr.Validation, "product_id is required")
	}
	if qtyKgs.Sign() < 0 {
		return nil, apperr.New(apperr.Validation, "qty_kgs cannot be negative")
	}

	received := models.DepotReceived{
		DepotID:      depotID,
		Date:         date,
		ReceivedType: models.DepotReceivedOpening,
		ProductID:    &productID,
		QtyKgs:       qtyKgs,
	}
	if err := db.Omit(clause.Associations).Create(&received).Error; err != nil {
		return nil, apperr.Wrap(apperr.Persistence, err, "could not record depot opening")
	}
	return &received, nil
}

// CreateDepotSale writes a depot outward document. A DEPOT TRANSFER is an
// outward document for the source depot that the receiving depot's inventory
// query reads symmetrically as inward.
func CreateDepotSale(db *gorm.DB, header *models.DepotSalesHeader, details []models.DepotSalesDetail) error {
	if header.DepotID == 0 {
		return apperr.New(apperr.Validation, "depot_id is required")
	}
	if len(details) == 0 {
		return apperr.New(apperr.Validation, "at least one detail line is required")
	}
	switch header.SalesType {
	case models.DepotSalesTypeSale:
		if header.AccountID == nil {
			return apperr.New(apperr.Validation, "account_id is required for a depot sale")
		}
	case models.DepotSalesTypeTransfer:
		if header.ToDepotID == nil {
			return apperr.New(apperr.Validation, "to_depot_id is required for a depot transfer")
		}
		if *header.ToDepotID == header.DepotID {
			return apperr.New(apperr.Validation, "cannot transfer a depot to itself")
		}
	default:
		return apperr.Newf(apperr.Validation, "unknown sales_type %q", header.SalesType)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(header).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not create depot sales header")
		}
		for i := range details {
			d := &details[i]
			if d.ProductID == 0 {
				return apperr.New(apperr.Validation, "detail line is missing product_id")
			}
			d.ID = 0
			d.DepotSalesHeaderID = header.ID
			if err := tx.Omit(clause.Associations).Create(d).Error; err != nil {
				return apperr.Wrap(apperr.Persistence, err, "could not create depot sales detail")
			}
		}
		header.Details = details
		return nil
	})
}

type DepotStock struct {
	ProductID     uint            `json:"product_id"`
	ProductCode   string          `json:"product_code"`
	ProductName   string          `json:"product_name"`
	DepotStockKgs decimal.Decimal `json:"depot_stock_kgs"`
}

// ComputeDepotInventory derives a depot's per-product balance at query time:
// opening + standard inward + direct inward + transfers in - total outward,
// floored at zero for display. Read-only and unlocked; a stale snapshot under
// concurrent writes is acceptable for this reporting view.
func ComputeDepotInventory(db *gorm.DB, depotID uint) ([]DepotStock, error) {
	if depotID == 0 {
		return nil, apperr.New(apperr.Validation, "depot_id is required")
	}

	var products []models.Product
	if err := db.Order("code").Find(&products).Error; err != nil {
		return nil, apperr.Wrap(apperr.Persistence, err, "could not list products")
	}

	out := make([]DepotStock, 0, len(products))
	for _, p := range products {
		opening, err := sumScalar(db.Model(&models.DepotReceived{}).
			Where("depot_id = ? AND received_type = ? AND product_id = ?", depotID, models.DepotReceivedOpening, p.ID).
			Select("COALESCE(SUM(qty_kgs), 0)"))
		if err != nil {
			return nil, err
		}

		stdInward, err := sumScalar(db.Model(&models.InvoiceDetail{}).
			Joins("JOIN invoice_headers ON invoice_headers.id = invoice_details.invoice_header_id").
			Where("invoice_headers.depot_id = ? AND invoice_headers.is_depot_inwarded = ? AND invoice_details.product_id = ?", depotID, true, p.ID).
			Select("COALESCE(SUM(invoice_details.total_kgs), 0)"))
		if err != nil {
			return nil, err
		}

		directInward, err := sumScalar(db.Model(&models.DirectInvoiceDetail{}).
			Joins("JOIN direct_invoice_headers ON direct_invoice_headers.id = direct_invoice_details.direct_invoice_header_id").
			Where("direct_invoice_headers.depot_id = ? AND direct_invoice_headers.is_depot_inwarded = ? AND direct_invoice_details.product_id = ?", depotID, true, p.ID).
			Select("COALESCE(SUM(direct_invoice_details.qty_kgs), 0)"))
		if err != nil {
			return nil, err
		}

		transfersIn, err := sumScalar(db.Model(&models.DepotSalesDetail{}).
			Joins("JOIN depot_sales_headers ON depot_sales_headers.id = depot_sales_details.depot_sales_header_id").
			Where("depot_sales_headers.sales_type = ? AND depot_sales_headers.to_depot_id = ? AND depot_sales_details.product_id = ?", models.DepotSalesTypeTransfer, depotID, p.ID).
			Select("COALESCE(SUM(depot_sales_details.qty_kgs), 0)"))
		if err != nil {
			return nil, err
		}

		outward, err := sumScalar(db.Model(&models.DepotSalesDetail{}).
			Joins("JOIN depot_sales_headers ON depot_sales_headers.id = depot_sales_details.depot_sales_header_id").
			Where("depot_sales_headers.depot_id = ? AND depot_sales_details.product_id = ?", depotID, p.ID).
			Select("COALESCE(SUM(depot_sales_details.qty_kgs), 0)"))
		if err != nil {
			return nil, err
		}

		balance := opening.Add(stdInward).Add(directInward).Add(transfersIn).Sub(outward)
		if balance.Sign() < 0 {
			balance = decimal.Zero
		}

		out = append(out, DepotStock{
			ProductID:     p.ID,
			ProductCode:   p.Code,
			ProductName:   p.Name,
			DepotStockKgs: balance,
		})
	}
	return out, nil
}

func sumScalar(q *gorm.DB) (decimal.Decimal, error) {
	var v decimal.Decimal
	if err := q.Scan(&v).Error; err != nil {
		return decimal.Zero, apperr.Wrap(apperr.Persistence, err, "could not aggregate depot quantity")
	}
	return v, nil
}
