package stock

import (
	"time"

	"textile-erp-backend/internal/apperr"
	"textile-erp-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductionInput struct {
	Date           time.Time
	ProductID      uint
	PackingTypeID  uint
	WeightPerBag   decimal.Decimal
	PrevClosingKgs decimal.Decimal
	ProductionKgs  decimal.Decimal
}

// CreateProductionEntry writes the daily RG1 register row for one product and
// syncs Product.MillStock to the computed closing stock.
//
// The production path OVERWRITES the counter with closing stock; the invoice
// paths apply increments/decrements. Any movement recorded after the moment
// prev_closing_kgs was read and not reflected in it is therefore discarded by
// this write. That is the register's historical behaviour and must not be
// changed without an agreed business rule.
func CreateProductionEntry(db *gorm.DB, in ProductionInput) (*models.RG1Production, error) {
	if in.ProductID == 0 {
		return nil, apperr.New(apperr.Validation, "product_id is required")
	}
	if in.PackingTypeID == 0 {
		return nil, apperr.New(apperr.Validation, "packing_type_id is required")
	}

	var entry models.RG1Production
	err := db.Transaction(func(tx *gorm.DB) error {
		invoiced, err := sumInvoicedKgs(tx, in.ProductID, in.Date)
		if err != nil {
			return err
		}

		// may go negative; recorded, not rejected
		closing := in.PrevClosingKgs.Add(in.ProductionKgs).Sub(invoiced)
		bags, loose := splitBags(closing, in.WeightPerBag)

		entry = models.RG1Production{
			Date:           in.Date,
			ProductID:      in.ProductID,
			PackingTypeID:  in.PackingTypeID,
			WeightPerBag:   in.WeightPerBag,
			PrevClosingKgs: in.PrevClosingKgs,
			ProductionKgs:  in.ProductionKgs,
			InvoiceKgs:     invoiced,
			StockKgs:       closing,
			StockBags:      bags,
			StockLooseKgs:  loose,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not create production entry")
		}

		res := tx.Model(&models.Product{}).
			Where("id = ?", in.ProductID).
			UpdateColumn("mill_stock", closing.Round(3))
		if res.Error != nil {
			return apperr.Wrap(apperr.Persistence, res.Error, "could not sync mill stock")
		}
		if res.RowsAffected == 0 {
			return apperr.Newf(apperr.NotFound, "product %d not found", in.ProductID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// sumInvoicedKgs totals the kilograms sold for a product on one calendar day:
// standard invoice detail total_kgs plus direct invoice detail qty_kgs, both
// matched on the header date.
func sumInvoicedKgs(tx *gorm.DB, productID uint, date time.Time) (decimal.Decimal, error) {
	start, end := dayRange(date)

	var std decimal.Decimal
	err := tx.Model(&models.InvoiceDetail{}).
		Joins("JOIN invoice_headers ON invoice_headers.id = invoice_details.invoice_header_id").
		Where("invoice_details.product_id = ? AND invoice_headers.date >= ? AND invoice_headers.date < ?", productID, start, end).
		Select("COALESCE(SUM(invoice_details.total_kgs), 0)").
		Scan(&std).Error
	if err != nil {
		return decimal.Zero, apperr.Wrap(apperr.Persistence, err, "could not sum invoiced kgs")
	}

	var direct decimal.Decimal
	err = tx.Model(&models.DirectInvoiceDetail{}).
		Joins("JOIN direct_invoice_headers ON direct_invoice_headers.id = direct_invoice_details.direct_invoice_header_id").
		Where("direct_invoice_details.product_id = ? AND direct_invoice_headers.date >= ? AND direct_invoice_headers.date < ?", productID, start, end).
		Select("COALESCE(SUM(direct_invoice_details.qty_kgs), 0)").
		Scan(&direct).Error
	if err != nil {
		return decimal.Zero, apperr.Wrap(apperr.Persistence, err, "could not sum direct invoiced kgs")
	}

	return std.Add(direct), nil
}

// splitBags divides closing stock into whole bags and a loose remainder.
// When the bag weight is zero or negative the split is skipped and the whole
// quantity is reported loose.
func splitBags(closing, weightPerBag decimal.Decimal) (int64, decimal.Decimal) {
	if weightPerBag.Sign() <= 0 {
		return 0, closing
	}
	bags := closing.Div(weightPerBag).Floor()
	loose := closing.Sub(bags.Mul(weightPerBag))
	return bags.IntPart(), loose
}
