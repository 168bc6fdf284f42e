// Package stock is the reconciliation core: every operation that writes a
// transactional document and moves Product.MillStock (or a depot balance)
// lives here, and runs inside a single gorm transaction so the counter can
// never drift from its contributing documents.
package stock

import (
	"time"

	"textile-erp-backend/internal/apperr"
	"textile-erp-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// adjustMillStock applies a signed delta to a product's running balance as a
// single UPDATE-with-arithmetic statement. Two-step read-modify-write is not
// allowed here: concurrent invoices against the same product would lose
// updates.
func adjustMillStock(tx *gorm.DB, productID uint, delta decimal.Decimal) error {
	res := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("mill_stock", gorm.Expr("mill_stock + ?", delta))
	if res.Error != nil {
		return apperr.Wrap(apperr.Persistence, res.Error, "could not adjust mill stock")
	}
	if res.RowsAffected == 0 {
		return apperr.Newf(apperr.NotFound, "product %d not found", productID)
	}
	return nil
}

// dayRange returns the [start, end) window covering the calendar day of t.
// Header dates are compared by day, not instant.
func dayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
