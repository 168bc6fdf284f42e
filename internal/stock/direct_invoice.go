package stock

import (
	"errors"

	"textile-erp-backend/internal/apperr"
	"textile-erp-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateDirectInvoice is the order-less counterpart of CreateInvoice; the
// quantity field is qty_kgs and the same decrement-on-create contract holds.
func CreateDirectInvoice(db *gorm.DB, header *models.DirectInvoiceHeader, details []models.DirectInvoiceDetail) error {
	if header.OrderNo == "" {
		return apperr.New(apperr.Validation, "order_no is required")
	}
	if header.AccountID == 0 {
		return apperr.New(apperr.Validation, "account_id is required")
	}
	if len(details) == 0 {
		return apperr.New(apperr.Validation, "at least one detail line is required")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(header).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not create direct invoice header")
		}

		for i := range details {
			d := &details[i]
			if d.ProductID == 0 {
				return apperr.New(apperr.Validation, "detail line is missing product_id")
			}
			d.ID = 0
			d.DirectInvoiceHeaderID = header.ID
			if err := tx.Omit(clause.Associations).Create(d).Error; err != nil {
				return apperr.Wrap(apperr.Persistence, err, "could not create direct invoice detail")
			}
			if err := adjustMillStock(tx, d.ProductID, d.QtyKgs.Neg()); err != nil {
				return err
			}
		}

		header.Details = details
		return nil
	})
}

// UpdateDirectInvoice updates header fields and replaces the detail set
// wholesale: existing rows are deleted and the new set is inserted, no diff.
//
// Mill stock is NOT re-adjusted for the delta between the old and new
// quantities. That is the register's historical behaviour; the replacement is
// isolated in replaceDirectInvoiceDetails so a delta correction can be added
// there once the business rule is confirmed.
func UpdateDirectInvoice(db *gorm.DB, id uint, header *models.DirectInvoiceHeader, details []models.DirectInvoiceDetail) (*models.DirectInvoiceHeader, error) {
	if len(details) == 0 {
		return nil, apperr.New(apperr.Validation, "at least one detail line is required")
	}

	var existing models.DirectInvoiceHeader
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Newf(apperr.NotFound, "direct invoice %d not found", id)
			}
			return apperr.Wrap(apperr.Persistence, err, "could not load direct invoice")
		}

		if err := tx.Model(&existing).
			Select("date", "account_id", "transport_id", "vehicle_no", "sub_total", "tax_amount", "grand_total").
			Updates(header).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not update direct invoice header")
		}

		if err := replaceDirectInvoiceDetails(tx, existing.ID, details); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	existing.Details = details
	return &existing, nil
}

// replaceDirectInvoiceDetails drops all child rows of a header and bulk
// inserts the new set.
func replaceDirectInvoiceDetails(tx *gorm.DB, headerID uint, details []models.DirectInvoiceDetail) error {
	if err := tx.Where("direct_invoice_header_id = ?", headerID).
		Delete(&models.DirectInvoiceDetail{}).Error; err != nil {
		return apperr.Wrap(apperr.Persistence, err, "could not clear direct invoice details")
	}

	for i := range details {
		d := &details[i]
		if d.ProductID == 0 {
			return apperr.New(apperr.Validation, "detail line is missing product_id")
		}
		d.ID = 0
		d.DirectInvoiceHeaderID = headerID
	}
	if err := tx.Omit(clause.Associations).Create(&details).Error; err != nil {
		return apperr.Wrap(apperr.Persistence, err, "could not insert direct invoice details")
	}
	return nil
}
