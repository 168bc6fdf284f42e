package stock

import (
	"errors"

	"textile-erp-backend/internal/apperr"
	"textile-erp-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateInvoice inserts the header and its detail lines and decrements the
// mill stock of every line's product by its total_kgs, all in one
// transaction. Any failure rolls back the whole document.
func CreateInvoice(db *gorm.DB, header *models.InvoiceHeader, details []models.InvoiceDetail) error {
	if header.InvoiceNo == "" {
		return apperr.New(apperr.Validation, "invoice_no is required")
	}
	if header.AccountID == 0 {
		return apperr.New(apperr.Validation, "account_id is required")
	}
	if len(details) == 0 {
		return apperr.New(apperr.Validation, "at least one detail line is required")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(header).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not create invoice header")
		}

		for i := range details {
			d := &details[i]
			if d.ProductID == 0 {
				return apperr.New(apperr.Validation, "detail line is missing product_id")
			}
			d.ID = 0
			d.InvoiceHeaderID = header.ID
			if err := tx.Omit(clause.Associations).Create(d).Error; err != nil {
				return apperr.Wrap(apperr.Persistence, err, "could not create invoice detail")
			}
			if err := adjustMillStock(tx, d.ProductID, d.TotalKgs.Neg()); err != nil {
				return err
			}
		}

		header.Details = details
		return nil
	})
}

// UpdateInvoice updates header fields and replaces the detail set wholesale,
// same contract as UpdateDirectInvoice: no mill stock re-adjustment for the
// delta between old and new quantities.
func UpdateInvoice(db *gorm.DB, id uint, header *models.InvoiceHeader, details []models.InvoiceDetail) (*models.InvoiceHeader, error) {
	if len(details) == 0 {
		return nil, apperr.New(apperr.Validation, "at least one detail line is required")
	}

	var existing models.InvoiceHeader
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Newf(apperr.NotFound, "invoice %d not found", id)
			}
			return apperr.Wrap(apperr.Persistence, err, "could not load invoice")
		}

		if err := tx.Model(&existing).
			Select("date", "account_id", "order_header_id", "broker_id", "transport_id",
				"invoice_type_id", "vehicle_no", "sub_total", "tax_amount", "grand_total").
			Updates(header).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not update invoice header")
		}

		if err := tx.Where("invoice_header_id = ?", existing.ID).
			Delete(&models.InvoiceDetail{}).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not clear invoice details")
		}
		for i := range details {
			d := &details[i]
			if d.ProductID == 0 {
				return apperr.New(apperr.Validation, "detail line is missing product_id")
			}
			d.ID = 0
			d.InvoiceHeaderID = existing.ID
		}
		if err := tx.Omit(clause.Associations).Create(&details).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not insert invoice details")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	existing.Details = details
	return &existing, nil
}

// ApproveInvoice flips the approval flag. Approval and stock movement are
// independent state dimensions: no stock effect here.
func ApproveInvoice(db *gorm.DB, id uint) error {
	res := db.Model(&models.InvoiceHeader{}).
		Where("id = ?", id).
		Update("is_approved", true)
	if res.Error != nil {
		return apperr.Wrap(apperr.Persistence, res.Error, "could not approve invoice")
	}
	if res.RowsAffected == 0 {
		return apperr.Newf(apperr.NotFound, "invoice %d not found", id)
	}
	return nil
}

// RejectInvoice compensates every detail line back into mill stock and then
// deletes the document. After this the counter is exactly where it was before
// the invoice was created.
func RejectInvoice(db *gorm.DB, id uint) (*models.InvoiceHeader, error) {
	var header models.InvoiceHeader
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Details").First(&header, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Newf(apperr.NotFound, "invoice %d not found", id)
			}
			return apperr.Wrap(apperr.Persistence, err, "could not load invoice")
		}

		for _, d := range header.Details {
			if err := adjustMillStock(tx, d.ProductID, d.TotalKgs); err != nil {
				return err
			}
		}

		// explicit child delete so the reversal does not depend on the
		// driver honouring the FK cascade
		if err := tx.Where("invoice_header_id = ?", header.ID).
			Delete(&models.InvoiceDetail{}).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not delete invoice details")
		}
		if err := tx.Delete(&models.InvoiceHeader{}, "id = ?", header.ID).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not delete invoice header")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &header, nil
}
