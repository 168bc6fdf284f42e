// Package reports holds the read-only aggregation views over the
// transactional tables. Each report is a date-ranged fetch returning ordered
// columns and rows, rendered either as JSON or as a spreadsheet.
package reports

import (
	"time"

	"textile-erp-backend/internal/apperr"
	"textile-erp-backend/internal/models"

	"gorm.io/gorm"
)

type Report struct {
	Title   string
	Columns []string
	Fetch   func(db *gorm.DB, start, end time.Time) ([][]any, error)
}

// Registry maps reportId path segments to their definitions.
var Registry = map[string]Report{
	"invoice-register": {
		Title:   "Invoice Register",
		Columns: []string{"Date", "Invoice No", "Account", "Product", "Bags", "Total Kgs", "Rate", "Amount", "Approved"},
		Fetch:   invoiceRegister,
	},
	"direct-invoice-register": {
		Title:   "Direct Invoice Register",
		Columns: []string{"Date", "Order No", "Account", "Product", "Qty Kgs", "Rate", "Amount"},
		Fetch:   directInvoiceRegister,
	},
	"production-register": {
		Title:   "RG1 Production Register",
		Columns: []string{"Date", "Product", "Prev Closing", "Production", "Invoiced", "Closing", "Bags", "Loose Kgs"},
		Fetch:   productionRegister,
	},
	"depot-sales-register": {
		Title:   "Depot Sales Register",
		Columns: []string{"Date", "Depot", "Type", "Party / To Depot", "Product", "Qty Kgs", "Amount"},
		Fetch:   depotSalesRegister,
	},
	"despatch-register": {
		Title:   "Despatch Register",
		Columns: []string{"Date", "Invoice No", "Transport", "Vehicle No", "LR No", "Bags"},
		Fetch:   despatchRegister,
	},
	"order-book": {
		Title:   "Order Book",
		Columns: []string{"Date", "Order No", "Account", "Product", "Qty Kgs", "Rate", "Delivery Date"},
		Fetch:   orderBook,
	},
}

const dateLayout = "2006-01-02"

func invoiceRegister(db *gorm.DB, start, end time.Time) ([][]any, error) {
	var headers []models.InvoiceHeader
	err := db.
		Preload("Account").
		Preload("Details").
		Preload("Details.Product").
		Where("date >= ? AND date < ?", start, end).
		Order("date, invoice_no").
		Find(&headers).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, err, "could not read invoice register")
	}

	var rows [][]any
	for _, h := range headers {
		for _, d := range h.Details {
			rows = append(rows, []any{
				h.Date.Format(dateLayout), h.InvoiceNo, h.Account.Name,
				d.Product.Name, d.Bags, d.TotalKgs.String(), d.Rate.String(), d.Amount.String(),
				h.IsApproved,
			})
		}
	}
	return rows, nil
}

func directInvoiceRegister(db *gorm.DB, start, end time.Time) ([][]any, error) {
	var headers []models.DirectInvoiceHeader
	err := db.
		Preload("Account").
		Preload("Details").
		Preload("Details.Product").
		Where("date >= ? AND date < ?", start, end).
		Order("date, order_no").
		Find(&headers).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, err, "could not read direct invoice register")
	}

	var rows [][]any
	for _, h := range headers {
		for _, d := range h.Details {
			rows = append(rows, []any{
				h.Date.Format(dateLayout), h.OrderNo, h.Account.Name,
				d.Product.Name, d.QtyKgs.String(), d.Rate.String(), d.Amount.String(),
			})
		}
	}
	return rows, nil
}

func productionRegister(db *gorm.DB, start, end time.Time) ([][]any, error) {
	var entries []models.RG1Production
	err := db.
		Preload("Product").
		Where("date >= ? AND date < ?", start, end).
		Order("date, product_id").
		Find(&entries).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, err, "could not read production register")
	}

	var rows [][]any
	for _, e := range entries {
		rows = append(rows, []any{
			e.Date.Format(dateLayout), e.Product.Name,
			e.PrevClosingKgs.String(), e.ProductionKgs.String(), e.InvoiceKgs.String(),
			e.StockKgs.String(), e.StockBags, e.StockLooseKgs.String(),
		})
	}
	return rows, nil
}

func depotSalesRegister(db *gorm.DB, start, end time.Time) ([][]any, error) {
	var headers []models.DepotSalesHeader
	err := db.
		Preload("Depot").
		Preload("Account").
		Preload("ToDepot").
		Preload("Details").
		Preload("Details.Product").
		Where("date >= ? AND date < ?", start, end).
		Order("date, id").
		Find(&headers).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, err, "could not read depot sales register")
	}

	var rows [][]any
	for _, h := range headers {
		counterparty := ""
		if h.Account != nil {
			counterparty = h.Account.Name
		} else if h.ToDepot != nil {
			counterparty = h.ToDepot.Name
		}
		for _, d := range h.Details {
			rows = append(rows, []any{
				h.Date.Format(dateLayout), h.Depot.Name, string(h.SalesType), counterparty,
				d.Product.Name, d.QtyKgs.String(), d.Amount.String(),
			})
		}
	}
	return rows, nil
}

func despatchRegister(db *gorm.DB, start, end time.Time) ([][]any, error) {
	var entries []models.DespatchEntry
	err := db.
		Preload("InvoiceHeader").
		Preload("Transport").
		Where("date >= ? AND date < ?", start, end).
		Order("date, id").
		Find(&entries).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, err, "could not read despatch register")
	}

	var rows [][]any
	for _, e := range entries {
		invoiceNo := ""
		if e.InvoiceHeader != nil {
			invoiceNo = e.InvoiceHeader.InvoiceNo
		}
		transport := ""
		if e.Transport != nil {
			transport = e.Transport.Name
		}
		rows = append(rows, []any{
			e.Date.Format(dateLayout), invoiceNo, transport, e.VehicleNo, e.LRNo, e.Bags,
		})
	}
	return rows, nil
}

func orderBook(db *gorm.DB, start, end time.Time) ([][]any, error) {
	var headers []models.OrderHeader
	err := db.
		Preload("Account").
		Preload("Details").
		Preload("Details.Product").
		Where("date >= ? AND date < ?", start, end).
		Order("date, order_no").
		Find(&headers).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, err, "could not read order book")
	}

	var rows [][]any
	for _, h := range headers {
		for _, d := range h.Details {
			delivery := ""
			if d.DeliveryDate != nil {
				delivery = d.DeliveryDate.Format(dateLayout)
			}
			rows = append(rows, []any{
				h.Date.Format(dateLayout), h.OrderNo, h.Account.Name,
				d.Product.Name, d.QtyKgs.String(), d.Rate.String(), delivery,
			})
		}
	}
	return rows, nil
}
