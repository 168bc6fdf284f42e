package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RG1Production is the daily production register entry per product. One row
// per (date, product); never mutated after its stock sync. Its creation is
// the sole writer of Product.MillStock on the production path.
type RG1Production struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Date           time.Time       `gorm:"uniqueIndex:idx_rg1_date_product;not null" json:"date"`
	ProductID      uint            `gorm:"uniqueIndex:idx_rg1_date_product;not null" json:"product_id"`
	Product        Product         `json:"product,omitempty"`
	PackingTypeID  uint            `gorm:"index;not null" json:"packing_type_id"`
	PackingType    PackingType     `json:"packing_type,omitempty"`
	WeightPerBag   decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"weight_per_bag"`
	PrevClosingKgs decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"prev_closing_kgs"`
	ProductionKgs  decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"production_kgs"`
	InvoiceKgs     decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"invoice_kgs"`
	StockKgs       decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"stock_kgs"`
	StockBags      int64           `gorm:"not null;default:0" json:"stock_bags"`
	StockLooseKgs  decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0" json:"stock_loose_kgs"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
