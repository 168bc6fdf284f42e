package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DirectInvoiceHeader is a sale without a backing order. OrderNo doubles as
// the fallback lookup key for depot-inward sync.
type DirectInvoiceHeader struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	OrderNo         string     `gorm:"size:30;uniqueIndex;not null" json:"order_no"`
	Date            time.Time  `gorm:"index;not null" json:"date"`
	AccountID       uint       `gorm:"index;not null" json:"account_id"`
	Account         Account    `json:"account,omitempty"`
	TransportID     *uint      `gorm:"index" json:"transport_id"`
	Transport       *Transport `json:"transport,omitempty"`
	VehicleNo       string     `gorm:"size:20" json:"vehicle_no"`
	IsDepotInwarded bool       `gorm:"not null;default:false" json:"is_depot_inwarded"`
	DepotID         *uint      `gorm:"index" json:"depot_id"`
	Depot           *Depot     `json:"depot,omitempty"`
	SubTotal        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"sub_total"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"tax_amount"`
	GrandTotal      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"grand_total"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Details []DirectInvoiceDetail `gorm:"foreignKey:DirectInvoiceHeaderID;constraint:OnDelete:CASCADE" json:"details"`
}

type DirectInvoiceDetail struct {
	ID                    uint            `gorm:"primaryKey" json:"id"`
	DirectInvoiceHeaderID uint            `gorm:"index;not null" json:"direct_invoice_header_id"`
	ProductID             uint            `gorm:"index;not null" json:"product_id"`
	Product               Product         `json:"product,omitempty"`
	QtyKgs                decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"qty_kgs"`
	Rate                  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"rate"`
	Amount                decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"amount"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
