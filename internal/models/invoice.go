package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceHeader is a standard order-backed sales invoice. Creating it
// decrements Product.MillStock per detail line; rejecting it reverses the
// decrement and deletes the document. Approval is a status flag only.
type InvoiceHeader struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	InvoiceNo       string       `gorm:"size:30;uniqueIndex;not null" json:"invoice_no"`
	Date            time.Time    `gorm:"index;not null" json:"date"`
	AccountID       uint         `gorm:"index;not null" json:"account_id"`
	Account         Account      `json:"account,omitempty"`
	OrderHeaderID   *uint        `gorm:"index" json:"order_header_id"`
	OrderHeader     *OrderHeader `json:"order_header,omitempty"`
	BrokerID        *uint        `gorm:"index" json:"broker_id"`
	Broker          *Broker      `json:"broker,omitempty"`
	TransportID     *uint        `gorm:"index" json:"transport_id"`
	Transport       *Transport   `json:"transport,omitempty"`
	InvoiceTypeID   *uint        `gorm:"index" json:"invoice_type_id"`
	InvoiceType     *InvoiceType `json:"invoice_type,omitempty"`
	VehicleNo       string       `gorm:"size:20" json:"vehicle_no"`
	IsApproved      bool         `gorm:"not null;default:false" json:"is_approved"`
	IsDepotInwarded bool         `gorm:"not null;default:false" json:"is_depot_inwarded"`
	DepotID         *uint        `gorm:"index" json:"depot_id"`
	Depot           *Depot       `json:"depot,omitempty"`
	SubTotal        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"sub_total"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"tax_amount"`
	GrandTotal      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"grand_total"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`

	Details []InvoiceDetail `gorm:"foreignKey:InvoiceHeaderID;constraint:OnDelete:CASCADE" json:"details"`
}

type InvoiceDetail struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	InvoiceHeaderID uint            `gorm:"index;not null" json:"invoice_header_id"`
	ProductID       uint            `gorm:"index;not null" json:"product_id"`
	Product         Product         `json:"product,omitempty"`
	Bags            int             `gorm:"not null;default:0" json:"bags"`
	TotalKgs        decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"total_kgs"`
	Rate            decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"rate"`
	Amount          decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"amount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
