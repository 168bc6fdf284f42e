package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepotReceivedType string

const (
	// DepotReceivedOpening is a depot's initial balance for one product.
	DepotReceivedOpening DepotReceivedType = "OPENING"
	// DepotReceivedInward is stock synced from a mill invoice once received.
	DepotReceivedInward DepotReceivedType = "INWARD"
)

// DepotReceived records stock flowing into a depot. OPENING rows carry their
// own (product, qty); INWARD rows reference the mill invoice whose detail
// lines are the inward quantities.
type DepotReceived struct {
	ID                    uint                 `gorm:"primaryKey" json:"id"`
	DepotID               uint                 `gorm:"index;not null" json:"depot_id"`
	Depot                 Depot                `json:"depot,omitempty"`
	Date                  time.Time            `gorm:"index;not null" json:"date"`
	ReceivedType          DepotReceivedType    `gorm:"size:10;not null;index" json:"received_type"`
	ProductID             *uint                `gorm:"index" json:"product_id"`
	Product               *Product             `json:"product,omitempty"`
	QtyKgs                decimal.Decimal      `gorm:"type:decimal(14,3);not null;default:0" json:"qty_kgs"`
	InvoiceHeaderID       *uint                `gorm:"index" json:"invoice_header_id"`
	InvoiceHeader         *InvoiceHeader       `json:"invoice_header,omitempty"`
	DirectInvoiceHeaderID *uint                `gorm:"index" json:"direct_invoice_header_id"`
	DirectInvoiceHeader   *DirectInvoiceHeader `json:"direct_invoice_header,omitempty"`
	InvoiceNo             string               `gorm:"size:30" json:"invoice_no"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

type DepotSalesType string

const (
	DepotSalesTypeSale DepotSalesType = "DEPOT SALE"
	// DepotSalesTypeTransfer is an outward document read symmetrically as
	// inward by the receiving depot.
	DepotSalesTypeTransfer DepotSalesType = "DEPOT TRANSFER"
)

type DepotSalesHeader struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	DepotID   uint           `gorm:"index;not null" json:"depot_id"`
	Depot     Depot          `json:"depot,omitempty"`
	Date      time.Time      `gorm:"index;not null" json:"date"`
	SalesType DepotSalesType `gorm:"size:20;not null;index" json:"sales_type"`
	AccountID *uint          `gorm:"index" json:"account_id"`
	Account   *Account       `json:"account,omitempty"`
	ToDepotID *uint          `gorm:"index" json:"to_depot_id"`
	ToDepot   *Depot         `json:"to_depot,omitempty"`
	Remarks   string         `gorm:"size:255" json:"remarks"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Details []DepotSalesDetail `gorm:"foreignKey:DepotSalesHeaderID;constraint:OnDelete:CASCADE" json:"details"`
}

type DepotSalesDetail struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	DepotSalesHeaderID uint            `gorm:"index;not null" json:"depot_sales_header_id"`
	ProductID          uint            `gorm:"index;not null" json:"product_id"`
	Product            Product         `json:"product,omitempty"`
	QtyKgs             decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"qty_kgs"`
	Rate               decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"rate"`
	Amount             decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"amount"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
