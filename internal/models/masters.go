package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a trading party (buyer/consignee).
type Account struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Address   string `gorm:"size:255" json:"address"`
	City      string `gorm:"size:50" json:"city"`
	State     string `gorm:"size:50" json:"state"`
	GSTNo     string `gorm:"size:20" json:"gst_no"`
	Phone     string `gorm:"size:20" json:"phone"`
	Email     string `gorm:"size:100" json:"email"`
	BrokerID  *uint  `gorm:"index" json:"broker_id"`
	Broker    *Broker `json:"broker,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Broker struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"size:100;not null" json:"name"`
	Commission decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0" json:"commission"`
	Phone      string          `gorm:"size:20" json:"phone"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type Transport struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	GSTNo     string `gorm:"size:20" json:"gst_no"`
	Phone     string `gorm:"size:20" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TariffSubHead carries the HSN-style tariff classification a product falls
// under and its applicable tax rate.
type TariffSubHead struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Code        string          `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Description string          `gorm:"size:255" json:"description"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0" json:"tax_rate"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type PackingType struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:50;not null" json:"name"`
	BagWeightKgs decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0" json:"bag_weight_kgs"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type InvoiceType struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:50;not null" json:"name"`
	Prefix    string `gorm:"size:10" json:"prefix"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Depot is a secondary storage/distribution location. Its stock is derived at
// query time, never stored.
type Depot struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Location  string `gorm:"size:100" json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
