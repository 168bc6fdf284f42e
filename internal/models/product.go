package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a finished-goods master. MillStock is the running mill-level
// balance in kilograms; it is maintained incrementally by the stock service
// and must only be written inside the same transaction as the document that
// moves it.
type Product struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Code            string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name            string `gorm:"size:100;not null" json:"name"`
	Commodity       string `gorm:"size:50" json:"commodity"`
	Fibre           string `gorm:"size:50" json:"fibre"`
	TariffSubHeadID *uint  `gorm:"index" json:"tariff_sub_head_id"`
	TariffSubHead   *TariffSubHead `json:"tariff_sub_head,omitempty"`
	MillStock       decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0" json:"mill_stock"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
