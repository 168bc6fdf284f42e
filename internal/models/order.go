package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderHeader struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderNo   string    `gorm:"size:30;uniqueIndex;not null" json:"order_no"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	AccountID uint      `gorm:"index;not null" json:"account_id"`
	Account   Account   `json:"account,omitempty"`
	BrokerID  *uint     `gorm:"index" json:"broker_id"`
	Broker    *Broker   `json:"broker,omitempty"`
	Remarks   string    `gorm:"size:255" json:"remarks"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Details []OrderDetail `gorm:"foreignKey:OrderHeaderID;constraint:OnDelete:CASCADE" json:"details"`
}

type OrderDetail struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderHeaderID uint            `gorm:"index;not null" json:"order_header_id"`
	ProductID     uint            `gorm:"index;not null" json:"product_id"`
	Product       Product         `json:"product,omitempty"`
	QtyKgs        decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"qty_kgs"`
	Rate          decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"rate"`
	DeliveryDate  *time.Time      `json:"delivery_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
