package models

import "time"

// DespatchEntry records a vehicle despatch against an invoice.
type DespatchEntry struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Date            time.Time      `gorm:"index;not null" json:"date"`
	InvoiceHeaderID *uint          `gorm:"index" json:"invoice_header_id"`
	InvoiceHeader   *InvoiceHeader `json:"invoice_header,omitempty"`
	TransportID     *uint          `gorm:"index" json:"transport_id"`
	Transport       *Transport     `json:"transport,omitempty"`
	VehicleNo       string         `gorm:"size:20" json:"vehicle_no"`
	LRNo            string         `gorm:"size:30" json:"lr_no"`
	Bags            int            `gorm:"not null;default:0" json:"bags"`
	Remarks         string         `gorm:"size:255" json:"remarks"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
