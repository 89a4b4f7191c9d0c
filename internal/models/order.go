package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Any value in the set may be written over any other; the
// status machine deliberately does not enforce transition legality.
const (
	StatusPending   = "PENDING"
	StatusAccepted  = "ACCEPTED"
	StatusRejected  = "REJECTED"
	StatusCompleted = "COMPLETED"
)

// Payment methods.
const (
	PaymentCOD = "COD"
	PaymentUPI = "UPI"
)

// OrderItem is a snapshot of one cart line at order time. Rate is the price
// charged, decoupled from the live catalog price.
type OrderItem struct {
	ID      string          `json:"-" gorm:"primaryKey;type:varchar(36)"`
	OrderID string          `json:"-" gorm:"index;type:varchar(36)"`
	VegID   string          `json:"vegId"`
	Name    string          `json:"name"`
	Qty     int             `json:"qty"`
	Rate    decimal.Decimal `json:"rate" gorm:"type:numeric(12,2)"`
}

// Order is one vendor-scoped slice of a checkout. User and vendor identity
// are snapshotted rather than referenced so historical orders stay stable
// when profiles change later. Items are immutable once the order exists and
// TotalAmount is never recomputed after creation.
type Order struct {
	ID string `json:"id" gorm:"primaryKey;type:varchar(36)"`

	UserPhone    string `json:"userPhone" gorm:"index;type:varchar(10)"`
	UserName     string `json:"userName"`
	UserLocality string `json:"userLocality"`

	VendorPhone    string `json:"vendorPhone" gorm:"index;type:varchar(10)"`
	VendorName     string `json:"vendorName"`
	VendorLocality string `json:"vendorLocality"`

	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:numeric(12,2)"`
	PaymentMethod   string          `json:"paymentMethod" gorm:"type:varchar(8);default:COD"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Status          string          `json:"status" gorm:"type:varchar(16);default:PENDING;index"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
