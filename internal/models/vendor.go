package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Vendor represents a produce seller and owns a catalog of vegetables.
type Vendor struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string      `json:"name" validate:"required,min=2,max=100"`
	Phone       string      `json:"phone" gorm:"uniqueIndex;type:varchar(10)" validate:"required,len=10,numeric"`
	Password    string      `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Locality    string      `json:"locality" validate:"required"`
	Service     string      `json:"service"`
	ScannerCode string      `json:"scannerCode" gorm:"uniqueIndex;type:varchar(16)"`
	Vegetables  []Vegetable `json:"vegetables,omitempty" gorm:"foreignKey:VendorID"`
	gorm.Model  // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Vegetable is one listing in a vendor's catalog. Available is a pointer so
// an unset flag stays distinct from an explicit false: only a literal false
// hides the listing from the public feed.
type Vegetable struct {
	ID         string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	VendorID   string          `json:"-" gorm:"index;type:varchar(36)"`
	Name       string          `json:"name" validate:"required"`
	Rate       decimal.Decimal `json:"rate" gorm:"type:numeric(12,2)"`
	Area       string          `json:"area"`
	Available  *bool           `json:"available" gorm:"default:true"`
	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
