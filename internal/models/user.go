package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Rates and totals go over the wire as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// User represents a buyer account. Locality is required so the catalog and
// orders can be scoped to nearby vendors.
type User struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string          `json:"name" validate:"required,min=2,max=100"`
	Phone         string          `json:"phone" gorm:"uniqueIndex;type:varchar(10)" validate:"required,len=10,numeric"`
	Password      string          `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Locality      string          `json:"locality" validate:"required"`
	WalletBalance decimal.Decimal `json:"walletBalance" gorm:"type:numeric(12,2);default:0"`
	gorm.Model    // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
