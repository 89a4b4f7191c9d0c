package repositories

import "kart2kitchen/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetByID(id string) (*models.Order, error)
	// CreateBatch persists every order of one checkout as a single unit:
	// if any order fails to save, none of them remain committed.
	CreateBatch(orders []models.Order) error
	// UpdateStatus overwrites an order's status and returns the updated
	// order. The status value has already been validated by the caller.
	UpdateStatus(id, status string) (*models.Order, error)
	FindByUserPhone(phone string) ([]models.Order, error)
	FindByVendorPhone(phone string) ([]models.Order, error)
}
