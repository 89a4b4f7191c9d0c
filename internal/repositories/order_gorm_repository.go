package repositories

import (
	"errors"
	"fmt"

	"kart2kitchen/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetByID retrieves an order with its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// CreateBatch inserts all orders of a checkout in one transaction. GORM
// runs a slice Create (rows plus item associations) inside a single
// transaction, so a failure on any record rolls back the whole batch.
func (r *GORMOrderRepository) CreateBatch(orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	if err := r.db.Create(&orders).Error; err != nil {
		return fmt.Errorf("failed to create orders: %w", err)
	}
	return nil
}

// UpdateStatus overwrites the status of an order and bumps its update
// timestamp.
func (r *GORMOrderRepository) UpdateStatus(id, status string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order %s for status update: %w", id, err)
	}
	if err := r.db.Model(&order).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update status for order %s: %w", id, err)
	}
	return &order, nil
}

// FindByUserPhone returns a user's orders, newest first.
func (r *GORMOrderRepository) FindByUserPhone(phone string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("user_phone = ?", phone).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders for user %s: %w", phone, err)
	}
	return orders, nil
}

// FindByVendorPhone returns a vendor's incoming orders, newest first.
func (r *GORMOrderRepository) FindByVendorPhone(phone string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("vendor_phone = ?", phone).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders for vendor %s: %w", phone, err)
	}
	return orders, nil
}
