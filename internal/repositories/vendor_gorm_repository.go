package repositories

import (
	"errors"
	"fmt"

	"kart2kitchen/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMVendorRepository is a GORM implementation of VendorRepository.
type GORMVendorRepository struct {
	db *gorm.DB
}

// NewGORMVendorRepository creates a new instance of GORMVendorRepository.
func NewGORMVendorRepository(db *gorm.DB) *GORMVendorRepository {
	return &GORMVendorRepository{
		db: db,
	}
}

// Create creates a new vendor in the database.
func (r *GORMVendorRepository) Create(vendor *models.Vendor) error {
	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	if err := r.db.Create(vendor).Error; err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

// GetByPhone retrieves a vendor by their phone number.
func (r *GORMVendorRepository) GetByPhone(phone string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.First(&vendor, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vendor by phone %s: %w", phone, err)
	}
	return &vendor, nil
}

// GetAll retrieves all vendors without their vegetable listings.
func (r *GORMVendorRepository) GetAll() ([]models.Vendor, error) {
	var vendors []models.Vendor
	if err := r.db.Order("created_at").Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("failed to get all vendors: %w", err)
	}
	return vendors, nil
}

// GetAllWithVegetables retrieves all vendors with their vegetable listings
// preloaded in insertion order.
func (r *GORMVendorRepository) GetAllWithVegetables() ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.Order("created_at").
		Preload("Vegetables", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		Find(&vendors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get vendors with vegetables: %w", err)
	}
	return vendors, nil
}

// ScannerCodeExists reports whether a scanner code is already assigned.
func (r *GORMVendorRepository) ScannerCodeExists(code string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Vendor{}).Where("scanner_code = ?", code).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check scanner code: %w", err)
	}
	return count > 0, nil
}

// AddVegetable appends a listing to a vendor's catalog.
func (r *GORMVendorRepository) AddVegetable(veg *models.Vegetable) error {
	if veg.ID == "" {
		veg.ID = uuid.New().String()
	}
	if err := r.db.Create(veg).Error; err != nil {
		return fmt.Errorf("failed to add vegetable: %w", err)
	}
	return nil
}

// GetVegetables retrieves one vendor's listings in insertion order.
func (r *GORMVendorRepository) GetVegetables(vendorID string) ([]models.Vegetable, error) {
	var vegetables []models.Vegetable
	if err := r.db.Where("vendor_id = ?", vendorID).Order("created_at").Find(&vegetables).Error; err != nil {
		return nil, fmt.Errorf("failed to get vegetables for vendor %s: %w", vendorID, err)
	}
	return vegetables, nil
}

// GetVegetable retrieves a single listing scoped to its owning vendor.
func (r *GORMVendorRepository) GetVegetable(vendorID, vegID string) (*models.Vegetable, error) {
	var veg models.Vegetable
	if err := r.db.First(&veg, "vendor_id = ? AND id = ?", vendorID, vegID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vegetable %s: %w", vegID, err)
	}
	return &veg, nil
}

// UpdateVegetable saves a modified listing. Save updates all fields,
// including zero values, which is what a whole-listing overwrite wants.
func (r *GORMVendorRepository) UpdateVegetable(veg *models.Vegetable) error {
	res := r.db.Save(veg)
	if res.Error != nil {
		return fmt.Errorf("failed to update vegetable: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteVegetable removes a listing from a vendor's catalog.
func (r *GORMVendorRepository) DeleteVegetable(vendorID, vegID string) error {
	res := r.db.Where("vendor_id = ?", vendorID).Delete(&models.Vegetable{}, "id = ?", vegID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete vegetable %s: %w", vegID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
