package repositories

import "kart2kitchen/internal/models"

// VendorRepository defines the interface for vendor and vegetable data access.
// Vegetable listings belong to exactly one vendor, so their operations live
// here rather than in a repository of their own.
type VendorRepository interface {
	Create(vendor *models.Vendor) error
	GetByPhone(phone string) (*models.Vendor, error)
	GetAll() ([]models.Vendor, error)
	GetAllWithVegetables() ([]models.Vendor, error)
	ScannerCodeExists(code string) (bool, error)

	AddVegetable(veg *models.Vegetable) error
	GetVegetables(vendorID string) ([]models.Vegetable, error)
	GetVegetable(vendorID, vegID string) (*models.Vegetable, error)
	UpdateVegetable(veg *models.Vegetable) error
	DeleteVegetable(vendorID, vegID string) error
}
