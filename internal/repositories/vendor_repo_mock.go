package repositories

import (
	"sync"

	"kart2kitchen/internal/models"

	"github.com/google/uuid"
)

// MockVendorRepository is an in-memory implementation of VendorRepository.
type MockVendorRepository struct {
	vendors []models.Vendor
	mu      sync.RWMutex
}

// NewMockVendorRepository creates a new instance of MockVendorRepository.
func NewMockVendorRepository() *MockVendorRepository {
	return &MockVendorRepository{}
}

// Create adds a new vendor.
func (r *MockVendorRepository) Create(vendor *models.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	r.vendors = append(r.vendors, *vendor)
	return nil
}

// GetByPhone returns a vendor by their phone number.
func (r *MockVendorRepository) GetByPhone(phone string) (*models.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.vendors {
		if r.vendors[i].Phone == phone {
			vendor := r.vendors[i]
			return &vendor, nil
		}
	}
	return nil, ErrNotFound
}

// GetAll returns all vendors in insertion order.
func (r *MockVendorRepository) GetAll() ([]models.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vendors := make([]models.Vendor, len(r.vendors))
	copy(vendors, r.vendors)
	return vendors, nil
}

// GetAllWithVegetables returns all vendors with their listings. The mock
// stores listings inline, so this is the same as GetAll.
func (r *MockVendorRepository) GetAllWithVegetables() ([]models.Vendor, error) {
	return r.GetAll()
}

// ScannerCodeExists reports whether a scanner code is already assigned.
func (r *MockVendorRepository) ScannerCodeExists(code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.vendors {
		if r.vendors[i].ScannerCode == code {
			return true, nil
		}
	}
	return false, nil
}

// AddVegetable appends a listing to its vendor's catalog.
func (r *MockVendorRepository) AddVegetable(veg *models.Vegetable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if veg.ID == "" {
		veg.ID = uuid.New().String()
	}
	for i := range r.vendors {
		if r.vendors[i].ID == veg.VendorID {
			r.vendors[i].Vegetables = append(r.vendors[i].Vegetables, *veg)
			return nil
		}
	}
	return ErrNotFound
}

// GetVegetables returns one vendor's listings in insertion order.
func (r *MockVendorRepository) GetVegetables(vendorID string) ([]models.Vegetable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.vendors {
		if r.vendors[i].ID == vendorID {
			vegetables := make([]models.Vegetable, len(r.vendors[i].Vegetables))
			copy(vegetables, r.vendors[i].Vegetables)
			return vegetables, nil
		}
	}
	return nil, ErrNotFound
}

// GetVegetable returns a single listing scoped to its owning vendor.
func (r *MockVendorRepository) GetVegetable(vendorID, vegID string) (*models.Vegetable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.vendors {
		if r.vendors[i].ID != vendorID {
			continue
		}
		for j := range r.vendors[i].Vegetables {
			if r.vendors[i].Vegetables[j].ID == vegID {
				veg := r.vendors[i].Vegetables[j]
				return &veg, nil
			}
		}
	}
	return nil, ErrNotFound
}

// UpdateVegetable overwrites an existing listing.
func (r *MockVendorRepository) UpdateVegetable(veg *models.Vegetable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.vendors {
		if r.vendors[i].ID != veg.VendorID {
			continue
		}
		for j := range r.vendors[i].Vegetables {
			if r.vendors[i].Vegetables[j].ID == veg.ID {
				r.vendors[i].Vegetables[j] = *veg
				return nil
			}
		}
	}
	return ErrNotFound
}

// DeleteVegetable removes a listing from its vendor's catalog.
func (r *MockVendorRepository) DeleteVegetable(vendorID, vegID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.vendors {
		if r.vendors[i].ID != vendorID {
			continue
		}
		for j := range r.vendors[i].Vegetables {
			if r.vendors[i].Vegetables[j].ID == vegID {
				r.vendors[i].Vegetables = append(
					r.vendors[i].Vegetables[:j],
					r.vendors[i].Vegetables[j+1:]...,
				)
				return nil
			}
		}
	}
	return ErrNotFound
}
