package services

import (
	"fmt"

	"kart2kitchen/internal/models"
	"kart2kitchen/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeedVendor is the vendor identity block attached to every feed line.
type FeedVendor struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Locality    string `json:"locality"`
	ScannerCode string `json:"scannerCode"`
}

// FeedItem is one vegetable listing in the flattened user-facing feed.
type FeedItem struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
	Area   string          `json:"area"`
	Vendor FeedVendor      `json:"vendor"`
}

// VendorSummary is a vendor's public directory entry.
type VendorSummary struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Locality    string `json:"locality"`
	Service     string `json:"service"`
	ScannerCode string `json:"scannerCode"`
}

// VegetableInput carries the fields a vendor submits when adding a listing.
type VegetableInput struct {
	Name string          `json:"name" validate:"required"`
	Rate decimal.Decimal `json:"rate"`
	Area string          `json:"area"`
}

// VegetableUpdate carries a partial update; nil fields are left unchanged.
type VegetableUpdate struct {
	Name      *string          `json:"name"`
	Rate      *decimal.Decimal `json:"rate"`
	Area      *string          `json:"area"`
	Available *bool            `json:"available"`
}

// CatalogService handles the vendor catalog: the flattened public feed and
// the per-vendor listing CRUD.
type CatalogService struct {
	vendorRepo repositories.VendorRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(vendorRepo repositories.VendorRepository) *CatalogService {
	return &CatalogService{
		vendorRepo: vendorRepo,
	}
}

// ListAvailableVegetables flattens every vendor's listings into one feed.
// Only listings explicitly marked unavailable are hidden; a listing with no
// flag counts as available. Ordering follows vendor order, then listing
// insertion order. No pagination.
func (s *CatalogService) ListAvailableVegetables() ([]FeedItem, error) {
	vendors, err := s.vendorRepo.GetAllWithVegetables()
	if err != nil {
		return nil, fmt.Errorf("failed to load vendor catalogs: %w", err)
	}

	items := make([]FeedItem, 0)
	for _, v := range vendors {
		for _, veg := range v.Vegetables {
			if veg.Available != nil && !*veg.Available {
				continue // hide unavailable from users
			}
			items = append(items, FeedItem{
				ID:   veg.ID,
				Name: veg.Name,
				Rate: veg.Rate,
				Area: veg.Area,
				Vendor: FeedVendor{
					Name:        v.Name,
					Phone:       v.Phone,
					Locality:    v.Locality,
					ScannerCode: v.ScannerCode,
				},
			})
		}
	}
	return items, nil
}

// ListVendors returns the public vendor directory.
func (s *CatalogService) ListVendors() ([]VendorSummary, error) {
	vendors, err := s.vendorRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}

	summaries := make([]VendorSummary, 0, len(vendors))
	for _, v := range vendors {
		summaries = append(summaries, VendorSummary{
			Name:        v.Name,
			Phone:       v.Phone,
			Locality:    v.Locality,
			Service:     v.Service,
			ScannerCode: v.ScannerCode,
		})
	}
	return summaries, nil
}

// AddVegetable appends a listing to the vendor's catalog. Area defaults to
// the vendor's locality and new listings start out available.
func (s *CatalogService) AddVegetable(vendorPhone string, input VegetableInput) (*models.Vegetable, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: vegetable name is required", ErrValidation)
	}
	if input.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: rate must be a non-negative number", ErrValidation)
	}

	vendor, err := s.vendorRepo.GetByPhone(vendorPhone)
	if err != nil {
		return nil, err
	}

	area := input.Area
	if area == "" {
		area = vendor.Locality
	}

	available := true
	veg := &models.Vegetable{
		ID:        uuid.New().String(),
		VendorID:  vendor.ID,
		Name:      input.Name,
		Rate:      input.Rate,
		Area:      area,
		Available: &available,
	}
	if err := s.vendorRepo.AddVegetable(veg); err != nil {
		return nil, fmt.Errorf("failed to add vegetable for vendor %s: %w", vendorPhone, err)
	}
	return veg, nil
}

// ListVendorVegetables returns one vendor's full catalog, unavailable
// listings included.
func (s *CatalogService) ListVendorVegetables(vendorPhone string) ([]models.Vegetable, error) {
	vendor, err := s.vendorRepo.GetByPhone(vendorPhone)
	if err != nil {
		return nil, err
	}
	return s.vendorRepo.GetVegetables(vendor.ID)
}

// UpdateVegetable applies a partial update to a listing.
func (s *CatalogService) UpdateVegetable(vendorPhone, vegID string, update VegetableUpdate) (*models.Vegetable, error) {
	if update.Rate != nil && update.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: rate must be a non-negative number", ErrValidation)
	}

	vendor, err := s.vendorRepo.GetByPhone(vendorPhone)
	if err != nil {
		return nil, err
	}
	veg, err := s.vendorRepo.GetVegetable(vendor.ID, vegID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		veg.Name = *update.Name
	}
	if update.Rate != nil {
		veg.Rate = *update.Rate
	}
	if update.Area != nil {
		veg.Area = *update.Area
	}
	if update.Available != nil {
		veg.Available = update.Available
	}

	if err := s.vendorRepo.UpdateVegetable(veg); err != nil {
		return nil, err
	}
	return veg, nil
}

// DeleteVegetable removes a listing from the vendor's catalog.
func (s *CatalogService) DeleteVegetable(vendorPhone, vegID string) error {
	vendor, err := s.vendorRepo.GetByPhone(vendorPhone)
	if err != nil {
		return err
	}
	return s.vendorRepo.DeleteVegetable(vendor.ID, vegID)
}
