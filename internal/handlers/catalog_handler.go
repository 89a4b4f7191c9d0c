package handlers

import (
	"log"

	"kart2kitchen/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles the public browse endpoints: the flattened
// vegetable feed and the vendor directory.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// RegisterRoutes registers the public catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/vegetables", h.HandleListVegetables)
	router.Get("/vendors", h.HandleListVendors)
}

// HandleListVegetables returns every available vegetable across all
// vendors, each line tagged with its vendor's identity.
func (h *CatalogHandler) HandleListVegetables(c *fiber.Ctx) error {
	items, err := h.service.ListAvailableVegetables()
	if err != nil {
		log.Printf("Error listing available vegetables: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve vegetables",
		})
	}
	return c.JSON(items)
}

// HandleListVendors returns the public vendor directory.
func (h *CatalogHandler) HandleListVendors(c *fiber.Ctx) error {
	vendors, err := h.service.ListVendors()
	if err != nil {
		log.Printf("Error listing vendors: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve vendors",
		})
	}
	return c.JSON(vendors)
}
