package handlers

import (
	"errors"
	"log"

	"kart2kitchen/internal/repositories"
	"kart2kitchen/internal/services"

	"github.com/gofiber/fiber/v2"
)

// VendorHandler handles a vendor's own catalog management. All routes are
// registered behind the JWT middleware.
type VendorHandler struct {
	service *services.CatalogService
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(service *services.CatalogService) *VendorHandler {
	return &VendorHandler{
		service: service,
	}
}

// RegisterRoutes registers the vendor catalog routes with the Fiber app.
func (h *VendorHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/vendor_add_vegetable", h.HandleAddVegetable)
	router.Get("/vendor/:phone/vegetables", h.HandleListVegetables)
	router.Put("/vendor/:phone/vegetables/:vegId", h.HandleUpdateVegetable)
	router.Delete("/vendor/:phone/vegetables/:vegId", h.HandleDeleteVegetable)
}

// AddVegetableRequest carries a new listing plus the owning vendor's phone.
type AddVegetableRequest struct {
	Phone     string                  `json:"phone"`
	Vegetable services.VegetableInput `json:"vegetable"`
}

// HandleAddVegetable appends a listing to the vendor's catalog.
func (h *VendorHandler) HandleAddVegetable(c *fiber.Ctx) error {
	var req AddVegetableRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add vegetable body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Phone == "" || req.Vegetable.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "phone and vegetable {name, rate, area} are required",
		})
	}

	veg, err := h.service.AddVegetable(req.Phone, req.Vegetable)
	if err != nil {
		return vendorCatalogError(c, err, "Could not add vegetable")
	}

	vegetables, err := h.service.ListVendorVegetables(req.Phone)
	if err != nil {
		return vendorCatalogError(c, err, "Could not list vegetables")
	}
	return c.JSON(fiber.Map{
		"message":    "Vegetable added",
		"vegetable":  veg,
		"vegetables": vegetables,
	})
}

// HandleListVegetables returns one vendor's catalog, unavailable listings
// included.
func (h *VendorHandler) HandleListVegetables(c *fiber.Ctx) error {
	vegetables, err := h.service.ListVendorVegetables(c.Params("phone"))
	if err != nil {
		return vendorCatalogError(c, err, "Could not list vegetables")
	}
	return c.JSON(vegetables)
}

// HandleUpdateVegetable applies a partial update to one listing.
func (h *VendorHandler) HandleUpdateVegetable(c *fiber.Ctx) error {
	var update services.VegetableUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing update vegetable body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	veg, err := h.service.UpdateVegetable(c.Params("phone"), c.Params("vegId"), update)
	if err != nil {
		return vendorCatalogError(c, err, "Could not update vegetable")
	}
	return c.JSON(fiber.Map{
		"message":   "Vegetable updated",
		"vegetable": veg,
	})
}

// HandleDeleteVegetable removes one listing from the vendor's catalog.
func (h *VendorHandler) HandleDeleteVegetable(c *fiber.Ctx) error {
	if err := h.service.DeleteVegetable(c.Params("phone"), c.Params("vegId")); err != nil {
		return vendorCatalogError(c, err, "Could not delete vegetable")
	}
	return c.JSON(fiber.Map{
		"message": "Vegetable deleted",
	})
}

func vendorCatalogError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Vendor or vegetable not found",
		})
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		log.Printf("Vendor catalog error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fallback,
		})
	}
}
