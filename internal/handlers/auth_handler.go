package handlers

import (
	"errors"
	"fmt"
	"log"

	"kart2kitchen/internal/models"
	"kart2kitchen/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration and login for both actor types.
type AuthHandler struct {
	authService    *services.AuthService
	catalogService *services.CatalogService
	validate       *validator.Validate
}

// NewAuthHandler creates a new AuthHandler. The catalog service is used to
// attach the vendor directory to user login responses.
func NewAuthHandler(authService *services.AuthService, catalogService *services.CatalogService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		catalogService: catalogService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/user_register", h.HandleUserRegister)
	router.Post("/user_login", h.HandleUserLogin)
	router.Post("/vendor_register", h.HandleVendorRegister)
	router.Post("/vendor_login", h.HandleVendorLogin)
}

// HandleUserRegister handles new buyer registration.
func (h *AuthHandler) HandleUserRegister(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		log.Printf("Error parsing user register body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	if err := h.authService.RegisterUser(&user); err != nil {
		if errors.Is(err, services.ErrPhoneTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Phone number already registered",
			})
		}
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not register user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleUserLogin authenticates a buyer and returns a token, their profile,
// and the vendor directory for their dashboard.
func (h *AuthHandler) HandleUserLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing user login body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "All fields are required",
		})
	}

	token, user, err := h.authService.LoginUser(req.Phone, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication failed",
		})
	}

	vendors, err := h.catalogService.ListVendors()
	if err != nil {
		log.Printf("Error listing vendors for user login: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load vendor directory",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User logged in successfully",
		"token":   token,
		"user": fiber.Map{
			"name":     user.Name,
			"phone":    user.Phone,
			"locality": user.Locality,
		},
		"vendors": vendors,
	})
}

// HandleVendorRegister handles new vendor registration and returns the
// assigned scanner code.
func (h *AuthHandler) HandleVendorRegister(c *fiber.Ctx) error {
	var vendor models.Vendor
	if err := c.BodyParser(&vendor); err != nil {
		log.Printf("Error parsing vendor register body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(vendor); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	if err := h.authService.RegisterVendor(&vendor); err != nil {
		if errors.Is(err, services.ErrPhoneTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Phone number already registered",
			})
		}
		log.Printf("Error registering vendor: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not register vendor",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Vendor registered successfully",
		"scannerCode": vendor.ScannerCode,
	})
}

// HandleVendorLogin authenticates a vendor and returns a token plus their
// profile.
func (h *AuthHandler) HandleVendorLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing vendor login body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "All fields are required",
		})
	}

	token, vendor, err := h.authService.LoginVendor(req.Phone, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication failed",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Vendor logged in successfully",
		"token":   token,
		"vendor": fiber.Map{
			"name":        vendor.Name,
			"phone":       vendor.Phone,
			"locality":    vendor.Locality,
			"service":     vendor.Service,
			"scannerCode": vendor.ScannerCode,
		},
	})
}

// validationMessage flattens validator errors into one readable line.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed"
	}
	msg := "Validation failed:"
	for _, e := range validationErrors {
		msg += fmt.Sprintf(" field '%s' failed on the '%s' tag;", e.Field(), e.Tag())
	}
	return msg
}
