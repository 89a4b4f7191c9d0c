package handlers

import (
	"errors"
	"log"

	"kart2kitchen/internal/repositories"
	"kart2kitchen/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles checkout, order history, and status updates.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/orders", h.HandleCreateOrders)
	router.Get("/user/:phone/orders", h.HandleUserOrders)
	router.Get("/vendor/:phone/orders", h.HandleVendorOrders)
	router.Put("/orders/:id/status", h.HandleUpdateOrderStatus)
}

// CreateOrdersRequest is one checkout submission: a multi-vendor cart plus
// the buyer's identity and delivery details.
type CreateOrdersRequest struct {
	User            services.UserInfo          `json:"user"`
	PaymentMethod   string                     `json:"paymentMethod"`
	DeliveryAddress string                     `json:"deliveryAddress"`
	Items           []services.CartItemRequest `json:"items"`
}

// HandleCreateOrders turns a cart into one persisted order per vendor.
func (h *OrderHandler) HandleCreateOrders(c *fiber.Ctx) error {
	var req CreateOrdersRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create orders body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	orders, err := h.service.ComposeOrders(req.User, req.PaymentMethod, req.DeliveryAddress, req.Items)
	if err != nil {
		if errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrNoVendorItems) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Printf("Error composing orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not place order",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order(s) placed successfully",
		"orders":  orders,
	})
}

// HandleUserOrders returns a user's order history, newest first.
func (h *OrderHandler) HandleUserOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListUserOrders(c.Params("phone"))
	if err != nil {
		log.Printf("Error listing user orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve orders",
		})
	}
	return c.JSON(orders)
}

// HandleVendorOrders returns a vendor's incoming orders, newest first.
func (h *OrderHandler) HandleVendorOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListVendorOrders(c.Params("phone"))
	if err != nil {
		log.Printf("Error listing vendor orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve orders",
		})
	}
	return c.JSON(orders)
}

// HandleUpdateOrderStatus overwrites an order's status.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	order, err := h.service.UpdateOrderStatus(c.Params("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid status value",
			})
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		default:
			log.Printf("Error updating order status: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update order status",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Order status updated",
		"order":   order,
	})
}
