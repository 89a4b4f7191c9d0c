package services

import (
	"encoding/json"
	"fmt"
	"log"

	"kart2kitchen/internal/models"
	"kart2kitchen/internal/repositories"
	"kart2kitchen/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventPublisher abstracts the RabbitMQ client so tests can stub it.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// UserInfo is the snapshotted buyer identity attached to every order of a
// checkout.
type UserInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Locality string `json:"locality"`
}

// CartItemRequest is one client-submitted cart line. Rate accepts a JSON
// number or a numeric string; a value that parses as neither fails the
// request up front rather than producing a garbage total.
type CartItemRequest struct {
	VendorPhone    string          `json:"vendorPhone"`
	VendorName     string          `json:"vendorName"`
	VendorLocality string          `json:"vendorLocality"`
	VegID          string          `json:"vegId"`
	Name           string          `json:"name"`
	Qty            int             `json:"qty"`
	Rate           decimal.Decimal `json:"rate"`
}

// vendorGroup is the slice of a cart belonging to one vendor, plus that
// vendor's snapshotted identity.
type vendorGroup struct {
	vendorPhone    string
	vendorName     string
	vendorLocality string
	items          []models.OrderItem
}

// validStatuses is the closed set of order statuses. Membership is the only
// transition rule: any member may be written over any other.
var validStatuses = map[string]bool{
	models.StatusPending:   true,
	models.StatusAccepted:  true,
	models.StatusRejected:  true,
	models.StatusCompleted: true,
}

// OrderService handles checkout composition, order history, and status
// updates.
type OrderService struct {
	orderRepo repositories.OrderRepository
	events    EventPublisher
}

// NewOrderService creates a new OrderService. The publisher may be nil; the
// service then skips event publication.
func NewOrderService(orderRepo repositories.OrderRepository, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		events:    events,
	}
}

// partitionByVendor groups cart lines by their originating vendor,
// preserving first-seen vendor order and per-vendor line order. Lines with
// no vendor phone are unattributable and silently dropped. A vendor's
// identity fields come from the first line seen for that vendor; later
// inconsistent identity fields are ignored.
func partitionByVendor(items []CartItemRequest) []vendorGroup {
	index := make(map[string]int)
	groups := make([]vendorGroup, 0)

	for _, it := range items {
		if it.VendorPhone == "" {
			continue
		}
		i, ok := index[it.VendorPhone]
		if !ok {
			i = len(groups)
			index[it.VendorPhone] = i
			groups = append(groups, vendorGroup{
				vendorPhone:    it.VendorPhone,
				vendorName:     it.VendorName,
				vendorLocality: it.VendorLocality,
			})
		}

		qty := it.Qty
		if qty <= 0 {
			qty = 1
		}
		groups[i].items = append(groups[i].items, models.OrderItem{
			ID:    uuid.New().String(),
			VegID: it.VegID,
			Name:  it.Name,
			Qty:   qty,
			Rate:  it.Rate,
		})
	}
	return groups
}

// ComposeOrders turns a multi-vendor cart into one PENDING order per
// vendor. Every order of the checkout is persisted as a single batch:
// either all of them commit or none do. Returns the persisted orders.
func (s *OrderService) ComposeOrders(user UserInfo, paymentMethod, deliveryAddress string, items []CartItemRequest) ([]models.Order, error) {
	if user.Name == "" || user.Phone == "" || user.Locality == "" {
		return nil, fmt.Errorf("%w: invalid user information", ErrValidation)
	}
	if deliveryAddress == "" {
		return nil, fmt.Errorf("%w: delivery address is required", ErrValidation)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items in order", ErrValidation)
	}
	if paymentMethod == "" {
		paymentMethod = models.PaymentCOD
	}
	if paymentMethod != models.PaymentCOD && paymentMethod != models.PaymentUPI {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, paymentMethod)
	}

	groups := partitionByVendor(items)
	if len(groups) == 0 {
		return nil, ErrNoVendorItems
	}

	orders := make([]models.Order, 0, len(groups))
	for _, g := range groups {
		total := decimal.Zero
		for _, it := range g.items {
			total = total.Add(it.Rate.Mul(decimal.NewFromInt(int64(it.Qty))))
		}
		orders = append(orders, models.Order{
			ID: uuid.New().String(),

			UserPhone:    user.Phone,
			UserName:     user.Name,
			UserLocality: user.Locality,

			VendorPhone:    g.vendorPhone,
			VendorName:     g.vendorName,
			VendorLocality: g.vendorLocality,

			Items:           g.items,
			TotalAmount:     total,
			PaymentMethod:   paymentMethod,
			DeliveryAddress: deliveryAddress,
			Status:          models.StatusPending,
		})
	}

	if err := s.orderRepo.CreateBatch(orders); err != nil {
		return nil, fmt.Errorf("failed to save checkout orders: %w", err)
	}

	for i := range orders {
		s.publishEvent("order.created", &orders[i])
	}
	return orders, nil
}

// UpdateOrderStatus overwrites an order's status. Values outside the closed
// status set are rejected and leave the order untouched; within the set any
// transition is allowed.
func (s *OrderService) UpdateOrderStatus(id, status string) (*models.Order, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, err := s.orderRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}

	s.publishEvent("order.status_updated", order)
	return order, nil
}

// GetOrderByID retrieves a single order.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// ListUserOrders returns a user's order history, newest first.
func (s *OrderService) ListUserOrders(phone string) ([]models.Order, error) {
	return s.orderRepo.FindByUserPhone(phone)
}

// ListVendorOrders returns a vendor's incoming orders, newest first.
func (s *OrderService) ListVendorOrders(phone string) ([]models.Order, error) {
	return s.orderRepo.FindByVendorPhone(phone)
}

// publishEvent sends an order lifecycle event to the order events queue.
// Publish failures are logged, not surfaced: the order is already
// committed and event delivery is best effort.
func (s *OrderService) publishEvent(event string, order *models.Order) {
	if s.events == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"event":       event,
		"orderId":     order.ID,
		"userPhone":   order.UserPhone,
		"vendorPhone": order.VendorPhone,
		"status":      order.Status,
		"total":       order.TotalAmount,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", event, order.ID, err)
		return
	}

	if err := s.events.Publish("", rabbitmq.OrderEventsQueue, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", event, order.ID, err)
	}
}
