package repositories

import (
	"sort"
	"sync"
	"time"

	"kart2kitchen/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	seq    map[string]int
	next   int
	mu     sync.RWMutex

	// FailCreate, when set, makes CreateBatch fail without storing
	// anything. Used to exercise the all-or-nothing checkout contract.
	FailCreate error
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
		seq:    make(map[string]int),
	}
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

// CreateBatch stores all orders of a checkout, or none of them.
func (r *MockOrderRepository) CreateBatch(orders []models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCreate != nil {
		return r.FailCreate
	}

	now := time.Now()
	for i := range orders {
		if orders[i].ID == "" {
			orders[i].ID = uuid.New().String()
		}
		orders[i].CreatedAt = now
		orders[i].UpdatedAt = now
		r.orders[orders[i].ID] = orders[i]
		r.seq[orders[i].ID] = r.next
		r.next++
	}
	return nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id, status string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return &order, nil
}

// FindByUserPhone returns a user's orders, newest first.
func (r *MockOrderRepository) FindByUserPhone(phone string) ([]models.Order, error) {
	return r.find(func(o models.Order) bool { return o.UserPhone == phone }), nil
}

// FindByVendorPhone returns a vendor's incoming orders, newest first.
func (r *MockOrderRepository) FindByVendorPhone(phone string) ([]models.Order, error) {
	return r.find(func(o models.Order) bool { return o.VendorPhone == phone }), nil
}

func (r *MockOrderRepository) find(match func(models.Order) bool) []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Order, 0)
	for _, order := range r.orders {
		if match(order) {
			result = append(result, order)
		}
	}
	// Newest first; insertion sequence breaks creation-time ties.
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return r.seq[result[i].ID] > r.seq[result[j].ID]
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
