package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/AshwiniC929/OrderService/internal/domain/order"
)

// IDGenerator supplies identifiers for newly created orders.
type IDGenerator interface {
	NewID() string
}

// OrderRepository is an in-memory order store. Identifiers are assigned on
// Create; callers never see internal pointers, only clones.
type OrderRepository struct {
	mu     sync.RWMutex
	ids    IDGenerator
	orders map[string]*domain.Order
}

func NewOrderRepository(ids IDGenerator) *OrderRepository {
	return &OrderRepository{
		ids:    ids,
		orders: make(map[string]*domain.Order),
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	_ = ctx
	if order == nil {
		return nil, fmt.Errorf("order repository: order is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := order.Clone()
	stored.ID = r.ids.NewID()
	r.orders[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	_ = ctx
	if order == nil || order.ID == "" {
		return nil, fmt.Errorf("order repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; !exists {
		return nil, domain.ErrNotFound
	}

	stored := order.Clone()
	r.orders[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order.Clone(), nil
}

// Len reports the number of stored orders.
func (r *OrderRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
