package memory

import (
	"context"
	"sync"

	domain "github.com/AshwiniC929/OrderService/internal/domain/inventory"
)

// StockRepository is an in-memory stock store. Products not seen before are
// initialized with defaultQuantity on first Get, which keeps the standalone
// deployment usable without a provisioning step.
type StockRepository struct {
	mu              sync.RWMutex
	defaultQuantity int
	items           map[string]*domain.Item
}

func NewStockRepository(defaultQuantity int) *StockRepository {
	return &StockRepository{
		defaultQuantity: defaultQuantity,
		items:           make(map[string]*domain.Item),
	}
}

// Seed sets the available quantity for a product explicitly.
func (r *StockRepository) Seed(productID string, quantity int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[productID] = &domain.Item{ProductID: productID, Quantity: quantity}
}

func (r *StockRepository) Get(ctx context.Context, productID string) (*domain.Item, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[productID]; !ok {
		r.items[productID] = &domain.Item{
			ProductID: productID,
			Quantity:  r.defaultQuantity,
		}
	}
	return cloneItem(r.items[productID]), nil
}

func (r *StockRepository) Save(ctx context.Context, item *domain.Item) error {
	_ = ctx
	if item == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ProductID] = cloneItem(item)
	return nil
}

func cloneItem(item *domain.Item) *domain.Item {
	if item == nil {
		return nil
	}
	clone := *item
	return &clone
}
