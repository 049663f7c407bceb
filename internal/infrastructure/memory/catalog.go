package memory

import (
	"context"
	"fmt"
	"sync"

	apporder "github.com/AshwiniC929/OrderService/internal/application/order"
)

// Catalog serves product metadata for the aggregation read path from a
// seeded in-memory map.
type Catalog struct {
	mu       sync.RWMutex
	products map[string]string
}

// NewCatalog builds a catalog from productID -> productName pairs.
func NewCatalog(products map[string]string) *Catalog {
	copied := make(map[string]string, len(products))
	for id, name := range products {
		copied[id] = name
	}
	return &Catalog{products: copied}
}

func (c *Catalog) GetProduct(ctx context.Context, productID string) (apporder.Product, error) {
	_ = ctx

	c.mu.RLock()
	defer c.mu.RUnlock()

	name, ok := c.products[productID]
	if !ok {
		return apporder.Product{}, fmt.Errorf("catalog: product %s not found", productID)
	}
	return apporder.Product{ProductID: productID, ProductName: name}, nil
}
