package inventory

import (
	"context"
	"fmt"

	domain "github.com/AshwiniC929/OrderService/internal/domain/inventory"
)

// LocalAdjuster implements the adjuster port against a local stock store,
// standing in for the remote inventory service.
type LocalAdjuster struct {
	repo domain.Repository
}

func NewLocalAdjuster(repo domain.Repository) *LocalAdjuster {
	return &LocalAdjuster{repo: repo}
}

func (a *LocalAdjuster) Reduce(ctx context.Context, productID string, quantity int) error {
	if productID == "" {
		return fmt.Errorf("inventory: product id is required")
	}

	item, err := a.repo.Get(ctx, productID)
	if err != nil {
		return err
	}
	if err := item.Deduct(quantity); err != nil {
		return err
	}
	return a.repo.Save(ctx, item)
}
