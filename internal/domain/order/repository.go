package order

import "context"

// Repository is the durable order store. Create assigns the identifier.
type Repository interface {
	Create(ctx context.Context, order *Order) (*Order, error)
	Update(ctx context.Context, order *Order) (*Order, error)
	FindByID(ctx context.Context, id string) (*Order, error)
}
