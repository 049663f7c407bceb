package inventory

import "context"

// Repository stores stock items for the local adjuster.
type Repository interface {
	Get(ctx context.Context, productID string) (*Item, error)
	Save(ctx context.Context, item *Item) error
}

// Adjuster decrements available quantity for a product. Implementations may
// call a remote inventory service or operate on a local store.
type Adjuster interface {
	Reduce(ctx context.Context, productID string, quantity int) error
}
