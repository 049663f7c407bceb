package order

import (
	"context"
	"time"

	dompay "github.com/AshwiniC929/OrderService/internal/domain/payment"
)

// IDGenerator hands out opaque identifiers (payment reference numbers).
type IDGenerator interface {
	NewID() string
}

// Product is the product summary returned by the aggregation read path.
type Product struct {
	ProductID   string
	ProductName string
}

// Payment is the settlement summary returned by the aggregation read path.
type Payment struct {
	PaymentID   string
	Status      dompay.Status
	PaymentDate time.Time
	Mode        dompay.Mode
}

type ProductSource interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type PaymentSource interface {
	GetPayment(ctx context.Context, orderID string) (Payment, error)
}

// Aggregator serves the lookups needed to compose a detailed order view.
type Aggregator interface {
	ProductSource
	PaymentSource
}

type composedAggregator struct {
	ProductSource
	PaymentSource
}

// ComposeAggregator pairs independent product and payment sources into a
// single Aggregator.
func ComposeAggregator(products ProductSource, payments PaymentSource) Aggregator {
	return composedAggregator{ProductSource: products, PaymentSource: payments}
}
