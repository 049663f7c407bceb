package order

import "time"

// PlacedEvent is emitted after an order reaches PLACED.
type PlacedEvent struct {
	OrderID    string    `json:"order_id"`
	ProductID  string    `json:"product_id"`
	Quantity   int       `json:"quantity"`
	Amount     int64     `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (PlacedEvent) EventName() string { return "order.placed" }

func (e PlacedEvent) PartitionKey() string { return e.OrderID }

func NewPlacedEvent(o *Order) PlacedEvent {
	return PlacedEvent{
		OrderID:    o.ID,
		ProductID:  o.ProductID,
		Quantity:   o.Quantity,
		Amount:     o.Amount,
		OccurredAt: time.Now().UTC(),
	}
}

// PaymentFailedEvent is emitted after an order degrades to PAYMENT_FAILED.
type PaymentFailedEvent struct {
	OrderID    string    `json:"order_id"`
	ProductID  string    `json:"product_id"`
	Amount     int64     `json:"amount"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (PaymentFailedEvent) EventName() string { return "order.payment_failed" }

func (e PaymentFailedEvent) PartitionKey() string { return e.OrderID }

func NewPaymentFailedEvent(o *Order) PaymentFailedEvent {
	return PaymentFailedEvent{
		OrderID:    o.ID,
		ProductID:  o.ProductID,
		Amount:     o.Amount,
		Reason:     o.FailureReason,
		OccurredAt: time.Now().UTC(),
	}
}
