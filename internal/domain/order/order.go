package order

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("order: not found")
	ErrInvalidQuantity = errors.New("order: quantity must be greater than zero")
	ErrInvalidAmount   = errors.New("order: amount must be greater than zero")
)

type Status string

const (
	StatusCreated       Status = "CREATED"
	StatusPlaced        Status = "PLACED"
	StatusPaymentFailed Status = "PAYMENT_FAILED"
)

// Order is the durable record of a placement attempt. The store owns it; the
// orchestrator holds a transient copy during the saga and writes it back at
// each transition point.
type Order struct {
	ID            string
	ProductID     string
	Quantity      int
	Amount        int64
	Status        Status
	FailureReason string
	OrderDate     time.Time
	UpdatedAt     time.Time
}

// New builds an unpersisted order in status CREATED. The store assigns the ID.
func New(productID string, quantity int, amount int64) (*Order, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	now := time.Now().UTC()
	return &Order{
		ProductID: productID,
		Quantity:  quantity,
		Amount:    amount,
		Status:    StatusCreated,
		OrderDate: now,
		UpdatedAt: now,
	}, nil
}

// MarkPlaced records a successful settlement. Terminal.
func (o *Order) MarkPlaced() {
	o.Status = StatusPlaced
	o.FailureReason = ""
	o.touch()
}

// MarkPaymentFailed degrades the order after a failed settlement. Terminal.
func (o *Order) MarkPaymentFailed(reason string) {
	o.Status = StatusPaymentFailed
	o.FailureReason = reason
	o.touch()
}

// Terminal reports whether this subsystem will mutate the order no further.
func (o *Order) Terminal() bool {
	return o.Status == StatusPlaced || o.Status == StatusPaymentFailed
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	return &clone
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now().UTC()
}
