package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	apporder "github.com/AshwiniC929/OrderService/internal/application/order"
	domain "github.com/AshwiniC929/OrderService/internal/domain/payment"
)

// IDGenerator supplies payment identifiers.
type IDGenerator interface {
	NewID() string
}

// Simulator settles payments locally with a configurable success rate,
// standing in for the remote payment service. It records every settlement so
// it can also serve the aggregation read path's payment lookups.
type Simulator struct {
	mu          sync.Mutex
	random      *rand.Rand
	successRate float64
	ids         IDGenerator
	settlements map[string]apporder.Payment
}

func NewSimulator(ids IDGenerator, successRate float64) *Simulator {
	return &Simulator{
		random:      rand.New(rand.NewSource(time.Now().UnixNano())),
		successRate: successRate,
		ids:         ids,
		settlements: make(map[string]apporder.Payment),
	}
}

func (s *Simulator) Pay(ctx context.Context, req domain.Request) (domain.Result, error) {
	_ = ctx
	if req.OrderID == "" {
		return domain.Result{Status: domain.StatusFailed}, errors.New("payment: order id is required")
	}
	if req.Amount <= 0 {
		return domain.Result{Status: domain.StatusFailed}, errors.New("payment: amount must be greater than zero")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := apporder.Payment{
		PaymentID:   s.ids.NewID(),
		PaymentDate: time.Now().UTC(),
		Mode:        req.Mode,
	}

	if s.random.Float64() < s.successRate {
		record.Status = domain.StatusSuccess
		s.settlements[req.OrderID] = record
		return domain.Result{PaymentID: record.PaymentID, Status: domain.StatusSuccess}, nil
	}

	record.Status = domain.StatusFailed
	s.settlements[req.OrderID] = record
	return domain.Result{PaymentID: record.PaymentID, Status: domain.StatusFailed, Reason: "payment_declined"}, nil
}

func (s *Simulator) GetPayment(ctx context.Context, orderID string) (apporder.Payment, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.settlements[orderID]
	if !ok {
		return apporder.Payment{}, fmt.Errorf("payment: no settlement recorded for order %s", orderID)
	}
	return record, nil
}

func (s *Simulator) SuccessRate() float64 { return s.successRate }
