package worker

import (
	"context"

	domain "github.com/AshwiniC929/OrderService/internal/domain/order"
	domoutbox "github.com/AshwiniC929/OrderService/internal/domain/outbox"
	"github.com/AshwiniC929/OrderService/internal/observability"
)

// Auditor subscribes to terminal order events and records an audit log plus
// an outcome counter for each. It never mutates state.
type Auditor struct {
	subscriber domoutbox.Subscriber
	log        observability.Logger
	outcomes   observability.Counter
}

func NewAuditor(subscriber domoutbox.Subscriber, logger observability.Logger, tel observability.Observability) *Auditor {
	if logger == nil {
		logger = observability.NopLogger()
	}
	if tel == nil {
		tel = observability.Nop()
	}
	return &Auditor{
		subscriber: subscriber,
		log:        logger.With(observability.F("component", "order_auditor")),
		outcomes:   tel.Metrics().Counter(observability.MOrderOutcomes),
	}
}

func (a *Auditor) Start() {
	if a.subscriber == nil {
		return
	}
	a.subscriber.Subscribe(domain.PlacedEvent{}.EventName(), a.handlePlaced)
	a.subscriber.Subscribe(domain.PaymentFailedEvent{}.EventName(), a.handlePaymentFailed)
}

func (a *Auditor) handlePlaced(_ context.Context, e domoutbox.Event) error {
	evt, ok := e.(domain.PlacedEvent)
	if !ok {
		return nil
	}
	a.outcomes.Add(1, observability.L("status", string(domain.StatusPlaced)))
	a.log.Info("order_placed",
		observability.F("order_id", evt.OrderID),
		observability.F("product_id", evt.ProductID),
		observability.F("amount", evt.Amount),
	)
	return nil
}

func (a *Auditor) handlePaymentFailed(_ context.Context, e domoutbox.Event) error {
	evt, ok := e.(domain.PaymentFailedEvent)
	if !ok {
		return nil
	}
	a.outcomes.Add(1, observability.L("status", string(domain.StatusPaymentFailed)))
	a.log.Warn("order_payment_failed",
		observability.F("order_id", evt.OrderID),
		observability.F("reason", evt.Reason),
	)
	return nil
}
