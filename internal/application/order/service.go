package order

import (
	"context"
	"time"

	dominv "github.com/AshwiniC929/OrderService/internal/domain/inventory"
	domain "github.com/AshwiniC929/OrderService/internal/domain/order"
	domoutbox "github.com/AshwiniC929/OrderService/internal/domain/outbox"
	dompay "github.com/AshwiniC929/OrderService/internal/domain/payment"
	"github.com/AshwiniC929/OrderService/internal/observability"
	"github.com/AshwiniC929/OrderService/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	serviceName      = "order-orchestrator"
	useCasePlace     = "order.place"
	useCaseDetails   = "order.details"
	spanPrefix       = "UC."
	publishTimeout   = 300 * time.Millisecond
	reasonDeclined   = "payment_declined"
	reasonProcessing = "payment_service_error"
)

// Orchestrator executes the placement saga and the detail-aggregation query.
// It is stateless between invocations; all collaborators are injected at
// construction and reached through their ports.
type Orchestrator struct {
	repo       domain.Repository
	inventory  dominv.Adjuster
	processor  dompay.Processor
	aggregator Aggregator
	refs       IDGenerator
	publisher  domoutbox.Publisher
	tel        observability.Observability

	log          observability.Logger
	reqCounter   observability.Counter
	durHistogram observability.Histogram
	extCounter   observability.Counter
	extHistogram observability.Histogram
	pubFailures  observability.Counter
}

// NewOrchestrator wires the four collaborators plus the reference-number
// generator, event publisher, and telemetry.
func NewOrchestrator(
	repo domain.Repository,
	inventory dominv.Adjuster,
	processor dompay.Processor,
	aggregator Aggregator,
	refs IDGenerator,
	publisher domoutbox.Publisher,
	tel observability.Observability,
) *Orchestrator {
	if tel == nil {
		tel = observability.Nop()
	}
	metrics := tel.Metrics()

	return &Orchestrator{
		repo:         repo,
		inventory:    inventory,
		processor:    processor,
		aggregator:   aggregator,
		refs:         refs,
		publisher:    publisher,
		tel:          tel,
		log:          tel.Logger().With(observability.F("service", serviceName)),
		reqCounter:   metrics.Counter(observability.MUsecaseRequests),
		durHistogram: metrics.Histogram(observability.MUsecaseDuration),
		extCounter:   metrics.Counter(observability.MExternalRequests),
		extHistogram: metrics.Histogram(observability.MExternalRequestDuration),
		pubFailures:  metrics.Counter(observability.MEventPublishFailures),
	}
}

// PlaceOrderInput is the caller-owned placement request. It is never persisted.
type PlaceOrderInput struct {
	ProductID   string
	Quantity    int
	Amount      int64
	PaymentMode string
}

// PlaceOrder runs the placement saga and returns the assigned order id.
//
// Payment failure is absorbed: the order degrades to PAYMENT_FAILED and the
// id is still returned. Callers inspect the order status separately.
func (o *Orchestrator) PlaceOrder(ctx context.Context, in PlaceOrderInput) (orderID string, err error) {
	logger := logctx.FromOr(ctx, o.log).With(observability.F("use_case", useCasePlace))

	ctx, span := o.tel.Tracer().Start(ctx, spanPrefix+"PlaceOrder",
		attribute.String("order.product_id", in.ProductID),
		attribute.Int("order.quantity", in.Quantity),
	)
	start := time.Now()
	outcome := "success"

	defer func() {
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		o.reqCounter.Add(1,
			observability.L("use_case", useCasePlace),
			observability.L("outcome", outcome),
		)
		o.durHistogram.Observe(time.Since(start).Seconds(),
			observability.L("use_case", useCasePlace),
		)

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("latency_seconds", time.Since(start).Seconds()),
		}
		if orderID != "" {
			fields = append(fields, observability.F("order_id", orderID))
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("place_order_done", fields...)
	}()

	mode, verr := validatePlacement(in)
	if verr != nil {
		return "", verr
	}

	// Inventory goes first so an out-of-stock condition never creates a
	// dangling order. No compensation exists for this step.
	invStart := time.Now()
	invErr := o.inventory.Reduce(ctx, in.ProductID, in.Quantity)
	o.observeExternal("inventory", "reduce", invStart, invErr)
	if invErr != nil {
		logger.Warn("inventory_reduce_failed",
			observability.F("product_id", in.ProductID),
			observability.F("error", invErr.Error()),
		)
		return "", inventoryError(invErr)
	}

	entity, derr := domain.New(in.ProductID, in.Quantity, in.Amount)
	if derr != nil {
		return "", validationError(derr.Error())
	}

	created, cerr := o.repo.Create(ctx, entity)
	if cerr != nil {
		return "", persistenceError("create", cerr)
	}
	orderID = created.ID
	span.SetAttributes(attribute.String("order.id", created.ID))
	logger.Info("order_created", observability.F("order_id", created.ID))

	payReq := dompay.Request{
		OrderID:         created.ID,
		Amount:          created.Amount,
		ReferenceNumber: o.refs.NewID(),
		Mode:            mode,
	}

	payStart := time.Now()
	result, payErr := o.processor.Pay(ctx, payReq)
	o.observeExternal("payment", "pay", payStart, payErr)

	// Failure here becomes data, not a propagated error: the order always
	// gets a recorded terminal outcome.
	switch {
	case payErr != nil:
		logger.Warn("payment_unreachable",
			observability.F("order_id", created.ID),
			observability.F("error", payErr.Error()),
		)
		created.MarkPaymentFailed(reasonProcessing)
	case !result.Success():
		logger.Warn("payment_declined",
			observability.F("order_id", created.ID),
			observability.F("reason", result.Reason),
		)
		created.MarkPaymentFailed(failureReason(result.Reason))
	default:
		logger.Info("payment_success",
			observability.F("order_id", created.ID),
			observability.F("payment_id", result.PaymentID),
		)
		created.MarkPlaced()
	}
	span.SetAttributes(attribute.String("order.status", string(created.Status)))

	if _, uerr := o.repo.Update(ctx, created); uerr != nil {
		return "", persistenceError("update", uerr)
	}

	o.publishOutcome(ctx, created, logger)

	return created.ID, nil
}

func validatePlacement(in PlaceOrderInput) (dompay.Mode, *Error) {
	if in.ProductID == "" {
		return "", validationError("product id is required")
	}
	if in.Quantity <= 0 {
		return "", validationError("quantity must be greater than zero")
	}
	if in.Amount <= 0 {
		return "", validationError("amount must be greater than zero")
	}
	mode, err := dompay.ParseMode(in.PaymentMode)
	if err != nil {
		return "", validationError(err.Error())
	}
	return mode, nil
}

func failureReason(reason string) string {
	if reason == "" {
		return reasonDeclined
	}
	return reason
}

// publishOutcome emits the terminal lifecycle event, best-effort. A publish
// failure never fails the saga.
func (o *Orchestrator) publishOutcome(ctx context.Context, ord *domain.Order, logger observability.Logger) {
	if o.publisher == nil {
		return
	}

	var event domoutbox.Event
	if ord.Status == domain.StatusPlaced {
		event = domain.NewPlacedEvent(ord)
	} else {
		event = domain.NewPaymentFailedEvent(ord)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := o.publisher.Publish(pubCtx, event); err != nil {
		o.pubFailures.Add(1, observability.L("event", event.EventName()))
		logger.Warn("event_publish_failed",
			observability.F("event", event.EventName()),
			observability.F("order_id", ord.ID),
			observability.F("error", err.Error()),
		)
	}
}

func (o *Orchestrator) observeExternal(peer, endpoint string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	o.extCounter.Add(1,
		observability.L("peer", peer),
		observability.L("endpoint", endpoint),
		observability.L("outcome", outcome),
	)
	o.extHistogram.Observe(time.Since(start).Seconds(),
		observability.L("peer", peer),
		observability.L("endpoint", endpoint),
	)
}
