package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/AshwiniC929/OrderService/internal/domain/order"
	"github.com/AshwiniC929/OrderService/internal/observability"
	"github.com/AshwiniC929/OrderService/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// OrderDetails is the composite read view. It is recomputed on every query
// from the stored order plus live aggregator lookups, never persisted.
type OrderDetails struct {
	OrderID   string
	Status    domain.Status
	Amount    int64
	OrderDate time.Time
	Product   Product
	Payment   Payment
}

// GetOrderDetails assembles the composite view for one order.
//
// Unlike the placement saga, aggregator failures are not absorbed: a read
// needs the complete view, so a missing dependency voids the whole query.
func (o *Orchestrator) GetOrderDetails(ctx context.Context, orderID string) (details *OrderDetails, err error) {
	logger := logctx.FromOr(ctx, o.log).With(observability.F("use_case", useCaseDetails))

	ctx, span := o.tel.Tracer().Start(ctx, spanPrefix+"GetOrderDetails",
		attribute.String("order.id", orderID),
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
			observability.L("use_case", useCaseDetails),
			observability.L("outcome", outcome),
		)
		o.durHistogram.Observe(time.Since(start).Seconds(),
			observability.L("use_case", useCaseDetails),
		)

		fields := []observability.Field{
			observability.F("order_id", orderID),
			observability.F("outcome", outcome),
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("order_details_done", fields...)
	}()

	ord, ferr := o.repo.FindByID(ctx, orderID)
	if ferr != nil {
		if errors.Is(ferr, domain.ErrNotFound) {
			return nil, notFoundError(orderID)
		}
		return nil, fmt.Errorf("order: find: %w", ferr)
	}

	prodStart := time.Now()
	product, perr := o.aggregator.GetProduct(ctx, ord.ProductID)
	o.observeExternal("aggregator", "product", prodStart, perr)
	if perr != nil {
		return nil, fmt.Errorf("order: product lookup: %w", perr)
	}

	payStart := time.Now()
	payment, payErr := o.aggregator.GetPayment(ctx, ord.ID)
	o.observeExternal("aggregator", "payment", payStart, payErr)
	if payErr != nil {
		return nil, fmt.Errorf("order: payment lookup: %w", payErr)
	}

	return &OrderDetails{
		OrderID:   ord.ID,
		Status:    ord.Status,
		Amount:    ord.Amount,
		OrderDate: ord.OrderDate,
		Product:   product,
		Payment:   payment,
	}, nil
}
