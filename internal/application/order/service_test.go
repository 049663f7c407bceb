package order

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	dominv "github.com/AshwiniC929/OrderService/internal/domain/inventory"
	domain "github.com/AshwiniC929/OrderService/internal/domain/order"
	domoutbox "github.com/AshwiniC929/OrderService/internal/domain/outbox"
	dompay "github.com/AshwiniC929/OrderService/internal/domain/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu        sync.Mutex
	next      int
	orders    map[string]*domain.Order
	createErr error
	updateErr error
	findErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{next: 77, orders: make(map[string]*domain.Order)}
}

func (r *fakeRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := o.Clone()
	stored.ID = strconv.Itoa(r.next)
	r.next++
	r.orders[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *fakeRepo) Update(_ context.Context, o *domain.Order) (*domain.Order, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	r.orders[o.ID] = o.Clone()
	return o.Clone(), nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o.Clone(), nil
}

type fakeAdjuster struct {
	err       error
	productID string
	quantity  int
}

func (a *fakeAdjuster) Reduce(_ context.Context, productID string, quantity int) error {
	a.productID = productID
	a.quantity = quantity
	return a.err
}

type fakeProcessor struct {
	result dompay.Result
	err    error
	got    dompay.Request
	calls  int
}

func (p *fakeProcessor) Pay(_ context.Context, req dompay.Request) (dompay.Result, error) {
	p.calls++
	p.got = req
	return p.result, p.err
}

type fakeAggregator struct {
	product    Product
	payment    Payment
	productErr error
	paymentErr error
}

func (a *fakeAggregator) GetProduct(context.Context, string) (Product, error) {
	return a.product, a.productErr
}

func (a *fakeAggregator) GetPayment(context.Context, string) (Payment, error) {
	return a.payment, a.paymentErr
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domoutbox.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e domoutbox.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return "ref-" + strconv.Itoa(s.n)
}

func validInput() PlaceOrderInput {
	return PlaceOrderInput{ProductID: "10", Quantity: 2, Amount: 500, PaymentMode: "CARD"}
}

func TestOrchestrator_PlaceOrder(t *testing.T) {
	t.Parallel()

	t.Run("payment success places the order", func(t *testing.T) {
		repo := newFakeRepo()
		adjuster := &fakeAdjuster{}
		processor := &fakeProcessor{result: dompay.Result{PaymentID: "900", Status: dompay.StatusSuccess}}
		publisher := &fakePublisher{}
		orch := NewOrchestrator(repo, adjuster, processor, &fakeAggregator{}, &seqIDs{}, publisher, nil)

		orderID, err := orch.PlaceOrder(context.Background(), validInput())
		require.NoError(t, err)
		assert.Equal(t, "77", orderID)

		stored := repo.orders[orderID]
		require.NotNil(t, stored)
		assert.Equal(t, domain.StatusPlaced, stored.Status)
		assert.Equal(t, "10", stored.ProductID)
		assert.Equal(t, 2, stored.Quantity)
		assert.Equal(t, int64(500), stored.Amount)

		assert.Equal(t, "10", adjuster.productID)
		assert.Equal(t, 2, adjuster.quantity)

		// The payment request derives from the persisted order.
		assert.Equal(t, orderID, processor.got.OrderID)
		assert.Equal(t, int64(500), processor.got.Amount)
		assert.Equal(t, dompay.ModeCard, processor.got.Mode)
		assert.NotEmpty(t, processor.got.ReferenceNumber)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, "order.placed", publisher.events[0].EventName())
	})

	t.Run("payment decline degrades the order but still returns the id", func(t *testing.T) {
		repo := newFakeRepo()
		processor := &fakeProcessor{result: dompay.Result{Status: dompay.StatusFailed, Reason: "card_expired"}}
		publisher := &fakePublisher{}
		orch := NewOrchestrator(repo, &fakeAdjuster{}, processor, &fakeAggregator{}, &seqIDs{}, publisher, nil)

		orderID, err := orch.PlaceOrder(context.Background(), validInput())
		require.NoError(t, err)
		require.NotEmpty(t, orderID)

		stored := repo.orders[orderID]
		require.NotNil(t, stored)
		assert.Equal(t, domain.StatusPaymentFailed, stored.Status)
		assert.Equal(t, "card_expired", stored.FailureReason)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, "order.payment_failed", publisher.events[0].EventName())
	})

	t.Run("payment transport error is absorbed the same way", func(t *testing.T) {
		repo := newFakeRepo()
		processor := &fakeProcessor{err: errors.New("connection refused")}
		orch := NewOrchestrator(repo, &fakeAdjuster{}, processor, &fakeAggregator{}, &seqIDs{}, &fakePublisher{}, nil)

		orderID, err := orch.PlaceOrder(context.Background(), validInput())
		require.NoError(t, err)

		stored := repo.orders[orderID]
		require.NotNil(t, stored)
		assert.Equal(t, domain.StatusPaymentFailed, stored.Status)
		assert.Equal(t, "payment_service_error", stored.FailureReason)
	})

	t.Run("inventory failure aborts before any order exists", func(t *testing.T) {
		repo := newFakeRepo()
		adjuster := &fakeAdjuster{err: dominv.ErrInsufficientStock}
		processor := &fakeProcessor{}
		orch := NewOrchestrator(repo, adjuster, processor, &fakeAggregator{}, &seqIDs{}, &fakePublisher{}, nil)

		_, err := orch.PlaceOrder(context.Background(), validInput())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInventory)
		assert.ErrorIs(t, err, dominv.ErrInsufficientStock)

		assert.Empty(t, repo.orders)
		assert.Zero(t, processor.calls)
	})

	t.Run("create failure is a persistence error", func(t *testing.T) {
		repo := newFakeRepo()
		repo.createErr = errors.New("disk full")
		orch := NewOrchestrator(repo, &fakeAdjuster{}, &fakeProcessor{}, &fakeAggregator{}, &seqIDs{}, &fakePublisher{}, nil)

		_, err := orch.PlaceOrder(context.Background(), validInput())
		assert.ErrorIs(t, err, ErrPersistence)
	})

	t.Run("final update failure is a persistence error", func(t *testing.T) {
		repo := newFakeRepo()
		repo.updateErr = errors.New("disk full")
		processor := &fakeProcessor{result: dompay.Result{Status: dompay.StatusSuccess}}
		orch := NewOrchestrator(repo, &fakeAdjuster{}, processor, &fakeAggregator{}, &seqIDs{}, &fakePublisher{}, nil)

		_, err := orch.PlaceOrder(context.Background(), validInput())
		assert.ErrorIs(t, err, ErrPersistence)
	})

	t.Run("publish failure never fails the saga", func(t *testing.T) {
		repo := newFakeRepo()
		processor := &fakeProcessor{result: dompay.Result{Status: dompay.StatusSuccess}}
		publisher := &fakePublisher{err: errors.New("broker down")}
		orch := NewOrchestrator(repo, &fakeAdjuster{}, processor, &fakeAggregator{}, &seqIDs{}, publisher, nil)

		orderID, err := orch.PlaceOrder(context.Background(), validInput())
		require.NoError(t, err)
		assert.NotEmpty(t, orderID)
	})

	t.Run("validation rejects before any side effect", func(t *testing.T) {
		cases := map[string]PlaceOrderInput{
			"zero quantity":     {ProductID: "10", Quantity: 0, Amount: 500, PaymentMode: "CARD"},
			"negative quantity": {ProductID: "10", Quantity: -1, Amount: 500, PaymentMode: "CARD"},
			"zero amount":       {ProductID: "10", Quantity: 1, Amount: 0, PaymentMode: "CARD"},
			"missing product":   {ProductID: "", Quantity: 1, Amount: 500, PaymentMode: "CARD"},
			"unknown mode":      {ProductID: "10", Quantity: 1, Amount: 500, PaymentMode: "BARTER"},
		}
		for name, input := range cases {
			t.Run(name, func(t *testing.T) {
				repo := newFakeRepo()
				adjuster := &fakeAdjuster{}
				orch := NewOrchestrator(repo, adjuster, &fakeProcessor{}, &fakeAggregator{}, &seqIDs{}, &fakePublisher{}, nil)

				_, err := orch.PlaceOrder(context.Background(), input)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Empty(t, adjuster.productID, "inventory must not be touched")
				assert.Empty(t, repo.orders)
			})
		}
	})
}

func TestOrchestrator_GetOrderDetails(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, repo *fakeRepo, status domain.Status) string {
		t.Helper()
		entity, err := domain.New("10", 2, 500)
		require.NoError(t, err)
		created, err := repo.Create(context.Background(), entity)
		require.NoError(t, err)
		created.Status = status
		_, err = repo.Update(context.Background(), created)
		require.NoError(t, err)
		return created.ID
	}

	paymentDate := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("composes fields verbatim from all three sources", func(t *testing.T) {
		repo := newFakeRepo()
		orderID := seed(t, repo, domain.StatusPlaced)
		aggregator := &fakeAggregator{
			product: Product{ProductID: "10", ProductName: "Mechanical Keyboard"},
			payment: Payment{PaymentID: "900", Status: dompay.StatusSuccess, PaymentDate: paymentDate, Mode: dompay.ModeCard},
		}
		orch := NewOrchestrator(repo, &fakeAdjuster{}, &fakeProcessor{}, aggregator, &seqIDs{}, nil, nil)

		details, err := orch.GetOrderDetails(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, orderID, details.OrderID)
		assert.Equal(t, domain.StatusPlaced, details.Status)
		assert.Equal(t, int64(500), details.Amount)
		assert.Equal(t, aggregator.product, details.Product)
		assert.Equal(t, aggregator.payment, details.Payment)
	})

	t.Run("unknown order id yields NOT_FOUND with a 404 hint", func(t *testing.T) {
		orch := NewOrchestrator(newFakeRepo(), &fakeAdjuster{}, &fakeProcessor{}, &fakeAggregator{}, &seqIDs{}, nil, nil)

		_, err := orch.GetOrderDetails(context.Background(), "no-such-order")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOrderMissing)

		var oerr *Error
		require.ErrorAs(t, err, &oerr)
		assert.Equal(t, "NOT_FOUND", oerr.Code)
		assert.Equal(t, 404, oerr.Status)
	})

	t.Run("product lookup failure propagates", func(t *testing.T) {
		repo := newFakeRepo()
		orderID := seed(t, repo, domain.StatusPlaced)
		aggregator := &fakeAggregator{productErr: errors.New("product service down")}
		orch := NewOrchestrator(repo, &fakeAdjuster{}, &fakeProcessor{}, aggregator, &seqIDs{}, nil, nil)

		_, err := orch.GetOrderDetails(context.Background(), orderID)
		require.Error(t, err)
		assert.ErrorContains(t, err, "product service down")
	})

	t.Run("payment lookup failure propagates with no partial view", func(t *testing.T) {
		repo := newFakeRepo()
		orderID := seed(t, repo, domain.StatusPaymentFailed)
		aggregator := &fakeAggregator{
			product:    Product{ProductID: "10", ProductName: "Mechanical Keyboard"},
			paymentErr: errors.New("payment service down"),
		}
		orch := NewOrchestrator(repo, &fakeAdjuster{}, &fakeProcessor{}, aggregator, &seqIDs{}, nil, nil)

		details, err := orch.GetOrderDetails(context.Background(), orderID)
		require.Error(t, err)
		assert.Nil(t, details)
	})

	t.Run("repeated queries on an unchanged order are identical", func(t *testing.T) {
		repo := newFakeRepo()
		orderID := seed(t, repo, domain.StatusPlaced)
		aggregator := &fakeAggregator{
			product: Product{ProductID: "10", ProductName: "Mechanical Keyboard"},
			payment: Payment{PaymentID: "900", Status: dompay.StatusSuccess, PaymentDate: paymentDate, Mode: dompay.ModeCard},
		}
		orch := NewOrchestrator(repo, &fakeAdjuster{}, &fakeProcessor{}, aggregator, &seqIDs{}, nil, nil)

		first, err := orch.GetOrderDetails(context.Background(), orderID)
		require.NoError(t, err)
		second, err := orch.GetOrderDetails(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestPlaceThenDetails(t *testing.T) {
	t.Parallel()

	// Happy path end to end: inventory succeeds, the store assigns id 77,
	// payment settles with id 900.
	repo := newFakeRepo()
	processor := &fakeProcessor{result: dompay.Result{PaymentID: "900", Status: dompay.StatusSuccess}}
	aggregator := &fakeAggregator{
		product: Product{ProductID: "10", ProductName: "Mechanical Keyboard"},
		payment: Payment{PaymentID: "900", Status: dompay.StatusSuccess, Mode: dompay.ModeCard},
	}
	orch := NewOrchestrator(repo, &fakeAdjuster{}, processor, aggregator, &seqIDs{}, &fakePublisher{}, nil)

	orderID, err := orch.PlaceOrder(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, "77", orderID)

	details, err := orch.GetOrderDetails(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPlaced, details.Status)
	assert.Equal(t, int64(500), details.Amount)
	assert.Equal(t, "10", details.Product.ProductID)
	assert.Equal(t, "900", details.Payment.PaymentID)
}
