package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domorder "github.com/AshwiniC929/OrderService/internal/domain/order"
	domoutbox "github.com/AshwiniC929/OrderService/internal/domain/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placedEvent(orderID string) domoutbox.Event {
	o := &domorder.Order{ID: orderID, ProductID: "p-1", Quantity: 1, Amount: 100}
	return domorder.NewPlacedEvent(o)
}

func TestBus_PublishDelivers(t *testing.T) {
	ctx := context.Background()

	bus := NewBus(nil)
	bus.Start(ctx)
	defer bus.Stop(ctx)

	delivered := make(chan domoutbox.Event, 1)
	bus.Subscribe("order.placed", func(ctx context.Context, e domoutbox.Event) error {
		delivered <- e
		return nil
	})

	require.NoError(t, bus.Publish(ctx, placedEvent("42")))

	select {
	case e := <-delivered:
		placed, ok := e.(domorder.PlacedEvent)
		require.True(t, ok)
		assert.Equal(t, "42", placed.OrderID)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestBus_FanoutToAllSubscribers(t *testing.T) {
	ctx := context.Background()

	bus := NewBus(nil)
	bus.Start(ctx)
	defer bus.Stop(ctx)

	var wg sync.WaitGroup
	wg.Add(2)
	handler := func(ctx context.Context, e domoutbox.Event) error {
		wg.Done()
		return nil
	}
	bus.Subscribe("order.placed", handler)
	bus.Subscribe("order.placed", handler)

	require.NoError(t, bus.Publish(ctx, placedEvent("42")))

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("not every subscriber saw the event")
	}
}

func TestBus_HandlerFailureDoesNotStopOthers(t *testing.T) {
	ctx := context.Background()

	bus := NewBus(nil)
	bus.Start(ctx)
	defer bus.Stop(ctx)

	survived := make(chan struct{}, 1)
	bus.Subscribe("order.placed", func(ctx context.Context, e domoutbox.Event) error {
		return errors.New("boom")
	})
	bus.Subscribe("order.placed", func(ctx context.Context, e domoutbox.Event) error {
		panic("boom")
	})
	bus.Subscribe("order.placed", func(ctx context.Context, e domoutbox.Event) error {
		survived <- struct{}{}
		return nil
	})

	require.NoError(t, bus.Publish(ctx, placedEvent("42")))

	select {
	case <-survived:
	case <-time.After(2 * time.Second):
		t.Fatal("healthy handler was starved by a failing sibling")
	}
}

func TestBus_NilEventIsIgnored(t *testing.T) {
	bus := NewBus(nil)
	assert.NoError(t, bus.Publish(context.Background(), nil))
}

func TestFan(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards to every target", func(t *testing.T) {
		var a, b recordingPublisher
		require.NoError(t, Fan(&a, &b).Publish(ctx, placedEvent("42")))
		assert.Equal(t, 1, a.calls)
		assert.Equal(t, 1, b.calls)
	})

	t.Run("keeps going past a failing target", func(t *testing.T) {
		failing := recordingPublisher{err: errors.New("broker down")}
		var healthy recordingPublisher
		err := Fan(&failing, &healthy).Publish(ctx, placedEvent("42"))
		assert.EqualError(t, err, "broker down")
		assert.Equal(t, 1, healthy.calls)
	})
}

type recordingPublisher struct {
	calls int
	err   error
}

func (p *recordingPublisher) Publish(ctx context.Context, e domoutbox.Event) error {
	p.calls++
	return p.err
}
