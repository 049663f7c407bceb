package outbox

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	domoutbox "github.com/AshwiniC929/OrderService/internal/domain/outbox"
	"github.com/AshwiniC929/OrderService/internal/observability"
	"github.com/AshwiniC929/OrderService/internal/observability/logctx"
)

const (
	componentOutbox = "outbox"
	handlerTimeout  = 30 * time.Second
)

// Bus is an in-memory event bus used as the outbox for the standalone
// deployment. It is not durable; a production deployment persists events and
// dispatches from a worker (or hands them to the Kafka publisher).
type Bus struct {
	mu          sync.RWMutex
	subs        map[string][]domoutbox.Handler
	queue       chan domoutbox.Event
	startOnce   sync.Once
	stopOnce    sync.Once
	cancel      context.CancelFunc
	concurrency int
	log         observability.Logger
}

func NewBus(logger observability.Logger) *Bus {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Bus{
		subs:        make(map[string][]domoutbox.Handler),
		queue:       make(chan domoutbox.Event, 1024), // buffer for backpressure
		concurrency: 8,                                // per-event handler fanout cap
		log:         logger.With(observability.F("component", componentOutbox)),
	}
}

func (b *Bus) Subscribe(eventName string, h domoutbox.Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[eventName] = append(b.subs[eventName], h)
}

func (b *Bus) Start(ctx context.Context) {
	b.startOnce.Do(func() {
		bg, cancel := context.WithCancel(ctx)
		b.cancel = cancel
		go b.dispatchLoop(bg)
		logctx.FromOr(ctx, b.log).Info("event_bus_started")
	})
}

func (b *Bus) Stop(ctx context.Context) {
	b.stopOnce.Do(func() {
		if b.cancel != nil {
			b.cancel()
		}
		close(b.queue)
		logctx.FromOr(ctx, b.log).Info("event_bus_stopped")
	})
}

func (b *Bus) Publish(ctx context.Context, e domoutbox.Event) error {
	if e == nil {
		return nil
	}
	select {
	case b.queue <- e:
		return nil
	case <-ctx.Done():
		logctx.FromOr(ctx, b.log).Warn("event_enqueue_aborted",
			observability.F("event", e.EventName()),
			observability.F("error", ctx.Err()),
		)
		return ctx.Err()
	}
}

func (b *Bus) dispatchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-b.queue:
			if !ok {
				return
			}
			b.fanout(ctx, e)
		}
	}
}

func (b *Bus) fanout(ctx context.Context, e domoutbox.Event) {
	name := e.EventName()

	b.mu.RLock()
	handlers := append([]domoutbox.Handler(nil), b.subs[name]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.log.Debug("event_dropped_no_subscriber", observability.F("event", name))
		return
	}

	ctx = context.WithoutCancel(ctx)
	sem := make(chan struct{}, b.concurrency)
	var wg sync.WaitGroup

	for _, h := range handlers {
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					b.log.Error("event_handler_panic",
						observability.F("event", name),
						observability.F("panic", r),
						observability.F("stack", string(debug.Stack())),
					)
				}
				<-sem
				wg.Done()
			}()

			hctx, cancel := context.WithTimeout(ctx, handlerTimeout)
			hctx = logctx.With(hctx, b.log.With(observability.F("event", name)))
			err := h(hctx, e)
			cancel()
			if err != nil {
				b.log.Warn("event_handler_error",
					observability.F("event", name),
					observability.F("error", err),
				)
			}
		}()
	}

	wg.Wait()
}

type fanPublisher struct{ targets []domoutbox.Publisher }

// Fan returns a publisher that forwards each event to every target,
// returning the first error encountered.
func Fan(targets ...domoutbox.Publisher) domoutbox.Publisher {
	return fanPublisher{targets: targets}
}

func (f fanPublisher) Publish(ctx context.Context, e domoutbox.Event) error {
	var first error
	for _, t := range f.targets {
		if err := t.Publish(ctx, e); err != nil && first == nil {
			first = err
		}
	}
	return first
}
