package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apporder "github.com/AshwiniC929/OrderService/internal/application/order"
	dominv "github.com/AshwiniC929/OrderService/internal/domain/inventory"
	domoutbox "github.com/AshwiniC929/OrderService/internal/domain/outbox"
	dompay "github.com/AshwiniC929/OrderService/internal/domain/payment"
	"github.com/AshwiniC929/OrderService/internal/infrastructure/clients"
	"github.com/AshwiniC929/OrderService/internal/infrastructure/config"
	"github.com/AshwiniC929/OrderService/internal/infrastructure/id"
	localinv "github.com/AshwiniC929/OrderService/internal/infrastructure/inventory"
	"github.com/AshwiniC929/OrderService/internal/infrastructure/memory"
	"github.com/AshwiniC929/OrderService/internal/infrastructure/observability/oteltrace"
	"github.com/AshwiniC929/OrderService/internal/infrastructure/observability/prometrics"
	"github.com/AshwiniC929/OrderService/internal/infrastructure/observability/telemetry"
	"github.com/AshwiniC929/OrderService/internal/infrastructure/observability/zaplogger"
	"github.com/AshwiniC929/OrderService/internal/infrastructure/outbox"
	localpay "github.com/AshwiniC929/OrderService/internal/infrastructure/payment"
	"github.com/AshwiniC929/OrderService/internal/infrastructure/stream"
	"github.com/AshwiniC929/OrderService/internal/observability"
	httppresentation "github.com/AshwiniC929/OrderService/internal/presentation/http"
	"github.com/AshwiniC929/OrderService/internal/presentation/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	logger := zaplogger.New(
		observability.F("service", cfg.ServiceName),
		observability.F("env", cfg.Env),
	)
	metrics := prometrics.New(cfg.ServiceName)
	tracer := oteltrace.New(cfg.ServiceName)
	tel := telemetry.New(tracer, logger, metrics)

	ids := id.NewUUIDGenerator()
	orderRepo := memory.NewOrderRepository(ids)
	simulator := localpay.NewSimulator(ids, cfg.PaymentSuccessRate)

	var adjuster dominv.Adjuster
	if cfg.InventoryBaseURL != "" {
		adjuster = clients.NewInventoryClient(cfg.InventoryBaseURL)
	} else {
		adjuster = localinv.NewLocalAdjuster(memory.NewStockRepository(cfg.DefaultStock))
	}

	var processor dompay.Processor = simulator
	if cfg.PaymentBaseURL != "" {
		processor = clients.NewPaymentClient(cfg.PaymentBaseURL)
	}

	var aggregator apporder.Aggregator
	if cfg.AggregatorBaseURL != "" {
		aggregator = clients.NewAggregatorClient(cfg.AggregatorBaseURL)
	} else {
		aggregator = apporder.ComposeAggregator(memory.NewCatalog(cfg.Catalog), simulator)
	}

	bus := outbox.NewBus(logger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	var publisher domoutbox.Publisher = bus
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub := stream.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer func() { _ = kafkaPub.Close() }()
		publisher = outbox.Fan(bus, kafkaPub)
	}

	auditor := worker.NewAuditor(bus, logger, tel)
	auditor.Start()

	orchestrator := apporder.NewOrchestrator(orderRepo, adjuster, processor, aggregator, ids, publisher, tel)

	handler := httppresentation.NewHandler(orchestrator, logger, tel)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http_server_start", observability.F("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", observability.F("error", err.Error()))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", observability.F("error", err.Error()))
	} else {
		logger.Info("http_server_stopped")
	}
}
