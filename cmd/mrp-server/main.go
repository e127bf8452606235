package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vsinha/mrpanalysis/pkg/application/services/orchestration"
	"github.com/vsinha/mrpanalysis/pkg/application/services/remediation"
	"github.com/vsinha/mrpanalysis/pkg/infrastructure/config"
	"github.com/vsinha/mrpanalysis/pkg/infrastructure/events"
	"github.com/vsinha/mrpanalysis/pkg/infrastructure/metrics"
	"github.com/vsinha/mrpanalysis/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/mrpanalysis/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/mrpanalysis/pkg/interfaces/api"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("ℹ️ .env file not found, using process environment")
	} else {
		log.Printf("✅ Environment loaded from .env")
	}

	cfg := config.Load()

	store := memory.NewStore()
	if cfg.ScenarioDir != "" {
		scenario, err := csv.NewLoader().LoadScenario(cfg.ScenarioDir)
		if err != nil {
			log.Fatalf("❌ Failed to load scenario %s: %v", cfg.ScenarioDir, err)
		}
		if err := store.Load(scenario.Products, scenario.BOMs, scenario.Sales, scenario.Quotations); err != nil {
			log.Fatalf("❌ Failed to load scenario into repositories: %v", err)
		}
		log.Printf("✅ Scenario loaded: %d products, %d BOMs, %d sales, %d quotations",
			len(scenario.Products), len(scenario.BOMs), len(scenario.Sales), len(scenario.Quotations))
	} else {
		log.Println("⚠️ MRP_SCENARIO_DIR not set; only inline analysis requests will have data")
	}

	eventStore := events.NewInMemoryEventStore()
	if cfg.KafkaEnabled() {
		sink, err := events.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Fatalf("❌ Failed to create Kafka sink: %v", err)
		}
		defer func() {
			if err := sink.Close(); err != nil {
				log.Printf("⚠️ Failed to close Kafka sink: %v", err)
			}
		}()
		if err := eventStore.Subscribe([]string{events.AllEvents}, sink); err != nil {
			log.Fatalf("❌ Failed to subscribe Kafka sink: %v", err)
		}
		log.Printf("✅ Forwarding analysis events to Kafka topic %s", cfg.KafkaTopic)
	}
	// deferred after the sink so pending events drain before the sink closes
	defer func() {
		if err := eventStore.Close(); err != nil {
			log.Printf("⚠️ Failed to close event store: %v", err)
		}
	}()

	registry := metrics.NewRegistry()

	orchestrator := orchestration.NewAnalysisOrchestrator(store.Products, store.BOMs, store.Sales, store.Quotations).
		WithPublisher(eventStore).
		WithMetrics(registry)
	remediationService := remediation.NewService(remediation.NewDefaultHandler(store.BOMs, store.Products, store.WorkOrders)).
		WithPublisher(eventStore).
		WithMetrics(registry)

	if cfg.GinMode == gin.DebugMode || cfg.GinMode == gin.TestMode {
		gin.SetMode(cfg.GinMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(api.Handlers{
		Analysis:    api.NewAnalysisController(orchestrator),
		Remediation: api.NewRemediationController(remediationService, store.WorkOrders),
		Sessions:    api.NewSessionController(orchestrator),
		Metrics:     registry.Handler(),
		AccessLog:   cfg.AccessLog,
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Printf("🚀 MRP analysis server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Forced shutdown: %v", err)
	}
	log.Println("✅ Server stopped")
}
