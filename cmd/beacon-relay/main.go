package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	beacon "github.com/Tap30/beacon-go"
	"github.com/Tap30/beacon-go/adapters"
	"github.com/Tap30/beacon-go/internal/config"
	"github.com/Tap30/beacon-go/internal/relay"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client, err := newClient(cfg, log, beacon.NewMetrics(registry))
	if err != nil {
		log.Fatal("Failed to initialize analytics client", zap.Error(err))
	}

	server := &http.Server{
		Addr:    cfg.HTTP.ListenAddr,
		Handler: relay.NewRouter(relay.NewHandler(client, log), registry),
	}

	go func() {
		log.Info("Starting beacon relay",
			zap.String("env", cfg.Env),
			zap.String("address", cfg.HTTP.ListenAddr),
			zap.String("event_backend", cfg.Analytics.EventBackend),
			zap.Bool("event_analytics", cfg.Analytics.EventToken != ""),
			zap.Bool("traffic_analytics", cfg.Analytics.TrafficToken != ""),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received shutdown signal", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Warn("HTTP server shutdown error", zap.Error(err))
	}
	if err := client.Close(); err != nil {
		log.Warn("Analytics client close error", zap.Error(err))
	}
	log.Info("Beacon relay stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	return zapCfg.Build()
}

func newClient(cfg *config.Config, log *zap.Logger, metrics *beacon.Metrics) (*beacon.Client, error) {
	loggerAdapter := adapters.NewZapLoggerAdapterFrom(log)
	httpAdapter := adapters.NewNetHTTPAdapter(cfg.Analytics.HTTPTimeout)

	var events beacon.EventAnalyticsBackend
	switch cfg.Analytics.EventBackend {
	case config.EventBackendSegment:
		events = adapters.NewSegmentBackend(adapters.SegmentConfig{
			Endpoint:      cfg.Analytics.SegmentEndpoint,
			LoggerAdapter: loggerAdapter,
		})
	default:
		events = adapters.NewAmplitudeBackend(adapters.AmplitudeConfig{
			Endpoint:      cfg.Analytics.AmplitudeEndpoint,
			HTTPAdapter:   httpAdapter,
			LoggerAdapter: loggerAdapter,
			OnResult:      metrics.DeliveryObserver("event-analytics"),
		})
	}

	return beacon.New(beacon.Config{
		EventAnalyticsToken:   cfg.Analytics.EventToken,
		TrafficAnalyticsToken: cfg.Analytics.TrafficToken,
		EventAnalytics:        events,
		TrafficAnalytics: adapters.NewGoogleAnalyticsBackend(adapters.GoogleAnalyticsConfig{
			Endpoint:      cfg.Analytics.GAEndpoint,
			HTTPAdapter:   httpAdapter,
			LoggerAdapter: loggerAdapter,
			OnResult:      metrics.DeliveryObserver("traffic-analytics"),
		}),
		LoggerAdapter: loggerAdapter,
		Metrics:       metrics,
	})
}
