package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/c360studio/stripsolve/config"
	"github.com/c360studio/stripsolve/processor/solver"
)

func serveCmd() *cobra.Command {
	var (
		configPath  string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the NATS-backed solve service",
		Long: `Serve consumes solve requests from a JetStream stream, runs the
planner on each, and publishes results. Requests carry PDDL domain and
problem text as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, metricsAddr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Prometheus /metrics listen address (overrides config)")

	return cmd
}

func runServe(configPath, metricsAddr string) error {
	logger := slog.Default()

	cfg, err := loadServeConfig(configPath, logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	natsClient, err := connectToNATS(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer natsClient.Close(ctx)

	if err := ensureStream(ctx, cfg, natsClient, logger); err != nil {
		return err
	}

	// Start metrics endpoint if configured
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
		go func() {
			logger.Info("Metrics endpoint listening", "addr", cfg.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	solverConfig, err := json.Marshal(map[string]any{
		"stream_name":   cfg.NATS.Stream,
		"solve_timeout": cfg.Planner.SolveTimeout.String(),
	})
	if err != nil {
		return fmt.Errorf("marshal solver config: %w", err)
	}

	comp, err := solver.NewComponent(solverConfig, component.Dependencies{
		Logger:     logger,
		NATSClient: natsClient,
	})
	if err != nil {
		return fmt.Errorf("create solver: %w", err)
	}

	solverComp, ok := comp.(*solver.Component)
	if !ok {
		return fmt.Errorf("unexpected component type %T", comp)
	}

	if err := solverComp.Initialize(); err != nil {
		return fmt.Errorf("initialize solver: %w", err)
	}
	if err := solverComp.Start(ctx); err != nil {
		return fmt.Errorf("start solver: %w", err)
	}

	logger.Info("Stripsolve service ready",
		"version", Version,
		"stream", cfg.NATS.Stream)

	<-ctx.Done()
	logger.Info("Shutting down")

	return solverComp.Stop(10 * time.Second)
}

func loadServeConfig(configPath string, logger *slog.Logger) (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.NewLoader(logger).Load()
}

func connectToNATS(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*natsclient.Client, error) {
	natsURL := cfg.NATS.URL

	// Environment variable override takes precedence
	if envURL := os.Getenv("NATS_URL"); envURL != "" {
		natsURL = envURL
	}

	logger.Info("Connecting to NATS", "url", natsURL)

	client, err := natsclient.NewClient(natsURL,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
		natsclient.WithCircuitBreakerThreshold(20),
		natsclient.WithHealthInterval(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return nil, wrapNATSError(err, natsURL)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, wrapNATSError(err, natsURL)
	}

	logger.Info("Connected to NATS", "url", natsURL)
	return client, nil
}

// wrapNATSError provides helpful guidance when NATS connection fails.
func wrapNATSError(err error, url string) error {
	errStr := err.Error()

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no servers available") ||
		strings.Contains(errStr, "timeout") {
		return fmt.Errorf(`NATS connection failed: %w

NATS is not running at %s.

To start NATS:
  docker compose up -d nats

Or set NATS_URL environment variable to point to your NATS server.`, err, url)
	}

	return fmt.Errorf("NATS connection failed: %w", err)
}

func ensureStream(ctx context.Context, cfg *config.Config, natsClient *natsclient.Client, logger *slog.Logger) error {
	js, err := natsClient.JetStream()
	if err != nil {
		return fmt.Errorf("get jetstream: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     cfg.NATS.Stream,
		Subjects: []string{"planning.solve.>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("ensure stream %s: %w", cfg.NATS.Stream, err)
	}

	logger.Debug("JetStream stream ready", "stream", cfg.NATS.Stream)
	return nil
}
