package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Ade-Adebayo/package-health-agent/internal/alerts"
	"github.com/Ade-Adebayo/package-health-agent/internal/api"
	"github.com/Ade-Adebayo/package-health-agent/internal/config"
	"github.com/Ade-Adebayo/package-health-agent/internal/health"
	"github.com/Ade-Adebayo/package-health-agent/internal/store"
	"github.com/Ade-Adebayo/package-health-agent/internal/ws"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dependency-health HTTP service",
	Long:  "Serves the JSON API, Prometheus metrics and the WebSocket report stream. Without --config the built-in defaults are used; with --config the file is also watched and alert rules are swapped on change.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file (optional)")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	slog.Info("package-health-agent starting",
		"http_port", cfg.Server.HTTPPort,
		"report_ttl", cfg.Reports.TTL,
		"workers", cfg.Analyzer.Workers,
		"alert_rules", len(cfg.Alerts.Rules),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Report store with background TTL eviction.
	st := store.New(cfg.Reports.TTL)
	go st.Run(ctx)

	// Alert engine — evaluates rules on every completed report.
	engine := alerts.New(cfg.Alerts)

	analyzer := health.NewAnalyzer(cfg)

	// WebSocket hub — broadcasts report summaries to connected clients.
	hub := ws.New(st, cfg.Reports.StreamInterval)
	go hub.Run(ctx)

	// Hot reload: swap alert rules and webhooks when the config file changes.
	if configPath != "" {
		go func() {
			if err := config.Watch(ctx, configPath, func(c *config.Config) {
				engine.SetConfig(c.Alerts)
			}); err != nil {
				slog.Error("config watch failed", "err", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", api.New(st, analyzer, engine))
	mux.Handle("/ws/stream", hub)
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: mux,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("package-health-agent shutting down")
	srv.Shutdown(context.Background()) //nolint:errcheck
	return nil
}
