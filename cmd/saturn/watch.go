package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"covenant-hq/saturn/pkg/cli"
	"covenant-hq/saturn/pkg/config"
	"covenant-hq/saturn/pkg/contract/manager"
	"covenant-hq/saturn/pkg/contract/store"
	"covenant-hq/saturn/pkg/telemetry/health"
	"covenant-hq/saturn/pkg/telemetry/metrics"
)

var watchFlags struct {
	once bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Load contracts and reload on change",
	Long: `Load the configured contracts and keep them loaded, reloading when
the files change on disk.

Reloads are atomic: if any contract in the new set fails to load or
validate, the previously loaded set stays active. When a resync schedule
is configured, a full reload also runs on that cron schedule.

When metrics are enabled, the listen address also serves /healthz and
/readyz probes alongside /metrics.

Examples:
  # Watch with default config
  saturn watch

  # Watch with custom config
  saturn watch --config /etc/saturn/saturn.yaml

  # Load once and exit (CI smoke check)
  saturn watch --once`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchFlags.once, "once", false, "load contracts once and exit")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError(cfgFile, err.Error())
	}

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	opts := []manager.Option{manager.WithLogger(logger)}

	var st *store.Store
	if cfg.Store.Enabled {
		st, err = store.New(&store.Config{Path: cfg.Store.Path})
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer st.Close()
		opts = append(opts, manager.WithStore(st))
	}

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		opts = append(opts, manager.WithMetrics(metrics.NewLoaderMetrics(registry)))
	}

	mgr, err := manager.New(manager.Config{
		ContractPaths: cfg.Contracts.Paths,
		MaxDepth:      cfg.Contracts.MaxDepth,
		MaxFileSize:   cfg.Contracts.MaxFileSize,
		Watcher: &manager.FileWatcherConfig{
			Paths:            cfg.Contracts.Paths,
			DebounceInterval: cfg.Contracts.WatchDebounce,
		},
		ResyncSchedule: cfg.Contracts.ResyncSchedule,
	}, opts...)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer mgr.Close()

	ctx, stop := cli.SetupSignalHandler()
	defer stop()

	if registry != nil {
		checker := health.New(0)
		checker.RegisterCheck("contracts", func(ctx context.Context) error {
			if mgr.Registry().Count() == 0 {
				return fmt.Errorf("no contracts loaded")
			}
			return nil
		})
		if st != nil {
			checker.RegisterCheck("store", st.Ping)
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(registry))
		mux.Handle("/healthz", checker.LivenessHandler())
		mux.Handle("/readyz", checker.ReadinessHandler())

		srv := &http.Server{Addr: cfg.Metrics.Listen, Handler: mux}
		go func() {
			logger.Info("metrics endpoint listening", "address", cfg.Metrics.Listen)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	if err := mgr.LoadContracts(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}

	if watchFlags.once {
		fmt.Printf("✓ Loaded %d contract(s)\n", mgr.Registry().Count())
		return nil
	}

	return mgr.Watch(ctx)
}
