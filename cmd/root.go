package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"card-fraud-detector/internal/config"
	"card-fraud-detector/internal/detector"
	"card-fraud-detector/internal/history"
	"card-fraud-detector/internal/metrics"
	"card-fraud-detector/internal/session"
	"card-fraud-detector/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// flagValues holds command-line overrides; a flag only wins over the
// environment when it was set explicitly.
type flagValues struct {
	logLevel    string
	currency    string
	theme       string
	metricsAddr string
	noSample    bool
}

func newRootCmd() *cobra.Command {
	var flags flagValues

	cmd := &cobra.Command{
		Use:   "fraud-detector",
		Short: "Détection de Fraude - classify card transactions from a terminal form",
		Long: `fraud-detector opens a form to enter a payment-card transaction
(card number, amount, type, time, location) and classifies it immediately as
"Suspect" or "Légitime". Transactions above 1000 are flagged as suspect.

The history table lives in memory only and is lost on exit.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runForm(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.currency, "currency", "FCFA", "currency unit suffix accepted on amounts")
	cmd.Flags().StringVar(&flags.theme, "theme", "charm", "form theme (charm, dracula, base16, catppuccin)")
	cmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (disabled when empty)")
	cmd.Flags().BoolVar(&flags.noSample, "no-sample", false, "start with an empty history instead of the sample rows")

	cmd.AddCommand(newAnalyzeCmd(&flags), newVersionCmd())
	return cmd
}

// resolveConfig reads FRAUD_* variables, then applies explicitly set flags.
func resolveConfig(cmd *cobra.Command, flags flagValues) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("log-level") {
		level, err := log.ParseLevel(flags.logLevel)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = level
	}
	if changed("currency") {
		cfg.Currency = flags.currency
	}
	if changed("theme") {
		cfg.Theme = flags.theme
	}
	if changed("metrics-addr") {
		cfg.MetricsAddr = flags.metricsAddr
	}
	if changed("no-sample") {
		cfg.SampleHistory = !flags.noSample
	}

	return cfg, cfg.Validate()
}

func newLogger(w io.Writer, level log.Level, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportTimestamp: true,
	})
}

func runForm(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(stderr, cfg.LogLevel, "fraud")

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metrics.Handler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("metrics server starting", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "err", err)
			}
		}()
		defer func() {
			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			stopServer(shutCtx, srv, logger)
		}()
	}

	d := detector.New(cfg.Currency)
	store := history.NewStore(cfg.SampleHistory, cfg.Currency, time.Now())
	sess := session.New(d, store, logger, session.WithMetrics(m))

	host := ui.NewTerminal(stdout, ui.Theme(cfg.Theme), cfg.Currency)
	return sess.Run(ctx, host)
}

func stopServer(ctx context.Context, srv *http.Server, logger *log.Logger) {
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("metrics server shutdown", "err", err)
	}
}
