package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"dompet/internal/config"
	"dompet/internal/cycle"
	"dompet/internal/events"
	apphttp "dompet/internal/http"
	"dompet/internal/ledger"
	applog "dompet/internal/log"
	"dompet/internal/mirror"
	"dompet/internal/service"
	"dompet/internal/smart"
	"dompet/internal/storage"
	"dompet/internal/store"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// A missing .env file is fine; the environment may be set elsewhere.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := applog.New(applog.Config{Level: logLevel(cfg.LogLevel)})

	st := store.New()
	st.SeedDefaultCategories()

	eng := ledger.New(st, logger)

	snaps, err := openSnapshotter(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	if snaps != nil {
		defer snaps.Close()
		owners, err := snaps.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("restore snapshots: %w", err)
		}
		for ownerID, snap := range owners {
			st.Restore(snap)
			logger.Info("restored owner snapshot",
				applog.FieldOwnerID, ownerID,
				"transactions", len(snap.Transactions))
		}
	}

	opts := service.Options{
		Snapshotter: snaps,
		Policy: cycle.Policy{
			Kind:     cycle.PolicyKind(cfg.CycleKind),
			StartDay: cfg.CycleStartDay,
		},
		HorizonDays: cfg.UpcomingHorizonDays,
	}

	if cfg.AMQPURL != "" {
		pub, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			return fmt.Errorf("connect amqp: %w", err)
		}
		defer pub.Close()
		opts.Events = pub
	}

	if cfg.SheetsSpreadsheetID != "" {
		m, err := mirror.New(cmd.Context(), mirror.Config{
			SpreadsheetID:   cfg.SheetsSpreadsheetID,
			SheetName:       cfg.SheetsSheetName,
			OAuthClientJSON: cfg.SheetsOAuthClientJSON,
			OAuthTokenJSON:  cfg.SheetsOAuthTokenJSON,
		}, logger)
		if err != nil {
			return fmt.Errorf("init sheets mirror: %w", err)
		}
		opts.Mirror = m
	}

	if cfg.GeminiAPIKey != "" {
		opts.Parser = smart.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	}

	svc := service.New(st, eng, logger, opts)

	api := apphttp.NewServer(svc, logger)
	defer api.Close()

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        api.Handler(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server",
			"port", cfg.Port,
			"backend", cfg.DataBackend,
			"cycle", cfg.CycleKind)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// openSnapshotter picks the persistence backend. Memory means no
// persistence at all.
func openSnapshotter(ctx context.Context, cfg *config.Config, logger *applog.Logger) (storage.Snapshotter, error) {
	switch cfg.DataBackend {
	case "sqlite":
		return storage.NewSQLiteStore(cfg.SQLiteDBPath, logger)
	case "postgres":
		return storage.NewPostgresStore(ctx, cfg.PostgresURL, logger)
	default:
		return nil, nil
	}
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
