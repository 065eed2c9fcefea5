package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"production/cmd"
	"production/internal/adapters/out/postgres"
	"production/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var envFile string

var rootCmd = &cobra.Command{
	Use:   "production",
	Short: "Feed mill production service",
	Long: `Serves the production API: mix orders, batches with traceability,
and mobile mixing runs, plus the background outbox relay and calibration monitor.`,
	SilenceUsage: true,
	RunE:         serve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the scheduled jobs",
	RunE:  serve,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  migrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional file with environment variables")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("production: %v", err)
	}
}

func setup() (cmd.Config, *zap.Logger, *gorm.DB, error) {
	config, err := cmd.LoadConfig(envFile)
	if err != nil {
		return cmd.Config{}, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	zl, err := logger.New(config.LogLevel)
	if err != nil {
		return cmd.Config{}, nil, nil, err
	}
	db, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return cmd.Config{}, nil, nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return config, zl, db, nil
}

func migrate(_ *cobra.Command, _ []string) error {
	_, zl, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	zl.Info("schema migrated")
	return nil
}

func serve(c *cobra.Command, _ []string) error {
	config, zl, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	app, err := cmd.NewCompositionRoot(config, db, zl)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, config.HTTPPort, zl)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, zl *zap.Logger) error {
	e := app.CreateRouter()

	errCh := make(chan error, 1)
	go func() {
		zl.Info("http server listening", zap.String("port", port))
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
