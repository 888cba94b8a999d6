// Package server initializes and runs the application: database and
// migrations, breach sources, services, the HTTP API, and the background
// monitor, with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sentinelx/breachwatch/internal/logging"
	"github.com/sentinelx/breachwatch/internal/server/config"
	"github.com/sentinelx/breachwatch/internal/server/httpapi"
	"github.com/sentinelx/breachwatch/internal/server/mailer"
	"github.com/sentinelx/breachwatch/internal/server/repositories/repomanager"
	"github.com/sentinelx/breachwatch/internal/server/services"
	"github.com/sentinelx/breachwatch/internal/server/source"
	"github.com/sentinelx/breachwatch/internal/server/worker"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	api     *httpapi.API
	monitor *worker.Monitor
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	resolver := buildResolver(cfg, logger)

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.AlertEmailFrom)
	}

	userService := services.NewUserService(db, m, cfg)
	checkService := services.NewCheckService(db, m, resolver, mail, logger)
	monitoredService := services.NewMonitoredService(db, m, checkService, logger)
	dashboardService := services.NewDashboardService(db, m)

	api := httpapi.NewAPI(userService, checkService, monitoredService, dashboardService, []byte(cfg.SecretKey), logger)
	monitor := worker.NewMonitor(monitoredService, checkService, cfg.MonitorInterval, logger)

	return &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		api:     api,
		monitor: monitor,
	}, nil
}

// buildResolver assembles the breach source chain: the simulated catalog is
// always available as fallback (preferring the S3 copy when configured), and
// the live client is added when credentials are present and simulation is
// not forced.
func buildResolver(cfg *config.Config, logger logging.Logger) *source.Resolver {
	ctx := context.Background()

	catalog, err := source.LoadCatalogFromS3(ctx, cfg)
	if err != nil {
		if cfg.S3Bucket != "" {
			logger.Warn(ctx, "s3 catalog unavailable, using embedded catalog", "error", err)
		}
		catalog, err = source.EmbeddedCatalog()
		if err != nil {
			// embed is compiled in; only a corrupt build gets here
			catalog = source.Catalog{}
			logger.Error(ctx, "embedded catalog unavailable", "error", err)
		}
	}
	simulated := source.NewSimulatedClient(catalog)

	var live source.Client
	if !cfg.UseSimulatedData && cfg.HIBPAPIKey != "" {
		live = source.NewHIBPClient(cfg.HIBPAPIKey, cfg.HIBPUserAgent, cfg.SourceTimeout)
	}

	return source.NewResolver(live, simulated, cfg.SourceTimeout, logger)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.api.Routes(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "http server listening", "addr", app.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.monitor.Run(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
