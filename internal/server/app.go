// Package server initializes and runs the payments portal API server.
// It constructs the store handle, services and HTTP surface, seeds the
// bootstrap employee when configured, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dspetrov/payportal/internal/logging"
	"github.com/dspetrov/payportal/internal/server/config"
	"github.com/dspetrov/payportal/internal/server/employees"
	"github.com/dspetrov/payportal/internal/server/httpapi"
	"github.com/dspetrov/payportal/internal/server/payments"
	"github.com/dspetrov/payportal/internal/server/settlement"
	"github.com/dspetrov/payportal/internal/server/shared/db"
	"github.com/dspetrov/payportal/internal/server/users"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	repoManager     db.RepositoryManager
	userService     *users.Service
	employeeService *employees.Service
	paymentService  *payments.Service
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var reporter payments.SettlementReporter
	if c.S3Bucket != "" {
		reporter = settlement.NewS3Reporter(c)
	}

	us := users.NewService(rm.Users())
	es := employees.NewService(rm.Employees())
	ps := payments.NewService(rm.Payments(), reporter, logger)

	return &App{
		config:          c,
		logger:          logger,
		repoManager:     rm,
		userService:     us,
		employeeService: es,
		paymentService:  ps,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// seedBootstrapEmployee creates or refreshes the employee configured for
// process bootstrap. Employees have no self-service registration path.
func (app *App) seedBootstrapEmployee(ctx context.Context) error {
	if app.config.BootstrapEmployeeUsername == "" {
		return nil
	}
	if app.config.BootstrapEmployeePassword == "" {
		return fmt.Errorf("bootstrap employee %q has no password configured", app.config.BootstrapEmployeeUsername)
	}

	_, err := app.employeeService.Seed(ctx,
		app.config.BootstrapEmployeeUsername,
		app.config.BootstrapEmployeeFullName,
		app.config.BootstrapEmployeePassword,
	)
	if err != nil {
		return err
	}

	app.logger.Info(ctx, "bootstrap employee seeded", "username", app.config.BootstrapEmployeeUsername)
	return nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	sessions := httpapi.NewSessionManager(app.config.SecretKey, app.config.SessionValidityDuration, app.config.SecureMode)
	csrf := httpapi.NewCSRF(app.config.SecureMode)
	rateLimiter := httpapi.NewRateLimiter(app.config.AuthRateLimitPerMinute)

	authHandler := httpapi.NewAuthHandler(app.userService, app.employeeService, sessions, app.logger)
	paymentHandler := httpapi.NewPaymentHandler(app.paymentService, app.logger)

	router := httpapi.NewRouter(app.config, app.logger, authHandler, paymentHandler, sessions, csrf, rateLimiter)
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, router, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.seedBootstrapEmployee(ctx); err != nil {
		app.logger.Error(ctx, "bootstrap employee seeding failed", "error", err)
		cancelFunc()
		return
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repoManager.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
