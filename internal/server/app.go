// Package server wires the store, services and HTTP API together and runs
// them until the process is asked to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/bazaarbuddy/internal/logging"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/auth"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/config"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/rest"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/services"
)

// openRepositories is a seam for tests.
var openRepositories = repomanager.Open

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	server *rest.HTTPServer
}

// NewApp connects to the store, brings its schema up to date and builds the
// HTTP server. The store is closed again if anything after connecting fails.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repos, err := openRepositories(ctx, c.DatabaseDSN, c.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close(ctx)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	images := services.NewImageService(c)
	if !images.Enabled() {
		logger.Warn(ctx, "S3 bucket not configured, image uploads disabled")
	}

	api := rest.NewAPI(
		services.NewProductService(repos.Products(), logger),
		services.NewUserService(repos.Users(), c, logger),
		images,
		auth.NewVerifier([]byte(c.SecretKey)),
		logger,
	)

	return &App{
		config: c,
		logger: logger,
		repos:  repos,
		server: rest.NewHTTPServer(c.EndpointAddrHTTP, api.Router(c.CORSAllowedOrigins), logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a stop signal arrives, then closes
// the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	serveErr := app.server.Run(ctx)
	if serveErr != nil {
		app.logger.Error(ctx, "http server stopped", "error", serveErr)
	}

	if err := app.repos.Close(context.WithoutCancel(ctx)); err != nil {
		app.logger.Error(ctx, "closing store", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return serveErr
}
