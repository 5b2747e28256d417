// Package app assembles eventreg from its configuration: logger, storage
// medium, repositories, services and the terminal client, and runs it
// until the user exits or the process is signalled.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/eventreg/internal/catalog"
	"github.com/dmitrijs2005/eventreg/internal/cli"
	"github.com/dmitrijs2005/eventreg/internal/config"
	"github.com/dmitrijs2005/eventreg/internal/logging"
	"github.com/dmitrijs2005/eventreg/internal/repositories/sessions"
	"github.com/dmitrijs2005/eventreg/internal/repositories/userdata"
	"github.com/dmitrijs2005/eventreg/internal/repositories/users"
	"github.com/dmitrijs2005/eventreg/internal/services"
	"github.com/dmitrijs2005/eventreg/internal/storage"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	authService  services.AuthService
	eventService services.EventStateService
	cli          *cli.App
	closeStorage func() error
}

// NewApp opens the configured storage and wires the services on top of it.
// Logs go to logOut; the terminal client reads in and writes out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, logOut)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	backend, closeFn, err := storage.Open(ctx, storage.Options{Driver: c.StorageDriver, DSN: c.StorageDSN}, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	cat, err := catalog.Load(c.CatalogFile)
	if err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("catalog init error: %w", err)
	}

	store := storage.NewStore(backend, c.KeyPrefix, logger)
	es := services.NewEventStateService(userdata.NewKVRepository(store), cat, logger)
	as := services.NewAuthService(users.NewKVRepository(store), sessions.NewKVRepository(store), es, logger)

	if c.SeedDemoUser {
		if err := as.SeedDemoUser(ctx); err != nil {
			_ = closeFn()
			return nil, fmt.Errorf("seed error: %w", err)
		}
	}

	return &App{
		config:       c,
		logger:       logger,
		authService:  as,
		eventService: es,
		cli:          cli.NewApp(as, es, cat, logger, in, out),
		closeStorage: closeFn,
	}, nil
}

// Test seams for signal delivery.
var (
	signalNotify = signal.Notify
	signalStop   = signal.Stop
)

// initSignalHandler cancels ctx on SIGINT, SIGTERM or SIGQUIT. After the
// first signal the default handling is restored, so a second one kills the
// process. The returned func stops the handler.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) func() {
	sigs := make(chan os.Signal, 1)
	signalNotify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		select {
		case sig := <-sigs:
			signalStop(sigs)
			app.logger.Info(ctx, "signal received, shutting down", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()

	return func() { signalStop(sigs) }
}

// Run serves the terminal client and releases the storage afterwards. It
// returns when the user exits, input ends, ctx is done or a shutdown
// signal arrives, including while the client waits for input.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	stopSignals := app.initSignalHandler(ctx, cancelFunc)
	defer stopSignals()

	app.logger.Info(ctx, "starting eventreg", "driver", app.config.StorageDriver, "prefix", app.config.KeyPrefix)

	app.cli.Run(ctx)

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "error closing storage", "error", err)
	}
}

// Close releases the storage and flushes buffered logs.
func (app *App) Close() error {
	err := app.closeStorage()
	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	return err
}
