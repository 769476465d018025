// Package server wires configuration, storage, the share service and both
// network endpoints into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/vaultshare/internal/cryptox"
	"github.com/dmitrijs2005/vaultshare/internal/dbx"
	"github.com/dmitrijs2005/vaultshare/internal/logging"
	"github.com/dmitrijs2005/vaultshare/internal/server/auth"
	"github.com/dmitrijs2005/vaultshare/internal/server/config"
	"github.com/dmitrijs2005/vaultshare/internal/server/httpapi"
	"github.com/dmitrijs2005/vaultshare/internal/server/repositories/entries"
	"github.com/dmitrijs2005/vaultshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/vaultshare/internal/server/repositories/shares"
	"github.com/dmitrijs2005/vaultshare/internal/server/services"

	gs "github.com/dmitrijs2005/vaultshare/internal/server/grpc"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	flushLogs    func() error
	db           *sql.DB
	shareService *services.ShareService
}

func newLogger(format string) (logging.Logger, func() error, error) {
	if format == config.LogFormatJSON {
		z, err := logging.NewProductionZapLogger()
		if err != nil {
			return nil, nil, fmt.Errorf("logger init error: %w", err)
		}
		return z, z.Sync, nil
	}

	return logging.NewTextLogger(os.Stdout, slog.LevelInfo), func() error { return nil }, nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, flush, err := newLogger(c.LogFormat)
	if err != nil {
		return nil, err
	}
	warnInsecureDefaults(ctx, c, logger)

	cipher, err := cryptox.NewCipher(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("cipher init error: %w", err)
	}

	app := &App{config: c, logger: logger, flushLogs: flush}

	shareRepo, entryRepo, err := app.openStore(ctx, cipher)
	if err != nil {
		return nil, err
	}

	source := services.NewVaultEntrySource(entryRepo, cipher)
	app.shareService = services.NewShareService(shareRepo, source, auth.ContextPrincipal{}, cipher,
		c.PublicBaseURL, logger, services.WithRetrieveRetry(c.RetrieveMaxRetries, c.RetrieveBaseBackoff))

	return app, nil
}

func warnInsecureDefaults(ctx context.Context, c *config.Config, l logging.Logger) {
	for _, name := range c.InsecureDefaults() {
		l.Warn(ctx, "development default in use, override it in production", "setting", name)
	}
}

// openStore builds the repositories for the configured driver and applies
// the seed file, if any.
func (app *App) openStore(ctx context.Context, cipher *cryptox.Cipher) (shares.Repository, entries.Repository, error) {
	c := app.config

	if c.DatabaseDriver == config.DriverMemory {
		app.logger.Warn(ctx, "using in-memory store, shares are lost on restart")
		entryRepo := entries.NewMemoryRepository()
		if err := app.seed(ctx, func(ctx context.Context, put func(entries.Repository) error) error {
			return put(entryRepo)
		}, cipher); err != nil {
			return nil, nil, err
		}
		return shares.NewMemoryRepository(), entryRepo, nil
	}

	m, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, nil, err
	}

	db, err := repomanager.Open(ctx, m, c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db

	if err := app.seed(ctx, func(ctx context.Context, put func(entries.Repository) error) error {
		return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return put(m.Entries(tx))
		})
	}, cipher); err != nil {
		_ = db.Close()
		app.db = nil
		return nil, nil, err
	}

	return m.Shares(db), m.Entries(db), nil
}

func (app *App) seed(ctx context.Context, within func(context.Context, func(entries.Repository) error) error, cipher *cryptox.Cipher) error {
	if app.config.SeedFile == "" {
		return nil
	}

	list, err := readSeedFile(app.config.SeedFile)
	if err != nil {
		return err
	}

	return within(ctx, func(repo entries.Repository) error {
		return seedEntries(ctx, repo, cipher, list, app.logger.With("module", "seed"))
	})
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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.shareService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	var store httpapi.Pinger
	if app.db != nil {
		store = app.db
	}

	router := httpapi.NewRouter(app.shareService, store, app.logger.With("module", "http"))
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, router, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves both endpoints until ctx is cancelled, a termination signal
// arrives or one of the servers fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close(context.Background())
}

func (app *App) close(ctx context.Context) {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
	app.logger.Info(ctx, "App stopped")
	_ = app.flushLogs()
}
