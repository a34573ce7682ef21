// Package server initializes and runs the main application server.
// It prepares the flat-file stores, seeds the administrator account,
// handles graceful shutdown, and starts the TCP listener.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mkuznecovs/engdir/internal/filex"
	"github.com/mkuznecovs/engdir/internal/logging"
	"github.com/mkuznecovs/engdir/internal/server/accounts"
	"github.com/mkuznecovs/engdir/internal/server/config"
	"github.com/mkuznecovs/engdir/internal/server/profiles"
	"github.com/mkuznecovs/engdir/internal/server/tcpserver"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	accountService *accounts.Service
	profileService *profiles.Service
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir init error: %w", err)
	}

	accRepo := accounts.NewFileRepository(dataDir)
	if err := accRepo.EnsureFiles(); err != nil {
		return nil, fmt.Errorf("account store init error: %w", err)
	}
	profRepo := profiles.NewFileRepository(dataDir)
	if err := profRepo.EnsureFiles(); err != nil {
		return nil, fmt.Errorf("profile store init error: %w", err)
	}

	as := accounts.NewService(accRepo, c.AdminUsername, c.AdminPassword)
	if err := as.EnsureAdmin(); err != nil {
		return nil, fmt.Errorf("admin seed error: %w", err)
	}
	ps := profiles.NewService(profRepo)

	return &App{config: c, logger: logger, accountService: as, profileService: ps}, nil
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

func (app *App) startTCPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := tcpserver.NewTCPServer(app.config.Address, app.logger, app.accountService, app.profileService)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startTCPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
