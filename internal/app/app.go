package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/cache"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/database"
	"github.com/vancomm/minesweeper-engine/internal/handlers"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/repository"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	logger   *slog.Logger
	router   *http.ServeMux
	manager  *session.Manager
	jwt      *config.JWT
	ws       *config.WebSocket
	backends map[string]handlers.Pinger
	closers  []func()
}

func New(logger *slog.Logger) *App {
	return &App{
		logger:   logger,
		router:   http.NewServeMux(),
		backends: make(map[string]handlers.Pinger),
	}
}

// openStore connects the configured session backend.
func (a *App) openStore(ctx context.Context) (session.Store, error) {
	backend, err := config.Store()
	if err != nil {
		return nil, err
	}
	a.logger.Info("opening session store", slog.String("backend", string(backend)))

	switch backend {
	case config.PostgresBackend:
		db, err := database.ConnectAndMigrate(ctx)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to db: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		repo := repository.New(db)
		a.backends["postgres"] = repo
		return repo, nil
	case config.RedisBackend:
		cfg, err := config.NewRedis()
		if err != nil {
			return nil, err
		}
		store, err := cache.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { store.Close() })
		a.backends["redis"] = store
		return store, nil
	default:
		return session.NewMemoryStore(), nil
	}
}

// Setup reads the configuration and opens the session store.
func (a *App) Setup(ctx context.Context) error {
	params, err := config.BoardParams()
	if err != nil {
		return fmt.Errorf("invalid board config: %w", err)
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}
	a.jwt = jwt

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	a.manager = session.NewManager(store, a.logger, params)
	a.loadRoutes()
	return nil
}

func (a *App) Handler() http.Handler {
	var h http.Handler = a.router
	if base := config.BasePath(); base != "" {
		h = http.StripPrefix(base, h)
	}
	return middleware.Wrap(
		h,
		middleware.Auth(a.logger, a.jwt),
		middleware.Cors(config.AllowedOrigins()),
		middleware.Recover(a.logger),
		middleware.Logging(a.logger),
	)
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Start serves until ctx is done, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(ctx); err != nil {
		return err
	}
	defer a.Close()

	ttl, err := config.SessionTTL()
	if err != nil {
		return err
	}
	sweepInterval, err := config.SweepInterval()
	if err != nil {
		return err
	}

	port := config.Port()
	server := &http.Server{
		Addr:              port,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening",
			slog.String("addr", port), slog.String("base path", config.BasePath()))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return a.manager.RunSweeper(gCtx, sweepInterval, ttl)
	})

	return g.Wait()
}
