package main // Entry point package

import (
	"context"   // shutdown deadline
	"errors"    // http.ErrServerClosed matching
	"log/slog"  // structured logging
	"net/http"  // http.ErrServerClosed
	"os"        // exit code
	"os/signal" // SIGINT/SIGTERM handling
	"syscall"   // SIGTERM
	"time"      // timeouts

	"github.com/labstack/echo/v4"                   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // request logging and recovery
	"golang.org/x/sync/errgroup"                    // lifecycle of server, consumer and sweeper

	"github.com/iliyamo/venue-layout-editor/internal/cache"      // loaded-layout cache
	"github.com/iliyamo/venue-layout-editor/internal/config"     // environment config
	"github.com/iliyamo/venue-layout-editor/internal/database"   // MySQL pool and migrations
	"github.com/iliyamo/venue-layout-editor/internal/editor"     // session options
	"github.com/iliyamo/venue-layout-editor/internal/handler"    // HTTP handlers
	"github.com/iliyamo/venue-layout-editor/internal/logger"     // slog setup
	"github.com/iliyamo/venue-layout-editor/internal/middleware" // rate limit and response cache
	"github.com/iliyamo/venue-layout-editor/internal/queue"      // layout events
	"github.com/iliyamo/venue-layout-editor/internal/repository" // layout persistence
	"github.com/iliyamo/venue-layout-editor/internal/router"     // route registration
	"github.com/iliyamo/venue-layout-editor/internal/service"    // layout and session services
)

const sweepInterval = time.Minute

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()       // Load environment config
	log := logger.New(cfg.Log) // Install the process logger

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		log.Warn("redis unavailable, caching and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	var events service.EventPublisher // stays nil when publishing is off
	if cfg.Events.Enabled {
		events = queue.NewPublisher(cfg.Events, log)
	}

	layouts := service.NewLayoutService(
		repository.NewLayoutRepo(db),
		cache.NewLayoutCache(rdb, cfg.Cache.LayoutTTL, log),
		events,
		log,
	)
	sessions := service.NewSessionManager(layouts, editor.Options{
		Grid:           editor.GridSettings{Size: cfg.Editor.GridSize, Snap: cfg.Editor.SnapEnabled, Visible: true},
		HistoryLimit:   cfg.Editor.HistoryLimit,
		DefaultCanvasW: cfg.Editor.DefaultCanvasW,
		DefaultCanvasH: cfg.Editor.DefaultCanvasH,
	}, cfg.Editor.SessionIdleTTL, log)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				log.Error("request", append(attrs, "err", v.Error)...)
				return nil
			}
			log.Info("request", attrs...)
			return nil
		},
	}))

	limiter := middleware.NewTokenBucket(cfg.RateLimit, rdb)
	router.RegisterRoutes(e, db)
	router.RegisterLayouts(e, handler.NewLayoutHandler(layouts), cfg.JWTSecret,
		limiter, middleware.NewRedisCache(cfg.Cache, rdb))
	// session routes are never cached, but a save changes layouts the cache may hold
	router.RegisterEditor(e, handler.NewSessionHandler(sessions), cfg.JWTSecret,
		limiter, middleware.NewCachePurger(cfg.Cache, rdb))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port                              // Address string with port
		log.Info("listening", "addr", addr, "env", cfg.Env) // Print startup info
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return sessions.RunSweeper(gctx, sweepInterval)
	})
	if cfg.Events.Enabled && cfg.Events.RunConsumer {
		g.Go(func() error {
			return queue.NewConsumer(cfg.Events, log).Run(gctx)
		})
	}
	return g.Wait()
}
