package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/voltquote/voltquote/internal/app"
	"github.com/voltquote/voltquote/internal/platform/cache"
	"github.com/voltquote/voltquote/internal/platform/db"
	"github.com/voltquote/voltquote/internal/quoting/catalog"
	"github.com/voltquote/voltquote/internal/quoting/margins"
	"github.com/voltquote/voltquote/internal/quoting/projects"
	"github.com/voltquote/voltquote/internal/quoting/quotes"
	"github.com/voltquote/voltquote/internal/quoting/templates"
	"github.com/voltquote/voltquote/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, margin policy cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	marginRepo := margins.NewRepository(dbpool)
	marginService := margins.NewService(marginRepo, redisClient, cfg.MarginsCacheTTL, logger)
	marginHandler := margins.NewHandler(logger, marginService)

	templateRepo := templates.NewRepository(dbpool)
	templateService := templates.NewService(templateRepo, logger)
	templateHandler := templates.NewHandler(logger, templateService)

	quoteService := quotes.NewService(quotes.ServiceConfig{
		Repo:      quotes.NewRepository(dbpool),
		Templates: templateService.Source(),
		Source:    projects.NewSource(dbpool),
		Catalog:   catalog.NewRepository(dbpool),
		Policy:    marginService,
		Logger:    logger,
	})

	queue, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := queue.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	quoteHandler := quotes.NewHandler(logger, quoteService, queue)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		QuoteHandler:    quoteHandler,
		TemplateHandler: templateHandler,
		MarginHandler:   marginHandler,
		JobHandler:      jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exit", slog.Any("error", err))
		os.Exit(1)
	}
}
