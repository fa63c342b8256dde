package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

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
		slog.Default().Info("test mode detected, skipping worker startup")
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
	templateService := templates.NewService(templates.NewRepository(dbpool), logger)

	quoteService := quotes.NewService(quotes.ServiceConfig{
		Repo:      quotes.NewRepository(dbpool),
		Templates: templateService.Source(),
		Source:    projects.NewSource(dbpool),
		Catalog:   catalog.NewRepository(dbpool),
		Policy:    marginService,
		Logger:    logger,
	})

	expiryJob := jobs.NewQuoteExpiryJob(quoteService, logger)

	expiryTask, err := jobs.NewQuoteExpiryTask(time.Now().UTC())
	if err != nil {
		logger.Error("build expiry task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeQuoteExpiry, Handler: expiryJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 * * * *", Task: expiryTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
