package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/modqueue/config"
	"github.com/d60-Lab/modqueue/internal/api"
	"github.com/d60-Lab/modqueue/internal/api/handler"
	"github.com/d60-Lab/modqueue/internal/cache"
	"github.com/d60-Lab/modqueue/internal/repository"
	"github.com/d60-Lab/modqueue/internal/service"
	"github.com/d60-Lab/modqueue/pkg/database"
	"github.com/d60-Lab/modqueue/pkg/logger"
	"github.com/d60-Lab/modqueue/pkg/telemetry"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := must(telemetry.Init(ctx, cfg))

	db := must(database.InitDB(cfg))
	if err := database.Migrate(db); err != nil {
		panic(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// repositories & services
	queueRepo := repository.NewQueueRepository(db)
	subRepo := repository.NewSubmissionRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	statsCache := cache.NewStatsCache(rdb, cfg.Moderation.StatsCacheTTL)
	loader := service.NewQueueLoader(queueRepo, subRepo, lookupRepo, statsCache, cfg.Moderation.StatsWindow)
	ws := service.NewWorkspace(loader)

	audit := service.NewAuditWriter(auditRepo, cfg.Moderation.AuditQueueSize)
	stopAudit := audit.Start(cfg.Moderation.AuditWorkers)

	dispatcher := service.NewActionDispatcher(queueRepo, subRepo, audit, ws)
	ingestor := service.NewIngestor(db)

	refresher := service.NewRefresher(ws, cfg.Moderation.RefreshInterval)
	stopRefresh := refresher.Start()

	// 预热一次工作集；失败不阻塞启动，首个请求会再试
	if _, err := ws.Reload(ctx); err != nil {
		logger.Warn("initial load failed", zap.Error(err))
	}

	h := handler.New(ws, dispatcher, ingestor, cfg.Moderation.DefaultPageSize)
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: api.NewRouter(cfg, h)}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()
	logger.Info("moderation server started", zap.String("addr", cfg.Server.Addr))

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = stopRefresh(shutdownCtx)
	_ = srv.Shutdown(shutdownCtx)
	_ = stopAudit(shutdownCtx)
	_ = shutdownTracing(shutdownCtx)
	_ = rdb.Close()
}
