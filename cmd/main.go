package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/auralink/auralink-backend/internal/access"
	"github.com/auralink/auralink-backend/internal/audit"
	"github.com/auralink/auralink-backend/internal/auth"
	"github.com/auralink/auralink-backend/internal/config"
	"github.com/auralink/auralink-backend/internal/deletion"
	"github.com/auralink/auralink-backend/internal/email"
	httpapi "github.com/auralink/auralink-backend/internal/http"
	"github.com/auralink/auralink-backend/internal/identity"
	"github.com/auralink/auralink-backend/internal/jwt"
	"github.com/auralink/auralink-backend/internal/logger"
	"github.com/auralink/auralink-backend/internal/otp"
	"github.com/auralink/auralink-backend/internal/plans"
	"github.com/auralink/auralink-backend/internal/probe"
	"github.com/auralink/auralink-backend/internal/queue"
	"github.com/auralink/auralink-backend/internal/storage"
	"github.com/auralink/auralink-backend/internal/subscription"
	"github.com/auralink/auralink-backend/internal/telegram"
	"github.com/auralink/auralink-backend/internal/video"
	"github.com/auralink/auralink-backend/internal/worker"
	"github.com/auralink/auralink-backend/internal/ydb"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	tgClient := telegram.NewClient(cfg)
	log := logger.New(tgClient)
	slog.SetDefault(log)

	db, err := ydb.NewYDBClient(ctx, cfg)
	if err != nil {
		slog.Error("Failed to connect to YDB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	jwtManager := jwt.NewJWTManager(cfg)
	if jwtManager == nil {
		slog.Error("AL_JWT_SECRET_KEY is required")
		os.Exit(1)
	}

	registry := identity.NewRegistry()

	planService := plans.NewService(db, log)
	if err := planService.Seed(ctx); err != nil {
		slog.Error("Failed to seed plans", "error", err)
		os.Exit(1)
	}

	localStorage, err := storage.NewLocalClient(cfg.LocalMediaRoot, cfg.BaseURL)
	if err != nil {
		slog.Error("Failed to initialize local storage", "error", err)
		os.Exit(1)
	}
	var cloudStorage storage.Provider
	if cfg.AWSAccessKeyID != "" {
		s3Client, err := storage.NewS3Client(ctx, cfg)
		if err != nil {
			slog.Error("Failed to initialize S3 client", "error", err)
			os.Exit(1)
		}
		cloudStorage = s3Client
	}

	jobQueue, err := queue.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer jobQueue.Close()

	var mailer email.Notifier
	if cfg.EmailFrom != "" {
		mailer = email.NewClient(cfg)
	}

	otpSender := otp.NewTwilioSender(cfg, log)
	prober := probe.NewFFProber(cfg.FFProbePath, log)

	auditService := audit.NewService(db, registry, log)
	subs := subscription.NewService(db, planService, log)
	accessService := access.NewService(db, log)
	authService := auth.NewService(db, jwtManager, otpSender, accessService, log)
	videoService := video.NewService(db, localStorage, cloudStorage, jobQueue, registry, auditService, cfg.BaseURL, log)
	deletionService := deletion.NewService(db, registry, mailer, log)

	pool, err := worker.NewPool(db, jobQueue, prober, localStorage, subs, log, worker.Config{
		PoolSize:       cfg.WorkerPoolSize,
		AuditRetention: time.Duration(cfg.AuditRetentionDays) * 24 * time.Hour,
	})
	if err != nil {
		slog.Error("Failed to start worker pool", "error", err)
		os.Exit(1)
	}
	defer pool.Release()

	go pool.Run(ctx)
	go pool.RunSubscriptionSweep(ctx, cfg.SubscriptionSweepInterval)
	go pool.RunAuditSweep(ctx, cfg.AuditSweepInterval)

	server := httpapi.NewServer(authService, videoService, accessService, deletionService,
		subs, planService, auditService, db, int32(cfg.GracePeriodDays))
	router := httpapi.SetupRouter(server, jwtManager, subs, db)

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting HTTP server", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server failed", "error", err)
			cancel()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-stop:
		slog.Info("Shutdown signal received")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
	cancel()
}
