package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warehouse-platform/internal/audit"
	"warehouse-platform/internal/auth"
	"warehouse-platform/internal/config"
	"warehouse-platform/internal/delivery"
	"warehouse-platform/internal/httpapi"
	"warehouse-platform/internal/item"
	"warehouse-platform/internal/reporting"
	"warehouse-platform/internal/token"
	"warehouse-platform/internal/user"
	"warehouse-platform/internal/warehouse"
	"warehouse-platform/pkg/logger"
	"warehouse-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Local convenience; env vars set by the runner always win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// The codec reads key material exactly once; an unusable signing key
	// means the process must not serve traffic at all.
	codec, err := auth.NewCodec(cfg.Auth)
	if err != nil {
		log.Error("token codec init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	userRepo := user.NewRepo(db)
	ledger := token.NewRepo(db)
	auditSvc := audit.NewService(audit.NewPostgresRepo(db))

	authOpts := []auth.ServiceOption{auth.WithAudit(auditSvc)}
	if cfg.Auth.LoginAttemptLimit > 0 {
		authOpts = append(authOpts, auth.WithThrottle(
			auth.NewRedisThrottle(rdb, cfg.Auth.LoginAttemptLimit, cfg.Auth.LoginAttemptWindow),
		))
	}
	authSvc := auth.NewService(codec, userRepo, ledger, authOpts...)

	itemSvc := item.NewService(item.NewRepo(db))
	warehouseSvc := warehouse.NewService(warehouse.NewRepo(db))
	deliverySvc := delivery.NewService(delivery.NewRepo(db), userRepo)
	reportSvc := reporting.NewService(reporting.NewPostgresRepo(db))

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	guard := auth.Authenticate(codec, ledger, userRepo, publicPrefixes...)
	registerRoutes(r, guard,
		httpapi.Handlers{Auth: authSvc, Users: userRepo},
		httpapi.InventoryHandlers{Items: itemSvc, Warehouses: warehouseSvc, Deliveries: deliverySvc},
		httpapi.ReportHandlers{Reports: reportSvc},
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}
