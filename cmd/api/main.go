package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/grpc"

	"github.com/hrmslite/hrms/internal/auth"
	"github.com/hrmslite/hrms/internal/config"
	"github.com/hrmslite/hrms/internal/hrm"
	"github.com/hrmslite/hrms/internal/httpapi"
	"github.com/hrmslite/hrms/internal/kv"
	"github.com/hrmslite/hrms/internal/migrate"
	"github.com/hrmslite/hrms/internal/obs"
	"github.com/hrmslite/hrms/internal/store/pg"
)

func main() {
	if err := godotenv.Load(); errors.Is(err, os.ErrNotExist) {
		obs.Info("dotenv_missing", nil)
	} else if err != nil {
		obs.Warn("dotenv_load_failed", map[string]any{"error": err.Error()})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	obs.Init()
	obs.InitBuildInfo(cfg.Version, obs.Commit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := pg.Open(ctx, cfg.DatabaseURL, pg.PoolOptions{
		MaxOpen:     cfg.DBMaxOpen,
		MaxIdle:     cfg.DBMaxIdle,
		MaxLifetime: cfg.DBMaxLifetime,
	})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer store.Close()

	if cfg.AutoMigrate || cfg.SeedOnStart {
		mgr := migrate.NewEmbedded(store.DB().DB)
		if cfg.AutoMigrate {
			applied, err := mgr.Up(ctx)
			if err != nil {
				log.Fatalf("migrate up: %v", err)
			}
			obs.Info("migrations_applied", map[string]any{"applied": applied})
		}
		if cfg.SeedOnStart {
			seeded, err := mgr.Seed(ctx)
			if err != nil {
				log.Fatalf("seed: %v", err)
			}
			obs.Info("seeds_applied", map[string]any{"applied": seeded})
		}
	}

	codec, err := auth.NewTokenCodec(cfg.SecretKey,
		auth.WithCodecIssuer(cfg.TokenIssuer),
		auth.WithLeeway(cfg.TokenLeeway),
	)
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}

	throttle, err := kv.NewThrottle(cfg.RedisURL, int(cfg.LoginAttempts), cfg.LoginWindow)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer throttle.Close()

	opts := []auth.ServiceOption{
		auth.WithAccessTTL(cfg.AccessTTL),
		auth.WithRefreshTTL(cfg.RefreshTTL),
		auth.WithRoles(store),
	}
	if throttle.Enabled() {
		if err := throttle.Ping(ctx); err != nil {
			obs.Warn("redis_unavailable", map[string]any{"error": err.Error()})
		}
		opts = append(opts, auth.WithLoginLimiter(throttle))
	}
	authSvc, err := auth.NewService(store, codec, opts...)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}

	created, err := authSvc.EnsureAdmin(ctx, auth.AdminSeed{
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
		FullName: cfg.SeedAdminName,
	})
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if created {
		obs.Info("admin_created", map[string]any{"email": cfg.SeedAdminEmail})
	}

	ready := httpapi.ReadyProbe{DB: store.DB().DB}
	api := httpapi.New(httpapi.Deps{
		Auth:   authSvc,
		RBAC:   auth.NewRBACService(store),
		HR:     hrm.NewServices(store),
		Ready:  ready,
		Config: cfg,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var grpcSrv *grpc.Server
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			log.Fatalf("grpc listen: %v", err)
		}
		healthSrv := httpapi.NewGRPCServer(ready, 0)
		grpcSrv = grpc.NewServer()
		healthSrv.Register(grpcSrv)
		go healthSrv.Run(ctx)
		go func() {
			if err := grpcSrv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				obs.Error("grpc_serve_failed", map[string]any{"error": err.Error()})
			}
		}()
		obs.Info("grpc_started", map[string]any{"addr": cfg.GRPCAddr})
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()
	obs.Info("http_started", map[string]any{"addr": srv.Addr, "version": cfg.Version})

	<-ctx.Done()
	obs.Info("shutting_down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		obs.Error("http_shutdown_failed", map[string]any{"error": err.Error()})
	}
	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
	obs.Info("stopped", nil)
}
