package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbadapter "celebnetwork/internal/adapters/database"
	"celebnetwork/internal/adapters/httpapi"
	"celebnetwork/internal/adapters/httpapi/middleware"
	redisadapter "celebnetwork/internal/adapters/redis"
	"celebnetwork/internal/config"
	celebrityapp "celebnetwork/internal/core/celebrity/service"
	fanapp "celebnetwork/internal/core/fan/service"
	followingapp "celebnetwork/internal/core/following/service"
	userapp "celebnetwork/internal/core/user/service"
	celebrityPort "celebnetwork/internal/ports/celebrity"
	"celebnetwork/internal/security"
	"celebnetwork/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the counter worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer config.CloseDB(db)
			return config.Migrate(db)
		},
	}
}

func createAdminCmd() *cobra.Command {
	var email, password, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer config.CloseDB(db)
			if err := config.Migrate(db); err != nil {
				return err
			}

			svc := userapp.NewUserService(
				dbadapter.NewUserRepositoryDatabase(db),
				dbadapter.NewCelebrityRepositoryDatabase(db),
				dbadapter.NewFanRepositoryDatabase(db),
				security.NewTokenManager([]byte(cfg.JWTSecret), cfg.JWTTTL),
				cfg.BcryptCost,
			)
			admin, err := svc.CreateAdmin(cmd.Context(), email, password, firstName, lastName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin created: %s (%s)\n", admin.Email, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&firstName, "first-name", "Admin", "admin first name")
	cmd.Flags().StringVar(&lastName, "last-name", "User", "admin last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// bootstrap بارگذاری تنظیمات، لاگر و اتصال دیتابیس
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Init() // بارگذاری تنظیمات از .env
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	config.InitLogger(cfg.AppEnv)

	db, err := config.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer config.CloseDB(db)

	// اعمال مایگریشن برای مدل‌ها
	if err := config.Migrate(db); err != nil {
		return err
	}

	// اتصال به Redis (اختیاری)
	rdb, err := config.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				config.Logger.Error("Error closing Redis connection:", zap.Error(err))
			}
		}()
	}

	userRepo := dbadapter.NewUserRepositoryDatabase(db)           // آداپتر خروجی
	celebrityRepo := dbadapter.NewCelebrityRepositoryDatabase(db) // آداپتر خروجی
	fanRepo := dbadapter.NewFanRepositoryDatabase(db)             // آداپتر خروجی
	followingRepo := dbadapter.NewFollowingRepositoryDatabase(db) // آداپتر خروجی

	var views celebrityPort.ViewCounter = dbadapter.NewViewCounterDatabase(db)
	var cache celebrityPort.FeaturedCache
	if rdb != nil {
		views = redisadapter.NewViewCounterRedis(rdb)
		cache = redisadapter.NewFeaturedCacheRedis(rdb, cfg.FeaturedCacheTTL)
	}

	tokens := security.NewTokenManager([]byte(cfg.JWTSecret), cfg.JWTTTL)

	userSvc := userapp.NewUserService(userRepo, celebrityRepo, fanRepo, tokens, cfg.BcryptCost)            // یوزکیس/سرویس
	celebritySvc := celebrityapp.NewCelebrityService(celebrityRepo, userRepo, followingRepo, views, cache) // یوزکیس/سرویس
	followingSvc := followingapp.NewFollowingService(followingRepo, fanRepo, cache)                        // یوزکیس/سرویس
	fanSvc := fanapp.NewFanService(fanRepo)                                                                // یوزکیس/سرویس
	userSvc.Cache = cache

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := httpapi.SetupRoutes(httpapi.Dependencies{ // تزریق یوزکیس به آداپتر ورودی
		Users:       userSvc,
		Celebrities: celebritySvc,
		Followings:  followingSvc,
		Fans:        fanSvc,
		Tokens:      tokens,
		AuthLimiter: middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
	})

	// اجرای worker در پس‌زمینه
	worker := workers.NewCounterWorker(celebrityRepo, views, cache, cfg.ReconcileInterval, config.Logger)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Run(ctx)
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		config.Logger.Info("App is running...", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		config.Logger.Info("🛑 Shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			stop()
			<-workerDone
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Error("❌ Graceful shutdown failed", zap.Error(err))
	}
	stop()
	<-workerDone

	config.Logger.Info("✅ Server stopped")
	return nil
}
