package main

import (
	"context"

	dbadapter "sns/internal/adapters/database"
	"sns/internal/adapters/httpapi"
	"sns/internal/adapters/session"
	"sns/internal/config"
	postapp "sns/internal/core/post/service"
	userapp "sns/internal/core/user/service"
	sessionPort "sns/internal/ports/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	config.InitLogger()
	defer config.Logger.Sync() //nolint:errcheck

	cfg := config.Init() // بارگذاری تنظیمات از .env

	// اتصال به دیتابیس و اجرای مایگریشن‌ها
	config.InitDB(cfg)
	if err := dbadapter.Migrate(config.DB); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("✅ Database migrations completed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := newSessionStore(ctx, cfg)

	// بستن منابع بعد از اتمام کار سرور
	defer closeResources(config.Logger)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	userRepo := dbadapter.NewUserRepositoryDatabase(config.DB) // آداپتر خروجی
	postRepo := dbadapter.NewPostRepositoryDatabase(config.DB) // آداپتر خروجی
	userSvc := userapp.NewUserService(userRepo, config.Logger) // یوزکیس/سرویس
	postSvc := postapp.NewPostService(postRepo, config.Logger) // یوزکیس/سرویس

	// تزریق یوزکیس به آداپتر ورودی
	r := httpapi.SetupRoutes(userSvc, postSvc, postSvc, httpapi.RouterConfig{
		Logger:   config.Logger,
		Sessions: sessions,
		Registry: registry,
	})

	config.Logger.Info("App is running...", zap.String("port", cfg.AppPort), zap.String("sessions", cfg.SessionBackend))

	// اجرای سرور Gin (در اینجا سرور به صورت بلوکینگ عمل می‌کند)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		config.Logger.Fatal("Server failed to start", zap.Error(err))
	}
}

func newSessionStore(ctx context.Context, cfg *config.Config) sessionPort.Store {
	secret := []byte(cfg.SessionSecret)
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		config.InitRedis(ctx, cfg)
		return session.NewRedisStore(config.RedisClient, cfg.SessionCookie, cfg.SessionMaxAge)
	case config.SessionBackendJWT:
		return session.NewJWTStore(cfg.SessionCookie, secret, cfg.SessionMaxAge)
	default:
		return session.NewCookieStore(cfg.SessionCookie, secret, cfg.SessionMaxAge)
	}
}

// closeResources بستن اتصالات به Redis و دیتابیس
func closeResources(logger *zap.Logger) {
	if config.RedisClient != nil {
		if err := config.RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}

	if err := config.CloseDB(config.DB); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
