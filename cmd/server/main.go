package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/atulsm/user-service/config"
	"github.com/atulsm/user-service/db"
	"github.com/atulsm/user-service/internal/cache"
	"github.com/atulsm/user-service/internal/logger"
	"github.com/atulsm/user-service/internal/user/domain"
	"github.com/atulsm/user-service/internal/user/handler"
	repo "github.com/atulsm/user-service/internal/user/repository/postgres"
	"github.com/atulsm/user-service/internal/user/service"
)

func main() {
	lg, err := logger.Init(logger.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		lg.Fatal("database connect failed", zap.Error(err))
	}
	defer dbPool.Close()

	var denylist domain.TokenDenylist
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		denylist = cache.NewRedisTokenDenylist(redisClient)
		lg.Info("token denylist enabled", zap.String("redis_addr", cfg.RedisAddr))
	} else {
		lg.Warn("REDIS_ADDR not set; logout will not revoke tokens server-side")
	}

	userRepo := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenExpiryMin)
	userService := service.NewUserService(userRepo, tokenService, denylist)
	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: time.Minute,
	}))
	app.Use(handler.RequestLogger(lg))

	handler.RegisterRoutes(app, authHandler, userHandler, handler.RequireAuth(userService, tokenService))

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			lg.Fatal("server stopped", zap.Error(err))
		}
	}()
	lg.Info("server listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		lg.Error("forced shutdown", zap.Error(err))
	}

	lg.Info("shutdown complete")
}
