package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"gymku_backend/internals/configs"
	database "gymku_backend/internals/databases"
	scheduler "gymku_backend/internals/features/users/auth/scheduler"
	authService "gymku_backend/internals/features/users/auth/service"
	helper "gymku_backend/internals/helpers"
	"gymku_backend/internals/helpers/dbtime"
	middlewares "gymku_backend/internals/middlewares"
	routes "gymku_backend/internals/route"
	routeDetails "gymku_backend/internals/route/details"
)

func main() {
	cfg := configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.FromFiberError,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR Cloudflare jika perlu
	})

	middlewares.SetupMiddlewares(app, cfg)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB(cfg)
	database.TunePool(cfg)
	database.WarmUpQueries()

	// 🧠 Redis opsional (cache blacklist token)
	rdb := configs.ConnectRedis(cfg)

	clock := dbtime.SystemClock{}
	blacklist := authService.NewBlacklistService(database.DB, rdb, cfg.JWTSecret, clock)

	// ⏱ scheduler setelah DB siap
	cleanup, err := scheduler.StartBlacklistCleanupScheduler(blacklist, cfg.CleanupCron, cfg.BlacklistTTLDays)
	if err != nil {
		log.Fatalf("❌ cron blacklist: %v", err)
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, cfg.JWTSecret, routeDetails.Deps{
		Validate:           validator.New(),
		Clock:              clock,
		Location:           cfg.DefaultLocation(),
		Blacklist:          blacklist,
		BookingLimitMax:    cfg.BookingLimitMax,
		BookingLimitWindow: cfg.RateLimitWindow,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = cfg.HTTPReadTimeout
	app.Server().WriteTimeout = cfg.HTTPWriteTimeout
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	<-cleanup.Stop().Done()
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
