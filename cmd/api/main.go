package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-warehouse-api/internal/app"
	"go-warehouse-api/internal/cache"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/pkg/config"
	"go-warehouse-api/pkg/database"
	"go-warehouse-api/pkg/logger"
)

func main() {
	// 1. Load Env
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// 2. Setup Database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if cfg.DBAutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			log.Fatalf("auto migrate: %v", err)
		}
	}

	// 3. Read cache; the API keeps serving without it
	var store cache.Store = cache.NoopStore{}
	if cfg.CacheEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		redisStore, err := cache.ConnectRedis(ctx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			logger.LogWarn(log, "main", "main", "read cache disabled", err)
		} else {
			store = redisStore
		}
	}

	// 4. Wire the app
	a, err := app.New(cfg, db, store, log)
	if err != nil {
		log.Fatalf("app: %v", err)
	}

	// 5. Graceful Shutdown
	go func() {
		if err := a.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := a.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
