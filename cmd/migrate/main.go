package main

import (
	"os"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/pkg/config"
	"go-warehouse-api/pkg/database"
	"go-warehouse-api/pkg/logger"
)

// Applies the schema once and exits. RESET_SCHEMA=true drops every table first.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer database.Close(db)

	if os.Getenv("RESET_SCHEMA") == "true" {
		log.Warn("RESET_SCHEMA=true, dropping all tables")
		if err := model.Reset(db); err != nil {
			log.Fatalf("reset schema: %v", err)
		}
		log.Info("schema recreated")
		return
	}

	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Info("schema up to date")
}
