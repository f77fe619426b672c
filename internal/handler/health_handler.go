package handler

import (
	"go-warehouse-api/pkg/database"
	"go-warehouse-api/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewHealthHandler(db *gorm.DB, log *logrus.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// Healthcheck
// GET /api/v1/healthcheck
func (h *HealthHandler) Healthcheck(c *fiber.Ctx) error {
	if err := database.Ping(h.db); err != nil {
		logger.LogWarn(h.log, "handler", "Healthcheck", "database ping", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
