package handler

import (
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	service service.DashboardService
	log     *logrus.Logger
}

func NewDashboardHandler(s service.DashboardService, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{service: s, log: log}
}

// GetDashboardStats returns overview statistics
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(c.UserContext())
	if err != nil {
		return respondError(c, h.log, "GetDashboardStats", err)
	}
	return c.JSON(stats)
}
