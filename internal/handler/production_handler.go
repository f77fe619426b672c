package handler

import (
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ProductionHandler struct {
	service service.BatchService
	log     *logrus.Logger
}

func NewProductionHandler(s service.BatchService, log *logrus.Logger) *ProductionHandler {
	return &ProductionHandler{service: s, log: log}
}

// CreateBatch starts a new production batch in stage INITIALIZED
// POST /api/v1/production/batches
func (h *ProductionHandler) CreateBatch(c *fiber.Ctx) error {
	var req service.CreateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	batch, err := h.service.CreateBatch(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.log, "CreateBatch", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Batch created", "data": batch})
}

// SetStage
// PATCH /api/v1/production/batches/:id/stages
func (h *ProductionHandler) SetStage(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "batch")
	}

	var req service.SetStageRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	change, err := h.service.SetStage(c.UserContext(), id, req.Stage)
	if err != nil {
		return respondError(c, h.log, "SetStage", err)
	}

	return c.JSON(fiber.Map{"message": "Batch stage updated", "data": change})
}
