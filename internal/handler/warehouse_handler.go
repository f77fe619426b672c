package handler

import (
	"context"

	"go-warehouse-api/internal/cache"
	"go-warehouse-api/internal/report"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type WarehouseHandler struct {
	warehouse service.WarehouseService
	shipments service.ShipmentService
	cache     *cache.ReadCache
	log       *logrus.Logger
}

func NewWarehouseHandler(w service.WarehouseService, s service.ShipmentService, rc *cache.ReadCache, log *logrus.Logger) *WarehouseHandler {
	return &WarehouseHandler{warehouse: w, shipments: s, cache: rc, log: log}
}

// ReceiveBatch takes a completed batch into inventory
// PUT /api/v1/warehouse/receive-batch/:id
func (h *WarehouseHandler) ReceiveBatch(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "batch")
	}

	var req service.ReceiveBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	record, err := h.warehouse.ReceiveBatch(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, h.log, "ReceiveBatch", err)
	}

	return c.JSON(fiber.Map{"message": "Batch received into warehouse", "data": record})
}

// GetInventory serves the full inventory through the read cache
// GET /api/v1/warehouse/inventory
func (h *WarehouseHandler) GetInventory(c *fiber.Ctx) error {
	payload, err := h.cache.Remember(c.UserContext(), cache.KeyInventory, func(ctx context.Context) (any, error) {
		return h.warehouse.ListInventory(ctx)
	})
	if err != nil {
		return respondError(c, h.log, "GetInventory", err)
	}
	return sendCachedJSON(c, payload)
}

// ExportInventory always reads the live inventory
// GET /api/v1/warehouse/inventory/export
func (h *WarehouseHandler) ExportInventory(c *fiber.Ctx) error {
	records, err := h.warehouse.ListInventory(c.UserContext())
	if err != nil {
		return respondError(c, h.log, "ExportInventory", err)
	}

	data, err := report.InventoryWorkbook(records)
	if err != nil {
		return respondError(c, h.log, "ExportInventory", err)
	}

	c.Set(fiber.HeaderContentType, report.XLSXMimeType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory.xlsx"`)
	return c.Send(data)
}

// CreateShipment
// POST /api/v1/warehouse/shipments
func (h *WarehouseHandler) CreateShipment(c *fiber.Ctx) error {
	var req service.CreateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	result, err := h.shipments.CreateShipment(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.log, "CreateShipment", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Shipment created", "data": result})
}

// GetShipment returns a shipment with its items
// GET /api/v1/warehouse/shipments/:id
func (h *WarehouseHandler) GetShipment(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "shipment")
	}

	shipment, err := h.shipments.GetShipment(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, "GetShipment", err)
	}
	return c.JSON(shipment)
}

// ChangeStatus
// PATCH /api/v1/warehouse/change-status
func (h *WarehouseHandler) ChangeStatus(c *fiber.Ctx) error {
	var req service.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	change, err := h.shipments.ChangeStatus(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.log, "ChangeStatus", err)
	}

	return c.JSON(fiber.Map{"message": "Shipment status updated", "data": change})
}
