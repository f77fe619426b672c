package handler

import (
	"context"

	"go-warehouse-api/internal/cache"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	service service.ProductService
	cache   *cache.ReadCache
	log     *logrus.Logger
}

func NewProductHandler(s service.ProductService, rc *cache.ReadCache, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{service: s, cache: rc, log: log}
}

// CreateProduct handles product creation
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	product, err := h.service.CreateProduct(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.log, "CreateProduct", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "data": product})
}

// GetProducts serves the full product list through the read cache
// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	payload, err := h.cache.Remember(c.UserContext(), cache.KeyProducts, func(ctx context.Context) (any, error) {
		return h.service.ListProducts(ctx)
	})
	if err != nil {
		return respondError(c, h.log, "GetProducts", err)
	}
	return sendCachedJSON(c, payload)
}

// GetProduct accepts a numeric id or a uuid
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), model.Ref(c.Params("id")))
	if err != nil {
		return respondError(c, h.log, "GetProduct", err)
	}
	return c.JSON(product)
}

// DeleteProduct
// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), model.Ref(c.Params("id"))); err != nil {
		return respondError(c, h.log, "DeleteProduct", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
