package handler

import (
	"errors"
	"strconv"

	"go-warehouse-api/internal/service"
	"go-warehouse-api/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// statusFor maps service error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrDuplicateName),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrAlreadyReceived),
		errors.Is(err, service.ErrBatchNotFound),
		errors.Is(err, service.ErrBatchAlreadyShipped):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, log *logrus.Logger, funcName string, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		logger.LogError(log, "handler", funcName, c.Method()+" "+c.Path(), nil, err)
		if !errors.Is(err, service.ErrInternal) {
			msg = "Internal Server Error"
		}
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Invalid JSON"})
}

// paramID parses a positive numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func invalidID(c *fiber.Ctx, entity string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Invalid " + entity + " ID"})
}

// sendCachedJSON writes an already encoded JSON payload.
func sendCachedJSON(c *fiber.Ctx, payload []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}
