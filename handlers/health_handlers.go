package handlers

import (
	"github.com/gofiber/fiber/v2"

	"voicecoach/api-gateway/models"
)

// Health godoc
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  models.HealthResponse
// @Router   /health [get]
func (h *ApplicationHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(models.HealthResponse{Status: "OK"})
}
