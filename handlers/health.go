package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/upsight-uz/portal-api/database"
)

// HandleCheckHealth reports process and database liveness.
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	dbStatus := "ok"
	status := fiber.StatusOK
	if err := store.HealthCheck(); err != nil {
		dbStatus = "unreachable"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
	})
}
