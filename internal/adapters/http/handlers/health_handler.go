package handlers

import (
	"boutiqueos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check returns service liveness and database connectivity
// @Summary Health check
// @Description Check service and database health
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "Database unavailable")
	}
	if err := sqlDB.PingContext(c.Context()); err != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "Database unavailable")
	}

	return response.Success(c, "OK", fiber.Map{
		"status": "healthy",
	})
}
