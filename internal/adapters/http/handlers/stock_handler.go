package handlers

import (
	"errors"

	"boutiqueos/internal/adapters/http/middleware"
	"boutiqueos/internal/core/domain"
	"boutiqueos/internal/core/services"
	"boutiqueos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StockHandler handles stock ledger endpoints
type StockHandler struct {
	stockService *services.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *services.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// ListMovements lists the tenant's recent stock movements
// @Summary List stock movements
// @Description List recent stock movements, newest first
// @Tags Stock
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	movements, err := h.stockService.ListMovements(c.Context(), tenantID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list movements")
	}
	return response.Success(c, "Movements retrieved successfully", movements)
}

// Adjust applies a manual stock adjustment
// @Summary Adjust stock
// @Description Apply a relative stock change and append a ledger entry
// @Tags Stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AdjustStockInput true "Adjustment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}
	userID, _ := middleware.UserID(c)

	var input services.AdjustStockInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.ProductID == 0 {
		return response.BadRequest(c, "Product ID is required")
	}

	movement, err := h.stockService.Adjust(c.Context(), tenantID, userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		case errors.Is(err, domain.ErrVariantNotFound):
			return response.NotFound(c, "Variant not found")
		case errors.Is(err, domain.ErrNegativeStock):
			return response.Conflict(c, "Adjustment would drive stock negative")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Delta cannot be zero")
		default:
			return response.InternalServerError(c, "Failed to adjust stock")
		}
	}

	return response.Created(c, "Stock adjusted successfully", movement)
}

// LowStock returns both shapes of the low stock report
// @Summary Low stock report
// @Description Variants and flat products at or below their minimum stock
// @Tags Stock
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	report, err := h.stockService.LowStock(c.Context(), tenantID)
	if err != nil {
		return response.InternalServerError(c, "Failed to build low stock report")
	}
	return response.Success(c, "Low stock report retrieved successfully", report)
}
