package handlers

import (
	"errors"

	"boutiqueos/internal/adapters/http/middleware"
	"boutiqueos/internal/core/domain"
	"boutiqueos/internal/core/services"
	"boutiqueos/internal/pkg/pagination"
	"boutiqueos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SaleHandler handles sale endpoints
type SaleHandler struct {
	saleService *services.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// SaleItemRequest represents one cart line in the request body
type SaleItemRequest struct {
	ProductID uint     `json:"product_id"`
	VariantID uint     `json:"variant_id"`
	Quantity  int      `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
}

// CreateSaleRequest represents a sale request body. New clients send
// items[]; legacy clients send a single product_id/quantity at the top
// level. Both normalize into the same canonical line list.
type CreateSaleRequest struct {
	Items []SaleItemRequest `json:"items"`

	// Legacy single-line shape
	ProductID uint     `json:"product_id"`
	VariantID uint     `json:"variant_id"`
	Quantity  int      `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`

	CustomerID    *uint    `json:"customer_id"`
	CustomerName  string   `json:"customer_name"`
	PaymentMethod string   `json:"payment_method"`
	Discount      float64  `json:"discount"`
	Total         *float64 `json:"total"`
}

// normalize turns either accepted payload shape into canonical lines
func (req *CreateSaleRequest) normalize() []domain.SaleLine {
	if len(req.Items) > 0 {
		lines := make([]domain.SaleLine, 0, len(req.Items))
		for _, it := range req.Items {
			lines = append(lines, domain.SaleLine{
				ProductID: it.ProductID,
				VariantID: it.VariantID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}
		return lines
	}
	if req.ProductID > 0 {
		return []domain.SaleLine{{
			ProductID: req.ProductID,
			VariantID: req.VariantID,
			Quantity:  req.Quantity,
			UnitPrice: req.UnitPrice,
		}}
	}
	return nil
}

// Create commits a sale
// @Summary Create sale
// @Description Commit a sale atomically: items, stock decrements and movements
// @Tags Sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateSaleRequest true "Sale data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}
	userID, _ := middleware.UserID(c)

	var req CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	lines := req.normalize()
	if len(lines) == 0 {
		return response.BadRequest(c, "Sale needs at least one item")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return response.BadRequest(c, "Quantity must be positive")
		}
	}
	if req.PaymentMethod == "" {
		return response.BadRequest(c, "Payment method is required")
	}

	input := &services.CreateSaleInput{
		Lines:         lines,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
		Discount:      req.Discount,
		DeclaredTotal: req.Total,
	}

	sale, err := h.saleService.Create(c.Context(), tenantID, userID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoOpenCashSession):
			return response.Conflict(c, "No open register, open a cash session first")
		case errors.Is(err, domain.ErrInsufficientStock):
			return response.Conflict(c, err.Error())
		case errors.Is(err, domain.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		case errors.Is(err, domain.ErrVariantNotFound):
			return response.NotFound(c, "Variant not found")
		case errors.Is(err, domain.ErrCustomerNotFound):
			return response.NotFound(c, "Customer not found")
		case errors.Is(err, domain.ErrTotalMismatch):
			return response.BadRequest(c, "Declared total does not match computed total")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid sale data")
		default:
			return response.InternalServerError(c, "Failed to create sale")
		}
	}

	return response.Created(c, "Sale created successfully", sale)
}

// List lists the tenant's sales
// @Summary List sales
// @Description List sales, newest first, paginated
// @Tags Sales
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	params := pagination.GetParams(c)
	sales, total, err := h.saleService.List(c.Context(), tenantID, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list sales")
	}

	return response.Success(c, "Sales retrieved successfully", pagination.NewResponse(sales, params, total))
}
