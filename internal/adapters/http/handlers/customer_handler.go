package handlers

import (
	"errors"
	"strconv"

	"boutiqueos/internal/adapters/http/middleware"
	"boutiqueos/internal/core/domain"
	"boutiqueos/internal/core/services"
	"boutiqueos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles customer directory endpoints
type CustomerHandler struct {
	customerService *services.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List lists the tenant's customers
// @Summary List customers
// @Description List customers with an optional search filter
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Filter by name, document or phone"
// @Param limit query int false "Max rows"
// @Success 200 {object} response.Response
// @Router /customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	customers, err := h.customerService.List(c.Context(), tenantID, c.Query("search"), limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list customers")
	}
	return response.Success(c, "Customers retrieved successfully", customers)
}

// Search finds customers for the cashier lookup
// @Summary Search customers
// @Description Search customers, exact document match first
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Success 200 {object} response.Response
// @Router /customers/search [get]
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	customers, err := h.customerService.Search(c.Context(), tenantID, c.Query("q"))
	if err != nil {
		return response.InternalServerError(c, "Failed to search customers")
	}
	return response.Success(c, "Customers retrieved successfully", customers)
}

// Get gets one customer
// @Summary Get customer
// @Description Get a customer by ID
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	customer, err := h.customerService.Get(c.Context(), tenantID, uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return response.NotFound(c, "Customer not found")
		}
		return response.InternalServerError(c, "Failed to get customer")
	}
	return response.Success(c, "Customer retrieved successfully", customer)
}

// Create creates a customer
// @Summary Create customer
// @Description Create a customer; documents are unique per tenant
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateCustomerInput true "Customer data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	var input services.CreateCustomerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	customer, err := h.customerService.Create(c.Context(), tenantID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateDocument):
			return response.Conflict(c, "Document already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid customer data")
		default:
			return response.InternalServerError(c, "Failed to create customer")
		}
	}

	return response.Created(c, "Customer created successfully", customer)
}

// Update patches a customer
// @Summary Update customer
// @Description Apply a partial patch to a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param body body services.UpdateCustomerInput true "Patch data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /customers/{id} [patch]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	var input services.UpdateCustomerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	customer, err := h.customerService.Update(c.Context(), tenantID, uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCustomerNotFound):
			return response.NotFound(c, "Customer not found")
		case errors.Is(err, domain.ErrDuplicateDocument):
			return response.Conflict(c, "Document already registered")
		default:
			return response.InternalServerError(c, "Failed to update customer")
		}
	}

	return response.Success(c, "Customer updated successfully", customer)
}
