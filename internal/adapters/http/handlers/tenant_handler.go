package handlers

import (
	"errors"
	"strconv"

	"boutiqueos/internal/core/domain"
	"boutiqueos/internal/core/services"
	"boutiqueos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TenantHandler handles tenant administration endpoints (super admin)
type TenantHandler struct {
	tenantService *services.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *services.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// ChangePlanRequest represents a plan change request body
type ChangePlanRequest struct {
	Plan string `json:"plan"`
}

// List lists all tenants
// @Summary List tenants
// @Description List all tenants with their admin contact
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /super/tenants [get]
func (h *TenantHandler) List(c *fiber.Ctx) error {
	tenants, err := h.tenantService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list tenants")
	}
	return response.Success(c, "Tenants retrieved successfully", tenants)
}

// Create provisions a new tenant with its admin user
// @Summary Create tenant
// @Description Create a tenant and its first admin user
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateTenantInput true "Tenant data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /super/tenants [post]
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var input services.CreateTenantInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Name == "" || input.Slug == "" {
		return response.BadRequest(c, "Name and slug are required")
	}
	if input.AdminName == "" || input.AdminEmail == "" || input.AdminPassword == "" {
		return response.BadRequest(c, "Admin name, email and password are required")
	}

	tenant, err := h.tenantService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlugTaken):
			return response.Conflict(c, "Slug already taken")
		case errors.Is(err, domain.ErrEmailTaken):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid tenant data")
		default:
			return response.InternalServerError(c, "Failed to create tenant")
		}
	}

	return response.Created(c, "Tenant created successfully", tenant)
}

// Get gets one tenant
// @Summary Get tenant
// @Description Get a tenant by ID
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /super/tenants/{id} [get]
func (h *TenantHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	tenant, err := h.tenantService.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return response.NotFound(c, "Tenant not found")
		}
		return response.InternalServerError(c, "Failed to get tenant")
	}

	return response.Success(c, "Tenant retrieved successfully", tenant)
}

// Update patches a tenant
// @Summary Update tenant
// @Description Patch tenant name, plan or active flag
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Param body body services.UpdateTenantInput true "Patch data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /super/tenants/{id} [patch]
func (h *TenantHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	var input services.UpdateTenantInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tenant, err := h.tenantService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTenantNotFound):
			return response.NotFound(c, "Tenant not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid tenant data")
		default:
			return response.InternalServerError(c, "Failed to update tenant")
		}
	}

	return response.Success(c, "Tenant updated successfully", tenant)
}

// ChangePlan switches a tenant to a new plan
// @Summary Change tenant plan
// @Description Switch a tenant to a new subscription plan
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Param body body ChangePlanRequest true "New plan"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /super/tenants/{id}/change-plan [post]
func (h *TenantHandler) ChangePlan(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	var req ChangePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tenant, err := h.tenantService.ChangePlan(c.Context(), uint(id), req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTenantNotFound):
			return response.NotFound(c, "Tenant not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Unknown plan")
		default:
			return response.InternalServerError(c, "Failed to change plan")
		}
	}

	return response.Success(c, "Plan changed successfully", tenant)
}
