package handlers

import (
	"errors"

	"boutiqueos/internal/adapters/http/middleware"
	"boutiqueos/internal/core/domain"
	"boutiqueos/internal/core/services"
	"boutiqueos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles employee management endpoints (tenant admin)
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List lists the tenant's employees
// @Summary List employees
// @Description List all users of the caller's tenant
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/employees [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	users, err := h.userService.ListEmployees(c.Context(), tenantID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list employees")
	}
	return response.Success(c, "Employees retrieved successfully", users)
}

// Create creates an employee in the caller's tenant
// @Summary Create employee
// @Description Create a tenant user with role ADMIN or EMPLOYEE
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateEmployeeInput true "Employee data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/employees [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	var input services.CreateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return response.BadRequest(c, "Name, email and password are required")
	}

	user, err := h.userService.CreateEmployee(c.Context(), tenantID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid employee data")
		default:
			return response.InternalServerError(c, "Failed to create employee")
		}
	}

	return response.Created(c, "Employee created successfully", user)
}
