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

// CashHandler handles register session endpoints
type CashHandler struct {
	cashService *services.CashService
}

// NewCashHandler creates a new cash handler
func NewCashHandler(cashService *services.CashService) *CashHandler {
	return &CashHandler{cashService: cashService}
}

// OpenCashRequest represents a session open request body
type OpenCashRequest struct {
	OpeningAmount float64 `json:"opening_amount"`
}

// WithdrawRequest represents a withdrawal request body
type WithdrawRequest struct {
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes"`
}

// CloseCashRequest represents a session close request body. Counted is
// optional; an uncounted close assumes the expected amount.
type CloseCashRequest struct {
	CountedAmount *float64 `json:"counted_amount"`
	Notes         string   `json:"notes"`
}

// Open opens a register session
// @Summary Open cash session
// @Description Open the register; one open session per tenant
// @Tags Cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body OpenCashRequest true "Opening float"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /cash/open [post]
func (h *CashHandler) Open(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}
	userID, _ := middleware.UserID(c)

	var req OpenCashRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	session, err := h.cashService.Open(c.Context(), tenantID, userID, req.OpeningAmount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCashAlreadyOpen):
			return response.Conflict(c, "A cash session is already open")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Opening amount cannot be negative")
		default:
			return response.InternalServerError(c, "Failed to open cash session")
		}
	}

	return response.Created(c, "Cash session opened successfully", session)
}

// Current returns the open session, or null when the register is closed
// @Summary Current cash session
// @Description Get the tenant's open session if any
// @Tags Cash
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /cash/open [get]
func (h *CashHandler) Current(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	session, err := h.cashService.Current(c.Context(), tenantID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get cash session")
	}

	return response.Success(c, "Cash session retrieved successfully", session)
}

// Withdraw takes cash out of an open session
// @Summary Withdraw cash
// @Description Record a cash withdrawal against an open session
// @Tags Cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param body body WithdrawRequest true "Withdrawal data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /cash/{id}/withdraw [post]
func (h *CashHandler) Withdraw(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}
	userID, _ := middleware.UserID(c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid session ID")
	}

	var req WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	withdrawal, err := h.cashService.Withdraw(c.Context(), tenantID, uint(id), userID, req.Amount, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCashSessionNotFound):
			return response.NotFound(c, "Cash session not found")
		case errors.Is(err, domain.ErrCashAlreadyClosed):
			return response.Conflict(c, "Cash session already closed")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Amount must be positive")
		default:
			return response.InternalServerError(c, "Failed to withdraw")
		}
	}

	return response.Created(c, "Withdrawal recorded successfully", withdrawal)
}

// ListWithdrawals lists a session's withdrawals
// @Summary List withdrawals
// @Description List withdrawals of one session
// @Tags Cash
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cash/{id}/withdrawals [get]
func (h *CashHandler) ListWithdrawals(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid session ID")
	}

	withdrawals, err := h.cashService.ListWithdrawals(c.Context(), tenantID, uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrCashSessionNotFound) {
			return response.NotFound(c, "Cash session not found")
		}
		return response.InternalServerError(c, "Failed to list withdrawals")
	}

	return response.Success(c, "Withdrawals retrieved successfully", withdrawals)
}

// Close reconciles and closes a session
// @Summary Close cash session
// @Description Close the session and return the reconciliation breakdown
// @Tags Cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param body body CloseCashRequest true "Counted amount"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /cash/{id}/close [post]
func (h *CashHandler) Close(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}
	userID, _ := middleware.UserID(c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid session ID")
	}

	var req CloseCashRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.cashService.Close(c.Context(), tenantID, uint(id), userID, req.CountedAmount, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCashSessionNotFound):
			return response.NotFound(c, "Cash session not found")
		case errors.Is(err, domain.ErrCashAlreadyClosed):
			return response.Conflict(c, "Cash session already closed")
		default:
			return response.InternalServerError(c, "Failed to close cash session")
		}
	}

	return response.Success(c, "Cash session closed successfully", result)
}
