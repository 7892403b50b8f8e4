package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Auth and tenancy errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrEmailTaken        = errors.New("email already registered")
	ErrTokenRevoked      = errors.New("token revoked")
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrTenantInactive    = errors.New("tenant is inactive")
	ErrSlugTaken         = errors.New("slug already taken")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrDuplicateDocument = errors.New("document already registered")
)

// Catalog errors
var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrDuplicateSKU    = errors.New("sku already exists")
	ErrNegativeStock   = errors.New("stock cannot be negative")
)

// Cash register errors
var (
	ErrCashSessionNotFound = errors.New("cash session not found")
	ErrCashAlreadyOpen     = errors.New("a cash session is already open")
	ErrCashAlreadyClosed   = errors.New("cash session already closed")
	ErrNoOpenCashSession   = errors.New("no open cash session")
)

// Sale errors
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrTotalMismatch     = errors.New("declared total does not match computed total")
)
