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

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	productService *services.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List lists the tenant's products
// @Summary List products
// @Description List all products of the caller's tenant with variants
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	products, err := h.productService.List(c.Context(), tenantID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list products")
	}
	return response.Success(c, "Products retrieved successfully", products)
}

// Search finds products by name, sku or barcode
// @Summary Search products
// @Description Search the catalog by name, SKU or barcode
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Success 200 {object} response.Response
// @Router /products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	products, err := h.productService.Search(c.Context(), tenantID, c.Query("q"))
	if err != nil {
		return response.InternalServerError(c, "Failed to search products")
	}
	return response.Success(c, "Products retrieved successfully", products)
}

// Get gets one product
// @Summary Get product
// @Description Get a product by ID with its variants
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	product, err := h.productService.Get(c.Context(), tenantID, uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return response.NotFound(c, "Product not found")
		}
		return response.InternalServerError(c, "Failed to get product")
	}
	return response.Success(c, "Product retrieved successfully", product)
}

// Create creates a product
// @Summary Create product
// @Description Create a product with optional initial variants
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateProductInput true "Product data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	var input services.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	product, err := h.productService.Create(c.Context(), tenantID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateSKU):
			return response.Conflict(c, "SKU already exists")
		case errors.Is(err, domain.ErrNegativeStock):
			return response.Conflict(c, "Stock cannot be negative")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid product data")
		default:
			return response.InternalServerError(c, "Failed to create product")
		}
	}

	return response.Created(c, "Product created successfully", product)
}

// Update patches a product
// @Summary Update product
// @Description Apply a partial patch to a product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param body body services.UpdateProductInput true "Patch data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	var input services.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.productService.Update(c.Context(), tenantID, uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		case errors.Is(err, domain.ErrNegativeStock):
			return response.Conflict(c, "Stock cannot be negative")
		default:
			return response.InternalServerError(c, "Failed to update product")
		}
	}

	return response.Success(c, "Product updated successfully", product)
}

// UpdateVariant patches a variant. Identity fields need an admin role;
// the service enforces that from the caller's role.
// @Summary Update variant
// @Description Patch variant stock levels or identity fields
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Variant ID"
// @Param body body services.UpdateVariantInput true "Patch data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /products/variants/{id} [patch]
func (h *ProductHandler) UpdateVariant(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid variant ID")
	}

	var input services.UpdateVariantInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	variant, err := h.productService.UpdateVariant(c.Context(), tenantID, uint(id), middleware.UserRole(c), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Only admins can change variant identity fields")
		case errors.Is(err, domain.ErrVariantNotFound):
			return response.NotFound(c, "Variant not found")
		case errors.Is(err, domain.ErrDuplicateSKU):
			return response.Conflict(c, "SKU already exists")
		case errors.Is(err, domain.ErrNegativeStock):
			return response.Conflict(c, "Stock cannot be negative")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid variant data")
		default:
			return response.InternalServerError(c, "Failed to update variant")
		}
	}

	return response.Success(c, "Variant updated successfully", variant)
}
