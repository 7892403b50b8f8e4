package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/adapters/persistence/repositories"
	"boutiqueos/internal/core/domain"

	"gorm.io/gorm"
)

// ProductService handles catalog business logic
type ProductService struct {
	productRepo repositories.ProductRepository
	variantRepo repositories.VariantRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repositories.ProductRepository,
	variantRepo repositories.VariantRepository,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

// VariantInput represents one variant row inside a product payload
type VariantInput struct {
	Size     string `json:"size"`
	Color    string `json:"color"`
	SKU      string `json:"sku" validate:"required"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
}

// CreateProductInput represents product creation input
type CreateProductInput struct {
	Name        string         `json:"name" validate:"required"`
	Category    string         `json:"category"`
	Brand       string         `json:"brand"`
	Description string         `json:"description"`
	Size        string         `json:"size"`
	SKU         string         `json:"sku"`
	Barcode     string         `json:"barcode"`
	Cost        float64        `json:"cost"`
	Price       float64        `json:"price"`
	Stock       int            `json:"stock"`
	MinStock    int            `json:"min_stock"`
	Variants    []VariantInput `json:"variants"`
}

// UpdateProductInput represents a partial product patch
type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
	Description *string  `json:"description"`
	Size        *string  `json:"size"`
	SKU         *string  `json:"sku"`
	Barcode     *string  `json:"barcode"`
	Cost        *float64 `json:"cost"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	MinStock    *int     `json:"min_stock"`
	Active      *bool    `json:"active"`
}

// UpdateVariantInput represents a partial variant patch. Size, color
// and sku are identity fields and take an admin role to change.
type UpdateVariantInput struct {
	Size     *string `json:"size"`
	Color    *string `json:"color"`
	SKU      *string `json:"sku"`
	Stock    *int    `json:"stock"`
	MinStock *int    `json:"min_stock"`
}

// TouchesIdentity reports whether the patch changes size, color or sku
func (in *UpdateVariantInput) TouchesIdentity() bool {
	return in.Size != nil || in.Color != nil || in.SKU != nil
}

// Create creates a product with its optional initial variants
func (s *ProductService) Create(ctx context.Context, tenantID uint, input *CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Stock < 0 || input.MinStock < 0 {
		return nil, domain.ErrNegativeStock
	}

	seen := make(map[string]bool, len(input.Variants))
	variants := make([]models.Variant, 0, len(input.Variants))
	for _, v := range input.Variants {
		sku := strings.TrimSpace(v.SKU)
		if sku == "" {
			return nil, domain.ErrInvalidInput
		}
		if v.Stock < 0 || v.MinStock < 0 {
			return nil, domain.ErrNegativeStock
		}
		if seen[sku] {
			return nil, domain.ErrDuplicateSKU
		}
		seen[sku] = true

		exists, err := s.variantRepo.ExistsBySKU(ctx, tenantID, sku, 0)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateSKU
		}

		variants = append(variants, models.Variant{
			TenantID: tenantID,
			Size:     strings.TrimSpace(v.Size),
			Color:    strings.TrimSpace(v.Color),
			SKU:      sku,
			Stock:    v.Stock,
			MinStock: v.MinStock,
		})
	}

	product := &models.Product{
		TenantID:    tenantID,
		Name:        name,
		Category:    strings.TrimSpace(input.Category),
		Brand:       strings.TrimSpace(input.Brand),
		Description: strings.TrimSpace(input.Description),
		Size:        strings.TrimSpace(input.Size),
		SKU:         strings.TrimSpace(input.SKU),
		Barcode:     strings.TrimSpace(input.Barcode),
		Cost:        input.Cost,
		Price:       input.Price,
		Stock:       input.Stock,
		MinStock:    input.MinStock,
		Active:      true,
		Variants:    variants,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	log.Printf("✅ Product created: %s (tenant: %d, variants: %d)", product.Name, tenantID, len(variants))
	return product, nil
}

// Get gets a product by ID within a tenant
func (s *ProductService) Get(ctx context.Context, tenantID, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Update applies a partial patch to a product
func (s *ProductService) Update(ctx context.Context, tenantID, id uint, input *UpdateProductInput) (*models.Product, error) {
	product, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.Brand != nil {
		product.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Size != nil {
		product.Size = strings.TrimSpace(*input.Size)
	}
	if input.SKU != nil {
		product.SKU = strings.TrimSpace(*input.SKU)
	}
	if input.Barcode != nil {
		product.Barcode = strings.TrimSpace(*input.Barcode)
	}
	if input.Cost != nil {
		product.Cost = *input.Cost
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, domain.ErrNegativeStock
		}
		product.Stock = *input.Stock
	}
	if input.MinStock != nil {
		if *input.MinStock < 0 {
			return nil, domain.ErrNegativeStock
		}
		product.MinStock = *input.MinStock
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// List lists a tenant's products
func (s *ProductService) List(ctx context.Context, tenantID uint) ([]*models.Product, error) {
	return s.productRepo.ListByTenant(ctx, tenantID)
}

// Search finds products by name, sku, barcode, category or variant sku
func (s *ProductService) Search(ctx context.Context, tenantID uint, query string) ([]*models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.Product{}, nil
	}
	return s.productRepo.Search(ctx, tenantID, query, 50)
}

// UpdateVariant patches a variant. Stock fields are open to every
// tenant user; identity fields (size/color/sku) take an admin.
func (s *ProductService) UpdateVariant(ctx context.Context, tenantID, variantID uint, role domain.Role, input *UpdateVariantInput) (*models.Variant, error) {
	if input.TouchesIdentity() && !domain.Can(role, domain.ActionEditVariantID) {
		return nil, domain.ErrForbidden
	}

	variant, err := s.variantRepo.GetByID(ctx, tenantID, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVariantNotFound
		}
		return nil, err
	}

	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return nil, domain.ErrInvalidInput
		}
		exists, err := s.variantRepo.ExistsBySKU(ctx, tenantID, sku, variant.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateSKU
		}
		variant.SKU = sku
	}
	if input.Size != nil {
		variant.Size = strings.TrimSpace(*input.Size)
	}
	if input.Color != nil {
		variant.Color = strings.TrimSpace(*input.Color)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, domain.ErrNegativeStock
		}
		variant.Stock = *input.Stock
	}
	if input.MinStock != nil {
		if *input.MinStock < 0 {
			return nil, domain.ErrNegativeStock
		}
		variant.MinStock = *input.MinStock
	}

	if err := s.variantRepo.Update(ctx, variant); err != nil {
		return nil, err
	}
	return variant, nil
}
