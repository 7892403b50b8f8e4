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

// StockService handles manual stock adjustments and the low stock views
type StockService struct {
	productRepo  repositories.ProductRepository
	variantRepo  repositories.VariantRepository
	movementRepo repositories.StockMovementRepository
}

// NewStockService creates a new stock service
func NewStockService(
	productRepo repositories.ProductRepository,
	variantRepo repositories.VariantRepository,
	movementRepo repositories.StockMovementRepository,
) *StockService {
	return &StockService{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		movementRepo: movementRepo,
	}
}

// AdjustStockInput represents a manual stock adjustment
type AdjustStockInput struct {
	ProductID uint   `json:"product_id" validate:"required"`
	VariantID uint   `json:"variant_id"`
	Delta     int    `json:"delta" validate:"required"`
	Note      string `json:"note"`
}

// LowStockVariant is one variant row in the low stock report, with
// enough product context to act on it
type LowStockVariant struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	VariantID   uint   `json:"variant_id"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	SKU         string `json:"sku"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"min_stock"`
}

// LowStockReport holds both shapes of the report: per-variant rows and
// flat products that track stock at the product level
type LowStockReport struct {
	Variants []LowStockVariant `json:"variants"`
	Products []*models.Product `json:"products"`
}

// Adjust applies a relative stock change and appends a ledger entry.
// Adjustments that would drive stock negative are rejected.
func (s *StockService) Adjust(ctx context.Context, tenantID, userID uint, input *AdjustStockInput) (*models.StockMovement, error) {
	if input.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := s.productRepo.GetByID(ctx, tenantID, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	if input.VariantID > 0 {
		variant, err := s.variantRepo.GetByID(ctx, tenantID, input.VariantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrVariantNotFound
			}
			return nil, err
		}
		if variant.ProductID != product.ID {
			return nil, domain.ErrVariantNotFound
		}
		if variant.Stock+input.Delta < 0 {
			return nil, domain.ErrNegativeStock
		}
		if err := s.variantRepo.AdjustStock(ctx, variant.ID, input.Delta); err != nil {
			return nil, err
		}
	} else {
		if product.Stock+input.Delta < 0 {
			return nil, domain.ErrNegativeStock
		}
		product.Stock += input.Delta
		if err := s.productRepo.Update(ctx, product); err != nil {
			return nil, err
		}
	}

	movement := &models.StockMovement{
		TenantID:        tenantID,
		CreatedByUserID: userID,
		ProductID:       input.ProductID,
		VariantID:       input.VariantID,
		Delta:           input.Delta,
		Reason:          string(domain.StockReasonAdjustment),
		Note:            strings.TrimSpace(input.Note),
	}
	if err := s.movementRepo.Create(ctx, movement); err != nil {
		return nil, err
	}

	log.Printf("✅ Stock adjusted: product %d variant %d delta %+d (tenant: %d)", input.ProductID, input.VariantID, input.Delta, tenantID)
	return movement, nil
}

// ListMovements lists the tenant's recent movements
func (s *StockService) ListMovements(ctx context.Context, tenantID uint) ([]*models.StockMovement, error) {
	return s.movementRepo.ListByTenant(ctx, tenantID, 200)
}

// LowStock builds both shapes of the low stock report: variants at or
// below their minimum, and flat products (no variants) at or below
// theirs.
func (s *StockService) LowStock(ctx context.Context, tenantID uint) (*LowStockReport, error) {
	products, err := s.productRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	report := &LowStockReport{
		Variants: []LowStockVariant{},
		Products: []*models.Product{},
	}
	for _, p := range products {
		if !p.Active {
			continue
		}
		if p.HasVariants() {
			for _, v := range p.Variants {
				if v.Stock <= v.MinStock {
					report.Variants = append(report.Variants, LowStockVariant{
						ProductID:   p.ID,
						ProductName: p.Name,
						VariantID:   v.ID,
						Size:        v.Size,
						Color:       v.Color,
						SKU:         v.SKU,
						Stock:       v.Stock,
						MinStock:    v.MinStock,
					})
				}
			}
		} else if p.Stock <= p.MinStock {
			report.Products = append(report.Products, p)
		}
	}
	return report, nil
}
