package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"boutiqueos/internal/adapters/cache"
	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/adapters/persistence/repositories"
	"boutiqueos/internal/core/domain"
	"boutiqueos/internal/pkg/money"
	"boutiqueos/internal/pkg/pagination"

	"gorm.io/gorm"
)

// SaleService handles the sale transaction flow: validate every line
// against the catalog, price and total the cart, then commit the sale,
// its items, the stock decrements and the movement ledger atomically.
type SaleService struct {
	saleRepo     repositories.SaleRepository
	productRepo  repositories.ProductRepository
	cashRepo     repositories.CashRepository
	customerRepo repositories.CustomerRepository
	reportCache  cache.ReportCache
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repositories.SaleRepository,
	productRepo repositories.ProductRepository,
	cashRepo repositories.CashRepository,
	customerRepo repositories.CustomerRepository,
	reportCache cache.ReportCache,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		cashRepo:     cashRepo,
		customerRepo: customerRepo,
		reportCache:  reportCache,
	}
}

// CreateSaleInput is the canonical sale request. Handlers normalize
// every accepted payload shape into this before calling Create.
type CreateSaleInput struct {
	Lines         []domain.SaleLine
	CustomerID    *uint
	CustomerName  string
	PaymentMethod string
	Discount      float64
	DeclaredTotal *float64 // optional client-side total cross-check
}

// pricedLine is a validated line with its catalog snapshot attached
type pricedLine struct {
	line      domain.SaleLine
	product   *models.Product
	variant   *models.Variant
	unitPrice float64
	unitCost  float64
}

// Create commits a sale. All lines are validated before any write, and
// the write itself is a single transaction, so a failing line leaves
// stock untouched.
func (s *SaleService) Create(ctx context.Context, tenantID, userID uint, input *CreateSaleInput) (*models.Sale, error) {
	if len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidPaymentMethod(domain.PaymentMethod(input.PaymentMethod)) {
		return nil, domain.ErrInvalidInput
	}

	// A sale needs an open register
	session, err := s.cashRepo.GetOpenByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoOpenCashSession
		}
		return nil, err
	}

	priced, err := s.validateLines(ctx, tenantID, input.Lines)
	if err != nil {
		return nil, err
	}

	subtotal := 0.0
	marginTotal := 0.0
	for _, pl := range priced {
		subtotal = money.Add(subtotal, money.LineTotal(pl.unitPrice, pl.line.Quantity))
		marginTotal = money.Add(marginTotal, money.LineMargin(pl.unitPrice, pl.unitCost, pl.line.Quantity))
	}

	discount := input.Discount
	if discount < 0 {
		discount = 0
	}
	discount = money.Round(discount)

	total := money.Sub(subtotal, discount)
	marginTotal = money.Sub(marginTotal, discount)

	if input.DeclaredTotal != nil && !money.WithinTolerance(*input.DeclaredTotal, total) {
		return nil, domain.ErrTotalMismatch
	}

	customerName := strings.TrimSpace(input.CustomerName)
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, tenantID, *input.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrCustomerNotFound
			}
			return nil, err
		}
		customerName = customer.Name
	}

	sale := &models.Sale{
		TenantID:        tenantID,
		CreatedByUserID: userID,
		CustomerID:      input.CustomerID,
		CustomerName:    customerName,
		PaymentMethod:   input.PaymentMethod,
		Discount:        discount,
		Subtotal:        subtotal,
		Total:           total,
		Margin:          marginTotal,
		CashSessionID:   session.ID,
		ItemsCount:      len(priced),
	}

	// First line snapshot for fast listing
	first := priced[0]
	firstQty := first.line.Quantity
	firstPrice := first.unitPrice
	sale.ProductID = &first.product.ID
	sale.ProductName = first.product.Name
	sale.ProductSKU = itemSKU(first)
	sale.ProductBarcode = first.product.Barcode
	sale.Quantity = &firstQty
	sale.UnitPrice = &firstPrice

	items := make([]models.SaleItem, 0, len(priced))
	movements := make([]models.StockMovement, 0, len(priced))
	for _, pl := range priced {
		items = append(items, models.SaleItem{
			TenantID:  tenantID,
			ProductID: pl.product.ID,
			VariantID: pl.line.VariantID,
			Name:      itemName(pl),
			SKU:       itemSKU(pl),
			Qty:       pl.line.Quantity,
			UnitPrice: pl.unitPrice,
			UnitCost:  pl.unitCost,
		})
		movements = append(movements, models.StockMovement{
			TenantID:        tenantID,
			CreatedByUserID: userID,
			ProductID:       pl.product.ID,
			VariantID:       pl.line.VariantID,
			Delta:           -pl.line.Quantity,
			Reason:          string(domain.StockReasonSale),
		})
	}

	if err := s.saleRepo.CreateAtomic(ctx, sale, items, movements); err != nil {
		return nil, err
	}
	sale.Items = items

	// Stale dashboards are worse than a recount
	if err := s.reportCache.Invalidate(ctx, fmt.Sprintf("reports:%d:*", tenantID)); err != nil {
		log.Printf("⚠️ Report cache invalidation failed for tenant %d: %v", tenantID, err)
	}

	log.Printf("✅ Sale created: %d (tenant: %d, total: %.2f, items: %d)", sale.ID, tenantID, sale.Total, len(items))
	return sale, nil
}

// List lists a tenant's sales, newest first
func (s *SaleService) List(ctx context.Context, tenantID uint, params *pagination.Params) ([]*models.Sale, int64, error) {
	return s.saleRepo.List(ctx, tenantID, params.Offset, params.Limit)
}

// validateLines checks every line against the catalog before any write
func (s *SaleService) validateLines(ctx context.Context, tenantID uint, lines []domain.SaleLine) ([]pricedLine, error) {
	priced := make([]pricedLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}

		product, err := s.productRepo.GetByID(ctx, tenantID, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrProductNotFound
			}
			return nil, err
		}
		if !product.Active {
			return nil, domain.ErrProductNotFound
		}

		pl := pricedLine{line: line, product: product}

		if line.VariantID > 0 {
			for i := range product.Variants {
				if product.Variants[i].ID == line.VariantID {
					pl.variant = &product.Variants[i]
					break
				}
			}
			if pl.variant == nil {
				return nil, domain.ErrVariantNotFound
			}
			if pl.variant.Stock < line.Quantity {
				return nil, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, product.Name)
			}
		} else {
			if product.Stock < line.Quantity {
				return nil, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, product.Name)
			}
		}

		pl.unitPrice = product.Price
		if line.UnitPrice != nil {
			if *line.UnitPrice < 0 {
				return nil, domain.ErrInvalidInput
			}
			pl.unitPrice = money.Round(*line.UnitPrice)
		}
		pl.unitCost = product.Cost

		priced = append(priced, pl)
	}
	return priced, nil
}

func itemName(pl pricedLine) string {
	if pl.variant != nil {
		parts := []string{pl.product.Name}
		if pl.variant.Size != "" {
			parts = append(parts, pl.variant.Size)
		}
		if pl.variant.Color != "" {
			parts = append(parts, pl.variant.Color)
		}
		return strings.Join(parts, " ")
	}
	return pl.product.Name
}

func itemSKU(pl pricedLine) string {
	if pl.variant != nil {
		return pl.variant.SKU
	}
	return pl.product.SKU
}
