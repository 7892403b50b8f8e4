package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/core/domain"
)

type fakeStockMovementRepo struct {
	mu        sync.Mutex
	movements []*models.StockMovement
}

func (r *fakeStockMovementRepo) Create(_ context.Context, movement *models.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	movement.ID = uint(len(r.movements) + 1)
	copied := *movement
	r.movements = append(r.movements, &copied)
	return nil
}

func (r *fakeStockMovementRepo) ListByTenant(_ context.Context, tenantID uint, limit int) ([]*models.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.StockMovement
	for i := len(r.movements) - 1; i >= 0 && len(out) < limit; i-- {
		if r.movements[i].TenantID == tenantID {
			copied := *r.movements[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func TestAdjustProductStock(t *testing.T) {
	productRepo := newFakeProductRepo()
	movementRepo := &fakeStockMovementRepo{}
	svc := NewStockService(productRepo, newFakeVariantRepo(), movementRepo)
	ctx := context.Background()

	product := &models.Product{TenantID: 1, Name: "Cardigan", Stock: 5, Active: true}
	if err := productRepo.Create(ctx, product); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	movement, err := svc.Adjust(ctx, 1, 9, &AdjustStockInput{ProductID: product.ID, Delta: 3, Note: "restock"})
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if movement.Reason != string(domain.StockReasonAdjustment) {
		t.Errorf("reason = %s, want ADJUSTMENT", movement.Reason)
	}
	if productRepo.stock(product.ID) != 8 {
		t.Errorf("stock = %d, want 8", productRepo.stock(product.ID))
	}

	// draining below zero is rejected and leaves no ledger entry
	before := len(movementRepo.movements)
	if _, err := svc.Adjust(ctx, 1, 9, &AdjustStockInput{ProductID: product.ID, Delta: -20}); !errors.Is(err, domain.ErrNegativeStock) {
		t.Fatalf("err = %v, want ErrNegativeStock", err)
	}
	if len(movementRepo.movements) != before {
		t.Error("rejected adjustment wrote a movement")
	}
	if productRepo.stock(product.ID) != 8 {
		t.Error("rejected adjustment changed stock")
	}
}

func TestAdjustZeroDelta(t *testing.T) {
	svc := NewStockService(newFakeProductRepo(), newFakeVariantRepo(), &fakeStockMovementRepo{})

	if _, err := svc.Adjust(context.Background(), 1, 1, &AdjustStockInput{ProductID: 1, Delta: 0}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestAdjustVariantMustBelongToProduct(t *testing.T) {
	productRepo := newFakeProductRepo()
	variantRepo := newFakeVariantRepo()
	svc := NewStockService(productRepo, variantRepo, &fakeStockMovementRepo{})
	ctx := context.Background()

	product := &models.Product{TenantID: 1, Name: "Tee", Active: true}
	if err := productRepo.Create(ctx, product); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other := &models.Product{TenantID: 1, Name: "Other", Active: true}
	if err := productRepo.Create(ctx, other); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	stray := variantRepo.add(&models.Variant{TenantID: 1, ProductID: other.ID, Size: "M", Color: "Red", SKU: "O-1", Stock: 4})

	_, err := svc.Adjust(ctx, 1, 1, &AdjustStockInput{ProductID: product.ID, VariantID: stray.ID, Delta: 1})
	if !errors.Is(err, domain.ErrVariantNotFound) {
		t.Fatalf("err = %v, want ErrVariantNotFound", err)
	}
}

func TestAdjustVariantStock(t *testing.T) {
	productRepo := newFakeProductRepo()
	variantRepo := newFakeVariantRepo()
	movementRepo := &fakeStockMovementRepo{}
	svc := NewStockService(productRepo, variantRepo, movementRepo)
	ctx := context.Background()

	product := &models.Product{TenantID: 1, Name: "Tee", Active: true}
	if err := productRepo.Create(ctx, product); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	variant := variantRepo.add(&models.Variant{TenantID: 1, ProductID: product.ID, Size: "M", Color: "Black", SKU: "T-M", Stock: 2})

	if _, err := svc.Adjust(ctx, 1, 1, &AdjustStockInput{ProductID: product.ID, VariantID: variant.ID, Delta: -2}); err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	got, err := variantRepo.GetByID(ctx, 1, variant.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Stock != 0 {
		t.Errorf("stock = %d, want 0", got.Stock)
	}

	if _, err := svc.Adjust(ctx, 1, 1, &AdjustStockInput{ProductID: product.ID, VariantID: variant.ID, Delta: -1}); !errors.Is(err, domain.ErrNegativeStock) {
		t.Fatalf("err = %v, want ErrNegativeStock", err)
	}
}

func TestLowStockReport(t *testing.T) {
	productRepo := newFakeProductRepo()
	svc := NewStockService(productRepo, newFakeVariantRepo(), &fakeStockMovementRepo{})
	ctx := context.Background()

	// flat product at its minimum
	lowFlat := &models.Product{TenantID: 1, Name: "Socks", Stock: 2, MinStock: 2, Active: true}
	// flat product above its minimum
	okFlat := &models.Product{TenantID: 1, Name: "Gloves", Stock: 9, MinStock: 2, Active: true}
	// inactive products never show up
	inactive := &models.Product{TenantID: 1, Name: "Retired", Stock: 0, MinStock: 5, Active: false}
	// variant product: one variant low, one fine
	withVariants := &models.Product{TenantID: 1, Name: "Tee", Active: true, Variants: []models.Variant{
		{ID: 1, TenantID: 1, Size: "M", Color: "Black", SKU: "T-M", Stock: 1, MinStock: 3},
		{ID: 2, TenantID: 1, Size: "L", Color: "Black", SKU: "T-L", Stock: 10, MinStock: 3},
	}}
	for _, p := range []*models.Product{lowFlat, okFlat, inactive, withVariants} {
		if err := productRepo.Create(ctx, p); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	report, err := svc.LowStock(ctx, 1)
	if err != nil {
		t.Fatalf("low stock failed: %v", err)
	}
	if len(report.Products) != 1 || report.Products[0].Name != "Socks" {
		t.Errorf("flat products = %+v, want only Socks", report.Products)
	}
	if len(report.Variants) != 1 || report.Variants[0].SKU != "T-M" {
		t.Errorf("variants = %+v, want only T-M", report.Variants)
	}
}
