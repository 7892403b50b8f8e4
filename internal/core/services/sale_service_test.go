package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"boutiqueos/internal/adapters/cache"
	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/core/domain"
	"boutiqueos/internal/pkg/pagination"
)

type saleTestEnv struct {
	cashRepo     *fakeCashRepo
	productRepo  *fakeProductRepo
	saleRepo     *fakeSaleRepo
	customerRepo *fakeCustomerRepo
	saleService  *SaleService
	cashService  *CashService
}

func newSaleTestEnv() *saleTestEnv {
	cashRepo := newFakeCashRepo()
	productRepo := newFakeProductRepo()
	saleRepo := newFakeSaleRepo(productRepo, cashRepo)
	customerRepo := newFakeCustomerRepo()
	return &saleTestEnv{
		cashRepo:     cashRepo,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		saleService:  NewSaleService(saleRepo, productRepo, cashRepo, customerRepo, cache.NoopReportCache{}),
		cashService:  NewCashService(cashRepo),
	}
}

func (e *saleTestEnv) addProduct(t *testing.T, p *models.Product) *models.Product {
	t.Helper()
	if err := e.productRepo.Create(context.Background(), p); err != nil {
		t.Fatalf("add product failed: %v", err)
	}
	return p
}

func (e *saleTestEnv) openRegister(t *testing.T, tenantID uint, opening float64) *models.CashSession {
	t.Helper()
	session, err := e.cashService.Open(context.Background(), tenantID, 1, opening)
	if err != nil {
		t.Fatalf("open register failed: %v", err)
	}
	return session
}

func TestSaleRequiresOpenRegister(t *testing.T) {
	env := newSaleTestEnv()
	product := env.addProduct(t, &models.Product{TenantID: 1, Name: "Denim Jacket", Price: 500, Stock: 10, Active: true})

	_, err := env.saleService.Create(context.Background(), 1, 1, &CreateSaleInput{
		Lines:         []domain.SaleLine{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: "CASH",
	})
	if !errors.Is(err, domain.ErrNoOpenCashSession) {
		t.Fatalf("err = %v, want ErrNoOpenCashSession", err)
	}
	if env.productRepo.stock(product.ID) != 10 {
		t.Error("stock changed on a rejected sale")
	}
}

func TestSaleInvalidPaymentMethod(t *testing.T) {
	env := newSaleTestEnv()
	product := env.addProduct(t, &models.Product{TenantID: 1, Name: "Denim Jacket", Price: 500, Stock: 10, Active: true})
	env.openRegister(t, 1, 100)

	_, err := env.saleService.Create(context.Background(), 1, 1, &CreateSaleInput{
		Lines:         []domain.SaleLine{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: "BARTER",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestSaleOversellRejected(t *testing.T) {
	env := newSaleTestEnv()
	product := env.addProduct(t, &models.Product{TenantID: 1, Name: "Silk Scarf", Price: 120, Stock: 3, Active: true})
	env.openRegister(t, 1, 100)

	_, err := env.saleService.Create(context.Background(), 1, 1, &CreateSaleInput{
		Lines:         []domain.SaleLine{{ProductID: product.ID, Quantity: 5}},
		PaymentMethod: "CASH",
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	// error names the product so the cashier can act on it
	if !strings.Contains(err.Error(), "Silk Scarf") {
		t.Errorf("error should name the product, got %q", err.Error())
	}
	if env.productRepo.stock(product.ID) != 3 {
		t.Error("stock changed on a rejected sale")
	}
}

func TestSaleFailingLineLeavesStockUntouched(t *testing.T) {
	env := newSaleTestEnv()
	good := env.addProduct(t, &models.Product{TenantID: 1, Name: "Belt", Price: 50, Stock: 10, Active: true})
	scarce := env.addProduct(t, &models.Product{TenantID: 1, Name: "Limited Tee", Price: 80, Stock: 1, Active: true})
	env.openRegister(t, 1, 100)

	_, err := env.saleService.Create(context.Background(), 1, 1, &CreateSaleInput{
		Lines: []domain.SaleLine{
			{ProductID: good.ID, Quantity: 2},
			{ProductID: scarce.ID, Quantity: 3},
		},
		PaymentMethod: "CASH",
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if env.productRepo.stock(good.ID) != 10 {
		t.Error("first line decremented despite second line failing")
	}
	if env.productRepo.stock(scarce.ID) != 1 {
		t.Error("failing line decremented stock")
	}
}

func TestSaleTotalsAndSnapshots(t *testing.T) {
	env := newSaleTestEnv()
	product := env.addProduct(t, &models.Product{
		TenantID: 1, Name: "Wool Coat", SKU: "WC-01", Barcode: "789",
		Price: 500, Cost: 300, Stock: 10, Active: true,
	})
	env.openRegister(t, 1, 1000)

	sale, err := env.saleService.Create(context.Background(), 1, 7, &CreateSaleInput{
		Lines:         []domain.SaleLine{{ProductID: product.ID, Quantity: 2}},
		CustomerName:  "Walk-in",
		PaymentMethod: "CASH",
	})
	if err != nil {
		t.Fatalf("create sale failed: %v", err)
	}

	if sale.Subtotal != 1000 || sale.Total != 1000 {
		t.Errorf("subtotal/total = %v/%v, want 1000/1000", sale.Subtotal, sale.Total)
	}
	if sale.Margin != 400 {
		t.Errorf("margin = %v, want 400", sale.Margin)
	}
	if sale.ItemsCount != 1 || len(sale.Items) != 1 {
		t.Fatalf("items = %d/%d, want 1", sale.ItemsCount, len(sale.Items))
	}
	item := sale.Items[0]
	if item.Name != "Wool Coat" || item.SKU != "WC-01" || item.Qty != 2 || item.UnitPrice != 500 {
		t.Errorf("item snapshot wrong: %+v", item)
	}
	if sale.ProductName != "Wool Coat" || sale.Quantity == nil || *sale.Quantity != 2 {
		t.Errorf("first-line snapshot wrong: %+v", sale)
	}
	if env.productRepo.stock(product.ID) != 8 {
		t.Errorf("stock = %d, want 8", env.productRepo.stock(product.ID))
	}
}

func TestSaleDiscountAndDeclaredTotal(t *testing.T) {
	env := newSaleTestEnv()
	product := env.addProduct(t, &models.Product{TenantID: 1, Name: "Dress", Price: 200, Cost: 90, Stock: 5, Active: true})
	env.openRegister(t, 1, 100)

	declared := 350.0
	sale, err := env.saleService.Create(context.Background(), 1, 1, &CreateSaleInput{
		Lines:         []domain.SaleLine{{ProductID: product.ID, Quantity: 2}},
		PaymentMethod: "DEBIT",
		Discount:      50,
		DeclaredTotal: &declared,
	})
	if err != nil {
		t.Fatalf("create sale failed: %v", err)
	}
	if sale.Total != 350 {
		t.Errorf("total = %v, want 350", sale.Total)
	}
	if sale.Discount != 50 {
		t.Errorf("discount = %v, want 50", sale.Discount)
	}

	wrong := 999.0
	_, err = env.saleService.Create(context.Background(), 1, 1, &CreateSaleInput{
		Lines:         []domain.SaleLine{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: "CASH",
		DeclaredTotal: &wrong,
	})
	if !errors.Is(err, domain.ErrTotalMismatch) {
		t.Fatalf("err = %v, want ErrTotalMismatch", err)
	}
}

func TestSaleVariantLine(t *testing.T) {
	env := newSaleTestEnv()
	product := env.addProduct(t, &models.Product{
		TenantID: 1, Name: "Basic Tee", Price: 60, Cost: 25, Active: true,
		Variants: []models.Variant{
			{ID: 101, TenantID: 1, Size: "M", Color: "Black", SKU: "TEE-M-BLK", Stock: 4},
			{ID: 102, TenantID: 1, Size: "L", Color: "White", SKU: "TEE-L-WHT", Stock: 0},
		},
	})
	env.openRegister(t, 1, 100)

	sale, err := env.saleService.Create(context.Background(), 1, 1, &CreateSaleInput{
		Lines:         []domain.SaleLine{{ProductID: product.ID, VariantID: 101, Quantity: 2}},
		PaymentMethod: "CASH",
	})
	if err != nil {
		t.Fatalf("create sale failed: %v", err)
	}
	if sale.Items[0].Name != "Basic Tee M Black" {
		t.Errorf("item name = %q, want variant name", sale.Items[0].Name)
	}
	if sale.Items[0].SKU != "TEE-M-BLK" {
		t.Errorf("item sku = %q, want variant sku", sale.Items[0].SKU)
	}

	// exhausted variant
	_, err = env.saleService.Create(context.Background(), 1, 1, &CreateSaleInput{
		Lines:         []domain.SaleLine{{ProductID: product.ID, VariantID: 102, Quantity: 1}},
		PaymentMethod: "CASH",
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	// unknown variant
	_, err = env.saleService.Create(context.Background(), 1, 1, &CreateSaleInput{
		Lines:         []domain.SaleLine{{ProductID: product.ID, VariantID: 999, Quantity: 1}},
		PaymentMethod: "CASH",
	})
	if !errors.Is(err, domain.ErrVariantNotFound) {
		t.Fatalf("err = %v, want ErrVariantNotFound", err)
	}
}

func TestSaleResolvesCustomerName(t *testing.T) {
	env := newSaleTestEnv()
	product := env.addProduct(t, &models.Product{TenantID: 1, Name: "Hat", Price: 40, Stock: 5, Active: true})
	env.openRegister(t, 1, 100)

	customer := &models.Customer{TenantID: 1, Name: "Maria Lopez", Document: "12345678"}
	if err := env.customerRepo.Create(context.Background(), customer); err != nil {
		t.Fatalf("create customer failed: %v", err)
	}

	sale, err := env.saleService.Create(context.Background(), 1, 1, &CreateSaleInput{
		Lines:         []domain.SaleLine{{ProductID: product.ID, Quantity: 1}},
		CustomerID:    &customer.ID,
		CustomerName:  "ignored when id present",
		PaymentMethod: "CASH",
	})
	if err != nil {
		t.Fatalf("create sale failed: %v", err)
	}
	if sale.CustomerName != "Maria Lopez" {
		t.Errorf("customer name = %q, want Maria Lopez", sale.CustomerName)
	}

	missing := uint(999)
	_, err = env.saleService.Create(context.Background(), 1, 1, &CreateSaleInput{
		Lines:         []domain.SaleLine{{ProductID: product.ID, Quantity: 1}},
		CustomerID:    &missing,
		PaymentMethod: "CASH",
	})
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("err = %v, want ErrCustomerNotFound", err)
	}
}

// Full register day: open with 1000, sell twice at 500, close counting 2000.
func TestRegisterDayScenario(t *testing.T) {
	env := newSaleTestEnv()
	product := env.addProduct(t, &models.Product{TenantID: 1, Name: "Leather Boots", Price: 500, Cost: 280, Stock: 10, Active: true})
	session := env.openRegister(t, 1, 1000)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		sale, err := env.saleService.Create(ctx, 1, 1, &CreateSaleInput{
			Lines:         []domain.SaleLine{{ProductID: product.ID, Quantity: 1}},
			PaymentMethod: "CASH",
		})
		if err != nil {
			t.Fatalf("sale %d failed: %v", i+1, err)
		}
		if sale.Total != 500 {
			t.Fatalf("sale %d total = %v, want 500", i+1, sale.Total)
		}
	}

	if env.productRepo.stock(product.ID) != 8 {
		t.Errorf("stock = %d, want 8", env.productRepo.stock(product.ID))
	}

	sales, total, err := env.saleService.List(ctx, 1, &pagination.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(sales) != 2 {
		t.Errorf("list = %d/%d, want 2 sales", len(sales), total)
	}

	counted := 2000.0
	result, err := env.cashService.Close(ctx, 1, session.ID, 1, &counted, "")
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if result.Expected != 2000 {
		t.Errorf("expected = %v, want 2000", result.Expected)
	}
	if result.Difference != 0 {
		t.Errorf("difference = %v, want 0", result.Difference)
	}
	if result.SalesByMethod["CASH"] != 1000 {
		t.Errorf("cash sales = %v, want 1000", result.SalesByMethod["CASH"])
	}
}
