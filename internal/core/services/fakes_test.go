package services

import (
	"context"
	"strings"
	"sync"

	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/core/domain"

	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the gorm implementations
// closely enough for service-level tests: tenant scoping, not-found as
// gorm.ErrRecordNotFound and all-or-nothing sale commits.

type fakeCashRepo struct {
	mu          sync.Mutex
	nextID      uint
	sessions    map[uint]*models.CashSession
	withdrawals []*models.CashWithdrawal
	byMethod    map[uint]map[string]float64 // sessionID -> method -> total
}

func newFakeCashRepo() *fakeCashRepo {
	return &fakeCashRepo{
		sessions: make(map[uint]*models.CashSession),
		byMethod: make(map[uint]map[string]float64),
	}
}

func (r *fakeCashRepo) Create(_ context.Context, session *models.CashSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	session.ID = r.nextID
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeCashRepo) GetByID(_ context.Context, tenantID, id uint) (*models.CashSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeCashRepo) GetOpenByTenant(_ context.Context, tenantID uint) (*models.CashSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.TenantID == tenantID && s.Status == string(domain.CashOpen) {
			copied := *s
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCashRepo) Update(_ context.Context, session *models.CashSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeCashRepo) CreateWithdrawal(_ context.Context, w *models.CashWithdrawal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.ID = uint(len(r.withdrawals) + 1)
	copied := *w
	r.withdrawals = append(r.withdrawals, &copied)
	return nil
}

func (r *fakeCashRepo) ListWithdrawals(_ context.Context, tenantID, sessionID uint) ([]*models.CashWithdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.CashWithdrawal
	for _, w := range r.withdrawals {
		if w.TenantID == tenantID && w.CashSessionID == sessionID {
			copied := *w
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCashRepo) SumWithdrawals(_ context.Context, sessionID uint) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0.0
	for _, w := range r.withdrawals {
		if w.CashSessionID == sessionID {
			total += w.Amount
		}
	}
	return total, nil
}

func (r *fakeCashRepo) SalesByPaymentMethod(_ context.Context, sessionID uint) (map[string]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]float64)
	for method, total := range r.byMethod[sessionID] {
		out[method] = total
	}
	return out, nil
}

func (r *fakeCashRepo) recordSale(sessionID uint, method string, total float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byMethod[sessionID] == nil {
		r.byMethod[sessionID] = make(map[string]float64)
	}
	r.byMethod[sessionID][method] += total
}

type fakeProductRepo struct {
	mu       sync.Mutex
	nextID   uint
	products map[uint]*models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uint]*models.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	product.ID = r.nextID
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, tenantID, id uint) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	copied.Variants = append([]models.Variant(nil), p.Variants...)
	return &copied, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) ListByTenant(_ context.Context, tenantID uint) ([]*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Product
	for _, p := range r.products {
		if p.TenantID == tenantID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

// Search mirrors the gorm query: case-insensitive substring on the
// product's name, sku, barcode and category plus the skus of its
// variants, each product returned once.
func (r *fakeProductRepo) Search(_ context.Context, tenantID uint, query string, limit int) ([]*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	matches := func(p *models.Product) bool {
		for _, field := range []string{p.Name, p.SKU, p.Barcode, p.Category} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		for _, v := range p.Variants {
			if strings.Contains(strings.ToLower(v.SKU), q) {
				return true
			}
		}
		return false
	}
	var out []*models.Product
	for _, p := range r.products {
		if p.TenantID != tenantID || !matches(p) {
			continue
		}
		copied := *p
		copied.Variants = append([]models.Variant(nil), p.Variants...)
		out = append(out, &copied)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeProductRepo) stock(id uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		return p.Stock
	}
	return 0
}

// fakeSaleRepo applies the same all-or-nothing semantics as the gorm
// transaction: every decrement is checked before any is applied.
type fakeSaleRepo struct {
	mu       sync.Mutex
	nextID   uint
	sales    []*models.Sale
	products *fakeProductRepo
	cash     *fakeCashRepo
}

func newFakeSaleRepo(products *fakeProductRepo, cash *fakeCashRepo) *fakeSaleRepo {
	return &fakeSaleRepo{products: products, cash: cash}
}

func (r *fakeSaleRepo) CreateAtomic(_ context.Context, sale *models.Sale, items []models.SaleItem, movements []models.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products.mu.Lock()
	defer r.products.mu.Unlock()

	for _, it := range items {
		if it.VariantID > 0 {
			p := r.products.products[it.ProductID]
			var v *models.Variant
			for i := range p.Variants {
				if p.Variants[i].ID == it.VariantID {
					v = &p.Variants[i]
				}
			}
			if v == nil || v.Stock < it.Qty {
				return domain.ErrInsufficientStock
			}
		} else {
			p, ok := r.products.products[it.ProductID]
			if !ok || p.Stock < it.Qty {
				return domain.ErrInsufficientStock
			}
		}
	}

	for _, it := range items {
		if it.VariantID > 0 {
			p := r.products.products[it.ProductID]
			for i := range p.Variants {
				if p.Variants[i].ID == it.VariantID {
					p.Variants[i].Stock -= it.Qty
				}
			}
		} else {
			r.products.products[it.ProductID].Stock -= it.Qty
		}
	}

	r.nextID++
	sale.ID = r.nextID
	for i := range items {
		items[i].SaleID = sale.ID
	}
	copied := *sale
	copied.Items = append([]models.SaleItem(nil), items...)
	r.sales = append(r.sales, &copied)

	if r.cash != nil {
		r.cash.recordSale(sale.CashSessionID, sale.PaymentMethod, sale.Total)
	}
	return nil
}

func (r *fakeSaleRepo) List(_ context.Context, tenantID uint, offset, limit int) ([]*models.Sale, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var scoped []*models.Sale
	for i := len(r.sales) - 1; i >= 0; i-- {
		if r.sales[i].TenantID == tenantID {
			scoped = append(scoped, r.sales[i])
		}
	}
	total := int64(len(scoped))
	if offset >= len(scoped) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(scoped) {
		end = len(scoped)
	}
	return scoped[offset:end], total, nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	nextID    uint
	customers map[uint]*models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uint]*models.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	customer.ID = r.nextID
	copied := *customer
	r.customers[customer.ID] = &copied
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, tenantID, id uint) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *customer
	r.customers[customer.ID] = &copied
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context, tenantID uint, search string, limit int) ([]*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Customer
	for _, c := range r.customers {
		if c.TenantID != tenantID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			continue
		}
		copied := *c
		out = append(out, &copied)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Search(_ context.Context, tenantID uint, query string, limit int) ([]*models.Customer, error) {
	return r.List(nil, tenantID, query, limit)
}

func (r *fakeCustomerRepo) ExistsByDocument(_ context.Context, tenantID uint, document string, excludeID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.TenantID == tenantID && c.Document == document && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}
