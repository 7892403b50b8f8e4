package repositories

import (
	"context"
	"time"

	"boutiqueos/internal/adapters/persistence/models"
)

// TenantRepository defines tenant repository interface
type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id uint) (*models.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	List(ctx context.Context) ([]*models.Tenant, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	DeactivateExpiredTrials(ctx context.Context, now time.Time) (int64, error)
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ListByTenant(ctx context.Context, tenantID uint) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetTenantAdmin(ctx context.Context, tenantID uint) (*models.User, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// ProductRepository defines product repository interface
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, tenantID, id uint) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	ListByTenant(ctx context.Context, tenantID uint) ([]*models.Product, error)
	Search(ctx context.Context, tenantID uint, query string, limit int) ([]*models.Product, error)
}

// VariantRepository defines variant repository interface
type VariantRepository interface {
	GetByID(ctx context.Context, tenantID, id uint) (*models.Variant, error)
	Update(ctx context.Context, variant *models.Variant) error
	ExistsBySKU(ctx context.Context, tenantID uint, sku string, excludeID uint) (bool, error)
	ListByTenant(ctx context.Context, tenantID uint) ([]*models.Variant, error)
	AdjustStock(ctx context.Context, id uint, delta int) error
}

// CustomerRepository defines customer repository interface
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, tenantID, id uint) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	List(ctx context.Context, tenantID uint, search string, limit int) ([]*models.Customer, error)
	Search(ctx context.Context, tenantID uint, query string, limit int) ([]*models.Customer, error)
	ExistsByDocument(ctx context.Context, tenantID uint, document string, excludeID uint) (bool, error)
}

// CashRepository defines cash session repository interface
type CashRepository interface {
	Create(ctx context.Context, session *models.CashSession) error
	GetByID(ctx context.Context, tenantID, id uint) (*models.CashSession, error)
	GetOpenByTenant(ctx context.Context, tenantID uint) (*models.CashSession, error)
	Update(ctx context.Context, session *models.CashSession) error
	CreateWithdrawal(ctx context.Context, w *models.CashWithdrawal) error
	ListWithdrawals(ctx context.Context, tenantID, sessionID uint) ([]*models.CashWithdrawal, error)
	SumWithdrawals(ctx context.Context, sessionID uint) (float64, error)
	SalesByPaymentMethod(ctx context.Context, sessionID uint) (map[string]float64, error)
}

// SaleRepository defines sale repository interface. CreateAtomic
// persists the sale, its items, the stock movements and the stock
// decrements as one transaction.
type SaleRepository interface {
	CreateAtomic(ctx context.Context, sale *models.Sale, items []models.SaleItem, movements []models.StockMovement) error
	List(ctx context.Context, tenantID uint, offset, limit int) ([]*models.Sale, int64, error)
}

// StockMovementRepository defines stock movement repository interface
type StockMovementRepository interface {
	Create(ctx context.Context, movement *models.StockMovement) error
	ListByTenant(ctx context.Context, tenantID uint, limit int) ([]*models.StockMovement, error)
}
