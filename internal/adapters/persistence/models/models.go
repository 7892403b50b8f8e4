package models

import (
	"time"

	"boutiqueos/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Tenancy & Auth Tables
// ============================================================

// Tenant represents tenants table
type Tenant struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Slug      string     `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Plan      string     `gorm:"size:20;not null;default:'FREE_TRIAL'" json:"plan"`
	TrialEnd  *time.Time `json:"trial_end"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Users []User `gorm:"foreignKey:TenantID" json:"-"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// TenantResponse DTO, with the admin contact joined in for listings
type TenantResponse struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	Plan       string     `json:"plan"`
	TrialEnd   *time.Time `json:"trial_end"`
	IsActive   bool       `json:"is_active"`
	AdminName  string     `json:"admin_name,omitempty"`
	AdminEmail string     `json:"admin_email,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (t *Tenant) ToResponse() *TenantResponse {
	return &TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		Plan:      t.Plan,
		TrialEnd:  t.TrialEnd,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// User represents users table. TenantID NULL marks a super admin.
// MustChangePassword flags accounts created with a handed-out password
// (seeded admins); the frontend forces a rotation before first use.
type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	TenantID           *uint     `gorm:"index:ix_users_tenant_role" json:"tenant_id"`
	Role               string    `gorm:"size:20;not null;index:ix_users_tenant_role" json:"role"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	Email              string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password           string    `gorm:"size:255;not null" json:"-"`
	Active             bool      `gorm:"default:true" json:"active"`
	MustChangePassword bool      `gorm:"default:false" json:"must_change_password"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID                 uint      `json:"id"`
	TenantID           *uint     `json:"tenant_id"`
	Role               string    `json:"role"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Active             bool      `json:"active"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:                 u.ID,
		TenantID:           u.TenantID,
		Role:               u.Role,
		Name:               u.Name,
		Email:              u.Email,
		Active:             u.Active,
		MustChangePassword: u.MustChangePassword,
		CreatedAt:          u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"uniqueIndex;size:255;not null" json:"-"`
	JTI       string     `gorm:"uniqueIndex;size:64;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Catalog Tables
// ============================================================

// Product represents products table
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TenantID    uint      `gorm:"index:ix_products_tenant;not null" json:"tenant_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Category    string    `gorm:"size:100" json:"category"`
	Brand       string    `gorm:"size:120" json:"brand"`
	Description string    `gorm:"size:500" json:"description"`
	Size        string    `gorm:"size:50" json:"size"`
	SKU         string    `gorm:"size:100;index" json:"sku"`
	Barcode     string    `gorm:"size:100;index" json:"barcode"`
	Cost        float64   `gorm:"type:decimal(15,2);default:0" json:"cost"`
	Price       float64   `gorm:"type:decimal(15,2);default:0" json:"price"`
	Stock       int       `gorm:"default:0" json:"stock"`
	MinStock    int       `gorm:"default:0" json:"min_stock"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Variants []Variant `gorm:"foreignKey:ProductID" json:"variants"`
}

func (Product) TableName() string {
	return "products"
}

// HasVariants reports whether stock is tracked per variant for this product
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// Variant represents variants table. SKU is unique per tenant.
type Variant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"uniqueIndex:uq_variants_tenant_sku;index:ix_variants_tenant;not null" json:"tenant_id"`
	ProductID uint      `gorm:"index:ix_variants_product;not null" json:"product_id"`
	Size      string    `gorm:"size:50;not null" json:"size"`
	Color     string    `gorm:"size:50;not null" json:"color"`
	SKU       string    `gorm:"uniqueIndex:uq_variants_tenant_sku;size:100;not null" json:"sku"`
	Stock     int       `gorm:"default:0" json:"stock"`
	MinStock  int       `gorm:"default:0" json:"min_stock"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Variant) TableName() string {
	return "variants"
}

// ============================================================
// Cash Register Tables
// ============================================================

// CashSession represents cash_sessions table
type CashSession struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	TenantID       uint       `gorm:"index:ix_cash_tenant_status;not null" json:"tenant_id"`
	OpenedByUserID uint       `gorm:"not null" json:"opened_by_user_id"`
	OpenedAt       time.Time  `gorm:"autoCreateTime" json:"opened_at"`
	OpeningAmount  float64    `gorm:"type:decimal(15,2);default:0" json:"opening_amount"`
	Status         string     `gorm:"size:10;not null;default:'OPEN';index:ix_cash_tenant_status" json:"status"`
	ClosedAt       *time.Time `json:"closed_at"`
	ClosedByUserID *uint      `json:"closed_by_user_id"`

	// Frozen at close time
	WithdrawalAmount float64  `gorm:"type:decimal(15,2);default:0" json:"withdrawal_amount"`
	WithdrawalNotes  string   `gorm:"size:500" json:"withdrawal_notes"`
	ExpectedAmount   *float64 `gorm:"type:decimal(15,2)" json:"expected_amount"`
	CountedAmount    *float64 `gorm:"type:decimal(15,2)" json:"counted_amount"`
	DifferenceAmount *float64 `gorm:"type:decimal(15,2)" json:"difference_amount"`
}

func (CashSession) TableName() string {
	return "cash_sessions"
}

func (c *CashSession) IsOpen() bool {
	return c.Status == string(domain.CashOpen)
}

// CashWithdrawal represents cash_withdrawals table (append-only)
type CashWithdrawal struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TenantID        uint      `gorm:"index;not null" json:"tenant_id"`
	CashSessionID   uint      `gorm:"index:ix_cash_withdrawals_session;not null" json:"cash_session_id"`
	CreatedByUserID uint      `gorm:"not null" json:"created_by_user_id"`
	Amount          float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Notes           string    `gorm:"size:500" json:"notes"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index:ix_cash_withdrawals_session" json:"created_at"`
}

func (CashWithdrawal) TableName() string {
	return "cash_withdrawals"
}

// ============================================================
// Sales Tables
// ============================================================

// Sale represents sales table. Rows are immutable once committed.
type Sale struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TenantID        uint      `gorm:"index:ix_sales_tenant_created;not null" json:"tenant_id"`
	CreatedByUserID uint      `gorm:"not null" json:"created_by_user_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index:ix_sales_tenant_created" json:"created_at"`

	CustomerID   *uint  `json:"customer_id"`
	CustomerName string `gorm:"size:255" json:"customer_name"`

	PaymentMethod string  `gorm:"size:20;not null" json:"payment_method"`
	Discount      float64 `gorm:"type:decimal(15,2);default:0" json:"discount"`
	Subtotal      float64 `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	Total         float64 `gorm:"type:decimal(15,2);default:0" json:"total"`
	Margin        float64 `gorm:"type:decimal(15,2);default:0" json:"margin"`

	CashSessionID uint `gorm:"index;not null" json:"cash_session_id"`

	// Denormalized snapshot of the first line for fast listing
	ItemsCount     int      `gorm:"default:0" json:"items_count"`
	ProductID      *uint    `json:"product_id"`
	ProductName    string   `gorm:"size:255" json:"product_name"`
	ProductSKU     string   `gorm:"size:100" json:"product_sku"`
	ProductBarcode string   `gorm:"size:100" json:"product_barcode"`
	Quantity       *int     `json:"quantity"`
	UnitPrice      *float64 `gorm:"type:decimal(15,2)" json:"unit_price"`

	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

func (Sale) TableName() string {
	return "sales"
}

// SaleItem represents sale_items table. Name/SKU/prices are snapshots
// taken at sale time so later product edits don't rewrite history.
type SaleItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	TenantID  uint    `gorm:"index:ix_sale_items_tenant;not null" json:"tenant_id"`
	SaleID    uint    `gorm:"index:ix_sale_items_sale;not null" json:"sale_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	VariantID uint    `gorm:"default:0" json:"variant_id"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	SKU       string  `gorm:"size:100" json:"sku"`
	Qty       int     `gorm:"not null" json:"qty"`
	UnitPrice float64 `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	UnitCost  float64 `gorm:"type:decimal(15,2);default:0" json:"unit_cost"`
}

func (SaleItem) TableName() string {
	return "sale_items"
}

// StockMovement represents stock_movements table (append-only ledger)
type StockMovement struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TenantID        uint      `gorm:"index:ix_stock_mov_tenant_created;not null" json:"tenant_id"`
	CreatedByUserID uint      `gorm:"not null" json:"created_by_user_id"`
	ProductID       uint      `gorm:"not null" json:"product_id"`
	VariantID       uint      `gorm:"default:0" json:"variant_id"`
	Delta           int       `gorm:"not null" json:"delta"`
	Reason          string    `gorm:"size:20;not null" json:"reason"`
	Note            string    `gorm:"size:500" json:"note"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index:ix_stock_mov_tenant_created" json:"created_at"`
}

func (StockMovement) TableName() string {
	return "stock_movements"
}

// ============================================================
// Customer Table
// ============================================================

// Customer represents customers table
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"index:ix_customers_tenant;not null" json:"tenant_id"`
	Document  string    `gorm:"size:50;index" json:"document"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Address   string    `gorm:"size:255" json:"address"`
	Notes     string    `gorm:"size:500" json:"notes"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates all tables. Schema evolution beyond
// this runs as versioned migrations before the service starts.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Tenant{},
		&User{},
		&RefreshToken{},
		&Product{},
		&Variant{},
		&CashSession{},
		&CashWithdrawal{},
		&Sale{},
		&SaleItem{},
		&StockMovement{},
		&Customer{},
	)
}
