package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleEmployee   Role = "EMPLOYEE"
)

// PlanType represents a tenant subscription plan
type PlanType string

const (
	PlanFreeTrial PlanType = "FREE_TRIAL"
	PlanMonthly   PlanType = "MONTHLY"
	PlanSemester  PlanType = "SEMESTER"
	PlanAnnual    PlanType = "ANNUAL"
)

// ValidPlan reports whether p is a known subscription plan
func ValidPlan(p PlanType) bool {
	switch p {
	case PlanFreeTrial, PlanMonthly, PlanSemester, PlanAnnual:
		return true
	}
	return false
}

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentDebit    PaymentMethod = "DEBIT"
	PaymentCredit   PaymentMethod = "CREDIT"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

// ValidPaymentMethod reports whether m is a known payment method
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentDebit, PaymentCredit, PaymentTransfer:
		return true
	}
	return false
}

// CashStatus represents the lifecycle state of a register session
type CashStatus string

const (
	CashOpen   CashStatus = "OPEN"
	CashClosed CashStatus = "CLOSED"
)

// StockReason explains a stock movement
type StockReason string

const (
	StockReasonSale        StockReason = "SALE"
	StockReasonAdjustment  StockReason = "ADJUSTMENT"
	StockReasonInbound     StockReason = "INBOUND"
	StockReasonOutbound    StockReason = "OUTBOUND"
	StockReasonReservation StockReason = "RESERVATION"
)

// User represents a user in the domain layer. TenantID nil means super admin.
type User struct {
	ID        uint
	TenantID  *uint
	Role      Role
	Name      string
	Email     string
	Password  string // Hashed
	Active    bool
	CreatedAt time.Time
}

// Tenant represents one boutique account, the unit of data isolation
type Tenant struct {
	ID        uint
	Name      string
	Slug      string
	Plan      PlanType
	TrialEnd  *time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	JTI       string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SaleLine is the canonical line-item shape every sale request is
// normalized into before the transaction processor runs. Legacy
// single-product payloads become a one-element slice at the API boundary.
type SaleLine struct {
	ProductID uint
	VariantID uint // 0 = sold at product level
	Quantity  int
	UnitPrice *float64 // nil = use catalog price
}
