package repositories

import (
	"context"

	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/core/domain"

	"gorm.io/gorm"
)

// cashRepository implements CashRepository interface
type cashRepository struct {
	db *gorm.DB
}

// NewCashRepository creates a new cash repository
func NewCashRepository(db *gorm.DB) CashRepository {
	return &cashRepository{db: db}
}

// Create creates a new cash session
func (r *cashRepository) Create(ctx context.Context, session *models.CashSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByID gets a cash session scoped to one tenant
func (r *cashRepository) GetByID(ctx context.Context, tenantID, id uint) (*models.CashSession, error) {
	var session models.CashSession
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetOpenByTenant gets the tenant's open session if one exists
func (r *cashRepository) GetOpenByTenant(ctx context.Context, tenantID uint) (*models.CashSession, error) {
	var session models.CashSession
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, string(domain.CashOpen)).
		Order("opened_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Update updates a cash session
func (r *cashRepository) Update(ctx context.Context, session *models.CashSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// CreateWithdrawal records a withdrawal against a session
func (r *cashRepository) CreateWithdrawal(ctx context.Context, w *models.CashWithdrawal) error {
	return r.db.WithContext(ctx).Create(w).Error
}

// ListWithdrawals lists a session's withdrawals, oldest first
func (r *cashRepository) ListWithdrawals(ctx context.Context, tenantID, sessionID uint) ([]*models.CashWithdrawal, error) {
	var withdrawals []*models.CashWithdrawal
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND cash_session_id = ?", tenantID, sessionID).
		Order("created_at ASC").
		Find(&withdrawals).Error
	if err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// SumWithdrawals sums all withdrawal amounts of a session
func (r *cashRepository) SumWithdrawals(ctx context.Context, sessionID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.CashWithdrawal{}).
		Where("cash_session_id = ?", sessionID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// SalesByPaymentMethod totals a session's sales grouped by payment method
func (r *cashRepository) SalesByPaymentMethod(ctx context.Context, sessionID uint) (map[string]float64, error) {
	type row struct {
		PaymentMethod string
		Total         float64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("cash_session_id = ?", sessionID).
		Select("payment_method, COALESCE(SUM(total), 0) AS total").
		Group("payment_method").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(rows))
	for _, rr := range rows {
		totals[rr.PaymentMethod] = rr.Total
	}
	return totals, nil
}
