package repositories

import (
	"context"

	"boutiqueos/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// stockMovementRepository implements StockMovementRepository interface
type stockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository creates a new stock movement repository
func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepository{db: db}
}

// Create appends a movement to the ledger
func (r *stockMovementRepository) Create(ctx context.Context, movement *models.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// ListByTenant lists a tenant's movements, newest first
func (r *stockMovementRepository) ListByTenant(ctx context.Context, tenantID uint, limit int) ([]*models.StockMovement, error) {
	var movements []*models.StockMovement
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}
