package repositories

import (
	"context"

	"boutiqueos/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// variantRepository implements VariantRepository interface
type variantRepository struct {
	db *gorm.DB
}

// NewVariantRepository creates a new variant repository
func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

// GetByID gets a variant scoped to one tenant
func (r *variantRepository) GetByID(ctx context.Context, tenantID, id uint) (*models.Variant, error) {
	var variant models.Variant
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// Update updates a variant
func (r *variantRepository) Update(ctx context.Context, variant *models.Variant) error {
	return r.db.WithContext(ctx).Save(variant).Error
}

// ExistsBySKU checks SKU uniqueness inside one tenant, skipping excludeID
func (r *variantRepository) ExistsBySKU(ctx context.Context, tenantID uint, sku string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Variant{}).
		Where("tenant_id = ? AND sku = ?", tenantID, sku)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// ListByTenant lists all variants of a tenant
func (r *variantRepository) ListByTenant(ctx context.Context, tenantID uint) ([]*models.Variant, error) {
	var variants []*models.Variant
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("product_id ASC, id ASC").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

// AdjustStock applies a relative stock change in one UPDATE
func (r *variantRepository) AdjustStock(ctx context.Context, id uint, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.Variant{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}
