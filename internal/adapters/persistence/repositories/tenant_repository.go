package repositories

import (
	"context"
	"time"

	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/core/domain"

	"gorm.io/gorm"
)

// tenantRepository implements TenantRepository interface
type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

// Create creates a new tenant
func (r *tenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Create(tenant).Error
}

// GetByID gets a tenant by ID
func (r *tenantRepository) GetByID(ctx context.Context, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetBySlug gets a tenant by slug
func (r *tenantRepository) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Update updates a tenant
func (r *tenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Save(tenant).Error
}

// List lists all tenants, newest first
func (r *tenantRepository) List(ctx context.Context) ([]*models.Tenant, error) {
	var tenants []*models.Tenant
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tenants).Error
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

// ExistsBySlug checks if slug exists
func (r *tenantRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Tenant{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// DeactivateExpiredTrials disables FREE_TRIAL tenants past their trial end
func (r *tenantRepository) DeactivateExpiredTrials(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("plan = ?", string(domain.PlanFreeTrial)).
		Where("is_active = ?", true).
		Where("trial_end IS NOT NULL AND trial_end < ?", now).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}
