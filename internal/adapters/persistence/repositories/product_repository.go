package repositories

import (
	"context"

	"boutiqueos/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// productRepository implements ProductRepository interface
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create creates a product together with its variants
func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// GetByID gets a product scoped to one tenant, variants preloaded
func (r *productRepository) GetByID(ctx context.Context, tenantID, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Update updates a product
func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: false}).
		Save(product).Error
}

// ListByTenant lists a tenant's products with variants, newest first
func (r *productRepository) ListByTenant(ctx context.Context, tenantID uint) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Search finds products by name, sku, barcode, category or the sku of
// any of their variants. Variants are joined so scanning a variant
// barcode label at the counter still resolves the parent product.
func (r *productRepository) Search(ctx context.Context, tenantID uint, query string, limit int) ([]*models.Product, error) {
	var products []*models.Product
	like := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Distinct("products.*").
		Joins("LEFT JOIN variants ON variants.product_id = products.id").
		Where("products.tenant_id = ?", tenantID).
		Where("products.name LIKE ? OR products.sku LIKE ? OR products.barcode LIKE ? OR products.category LIKE ? OR variants.sku LIKE ?",
			like, like, like, like, like).
		Order("products.name ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
