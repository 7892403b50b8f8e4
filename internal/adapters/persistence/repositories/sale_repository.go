package repositories

import (
	"context"

	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/core/domain"

	"gorm.io/gorm"
)

// saleRepository implements SaleRepository interface
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

// CreateAtomic persists the sale, its items, the stock movements and
// the stock decrements in one transaction. Decrements are relative
// UPDATEs guarded by a stock check, so two concurrent sales of the
// same item cannot drive stock negative: the loser sees zero rows
// updated and the whole transaction rolls back.
func (r *saleRepository) CreateAtomic(ctx context.Context, sale *models.Sale, items []models.SaleItem, movements []models.StockMovement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(sale).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].SaleID = sale.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		for i := range items {
			it := &items[i]
			var res *gorm.DB
			if it.VariantID > 0 {
				res = tx.Model(&models.Variant{}).
					Where("id = ? AND tenant_id = ? AND stock >= ?", it.VariantID, it.TenantID, it.Qty).
					Update("stock", gorm.Expr("stock - ?", it.Qty))
			} else {
				res = tx.Model(&models.Product{}).
					Where("id = ? AND tenant_id = ? AND stock >= ?", it.ProductID, it.TenantID, it.Qty).
					Update("stock", gorm.Expr("stock - ?", it.Qty))
			}
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return domain.ErrInsufficientStock
			}
		}

		if len(movements) > 0 {
			if err := tx.Create(&movements).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// List lists a tenant's sales with items, newest first
func (r *saleRepository) List(ctx context.Context, tenantID uint, offset, limit int) ([]*models.Sale, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("tenant_id = ?", tenantID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var sales []*models.Sale
	err = r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&sales).Error
	if err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}
