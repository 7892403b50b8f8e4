package repositories

import (
	"context"

	"boutiqueos/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// customerRepository implements CustomerRepository interface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create creates a new customer
func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// GetByID gets a customer scoped to one tenant
func (r *customerRepository) GetByID(ctx context.Context, tenantID, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update updates a customer
func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// List lists a tenant's customers, optionally filtered, newest first
func (r *customerRepository) List(ctx context.Context, tenantID uint, search string, limit int) ([]*models.Customer, error) {
	var customers []*models.Customer
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR document LIKE ? OR phone LIKE ?", like, like, like)
	}
	err := q.Order("created_at DESC").Limit(limit).Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// Search finds customers for the cashier lookup box. An exact document
// match wins over partial matches so scanning an ID lands on one row.
func (r *customerRepository) Search(ctx context.Context, tenantID uint, query string, limit int) ([]*models.Customer, error) {
	var exact []*models.Customer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND document = ?", tenantID, query).
		Limit(limit).
		Find(&exact).Error
	if err != nil {
		return nil, err
	}
	if len(exact) > 0 {
		return exact, nil
	}

	var customers []*models.Customer
	like := "%" + query + "%"
	err = r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("name LIKE ? OR document LIKE ? OR phone LIKE ?", like, like, like).
		Order("name ASC").
		Limit(limit).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// ExistsByDocument checks document uniqueness inside one tenant
func (r *customerRepository) ExistsByDocument(ctx context.Context, tenantID uint, document string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("tenant_id = ? AND document = ?", tenantID, document)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}
