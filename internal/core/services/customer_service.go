package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/adapters/persistence/repositories"
	"boutiqueos/internal/core/domain"

	"gorm.io/gorm"
)

// CustomerService handles customer directory business logic
type CustomerService struct {
	customerRepo repositories.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents customer creation input
type CreateCustomerInput struct {
	Document string `json:"document"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
}

// UpdateCustomerInput represents a partial customer patch
type UpdateCustomerInput struct {
	Document *string `json:"document"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
	Active   *bool   `json:"active"`
}

// NormalizeDocument strips spaces, dots and dashes from an identity
// document so lookups match however the cashier typed it.
func NormalizeDocument(doc string) string {
	doc = strings.TrimSpace(doc)
	replacer := strings.NewReplacer(" ", "", ".", "", "-", "")
	return replacer.Replace(doc)
}

// Create creates a customer. Documents are unique inside a tenant.
func (s *CustomerService) Create(ctx context.Context, tenantID uint, input *CreateCustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	document := NormalizeDocument(input.Document)
	if document != "" {
		exists, err := s.customerRepo.ExistsByDocument(ctx, tenantID, document, 0)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateDocument
		}
	}

	customer := &models.Customer{
		TenantID: tenantID,
		Document: document,
		Name:     name,
		Email:    strings.TrimSpace(input.Email),
		Phone:    strings.TrimSpace(input.Phone),
		Address:  strings.TrimSpace(input.Address),
		Notes:    strings.TrimSpace(input.Notes),
		Active:   true,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	log.Printf("✅ Customer created: %s (tenant: %d)", customer.Name, tenantID)
	return customer, nil
}

// Get gets a customer by ID within a tenant
func (s *CustomerService) Get(ctx context.Context, tenantID, id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

// Update applies a partial patch to a customer
func (s *CustomerService) Update(ctx context.Context, tenantID, id uint, input *UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if input.Document != nil {
		document := NormalizeDocument(*input.Document)
		if document != "" && document != customer.Document {
			exists, err := s.customerRepo.ExistsByDocument(ctx, tenantID, document, customer.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrDuplicateDocument
			}
		}
		customer.Document = document
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		customer.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		customer.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		customer.Address = strings.TrimSpace(*input.Address)
	}
	if input.Notes != nil {
		customer.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.Active != nil {
		customer.Active = *input.Active
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// List lists a tenant's customers with an optional search filter
func (s *CustomerService) List(ctx context.Context, tenantID uint, search string, limit int) ([]*models.Customer, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	return s.customerRepo.List(ctx, tenantID, strings.TrimSpace(search), limit)
}

// Search finds customers for the cashier lookup box
func (s *CustomerService) Search(ctx context.Context, tenantID uint, query string) ([]*models.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.Customer{}, nil
	}
	if doc := NormalizeDocument(query); doc != query {
		results, err := s.customerRepo.Search(ctx, tenantID, doc, 20)
		if err != nil {
			return nil, err
		}
		if len(results) > 0 {
			return results, nil
		}
	}
	return s.customerRepo.Search(ctx, tenantID, query, 20)
}
