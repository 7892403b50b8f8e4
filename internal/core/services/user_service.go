package services

import (
	"context"
	"log"
	"strings"

	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/adapters/persistence/repositories"
	"boutiqueos/internal/core/domain"
	"boutiqueos/internal/pkg/password"
)

// UserService handles employee management inside one tenant
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateEmployeeInput represents employee creation input
type CreateEmployeeInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
}

// CreateEmployee creates a tenant user with role ADMIN or EMPLOYEE
func (s *UserService) CreateEmployee(ctx context.Context, tenantID uint, input *CreateEmployeeInput) (*models.UserResponse, error) {
	role := domain.Role(input.Role)
	if input.Role == "" {
		role = domain.RoleEmployee
	}
	if role != domain.RoleAdmin && role != domain.RoleEmployee {
		return nil, domain.ErrInvalidInput
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	if !password.Validate(input.Password) {
		return nil, domain.ErrInvalidInput
	}
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		TenantID: &tenantID,
		Role:     string(role),
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hashed,
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Employee created: %s (tenant: %d, role: %s)", user.Email, tenantID, user.Role)
	return user.ToResponse(), nil
}

// ListEmployees lists a tenant's users
func (s *UserService) ListEmployees(ctx context.Context, tenantID uint) ([]*models.UserResponse, error) {
	users, err := s.userRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return responses, nil
}
