package services

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/adapters/persistence/repositories"
	"boutiqueos/internal/config"
	"boutiqueos/internal/core/domain"
	"boutiqueos/internal/pkg/password"

	"gorm.io/gorm"
)

// TenantService handles tenant provisioning and plan management
type TenantService struct {
	tenantRepo repositories.TenantRepository
	userRepo   repositories.UserRepository
	cfg        *config.Config
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo repositories.TenantRepository,
	userRepo repositories.UserRepository,
	cfg *config.Config,
) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		cfg:        cfg,
	}
}

// CreateTenantInput represents tenant provisioning input. The tenant
// and its first admin user are created together.
type CreateTenantInput struct {
	Name          string `json:"name" validate:"required"`
	Slug          string `json:"slug" validate:"required"`
	Plan          string `json:"plan"`
	AdminName     string `json:"admin_name" validate:"required"`
	AdminEmail    string `json:"admin_email" validate:"required,email"`
	AdminPassword string `json:"admin_password" validate:"required,min=6"`
}

// UpdateTenantInput represents a partial tenant patch
type UpdateTenantInput struct {
	Name     *string `json:"name"`
	Plan     *string `json:"plan"`
	IsActive *bool   `json:"is_active"`
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9-]+`)

// NormalizeSlug lowercases and strips a slug down to [a-z0-9-]
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	return slugCleaner.ReplaceAllString(s, "")
}

// Create provisions a tenant and its admin user
func (s *TenantService) Create(ctx context.Context, input *CreateTenantInput) (*models.TenantResponse, error) {
	slug := NormalizeSlug(input.Slug)
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}

	plan := domain.PlanType(input.Plan)
	if input.Plan == "" {
		plan = domain.PlanFreeTrial
	}
	if !domain.ValidPlan(plan) {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.tenantRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrSlugTaken
	}

	adminEmail := strings.ToLower(strings.TrimSpace(input.AdminEmail))
	exists, err = s.userRepo.ExistsByEmail(ctx, adminEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	if !password.Validate(input.AdminPassword) {
		return nil, domain.ErrInvalidInput
	}
	hashed, err := password.Hash(input.AdminPassword)
	if err != nil {
		return nil, err
	}

	tenant := &models.Tenant{
		Name:     strings.TrimSpace(input.Name),
		Slug:     slug,
		Plan:     string(plan),
		IsActive: true,
	}
	if plan == domain.PlanFreeTrial {
		trialEnd := time.Now().AddDate(0, 0, s.cfg.Tenant.TrialDays)
		tenant.TrialEnd = &trialEnd
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	// The first admin's password is handed out by whoever provisioned
	// the tenant, so a rotation is forced on first login
	admin := &models.User{
		TenantID:           &tenant.ID,
		Role:               string(domain.RoleAdmin),
		Name:               strings.TrimSpace(input.AdminName),
		Email:              adminEmail,
		Password:           hashed,
		Active:             true,
		MustChangePassword: true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	log.Printf("✅ Tenant created: %s (slug: %s, plan: %s)", tenant.Name, tenant.Slug, tenant.Plan)

	resp := tenant.ToResponse()
	resp.AdminName = admin.Name
	resp.AdminEmail = admin.Email
	return resp, nil
}

// List lists all tenants with their admin contact joined in
func (s *TenantService) List(ctx context.Context) ([]*models.TenantResponse, error) {
	tenants, err := s.tenantRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		resp := t.ToResponse()
		if admin, err := s.userRepo.GetTenantAdmin(ctx, t.ID); err == nil {
			resp.AdminName = admin.Name
			resp.AdminEmail = admin.Email
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Get gets one tenant by ID
func (s *TenantService) Get(ctx context.Context, id uint) (*models.TenantResponse, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, err
	}
	return tenant.ToResponse(), nil
}

// Update applies a partial patch to a tenant
func (s *TenantService) Update(ctx context.Context, id uint, input *UpdateTenantInput) (*models.TenantResponse, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		tenant.Name = strings.TrimSpace(*input.Name)
	}
	if input.Plan != nil {
		if !domain.ValidPlan(domain.PlanType(*input.Plan)) {
			return nil, domain.ErrInvalidInput
		}
		s.applyPlan(tenant, domain.PlanType(*input.Plan))
	}
	if input.IsActive != nil {
		tenant.IsActive = *input.IsActive
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant.ToResponse(), nil
}

// ChangePlan switches a tenant to a new plan. Moving onto a paid plan
// reactivates a tenant whose trial ran out.
func (s *TenantService) ChangePlan(ctx context.Context, id uint, plan string) (*models.TenantResponse, error) {
	p := domain.PlanType(plan)
	if !domain.ValidPlan(p) {
		return nil, domain.ErrInvalidInput
	}

	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, err
	}

	s.applyPlan(tenant, p)
	tenant.IsActive = true

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	log.Printf("✅ Tenant %d plan changed to %s", tenant.ID, tenant.Plan)
	return tenant.ToResponse(), nil
}

// DeactivateExpiredTrials disables trial tenants past their deadline
func (s *TenantService) DeactivateExpiredTrials(ctx context.Context) (int64, error) {
	return s.tenantRepo.DeactivateExpiredTrials(ctx, time.Now())
}

func (s *TenantService) applyPlan(tenant *models.Tenant, plan domain.PlanType) {
	tenant.Plan = string(plan)
	if plan == domain.PlanFreeTrial {
		trialEnd := time.Now().AddDate(0, 0, s.cfg.Tenant.TrialDays)
		tenant.TrialEnd = &trialEnd
	} else {
		tenant.TrialEnd = nil
	}
}
