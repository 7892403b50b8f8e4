package config

import (
	"log"
	"time"

	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/core/domain"
	"boutiqueos/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedSuperAdmin(); err != nil {
		log.Printf("⚠️ Super admin seeder skipped: %v", err)
	}
	if s.cfg.IsDev() {
		if err := s.seedDemoTenant(); err != nil {
			log.Printf("⚠️ Demo tenant seeder skipped: %v", err)
		}
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedSuperAdmin creates the platform super admin if none exists.
// Credentials come from the environment in production.
func (s *Seeder) seedSuperAdmin() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleSuperAdmin)).Count(&count)
	if count > 0 {
		return nil
	}

	email := getEnv("SUPER_ADMIN_EMAIL", "admin@boutiqueos.local")
	hashed, err := password.Hash(getEnv("SUPER_ADMIN_PASSWORD", "admin123456"))
	if err != nil {
		return err
	}

	// Seeded credentials come from the environment, so a rotation is
	// forced on first login
	admin := &models.User{
		TenantID:           nil,
		Role:               string(domain.RoleSuperAdmin),
		Name:               "Platform Admin",
		Email:              email,
		Password:           hashed,
		Active:             true,
		MustChangePassword: true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Super admin created: %s", admin.Email)
	return nil
}

// seedDemoTenant creates a demo boutique for local development
func (s *Seeder) seedDemoTenant() error {
	var count int64
	s.db.Model(&models.Tenant{}).Where("slug = ?", "demo").Count(&count)
	if count > 0 {
		return nil
	}

	trialEnd := time.Now().AddDate(0, 0, s.cfg.Tenant.TrialDays)
	tenant := &models.Tenant{
		Name:     "Demo Boutique",
		Slug:     "demo",
		Plan:     string(domain.PlanFreeTrial),
		TrialEnd: &trialEnd,
		IsActive: true,
	}
	if err := s.db.Create(tenant).Error; err != nil {
		return err
	}

	hashed, err := password.Hash("demo123456")
	if err != nil {
		return err
	}
	admin := &models.User{
		TenantID:           &tenant.ID,
		Role:               string(domain.RoleAdmin),
		Name:               "Demo Admin",
		Email:              "demo@boutiqueos.local",
		Password:           hashed,
		Active:             true,
		MustChangePassword: true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Demo tenant created: %s (admin: %s)", tenant.Slug, admin.Email)
	return nil
}
