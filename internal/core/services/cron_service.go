package services

import (
	"context"
	"log"
	"time"

	"boutiqueos/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs the nightly maintenance jobs: expired refresh token
// purge and free-trial expiry sweep.
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	tenantRepo       repositories.TenantRepository
}

// NewCronService creates a new cron service
func NewCronService(
	refreshTokenRepo repositories.RefreshTokenRepository,
	tenantRepo repositories.TenantRepository,
) *CronService {
	return &CronService{
		cron:             cron.New(),
		refreshTokenRepo: refreshTokenRepo,
		tenantRepo:       tenantRepo,
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() error {
	// 03:00 every day, server local time
	if _, err := s.cron.AddFunc("0 3 * * *", s.runMaintenance); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("🚀 Cron service started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron service stopped")
}

func (s *CronService) runMaintenance() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	deleted, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Refresh token purge failed: %v", err)
	} else if deleted > 0 {
		log.Printf("✅ Purged %d expired refresh tokens", deleted)
	}

	expired, err := s.tenantRepo.DeactivateExpiredTrials(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Trial expiry sweep failed: %v", err)
	} else if expired > 0 {
		log.Printf("✅ Deactivated %d expired trial tenants", expired)
	}
}
