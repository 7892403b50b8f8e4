package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/config"
	"boutiqueos/internal/core/domain"
)

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Boutique Bella", "boutique-bella"},
		{"  demo  ", "demo"},
		{"café-moda", "caf-moda"},
		{"UPPER_case!", "uppercase"},
		{"already-clean-1", "already-clean-1"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := NormalizeSlug(tt.in); got != tt.want {
			t.Errorf("NormalizeSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func newTenantTestService() (*TenantService, *fakeTenantRepo, *fakeUserRepo) {
	tenantRepo := newFakeTenantRepo()
	userRepo := newFakeUserRepo()
	cfg := &config.Config{AppMode: "dev", Tenant: config.TenantConfig{TrialDays: 30}}
	return NewTenantService(tenantRepo, userRepo, cfg), tenantRepo, userRepo
}

func TestCreateTenantProvisionsAdmin(t *testing.T) {
	svc, tenantRepo, userRepo := newTenantTestService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, &CreateTenantInput{
		Name:          "Boutique Bella",
		Slug:          "Boutique Bella",
		AdminName:     "Bella Owner",
		AdminEmail:    "Bella@Shop.Test",
		AdminPassword: "secret123",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if resp.Slug != "boutique-bella" {
		t.Errorf("slug = %q, want boutique-bella", resp.Slug)
	}
	if resp.Plan != string(domain.PlanFreeTrial) {
		t.Errorf("plan = %s, want FREE_TRIAL by default", resp.Plan)
	}
	if resp.TrialEnd == nil {
		t.Error("trial plan must set a trial deadline")
	}
	if resp.AdminEmail != "bella@shop.test" {
		t.Errorf("admin email = %q, want lowercased", resp.AdminEmail)
	}

	admin, err := userRepo.GetTenantAdmin(ctx, resp.ID)
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if admin.Password == "secret123" {
		t.Error("admin password stored in plaintext")
	}
	if !admin.MustChangePassword {
		t.Error("provisioned admin must rotate the handed-out password")
	}

	if _, err := tenantRepo.GetBySlug(ctx, "boutique-bella"); err != nil {
		t.Errorf("tenant not persisted: %v", err)
	}
}

func TestCreateTenantConflicts(t *testing.T) {
	svc, _, _ := newTenantTestService()
	ctx := context.Background()

	input := &CreateTenantInput{
		Name:          "Boutique",
		Slug:          "boutique",
		AdminName:     "Owner",
		AdminEmail:    "owner@shop.test",
		AdminPassword: "secret123",
	}
	if _, err := svc.Create(ctx, input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	if _, err := svc.Create(ctx, input); !errors.Is(err, domain.ErrSlugTaken) {
		t.Fatalf("dup slug: err = %v, want ErrSlugTaken", err)
	}

	other := *input
	other.Slug = "boutique-two"
	if _, err := svc.Create(ctx, &other); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("dup email: err = %v, want ErrEmailTaken", err)
	}
}

func TestCreateTenantPaidPlanHasNoTrial(t *testing.T) {
	svc, _, _ := newTenantTestService()

	resp, err := svc.Create(context.Background(), &CreateTenantInput{
		Name:          "Paid Shop",
		Slug:          "paid-shop",
		Plan:          string(domain.PlanAnnual),
		AdminName:     "Owner",
		AdminEmail:    "paid@shop.test",
		AdminPassword: "secret123",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if resp.TrialEnd != nil {
		t.Error("paid plan must not carry a trial deadline")
	}
}

func TestChangePlanReactivatesTenant(t *testing.T) {
	svc, tenantRepo, _ := newTenantTestService()
	ctx := context.Background()

	past := time.Now().AddDate(0, 0, -1)
	tenant := &models.Tenant{Name: "Expired", Slug: "expired", Plan: string(domain.PlanFreeTrial), TrialEnd: &past, IsActive: false}
	if err := tenantRepo.Create(ctx, tenant); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	resp, err := svc.ChangePlan(ctx, tenant.ID, string(domain.PlanMonthly))
	if err != nil {
		t.Fatalf("change plan failed: %v", err)
	}
	if !resp.IsActive {
		t.Error("paid plan change must reactivate the tenant")
	}
	if resp.TrialEnd != nil {
		t.Error("paid plan must clear the trial deadline")
	}

	if _, err := svc.ChangePlan(ctx, tenant.ID, "GOLD"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unknown plan: err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.ChangePlan(ctx, 999, string(domain.PlanMonthly)); !errors.Is(err, domain.ErrTenantNotFound) {
		t.Fatalf("unknown tenant: err = %v, want ErrTenantNotFound", err)
	}
}

func TestDeactivateExpiredTrials(t *testing.T) {
	svc, tenantRepo, _ := newTenantTestService()
	ctx := context.Background()

	past := time.Now().AddDate(0, 0, -1)
	future := time.Now().AddDate(0, 0, 10)
	expired := &models.Tenant{Name: "A", Slug: "a", Plan: string(domain.PlanFreeTrial), TrialEnd: &past, IsActive: true}
	running := &models.Tenant{Name: "B", Slug: "b", Plan: string(domain.PlanFreeTrial), TrialEnd: &future, IsActive: true}
	paid := &models.Tenant{Name: "C", Slug: "c", Plan: string(domain.PlanMonthly), IsActive: true}
	for _, tn := range []*models.Tenant{expired, running, paid} {
		if err := tenantRepo.Create(ctx, tn); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	n, err := svc.DeactivateExpiredTrials(ctx)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deactivated = %d, want 1", n)
	}

	got, _ := tenantRepo.GetByID(ctx, expired.ID)
	if got.IsActive {
		t.Error("expired trial still active")
	}
	got, _ = tenantRepo.GetByID(ctx, running.ID)
	if !got.IsActive {
		t.Error("running trial deactivated")
	}
	got, _ = tenantRepo.GetByID(ctx, paid.ID)
	if !got.IsActive {
		t.Error("paid tenant deactivated")
	}
}
