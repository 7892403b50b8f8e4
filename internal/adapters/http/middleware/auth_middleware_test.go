package middleware

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"boutiqueos/internal/adapters/persistence/models"
	"boutiqueos/internal/config"
	"boutiqueos/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const testSecret = "middleware-test-secret"

type stubUserRepo struct {
	users map[uint]*models.User
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) ListByTenant(_ context.Context, tenantID uint) ([]*models.User, error) {
	return nil, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(nil, email)
	return err == nil, nil
}

func (r *stubUserRepo) GetTenantAdmin(_ context.Context, tenantID uint) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func newAuthTestApp(repo *stubUserRepo) *fiber.App {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	app := fiber.New()
	app.Get("/protected", AuthMiddleware(cfg, repo), func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		return c.SendString("role=" + role)
	})
	return app
}

func accessTokenFor(t *testing.T, userID uint) string {
	t.Helper()
	tenantID := uint(1)
	token, err := jwt.GenerateAccessToken(userID, &tenantID, "clerk@shop.test", "EMPLOYEE", testSecret, 15)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestAuthMiddlewareAllowsActiveUser(t *testing.T) {
	tenantID := uint(1)
	repo := newStubUserRepo(&models.User{
		ID:       42,
		TenantID: &tenantID,
		Role:     "EMPLOYEE",
		Email:    "clerk@shop.test",
		Active:   true,
	})
	app := newAuthTestApp(repo)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, 42))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestAuthMiddlewareRejectsDeactivatedUser(t *testing.T) {
	tenantID := uint(1)
	repo := newStubUserRepo(&models.User{
		ID:       42,
		TenantID: &tenantID,
		Role:     "EMPLOYEE",
		Email:    "clerk@shop.test",
		Active:   false,
	})
	app := newAuthTestApp(repo)

	// Token was issued while the user was still active; the next
	// authenticated call must reject it anyway
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, 42))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for deactivated user", resp.StatusCode)
	}
}

func TestAuthMiddlewareRejectsDeletedUser(t *testing.T) {
	app := newAuthTestApp(newStubUserRepo())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, 42))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for deleted user", resp.StatusCode)
	}
}

func TestAuthMiddlewareRequiresToken(t *testing.T) {
	app := newAuthTestApp(newStubUserRepo())

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without a token", resp.StatusCode)
	}
}

func TestAuthMiddlewareUsesCurrentRole(t *testing.T) {
	tenantID := uint(1)
	repo := newStubUserRepo(&models.User{
		ID:       42,
		TenantID: &tenantID,
		Role:     "ADMIN",
		Email:    "clerk@shop.test",
		Active:   true,
	})
	app := newAuthTestApp(repo)

	// Claims say EMPLOYEE; the database row says ADMIN and wins
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, 42))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if got := string(body); got != "role=ADMIN" {
		t.Errorf("body = %q, want role=ADMIN from the database row", got)
	}
}
