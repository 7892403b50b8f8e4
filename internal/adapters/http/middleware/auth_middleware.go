package middleware

import (
	"strings"

	"boutiqueos/internal/adapters/persistence/repositories"
	"boutiqueos/internal/config"
	"boutiqueos/internal/core/domain"
	"boutiqueos/internal/pkg/jwt"
	"boutiqueos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware. The access token
// is taken from the cookie first, then the Authorization header. The
// principal is loaded from the database on every call, so deactivated
// or deleted users lose access immediately instead of at token expiry.
func AuthMiddleware(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies("access_token")

		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		user, err := userRepo.GetByID(c.Context(), claims.UserID)
		if err != nil {
			return response.Unauthorized(c, "User account not found")
		}
		if !user.Active {
			return response.Unauthorized(c, "User account is inactive")
		}

		// Current database row wins over token claims, so role or
		// tenant changes also take effect on the next call
		c.Locals("userID", user.ID)
		c.Locals("tenantID", user.TenantID)
		c.Locals("email", user.Email)
		c.Locals("role", user.Role)

		return c.Next()
	}
}

// RequireAction authorizes by capability instead of by role name, so
// route declarations read as what they protect.
func RequireAction(action domain.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		if !domain.Can(domain.Role(role), action) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// RequireTenantUser rejects principals that are not bound to a tenant.
// Super admins manage tenants; they don't operate inside one.
func RequireTenantUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, ok := c.Locals("tenantID").(*uint)
		if !ok || tenantID == nil {
			return response.Forbidden(c, "This resource requires a tenant account")
		}
		return c.Next()
	}
}

// TenantID reads the tenant ID the auth middleware stored. Handlers
// behind RequireTenantUser can rely on ok being true.
func TenantID(c *fiber.Ctx) (uint, bool) {
	tenantID, ok := c.Locals("tenantID").(*uint)
	if !ok || tenantID == nil {
		return 0, false
	}
	return *tenantID, true
}

// UserID reads the user ID the auth middleware stored
func UserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}

// UserRole reads the role the auth middleware stored
func UserRole(c *fiber.Ctx) domain.Role {
	role, _ := c.Locals("role").(string)
	return domain.Role(role)
}
