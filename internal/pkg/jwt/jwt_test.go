package jwt

import (
	"errors"
	"testing"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tenantID := uint(7)
	token, err := GenerateAccessToken(42, &tenantID, "owner@boutique.test", "ADMIN", testSecret, 15)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user_id = %d, want 42", claims.UserID)
	}
	if claims.TenantID == nil || *claims.TenantID != 7 {
		t.Errorf("tenant_id = %v, want 7", claims.TenantID)
	}
	if claims.Role != "ADMIN" {
		t.Errorf("role = %s, want ADMIN", claims.Role)
	}
}

func TestAccessTokenNilTenant(t *testing.T) {
	token, err := GenerateAccessToken(1, nil, "root@platform.test", "SUPER_ADMIN", testSecret, 15)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.TenantID != nil {
		t.Errorf("tenant_id = %v, want nil for super admin", claims.TenantID)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, nil, "a@b.test", "ADMIN", testSecret, 15)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ValidateAccessToken(token, "another-secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(1, nil, "a@b.test", "ADMIN", testSecret, -1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ValidateAccessToken(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(9, "jti-abc", testSecret, 7)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ValidateRefreshToken(token, testSecret)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != 9 {
		t.Errorf("user_id = %d, want 9", claims.UserID)
	}
	if claims.TokenID != "jti-abc" {
		t.Errorf("token_id = %s, want jti-abc", claims.TokenID)
	}
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	refresh, err := GenerateRefreshToken(9, "jti-abc", "refresh-secret", 7)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// different secret pools keep the token kinds apart
	if _, err := ValidateAccessToken(refresh, testSecret); err == nil {
		t.Error("refresh token validated as access token")
	}
}
