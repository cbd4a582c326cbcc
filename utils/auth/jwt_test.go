package auth

import (
	"testing"
	"time"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "portal-test",
	})
}

func TestAccessTokenRoundtrip(t *testing.T) {
	m := testManager()

	token, jti, err := m.GenerateAccessToken(42, "admin", "upsight_staff", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a non-empty JTI")
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "admin" || claims.Role != "upsight_staff" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %s", claims.TokenType)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("TokenVersion = %d", claims.TokenVersion)
	}
	if claims.ID != jti {
		t.Error("claims JTI should match the returned JTI")
	}

	gotJTI, err := m.GetJTI(token)
	if err != nil || gotJTI != jti {
		t.Errorf("GetJTI = %q, %v", gotJTI, err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := testManager()
	token, _, err := m.GenerateAccessToken(1, "user", "university_staff", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	other := NewJWTManager(JWTConfig{Secret: "different-secret", Expiry: time.Hour})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with another secret should not validate")
	}

	if _, err := m.ValidateToken("not.a.token"); err == nil {
		t.Error("garbage should not validate")
	}
}

func TestExpiredToken(t *testing.T) {
	m := NewJWTManager(JWTConfig{Secret: "test-secret", Expiry: -time.Minute})
	token, _, err := m.GenerateAccessToken(1, "user", "upsight_staff", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := m.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
	if !m.IsTokenExpired(token) {
		t.Error("IsTokenExpired should report true")
	}
}

func TestRefreshAccessToken(t *testing.T) {
	m := testManager()

	refresh, _, err := m.GenerateRefreshToken(7, "manager", "university_staff", 1)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	access, _, err := m.RefreshAccessToken(refresh, 1)
	if err != nil {
		t.Fatalf("RefreshAccessToken failed: %v", err)
	}

	claims, err := m.ValidateToken(access)
	if err != nil {
		t.Fatalf("new access token should validate: %v", err)
	}
	if claims.TokenType != "access" || claims.UserID != 7 {
		t.Errorf("unexpected claims: %+v", claims)
	}

	// An access token must not work as a refresh token.
	if _, _, err := m.RefreshAccessToken(access, 1); err == nil {
		t.Error("access token should be rejected by RefreshAccessToken")
	}
}
