package auth

import (
	"testing"
	"time"

	"github.com/your-org/pos-backend/internal/config"
)

func testJWTManager() *JWTManager {
	cfg := &config.Config{}
	cfg.App.Name = "pos-backend-test"
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.JWT.RefreshTokenExpiry = 24 * time.Hour
	return NewJWTManager(cfg)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	jm := testJWTManager()

	token, err := jm.GenerateAccessToken(42, "cashier@example.com", RoleCashier)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := jm.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, want 42", claims.UserID)
	}
	if claims.Role != RoleCashier {
		t.Errorf("role = %q, want %q", claims.Role, RoleCashier)
	}
	if claims.TokenType != "access" {
		t.Errorf("token type = %q, want access", claims.TokenType)
	}
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	jm := testJWTManager()

	refresh, err := jm.GenerateRefreshToken(42, "cashier@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	if _, err := jm.ValidateAccessToken(refresh); err == nil {
		t.Fatal("refresh token accepted as access token")
	}
	if _, err := jm.ValidateRefreshToken(refresh); err != nil {
		t.Fatalf("ValidateRefreshToken failed: %v", err)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	jm := testJWTManager()

	token, err := jm.GenerateAccessToken(1, "a@example.com", RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	other := testJWTManager()
	other.config.JWT.Secret = "ffffffffffffffffffffffffffffffff"

	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret was accepted")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", ""},
		{"Basic abc", ""},
		{"", ""},
		{"Bearer ", ""},
	}

	for _, tt := range tests {
		if got := ExtractTokenFromHeader(tt.header); got != tt.want {
			t.Errorf("ExtractTokenFromHeader(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
