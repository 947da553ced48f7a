package auth

import (
	"strings"
	"testing"

	"github.com/your-org/pos-backend/internal/config"
)

func testPasswordManager() *PasswordManager {
	cfg := &config.Config{}
	cfg.Security.BcryptCost = 4 // minimum cost keeps tests fast
	return NewPasswordManager(cfg)
}

func TestValidatePassword(t *testing.T) {
	pm := testPasswordManager()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Cashier123", false},
		{"too short", "Ab1", true},
		{"too long", strings.Repeat("Aa1", 50), true},
		{"no uppercase", "cashier123", true},
		{"no lowercase", "CASHIER123", true},
		{"no number", "CashierPass", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pm.ValidatePassword(tt.password)
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	pm := testPasswordManager()

	hash, err := pm.HashPassword("Cashier123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "Cashier123" {
		t.Fatal("hash must not equal the plain password")
	}

	if err := pm.VerifyPassword("Cashier123", hash); err != nil {
		t.Fatalf("VerifyPassword rejected the correct password: %v", err)
	}
	if err := pm.VerifyPassword("WrongPass1", hash); err == nil {
		t.Fatal("VerifyPassword accepted a wrong password")
	}
}

func TestHashPasswordRejectsWeak(t *testing.T) {
	pm := testPasswordManager()

	if _, err := pm.HashPassword("weak"); err == nil {
		t.Fatal("expected weak password to be rejected")
	}
}
