package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.Database.Host = "localhost"
	cfg.Database.Name = "pos"
	cfg.Database.User = "pos"
	cfg.Redis.Host = "localhost"
	cfg.Server.Port = "8080"
	cfg.Returns.WindowDays = 30
	cfg.Alerts.LowStockThreshold = 10
	cfg.Alerts.CriticalStockThreshold = 5
	return cfg
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"short jwt secret", func(c *Config) { c.JWT.Secret = "short" }},
		{"missing db host", func(c *Config) { c.Database.Host = "" }},
		{"missing db name", func(c *Config) { c.Database.Name = "" }},
		{"missing redis host", func(c *Config) { c.Redis.Host = "" }},
		{"missing port", func(c *Config) { c.Server.Port = "" }},
		{"negative return window", func(c *Config) { c.Returns.WindowDays = -1 }},
		{"critical above low threshold", func(c *Config) {
			c.Alerts.CriticalStockThreshold = 20
			c.Alerts.LowStockThreshold = 10
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "hello")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_SLICE", "a,b,c")

	if got := getEnv("TEST_STR", "fallback"); got != "hello" {
		t.Errorf("getEnv = %q, want hello", got)
	}
	if got := getEnv("TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("getEnv fallback = %q", got)
	}
	if got := getEnvAsInt("TEST_INT", 1); got != 42 {
		t.Errorf("getEnvAsInt = %d, want 42", got)
	}
	if got := getEnvAsInt("TEST_STR", 7); got != 7 {
		t.Errorf("getEnvAsInt on non-numeric = %d, want fallback 7", got)
	}
	if got := getEnvAsBool("TEST_BOOL", false); !got {
		t.Error("getEnvAsBool = false, want true")
	}
	if got := getEnvAsDuration("TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("getEnvAsDuration = %v, want 90s", got)
	}
	if got := getEnvAsSlice("TEST_SLICE", nil); len(got) != 3 || got[1] != "b" {
		t.Errorf("getEnvAsSlice = %v", got)
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Port = "5432"
	cfg.Database.Password = "secret"
	cfg.Database.SSLMode = "disable"

	dsn := cfg.GetDatabaseDSN()
	want := "host=localhost port=5432 user=pos password=secret dbname=pos sslmode=disable"
	if dsn != want {
		t.Fatalf("GetDatabaseDSN = %q, want %q", dsn, want)
	}
}
