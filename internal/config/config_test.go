package config

import (
	"slices"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("S3_BUCKET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Env != "development" || cfg.IsProduction() {
		t.Errorf("expected development env, got %q", cfg.Env)
	}
	if cfg.JWTExpiry != time.Hour {
		t.Errorf("expected 1h expiry, got %v", cfg.JWTExpiry)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.Addr())
	}
	if cfg.S3.Enabled() {
		t.Error("S3 must be disabled without a bucket")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "Staging")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("JWT_EXPIRATION_MINUTES", "15")
	t.Setenv("AVAILABILITY_CACHE_TTL_SECONDS", "5")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("S3_BUCKET", "confirmations")
	t.Setenv("S3_ACCESS_KEY", "key")
	t.Setenv("S3_SECRET_KEY", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Env != "staging" {
		t.Errorf("expected lower-cased env, got %q", cfg.Env)
	}
	if cfg.Addr() != ":9000" {
		t.Errorf("expected :9000, got %s", cfg.Addr())
	}
	if cfg.JWTExpiry != 15*time.Minute || cfg.AvailabilityTTL != 5*time.Second {
		t.Errorf("unexpected durations %v / %v", cfg.JWTExpiry, cfg.AvailabilityTTL)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !slices.Equal(cfg.CORSOrigins, want) {
		t.Errorf("expected %v, got %v", want, cfg.CORSOrigins)
	}
	if !cfg.S3.Enabled() {
		t.Error("expected S3 enabled")
	}
}

func TestLoad_InvalidNumbers(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_MINUTES", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric expiry")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Env:       "development",
			DBUrl:     "postgres://localhost/db",
			JWTSecret: defaultJWTSecret,
			JWTExpiry: time.Hour,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"development keeps default secret", func(c *Config) {}, false},
		{"production needs a secret", func(c *Config) { c.Env = "production" }, true},
		{"production with secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "s3cr3t"
		}, false},
		{"missing database", func(c *Config) { c.DBUrl = "" }, true},
		{"zero expiry", func(c *Config) { c.JWTExpiry = 0 }, true},
		{"half s3 credentials", func(c *Config) { c.S3 = S3Config{Bucket: "b", AccessKey: "k"} }, true},
		{"s3 ambient credentials", func(c *Config) { c.S3 = S3Config{Bucket: "b"} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
