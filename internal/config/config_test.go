package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hrms")
	t.Setenv("SECRET_KEY", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AccessTTL != 30*time.Minute {
		t.Fatalf("unexpected access ttl: %v", cfg.AccessTTL)
	}
	if cfg.RefreshTTL != 7*24*time.Hour {
		t.Fatalf("unexpected refresh ttl: %v", cfg.RefreshTTL)
	}
	if cfg.APIPrefix != "/api/v1" {
		t.Fatalf("unexpected prefix: %s", cfg.APIPrefix)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
	if !cfg.EnforceRBAC {
		t.Fatalf("expected rbac enforcement on by default")
	}
	if cfg.HTTPAddress() != ":8000" {
		t.Fatalf("unexpected address: %s", cfg.HTTPAddress())
	}
	if cfg.SeedAdminEmail != "admin@hrms.local" {
		t.Fatalf("unexpected seed admin: %s", cfg.SeedAdminEmail)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hrms")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("REFRESH_TOKEN_EXPIRE_DAYS", "1")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("RBAC_ENFORCE", "false")
	t.Setenv("API_V1_PREFIX", "api/v2/")
	t.Setenv("GRPC_ADDR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AccessTTL != 5*time.Minute || cfg.RefreshTTL != 24*time.Hour {
		t.Fatalf("unexpected ttls: %v %v", cfg.AccessTTL, cfg.RefreshTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
	if cfg.EnforceRBAC {
		t.Fatalf("expected rbac enforcement disabled")
	}
	if cfg.APIPrefix != "/api/v2" {
		t.Fatalf("unexpected prefix: %s", cfg.APIPrefix)
	}
	if cfg.GRPCAddr != "" {
		t.Fatalf("expected grpc disabled, got %q", cfg.GRPCAddr)
	}
}

func TestLoadRequiresSecrets(t *testing.T) {
	cases := map[string]map[string]string{
		"missing database": {"DATABASE_URL": "", "SECRET_KEY": "x"},
		"missing secret":   {"DATABASE_URL": "postgres://localhost/hrms", "SECRET_KEY": ""},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
