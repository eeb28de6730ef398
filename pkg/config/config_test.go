package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}
	if cfg.Backend.APIBaseURL != "https://api.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Backend.APIBaseURL)
	}
	if got := cfg.Catalog.CacheTTL; got != 2*time.Minute {
		t.Fatalf("expected cache ttl 2m, got %v", got)
	}
	if cfg.Catalog.AdminPageSize != 20 {
		t.Fatalf("expected default admin page size 20, got %d", cfg.Catalog.AdminPageSize)
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without url or address")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RequiresSomeOrigin(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvAPIBaseURL, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when neither api base nor public origin is set")
	}

	t.Setenv(EnvPublicOrigin, "https://shop.example.com")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if got := cfg.Backend.APIBase(cfg.App.PublicOrigin); got != "https://shop.example.com" {
		t.Fatalf("expected api base to fall back to public origin, got %q", got)
	}
}

func TestLoad_RejectsInvalidOrigin(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvMediaBaseURL, "ftp://media.example.com")

	if _, err := Load(); err == nil {
		t.Fatal("expected unsupported scheme to be rejected")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvAPIBaseURL, "https://api.example.com/")
	t.Setenv(EnvMediaBaseURL, "")
	t.Setenv(EnvPublicOrigin, "")
	t.Setenv(EnvRedisURL, "")
	t.Setenv(EnvCacheTTL, "2m")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}

func TestBackendConfigBases(t *testing.T) {
	tests := []struct {
		name      string
		cfg       BackendConfig
		origin    string
		wantAPI   string
		wantMedia string
	}{
		{
			name:      "explicit both",
			cfg:       BackendConfig{APIBaseURL: "https://api.example.com", MediaBaseURL: "https://cdn.example.com"},
			wantAPI:   "https://api.example.com",
			wantMedia: "https://cdn.example.com",
		},
		{
			name:      "media defaults to api",
			cfg:       BackendConfig{APIBaseURL: "https://api.example.com"},
			wantAPI:   "https://api.example.com",
			wantMedia: "https://api.example.com",
		},
		{
			name:      "both default to public origin",
			origin:    "https://shop.example.com/",
			wantAPI:   "https://shop.example.com",
			wantMedia: "https://shop.example.com",
		},
		{
			name: "nothing configured",
		},
	}

	for _, tt := range tests {
		if got := tt.cfg.APIBase(tt.origin); got != tt.wantAPI {
			t.Fatalf("%s: expected api base %q got %q", tt.name, tt.wantAPI, got)
		}
		if got := tt.cfg.MediaBase(tt.origin); got != tt.wantMedia {
			t.Fatalf("%s: expected media base %q got %q", tt.name, tt.wantMedia, got)
		}
	}
}
