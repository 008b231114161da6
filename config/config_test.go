package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.TokenTTL != DefaultTokenTTL {
		t.Errorf("TokenTTL = %v, want %v", cfg.TokenTTL, DefaultTokenTTL)
	}
	if cfg.JWTSecret != DefaultJWTSecret {
		t.Errorf("JWTSecret not defaulted")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("AGENDA_ADDR", ":9999")
	t.Setenv("AGENDA_TOKEN_TTL", "30m")
	t.Setenv("AGENDA_JWT_SECRET", "secret-from-env")

	cfg := Load()
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %v, want 30m", cfg.TokenTTL)
	}
	if cfg.JWTSecret != "secret-from-env" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
}

func TestBadDurationFallsBack(t *testing.T) {
	t.Setenv("AGENDA_TOKEN_TTL", "not-a-duration")
	if cfg := Load(); cfg.TokenTTL != DefaultTokenTTL {
		t.Errorf("TokenTTL = %v, want default %v", cfg.TokenTTL, DefaultTokenTTL)
	}
}
