package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("expected 8080, got %s", cfg.ServerPort)
	}
	if cfg.ReadTimeout != 15*time.Second {
		t.Errorf("expected 15s, got %s", cfg.ReadTimeout)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("expected 10s, got %s", cfg.FetchTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info, got %s", cfg.LogLevel)
	}
	if cfg.Version != "1.0.0" {
		t.Errorf("expected 1.0.0, got %s", cfg.Version)
	}
	if !cfg.CORS.Enabled {
		t.Error("expected CORS enabled by default")
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard origin, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("READ_TIMEOUT", "10s")
	t.Setenv("WRITE_TIMEOUT", "20s")
	t.Setenv("IDLE_TIMEOUT", "30s")
	t.Setenv("REQUEST_TIMEOUT", "1m")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://example.com,https://other.example.com")
	t.Setenv("CORS_MAX_AGE", "600")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.ServerPort != "9090" {
		t.Errorf("expected 9090, got %s", cfg.ServerPort)
	}
	if cfg.ReadTimeout != 10*time.Second {
		t.Errorf("expected 10s, got %s", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout != 20*time.Second {
		t.Errorf("expected 20s, got %s", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout != 30*time.Second {
		t.Errorf("expected 30s, got %s", cfg.IdleTimeout)
	}
	if cfg.RequestTimeout != time.Minute {
		t.Errorf("expected 1m, got %s", cfg.RequestTimeout)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("expected 5s, got %s", cfg.FetchTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug, got %s", cfg.LogLevel)
	}
	if !cfg.LogJSON {
		t.Error("expected LOG_JSON to be true")
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.CORS.MaxAge != 600 {
		t.Errorf("expected 600, got %d", cfg.CORS.MaxAge)
	}
}

func TestLoadUnparsableFallsBack(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "not-a-duration")
	t.Setenv("CORS_MAX_AGE", "not-an-int")
	t.Setenv("LOG_JSON", "not-a-bool")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("expected default 10s, got %s", cfg.FetchTimeout)
	}
	if cfg.CORS.MaxAge != 86400 {
		t.Errorf("expected default 86400, got %d", cfg.CORS.MaxAge)
	}
	if cfg.LogJSON {
		t.Error("expected default false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.ServerPort = "" },
			wantErr: true,
		},
		{
			name:    "negative read timeout",
			mutate:  func(c *Config) { c.ReadTimeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "zero fetch timeout",
			mutate:  func(c *Config) { c.FetchTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "zero shutdown timeout",
			mutate:  func(c *Config) { c.ShutdownTimeout = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned error: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
