package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gravemap/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Origin.Lat != 12.9728512 || cfg.Origin.Lng != 77.5815168 {
		t.Errorf("unexpected origin %+v", cfg.Origin)
	}
	if cfg.Routing.Backend != "straight" || cfg.Routing.Mode != "walking" {
		t.Errorf("unexpected routing %+v", cfg.Routing)
	}
	if cfg.Routing.Timeout != 10*time.Second || cfg.Routing.CacheSize != 64 {
		t.Errorf("unexpected routing limits %+v", cfg.Routing)
	}
	if cfg.Log.File != "gravemap.log" {
		t.Errorf("unexpected log file %q", cfg.Log.File)
	}
}

func TestLoad_YAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "origin:\n  lat: 10.5\n  lng: 20.25\nrouting:\n  mode: driving\n  timeout: 3s\n"
	if err := os.WriteFile(filepath.Join(dir, "gravemap.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GRAVEMAP_LOG_LEVEL", "debug")
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Origin.Lat != 10.5 || cfg.Origin.Lng != 20.25 {
		t.Errorf("unexpected origin %+v", cfg.Origin)
	}
	if cfg.Routing.Mode != "driving" || cfg.Routing.Timeout != 3*time.Second {
		t.Errorf("unexpected routing %+v", cfg.Routing)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected env override, got %q", cfg.Log.Level)
	}
}

func TestLoad_GoogleKeyFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	t.Setenv("GRAVEMAP_ROUTING_BACKEND", "google")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GOOGLE_MAPS_API_KEY=abc123\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Google.APIKey != "abc123" {
		t.Errorf("expected key from .env, got %q", cfg.Google.APIKey)
	}
}

func TestLoad_GoogleWithoutKeyFails(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	t.Setenv("GRAVEMAP_ROUTING_BACKEND", "google")
	_, err := config.Load(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "google.api_key") {
		t.Errorf("expected missing key error, got %v", err)
	}
}

func TestValidate_Ranges(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Origin.Lat = 95
	cfg.Routing.Mode = "flying"
	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "Config.Origin.Lat must be lte 90") {
		t.Errorf("missing latitude error in %q", msg)
	}
	if !strings.Contains(msg, "Config.Routing.Mode must be one of [walking driving]") {
		t.Errorf("missing mode error in %q", msg)
	}
}
