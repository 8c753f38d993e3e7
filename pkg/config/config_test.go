package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "dev" {
		t.Fatalf("expected App.Env to default to dev, got %q", cfg.App.Env)
	}
	if !cfg.App.IsDev() {
		t.Fatal("expected IsDev for default env")
	}
	if cfg.Analytics.MovingAverageWindow != 7 {
		t.Fatalf("expected default window 7, got %d", cfg.Analytics.MovingAverageWindow)
	}
	if cfg.Analytics.OutlierStddevMultiplier != 1.0 {
		t.Fatalf("expected default multiplier 1.0, got %f", cfg.Analytics.OutlierStddevMultiplier)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SKUMETRICS_APP_ENV", "production")
	t.Setenv("SKUMETRICS_MOVING_AVERAGE_WINDOW", "14")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !cfg.App.IsProd() {
		t.Fatal("expected IsProd after override")
	}
	if cfg.Analytics.MovingAverageWindow != 14 {
		t.Fatalf("expected window 14, got %d", cfg.Analytics.MovingAverageWindow)
	}
}

func TestLoad_RejectsBadWindow(t *testing.T) {
	t.Setenv("SKUMETRICS_MOVING_AVERAGE_WINDOW", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected zero window to return an error")
	}
}

func TestLoad_RejectsBadMultiplier(t *testing.T) {
	t.Setenv("SKUMETRICS_OUTLIER_STDDEV_MULTIPLIER", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected negative multiplier to return an error")
	}
}
