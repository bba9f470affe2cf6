package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8091" {
		t.Errorf("expected default port 8091, got %q", cfg.Port)
	}
	if cfg.MinRankDocuments != 3 || cfg.MaxRankDocuments != 10 {
		t.Errorf("expected document bounds 3-10, got %d-%d", cfg.MinRankDocuments, cfg.MaxRankDocuments)
	}
	if cfg.FusionAlpha != 0.5 {
		t.Errorf("expected fusion alpha 0.5, got %v", cfg.FusionAlpha)
	}
	if cfg.RankTimeout != 60*time.Second {
		t.Errorf("expected 60s rank timeout, got %v", cfg.RankTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TITLE_RATIO", "2.0")
	t.Setenv("MAX_CONCURRENT_EXTRACT", "8")
	t.Setenv("RANK_TIMEOUT", "90s")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port override, got %q", cfg.Port)
	}
	if cfg.TitleRatio != 2.0 {
		t.Errorf("expected title ratio override, got %v", cfg.TitleRatio)
	}
	if cfg.MaxConcurrentExtract != 8 {
		t.Errorf("expected concurrency override, got %d", cfg.MaxConcurrentExtract)
	}
	if cfg.RankTimeout != 90*time.Second {
		t.Errorf("expected timeout override, got %v", cfg.RankTimeout)
	}
}

func TestLoadClampsBadValues(t *testing.T) {
	t.Setenv("FUSION_ALPHA", "1.5")
	t.Setenv("MAX_CONCURRENT_EXTRACT", "-2")
	t.Setenv("RANK_TIMEOUT", "-10s")

	cfg := Load()
	if cfg.FusionAlpha != 0.5 {
		t.Errorf("expected out-of-range alpha to clamp to 0.5, got %v", cfg.FusionAlpha)
	}
	if cfg.MaxConcurrentExtract != 4 {
		t.Errorf("expected non-positive concurrency to clamp, got %d", cfg.MaxConcurrentExtract)
	}
	if cfg.RankTimeout != 60*time.Second {
		t.Errorf("expected non-positive timeout to clamp, got %v", cfg.RankTimeout)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg := Load()
		cfg.DocsightAPIKey = "test-key"
		return cfg
	}

	if err := base().Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg := base()
	cfg.DocsightAPIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected missing API key to fail validation")
	}

	cfg = base()
	cfg.H3Ratio = 1.0
	if err := cfg.Validate(); err == nil {
		t.Error("expected H3 ratio of 1.0 to fail validation")
	}

	cfg = base()
	cfg.H1Ratio = cfg.TitleRatio + 1
	if err := cfg.Validate(); err == nil {
		t.Error("expected out-of-order ratios to fail validation")
	}
}
