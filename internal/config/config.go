package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	DocsightAPIKey string

	// Embedding encoder (OpenAI-compatible endpoint)
	EmbedHost  string
	EmbedModel string

	// Concurrency
	MaxConcurrentExtract int

	// Upload limits
	MaxUploadBytes int64

	// Ranking mode document bounds
	MinRankDocuments int
	MaxRankDocuments int

	// Heading classifier thresholds (ratio of line font size to body font size)
	TitleRatio float64
	H1Ratio    float64
	H2Ratio    float64
	H3Ratio    float64

	// Scoring
	BM25K1           float64
	BM25B            float64
	FusionAlpha      float64
	MaxSectionChars  int
	RefineTopK       int
	RefineMaxResults int
	RefineMinScore   float64

	// Per-request wall clock budget for ranking mode
	RankTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		DocsightAPIKey: os.Getenv("DOCSIGHT_API_KEY"),

		EmbedHost:  envOr("EMBED_HOST", "http://localhost:11434/v1"),
		EmbedModel: envOr("EMBED_MODEL", "all-minilm"),

		MaxConcurrentExtract: envInt("MAX_CONCURRENT_EXTRACT", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		MinRankDocuments: envInt("MIN_RANK_DOCUMENTS", 3),
		MaxRankDocuments: envInt("MAX_RANK_DOCUMENTS", 10),

		TitleRatio: envFloat("TITLE_RATIO", 1.8),
		H1Ratio:    envFloat("H1_RATIO", 1.5),
		H2Ratio:    envFloat("H2_RATIO", 1.25),
		H3Ratio:    envFloat("H3_RATIO", 1.1),

		BM25K1:           envFloat("BM25_K1", 1.5),
		BM25B:            envFloat("BM25_B", 0.75),
		FusionAlpha:      envFloat("FUSION_ALPHA", 0.5),
		MaxSectionChars:  envInt("MAX_SECTION_CHARS", 2000),
		RefineTopK:       envInt("REFINE_TOP_K", 10),
		RefineMaxResults: envInt("REFINE_MAX_RESULTS", 20),
		RefineMinScore:   envFloat("REFINE_MIN_SCORE", 0.3),

		RankTimeout: envDuration("RANK_TIMEOUT", 60*time.Second),
	}

	if cfg.MaxConcurrentExtract <= 0 {
		cfg.MaxConcurrentExtract = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MinRankDocuments <= 0 {
		cfg.MinRankDocuments = 3
	}
	if cfg.MaxRankDocuments < cfg.MinRankDocuments {
		cfg.MaxRankDocuments = 10
	}
	if cfg.MaxSectionChars <= 0 {
		cfg.MaxSectionChars = 2000
	}
	if cfg.FusionAlpha < 0 || cfg.FusionAlpha > 1 {
		cfg.FusionAlpha = 0.5
	}
	if cfg.RankTimeout <= 0 {
		cfg.RankTimeout = 60 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DocsightAPIKey == "" {
		return fmt.Errorf("DOCSIGHT_API_KEY is required")
	}
	if c.EmbedHost == "" {
		return fmt.Errorf("EMBED_HOST is required")
	}
	if c.EmbedModel == "" {
		return fmt.Errorf("EMBED_MODEL is required")
	}
	if !(c.TitleRatio >= c.H1Ratio && c.H1Ratio >= c.H2Ratio && c.H2Ratio >= c.H3Ratio && c.H3Ratio > 1) {
		return fmt.Errorf("classifier ratios must satisfy TITLE >= H1 >= H2 >= H3 > 1")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
