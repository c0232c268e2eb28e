package config

import "testing"

func TestLoadIncludesAnalysisDefaults(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("GEMINI_REQUESTS_PER_MINUTE", "")
	t.Setenv("KEYWORD_TOP_N", "")
	t.Setenv("NATS_SUBJECT", "")

	cfg := Load()
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Fatalf("expected default model gemini-1.5-flash, got %q", cfg.GeminiModel)
	}
	if cfg.GeminiRPM != 15 {
		t.Fatalf("expected default 15 requests per minute, got %d", cfg.GeminiRPM)
	}
	if cfg.KeywordTopN != 10 {
		t.Fatalf("expected default keyword top n 10, got %d", cfg.KeywordTopN)
	}
	if cfg.NATSSubject != "documents.uploaded" {
		t.Fatalf("expected default subject documents.uploaded, got %q", cfg.NATSSubject)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("GEMINI_REQUESTS_PER_MINUTE", "30")
	t.Setenv("API_RATE_LIMIT_RPS", "2.5")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("API_RATE_LIMIT_BURST", "not-a-number")

	cfg := Load()
	if cfg.GeminiModel != "gemini-1.5-pro" {
		t.Fatalf("expected model override, got %q", cfg.GeminiModel)
	}
	if cfg.GeminiRPM != 30 {
		t.Fatalf("expected 30 requests per minute, got %d", cfg.GeminiRPM)
	}
	if cfg.APIRateLimitRPS != 2.5 {
		t.Fatalf("expected rate limit 2.5 rps, got %v", cfg.APIRateLimitRPS)
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Fatalf("expected max upload 1048576 bytes, got %d", cfg.MaxUploadBytes)
	}
	if cfg.APIRateLimitBurst != 1 {
		t.Fatalf("expected malformed burst to fall back to 1, got %d", cfg.APIRateLimitBurst)
	}
}
