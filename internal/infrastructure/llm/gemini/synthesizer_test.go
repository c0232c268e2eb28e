package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avshapoval/doc-insights/internal/infrastructure/llm/mock"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
}

func newTestSynthesizer(serverURL string) *Synthesizer {
	client := NewClient(serverURL, "gemini-pro", "test-key", 600)
	return NewSynthesizer(client, mock.NewWithClock(10, fixedClock), nil)
}

func TestAnalyzeParsesModelResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"parts": [{"text": "{\"summary\": \"A service agreement between two parties.\", \"risks\": [{\"description\": \"late payment\", \"severity\": \"high\", \"category\": \"Financial\", \"confidence\": 0.9}]}"}]}}]
		}`))
	}))
	defer server.Close()

	insights, err := newTestSynthesizer(server.URL).Analyze(context.Background(), "document text")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if insights.Summary != "A service agreement between two parties." {
		t.Fatalf("unexpected summary: %q", insights.Summary)
	}
	if len(insights.Risks) != 1 || insights.Risks[0].Severity != "high" {
		t.Fatalf("unexpected risks: %+v", insights.Risks)
	}
	// base 0.70 + risks + long summary
	if insights.ConfidenceScores.Overall != 0.80 {
		t.Fatalf("unexpected overall confidence: %v", insights.ConfidenceScores.Overall)
	}
}

func TestAnalyzeFallsBackOnHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	synth := newTestSynthesizer(server.URL)
	var reason string
	synth.SetFallbackObserver(func(r string) { reason = r })

	insights, err := synth.Analyze(context.Background(), "document text here")
	if err != nil {
		t.Fatalf("Analyze() must never surface model errors, got %v", err)
	}
	if reason != "model_call" {
		t.Fatalf("expected model_call fallback, got %q", reason)
	}
	if insights.ConfidenceScores.Overall != 0.80 || insights.ConfidenceScores.Insights != 0.77 {
		t.Fatalf("expected mock confidence scores, got %+v", insights.ConfidenceScores)
	}
}

func TestAnalyzeFallsBackOnProseResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "I am unable to analyze this document."}]}}]}`))
	}))
	defer server.Close()

	synth := newTestSynthesizer(server.URL)
	var reason string
	synth.SetFallbackObserver(func(r string) { reason = r })

	if _, err := synth.Analyze(context.Background(), "text"); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if reason != "malformed_response" {
		t.Fatalf("expected malformed_response fallback, got %q", reason)
	}
}

func TestAnalyzeMakesSingleAttempt(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := newTestSynthesizer(server.URL).Analyze(context.Background(), "text"); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one model call, got %d", calls)
	}
}
