package gemini

import (
	"context"
	"log/slog"

	"github.com/avshapoval/doc-insights/internal/core/domain"
	"github.com/avshapoval/doc-insights/internal/core/ports"
)

// Synthesizer is the model path of insight generation. A single model call
// is attempted per analysis; any failure (transport, status, missing JSON,
// parse, schema) degrades to the fallback synthesizer and is only logged.
type Synthesizer struct {
	client     *Client
	fallback   ports.InsightSynthesizer
	logger     *slog.Logger
	onFallback func(reason string)
}

func NewSynthesizer(client *Client, fallback ports.InsightSynthesizer, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{client: client, fallback: fallback, logger: logger}
}

// SetFallbackObserver registers a hook invoked whenever the mock path is
// taken, used for the worker fallback counter.
func (s *Synthesizer) SetFallbackObserver(fn func(reason string)) {
	s.onFallback = fn
}

func (s *Synthesizer) Analyze(ctx context.Context, text string) (domain.Insights, error) {
	raw, err := s.client.GenerateContent(ctx, buildAnalysisPrompt(text))
	if err != nil {
		return s.degrade(ctx, text, "model_call", err)
	}

	insights, err := decodeInsights(raw)
	if err != nil {
		return s.degrade(ctx, text, "malformed_response", err)
	}
	return insights, nil
}

func (s *Synthesizer) degrade(ctx context.Context, text, reason string, cause error) (domain.Insights, error) {
	s.logger.Warn("insight synthesis degraded to mock", "reason", reason, "error", cause)
	if s.onFallback != nil {
		s.onFallback(reason)
	}
	return s.fallback.Analyze(ctx, text)
}
