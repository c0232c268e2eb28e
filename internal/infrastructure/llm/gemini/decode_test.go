package gemini

import (
	"testing"

	"github.com/avshapoval/doc-insights/internal/core/domain"
)

func TestExtractJSONObjectStripsSurroundingProse(t *testing.T) {
	object, err := extractJSONObject("Here is your analysis:\n```json\n{\"summary\": \"ok\"}\n```")
	if err != nil {
		t.Fatalf("extractJSONObject() error = %v", err)
	}
	if object != `{"summary": "ok"}` {
		t.Fatalf("unexpected object: %q", object)
	}
}

func TestExtractJSONObjectNoBraces(t *testing.T) {
	if _, err := extractJSONObject("I cannot analyze this document."); err == nil {
		t.Fatalf("expected error for brace-free response")
	}
}

func TestDecodeInsightsAppliesDefaults(t *testing.T) {
	insights, err := decodeInsights(`{}`)
	if err != nil {
		t.Fatalf("decodeInsights() error = %v", err)
	}

	if insights.Summary != "No summary available" {
		t.Fatalf("unexpected default summary: %q", insights.Summary)
	}
	if insights.KeyFields == nil || len(insights.KeyFields) != 0 {
		t.Fatalf("expected empty key fields map, got %v", insights.KeyFields)
	}
	if insights.NamedEntities == nil || insights.Keywords == nil || insights.Topics == nil ||
		insights.Risks == nil || insights.ActionItems == nil || insights.ComplianceSuggestions == nil {
		t.Fatalf("expected empty slices, got %+v", insights)
	}
}

func TestDecodeInsightsRejectsMalformedJSON(t *testing.T) {
	if _, err := decodeInsights(`{"summary": `); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDecodeInsightsRejectsInvalidSeverity(t *testing.T) {
	raw := `{"risks": [{"description": "x", "severity": "catastrophic", "category": "c", "confidence": 0.5}]}`
	if _, err := decodeInsights(raw); err == nil {
		t.Fatalf("expected schema rejection for unknown severity")
	}
}

func TestDecodeInsightsFixedSecondaryScores(t *testing.T) {
	insights, err := decodeInsights(`{"summary": "short"}`)
	if err != nil {
		t.Fatalf("decodeInsights() error = %v", err)
	}
	scores := insights.ConfidenceScores
	if scores.Extraction != 0.85 || scores.Analysis != 0.88 || scores.Insights != 0.82 {
		t.Fatalf("unexpected fixed scores: %+v", scores)
	}
}

func TestDecodeInsightsClampsConfidences(t *testing.T) {
	raw := `{"named_entities": [{"text": "ACME", "type": "ORG", "confidence": 1.7}], "keywords": [{"text": "acme", "relevance": -0.2}]}`
	insights, err := decodeInsights(raw)
	if err != nil {
		t.Fatalf("decodeInsights() error = %v", err)
	}
	if insights.NamedEntities[0].Confidence != 1.0 {
		t.Fatalf("expected clamped entity confidence, got %v", insights.NamedEntities[0].Confidence)
	}
	if insights.Keywords[0].Relevance != 0 {
		t.Fatalf("expected clamped relevance, got %v", insights.Keywords[0].Relevance)
	}
}

func TestComputeOverallConfidenceMonotonic(t *testing.T) {
	insights := domain.Insights{Summary: "short"}
	previous := computeOverallConfidence(insights)
	if previous != 0.70 {
		t.Fatalf("expected base 0.70, got %v", previous)
	}

	steps := []func(){
		func() { insights.NamedEntities = []domain.NamedEntity{{Text: "x"}} },
		func() { insights.Keywords = []domain.Keyword{{Text: "x"}} },
		func() { insights.Topics = []domain.Topic{{Name: "x"}} },
		func() { insights.Risks = []domain.Risk{{Description: "x"}} },
		func() { insights.Summary = "a summary that is certainly long enough" },
	}
	for i, step := range steps {
		step()
		score := computeOverallConfidence(insights)
		if score < previous {
			t.Fatalf("confidence decreased at step %d: %v -> %v", i, previous, score)
		}
		previous = score
	}

	if previous != 0.95 {
		t.Fatalf("expected cap 0.95 with all signals, got %v", previous)
	}
}
