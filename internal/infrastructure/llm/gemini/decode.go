package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/avshapoval/doc-insights/internal/core/domain"
)

// Schema for the model response. Lists may be absent (defaulting fills them
// in) but present fields must carry the advertised shape; enum violations
// reject the whole response and trigger the mock fallback.
const responseSchema = `{
  "type": "object",
  "properties": {
    "summary": {"type": "string"},
    "key_fields": {"type": "object"},
    "named_entities": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "text": {"type": "string"},
          "type": {"type": "string"},
          "confidence": {"type": "number"}
        }
      }
    },
    "keywords": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "text": {"type": "string"},
          "relevance": {"type": "number"}
        }
      }
    },
    "topics": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "confidence": {"type": "number"}
        }
      }
    },
    "risks": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "description": {"type": "string"},
          "severity": {"type": "string", "enum": ["low", "medium", "high", "critical"]},
          "category": {"type": "string"},
          "confidence": {"type": "number"}
        }
      }
    },
    "action_items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "description": {"type": "string"},
          "priority": {"type": "string", "enum": ["low", "medium", "high"]},
          "deadline": {"type": "string"},
          "assignee": {"type": "string"}
        }
      }
    },
    "compliance_suggestions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "description": {"type": "string"},
          "regulation": {"type": "string"},
          "priority": {"type": "string", "enum": ["low", "medium", "high"]}
        }
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("insights.schema.json", responseSchema)

type modelPayload struct {
	Summary               string                        `json:"summary"`
	KeyFields             map[string]any                `json:"key_fields"`
	NamedEntities         []domain.NamedEntity          `json:"named_entities"`
	Keywords              []domain.Keyword              `json:"keywords"`
	Topics                []domain.Topic                `json:"topics"`
	Risks                 []domain.Risk                 `json:"risks"`
	ActionItems           []domain.ActionItem           `json:"action_items"`
	ComplianceSuggestions []domain.ComplianceSuggestion `json:"compliance_suggestions"`
}

// decodeInsights turns raw model output into a fully defaulted Insights
// value. Any structural problem is an error for the caller to recover from.
func decodeInsights(raw string) (domain.Insights, error) {
	object, err := extractJSONObject(raw)
	if err != nil {
		return domain.Insights{}, err
	}

	var generic any
	if err := json.Unmarshal([]byte(object), &generic); err != nil {
		return domain.Insights{}, fmt.Errorf("parse model json: %w", err)
	}
	if err := compiledSchema.Validate(generic); err != nil {
		return domain.Insights{}, fmt.Errorf("validate model json: %w", err)
	}

	var payload modelPayload
	if err := json.Unmarshal([]byte(object), &payload); err != nil {
		return domain.Insights{}, fmt.Errorf("decode model json: %w", err)
	}

	insights := applyDefaults(payload)
	clampConfidences(&insights)
	insights.ConfidenceScores = domain.ConfidenceScores{
		Overall: computeOverallConfidence(insights),
		// Fixed constants in the model path, not derived from the response.
		Extraction: 0.85,
		Analysis:   0.88,
		Insights:   0.82,
	}
	return insights, nil
}

// extractJSONObject locates the first '{' and the last '}' of the raw
// response, tolerating prose the model wraps around the object.
func extractJSONObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no json object found in model response")
	}
	return raw[start : end+1], nil
}

func applyDefaults(payload modelPayload) domain.Insights {
	insights := domain.Insights{
		Summary:               payload.Summary,
		KeyFields:             payload.KeyFields,
		NamedEntities:         payload.NamedEntities,
		Keywords:              payload.Keywords,
		Topics:                payload.Topics,
		Risks:                 payload.Risks,
		ActionItems:           payload.ActionItems,
		ComplianceSuggestions: payload.ComplianceSuggestions,
	}

	if insights.Summary == "" {
		insights.Summary = "No summary available"
	}
	if insights.KeyFields == nil {
		insights.KeyFields = map[string]any{}
	}
	if insights.NamedEntities == nil {
		insights.NamedEntities = []domain.NamedEntity{}
	}
	if insights.Keywords == nil {
		insights.Keywords = []domain.Keyword{}
	}
	if insights.Topics == nil {
		insights.Topics = []domain.Topic{}
	}
	if insights.Risks == nil {
		insights.Risks = []domain.Risk{}
	}
	if insights.ActionItems == nil {
		insights.ActionItems = []domain.ActionItem{}
	}
	if insights.ComplianceSuggestions == nil {
		insights.ComplianceSuggestions = []domain.ComplianceSuggestion{}
	}
	return insights
}

func clampConfidences(insights *domain.Insights) {
	for i := range insights.NamedEntities {
		insights.NamedEntities[i].Confidence = clamp01(insights.NamedEntities[i].Confidence)
	}
	for i := range insights.Keywords {
		insights.Keywords[i].Relevance = clamp01(insights.Keywords[i].Relevance)
	}
	for i := range insights.Topics {
		insights.Topics[i].Confidence = clamp01(insights.Topics[i].Confidence)
	}
	for i := range insights.Risks {
		insights.Risks[i].Confidence = clamp01(insights.Risks[i].Confidence)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// computeOverallConfidence scores the response by how much of it is
// populated: 0.70 base, +0.05 per populated signal, capped at 0.95.
func computeOverallConfidence(insights domain.Insights) float64 {
	score := 0.70
	if len(insights.NamedEntities) > 0 {
		score += 0.05
	}
	if len(insights.Keywords) > 0 {
		score += 0.05
	}
	if len(insights.Topics) > 0 {
		score += 0.05
	}
	if len(insights.Risks) > 0 {
		score += 0.05
	}
	if len(insights.Summary) > 20 {
		score += 0.05
	}
	if score > 0.95 {
		return 0.95
	}
	return score
}
