package domain

import "time"

type RiskSeverity string

const (
	SeverityLow      RiskSeverity = "low"
	SeverityMedium   RiskSeverity = "medium"
	SeverityHigh     RiskSeverity = "high"
	SeverityCritical RiskSeverity = "critical"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// NamedEntity type tags form an open set; these are the ones the heuristic
// extractors emit.
const (
	EntityPerson   = "PERSON"
	EntityOrg      = "ORG"
	EntityLocation = "LOCATION"
	EntityDate     = "DATE"
	EntityMoney    = "MONEY"
	EntityEmail    = "EMAIL"
)

type NamedEntity struct {
	Text       string  `json:"text"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// Keyword relevance is relative to the top keyword of the same document,
// not an absolute score.
type Keyword struct {
	Text      string  `json:"text"`
	Relevance float64 `json:"relevance"`
}

type Topic struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type Risk struct {
	Description string       `json:"description"`
	Severity    RiskSeverity `json:"severity"`
	Category    string       `json:"category"`
	Confidence  float64      `json:"confidence"`
}

type ActionItem struct {
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Deadline    string   `json:"deadline,omitempty"`
	Assignee    string   `json:"assignee,omitempty"`
}

type ComplianceSuggestion struct {
	Description string   `json:"description"`
	Regulation  string   `json:"regulation"`
	Priority    Priority `json:"priority"`
}

type ConfidenceScores struct {
	Overall    float64 `json:"overall"`
	Extraction float64 `json:"extraction"`
	Analysis   float64 `json:"analysis"`
	Insights   float64 `json:"insights"`
}

// Insights is the synthesizer output before it is persisted as an
// InsightRecord row.
type Insights struct {
	Summary               string                 `json:"summary"`
	KeyFields             map[string]any         `json:"key_fields"`
	NamedEntities         []NamedEntity          `json:"named_entities"`
	Keywords              []Keyword              `json:"keywords"`
	Topics                []Topic                `json:"topics"`
	Risks                 []Risk                 `json:"risks"`
	ActionItems           []ActionItem           `json:"action_items"`
	ComplianceSuggestions []ComplianceSuggestion `json:"compliance_suggestions"`
	ConfidenceScores      ConfidenceScores       `json:"confidence_scores"`
}

// InsightRecord exists only for documents whose analysis completed; it is
// written once and never updated.
type InsightRecord struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Insights
	CreatedAt time.Time `json:"created_at"`
}
