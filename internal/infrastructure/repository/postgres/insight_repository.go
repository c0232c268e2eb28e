package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avshapoval/doc-insights/internal/core/domain"
)

type InsightRepository struct {
	db *sql.DB
}

func NewInsightRepository(db *sql.DB) *InsightRepository {
	return &InsightRepository{db: db}
}

func (r *InsightRepository) Create(ctx context.Context, rec *domain.InsightRecord) error {
	columns, err := marshalInsights(rec.Insights)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO document_insights (
	id, document_id, summary, key_fields, named_entities, keywords, topics, risks, action_items, compliance_suggestions, confidence_scores, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
`,
		rec.ID, rec.DocumentID, rec.Summary,
		columns.keyFields, columns.entities, columns.keywords, columns.topics,
		columns.risks, columns.actionItems, columns.suggestions, columns.scores,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert insight record: %w", err)
	}
	return nil
}

func (r *InsightRepository) GetByDocumentID(ctx context.Context, documentID string) (*domain.InsightRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, document_id, summary, key_fields, named_entities, keywords, topics, risks, action_items, compliance_suggestions, confidence_scores, created_at
FROM document_insights
WHERE document_id = $1
`, documentID)

	var rec domain.InsightRecord
	var summary string
	var keyFields, entities, keywords, topics, risks, actionItems, suggestions, scores []byte

	err := row.Scan(
		&rec.ID, &rec.DocumentID, &summary,
		&keyFields, &entities, &keywords, &topics, &risks, &actionItems, &suggestions, &scores,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get insight record", fmt.Errorf("document %s", documentID))
		}
		return nil, fmt.Errorf("scan insight record: %w", err)
	}

	rec.Insights, err = unmarshalInsights(summary, keyFields, entities, keywords, topics, risks, actionItems, suggestions, scores)
	if err != nil {
		return nil, fmt.Errorf("decode insight columns: %w", err)
	}
	return &rec, nil
}

type insightColumns struct {
	keyFields   []byte
	entities    []byte
	keywords    []byte
	topics      []byte
	risks       []byte
	actionItems []byte
	suggestions []byte
	scores      []byte
}

func marshalInsights(insights domain.Insights) (insightColumns, error) {
	var columns insightColumns
	var err error

	marshal := func(name string, v any) []byte {
		if err != nil {
			return nil
		}
		var raw []byte
		raw, err = json.Marshal(v)
		if err != nil {
			err = fmt.Errorf("marshal %s: %w", name, err)
		}
		return raw
	}

	columns.keyFields = marshal("key_fields", insights.KeyFields)
	columns.entities = marshal("named_entities", insights.NamedEntities)
	columns.keywords = marshal("keywords", insights.Keywords)
	columns.topics = marshal("topics", insights.Topics)
	columns.risks = marshal("risks", insights.Risks)
	columns.actionItems = marshal("action_items", insights.ActionItems)
	columns.suggestions = marshal("compliance_suggestions", insights.ComplianceSuggestions)
	columns.scores = marshal("confidence_scores", insights.ConfidenceScores)
	return columns, err
}

func unmarshalInsights(summary string, keyFields, entities, keywords, topics, risks, actionItems, suggestions, scores []byte) (domain.Insights, error) {
	insights := domain.Insights{Summary: summary}

	var err error
	unmarshal := func(name string, raw []byte, v any) {
		if err != nil || len(raw) == 0 {
			return
		}
		if uErr := json.Unmarshal(raw, v); uErr != nil {
			err = fmt.Errorf("unmarshal %s: %w", name, uErr)
		}
	}

	unmarshal("key_fields", keyFields, &insights.KeyFields)
	unmarshal("named_entities", entities, &insights.NamedEntities)
	unmarshal("keywords", keywords, &insights.Keywords)
	unmarshal("topics", topics, &insights.Topics)
	unmarshal("risks", risks, &insights.Risks)
	unmarshal("action_items", actionItems, &insights.ActionItems)
	unmarshal("compliance_suggestions", suggestions, &insights.ComplianceSuggestions)
	unmarshal("confidence_scores", scores, &insights.ConfidenceScores)
	return insights, err
}
