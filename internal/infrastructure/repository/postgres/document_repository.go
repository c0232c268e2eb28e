package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avshapoval/doc-insights/internal/core/domain"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO documents (
	id, user_id, filename, file_size, file_type, storage_path, upload_status, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`,
		doc.ID, doc.UserID, doc.Filename, doc.FileSize, doc.FileType, doc.StoragePath,
		string(doc.UploadStatus), doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, filename, file_size, file_type, storage_path, upload_status, created_at, updated_at
FROM documents
WHERE id = $1
`, id)

	var doc domain.Document
	var status string
	err := row.Scan(
		&doc.ID, &doc.UserID, &doc.Filename, &doc.FileSize, &doc.FileType,
		&doc.StoragePath, &status, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	doc.UploadStatus = domain.UploadStatus(status)
	return &doc, nil
}

const joinedSelect = `
SELECT
	d.id, d.user_id, d.filename, d.file_size, d.file_type, d.storage_path, d.upload_status, d.created_at, d.updated_at,
	a.id, a.extracted_text, a.ocr_confidence, a.processing_status, a.error_message, a.created_at, a.updated_at,
	i.id, i.summary, i.key_fields, i.named_entities, i.keywords, i.topics, i.risks, i.action_items, i.compliance_suggestions, i.confidence_scores, i.created_at
FROM documents d
LEFT JOIN document_analysis a ON a.document_id = d.id
LEFT JOIN document_insights i ON i.document_id = d.id
`

func (r *DocumentRepository) GetWithRelations(ctx context.Context, id string) (*domain.DocumentWithRelations, error) {
	row := r.db.QueryRowContext(ctx, joinedSelect+`WHERE d.id = $1`, id)
	doc, err := scanJoinedRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document with relations", fmt.Errorf("id %s", id))
		}
		return nil, err
	}
	return doc, nil
}

func (r *DocumentRepository) ListByUser(ctx context.Context, userID string) ([]domain.DocumentWithRelations, error) {
	rows, err := r.db.QueryContext(ctx, joinedSelect+`WHERE d.user_id = $1 ORDER BY d.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.DocumentWithRelations
	for rows.Next() {
		doc, err := scanJoinedRow(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, "delete document", fmt.Errorf("id %s", id))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJoinedRow(row rowScanner) (*domain.DocumentWithRelations, error) {
	var (
		doc          domain.DocumentWithRelations
		uploadStatus string

		analysisID     sql.NullString
		extractedText  sql.NullString
		ocrConfidence  sql.NullInt64
		procStatus     sql.NullString
		errorMessage   sql.NullString
		analysisCreate sql.NullTime
		analysisUpdate sql.NullTime

		insightID     sql.NullString
		summary       sql.NullString
		keyFields     []byte
		entities      []byte
		keywords      []byte
		topics        []byte
		risks         []byte
		actionItems   []byte
		suggestions   []byte
		scores        []byte
		insightCreate sql.NullTime
	)

	err := row.Scan(
		&doc.ID, &doc.UserID, &doc.Filename, &doc.FileSize, &doc.FileType,
		&doc.StoragePath, &uploadStatus, &doc.CreatedAt, &doc.UpdatedAt,
		&analysisID, &extractedText, &ocrConfidence, &procStatus, &errorMessage, &analysisCreate, &analysisUpdate,
		&insightID, &summary, &keyFields, &entities, &keywords, &topics, &risks, &actionItems, &suggestions, &scores, &insightCreate,
	)
	if err != nil {
		return nil, err
	}
	doc.UploadStatus = domain.UploadStatus(uploadStatus)

	if analysisID.Valid {
		doc.Analysis = &domain.AnalysisRecord{
			ID:               analysisID.String,
			DocumentID:       doc.ID,
			ExtractedText:    extractedText.String,
			OCRConfidence:    int(ocrConfidence.Int64),
			ProcessingStatus: domain.ProcessingStatus(procStatus.String),
			ErrorMessage:     errorMessage.String,
			CreatedAt:        analysisCreate.Time,
			UpdatedAt:        analysisUpdate.Time,
		}
	}

	if insightID.Valid {
		insights, err := unmarshalInsights(summary.String, keyFields, entities, keywords, topics, risks, actionItems, suggestions, scores)
		if err != nil {
			return nil, fmt.Errorf("decode insight columns: %w", err)
		}
		doc.Insights = &domain.InsightRecord{
			ID:         insightID.String,
			DocumentID: doc.ID,
			Insights:   insights,
			CreatedAt:  insightCreate.Time,
		}
	}

	return &doc, nil
}
