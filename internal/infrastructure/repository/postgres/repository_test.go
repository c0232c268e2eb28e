package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/avshapoval/doc-insights/internal/core/domain"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return db, mock, func() { _ = db.Close() }
}

func TestDocumentGetByIDReturnsDomainNotFound(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewDocumentRepository(db)

	mock.ExpectQuery("SELECT id, user_id, filename").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDocumentDeleteReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewDocumentRepository(db)

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAnalysisMarkFailedReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewAnalysisRepository(db)

	mock.ExpectExec("UPDATE document_analysis").
		WithArgs("missing", string(domain.ProcessingFailed), "boom", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkFailed(context.Background(), "missing", "boom")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAnalysisMarkCompletedScansUpdatedRow(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewAnalysisRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "document_id", "extracted_text", "ocr_confidence", "processing_status", "error_message", "created_at", "updated_at",
	}).AddRow("rec-1", "doc-1", "the text", 85, "completed", nil, now, now)

	mock.ExpectQuery("UPDATE document_analysis").
		WithArgs("doc-1", "the text", 85, string(domain.ProcessingCompleted), sqlmock.AnyArg()).
		WillReturnRows(rows)

	rec, err := repo.MarkCompleted(context.Background(), "doc-1", "the text", 85)
	if err != nil {
		t.Fatalf("MarkCompleted() error = %v", err)
	}
	if rec.ProcessingStatus != domain.ProcessingCompleted || rec.OCRConfidence != 85 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestInsightCreateMarshalsJSONColumns(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewInsightRepository(db)

	mock.ExpectExec("INSERT INTO document_insights").
		WithArgs(
			"ins-1", "doc-1", "a summary",
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := &domain.InsightRecord{
		ID:         "ins-1",
		DocumentID: "doc-1",
		Insights: domain.Insights{
			Summary:  "a summary",
			Keywords: []domain.Keyword{{Text: "contract", Relevance: 1.0}},
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListByUserScansJoinedRelations(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewDocumentRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "filename", "file_size", "file_type", "storage_path", "upload_status", "created_at", "updated_at",
		"a_id", "extracted_text", "ocr_confidence", "processing_status", "error_message", "a_created_at", "a_updated_at",
		"i_id", "summary", "key_fields", "named_entities", "keywords", "topics", "risks", "action_items", "compliance_suggestions", "confidence_scores", "i_created_at",
	}).AddRow(
		"doc-1", "user-1", "a.txt", 10, "text/plain", "user-1/doc-1_a.txt", "completed", now, now,
		"rec-1", "text", 85, "completed", nil, now, now,
		"ins-1", "a summary", []byte(`{}`), []byte(`[]`), []byte(`[{"text":"contract","relevance":1}]`), []byte(`[]`), []byte(`[]`), []byte(`[]`), []byte(`[]`), []byte(`{"overall":0.8,"extraction":0.85,"analysis":0.78,"insights":0.77}`), now,
	).AddRow(
		"doc-2", "user-1", "b.txt", 5, "text/plain", "user-1/doc-2_b.txt", "completed", now, now,
		nil, nil, nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
	)

	mock.ExpectQuery("SELECT").
		WithArgs("user-1").
		WillReturnRows(rows)

	docs, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Analysis == nil || docs[0].Insights == nil {
		t.Fatalf("expected joined relations on first document: %+v", docs[0])
	}
	if docs[0].Insights.ConfidenceScores.Overall != 0.8 {
		t.Fatalf("unexpected decoded scores: %+v", docs[0].Insights.ConfidenceScores)
	}
	if docs[1].Analysis != nil || docs[1].Insights != nil {
		t.Fatalf("expected bare document without relations: %+v", docs[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
