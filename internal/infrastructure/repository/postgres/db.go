package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// EnsureSchema bootstraps the three-table layout: documents plus their 1:1
// analysis and insight children, cascading on document deletion.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	filename TEXT NOT NULL,
	file_size BIGINT NOT NULL DEFAULT 0,
	file_type TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	upload_status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_user_created ON documents(user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS document_analysis (
	id TEXT PRIMARY KEY,
	document_id TEXT NOT NULL UNIQUE REFERENCES documents(id) ON DELETE CASCADE,
	extracted_text TEXT,
	ocr_confidence INTEGER NOT NULL DEFAULT 0,
	processing_status TEXT NOT NULL,
	error_message TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS document_insights (
	id TEXT PRIMARY KEY,
	document_id TEXT NOT NULL UNIQUE REFERENCES documents(id) ON DELETE CASCADE,
	summary TEXT NOT NULL,
	key_fields JSONB NOT NULL DEFAULT '{}'::jsonb,
	named_entities JSONB NOT NULL DEFAULT '[]'::jsonb,
	keywords JSONB NOT NULL DEFAULT '[]'::jsonb,
	topics JSONB NOT NULL DEFAULT '[]'::jsonb,
	risks JSONB NOT NULL DEFAULT '[]'::jsonb,
	action_items JSONB NOT NULL DEFAULT '[]'::jsonb,
	compliance_suggestions JSONB NOT NULL DEFAULT '[]'::jsonb,
	confidence_scores JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL
);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
