package domain

import "time"

type UploadStatus string

const (
	UploadPending   UploadStatus = "pending"
	UploadCompleted UploadStatus = "completed"
	UploadFailed    UploadStatus = "failed"
)

type ProcessingStatus string

const (
	ProcessingInProgress ProcessingStatus = "processing"
	ProcessingCompleted  ProcessingStatus = "completed"
	ProcessingFailed     ProcessingStatus = "failed"
)

type Document struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	Filename     string       `json:"filename"`
	FileSize     int64        `json:"file_size"`
	FileType     string       `json:"file_type"`
	StoragePath  string       `json:"storage_path"`
	UploadStatus UploadStatus `json:"upload_status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// AnalysisRecord tracks text extraction progress for a single document.
// Exactly one exists per document once processing starts; completed and
// failed are terminal.
type AnalysisRecord struct {
	ID               string           `json:"id"`
	DocumentID       string           `json:"document_id"`
	ExtractedText    string           `json:"extracted_text,omitempty"`
	OCRConfidence    int              `json:"ocr_confidence"`
	ProcessingStatus ProcessingStatus `json:"processing_status"`
	ErrorMessage     string           `json:"error_message,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// DocumentWithRelations is the read model joined with the optional children
// the pipeline produces.
type DocumentWithRelations struct {
	Document
	Analysis *AnalysisRecord `json:"document_analysis,omitempty"`
	Insights *InsightRecord  `json:"document_insights,omitempty"`
}
