// Package text turns stored document bytes into a plain-text string.
//
// Only text/* content is genuinely decoded. PDFs get a best-effort real
// extraction; every other declared type passes its bytes through unchanged,
// which mirrors how the upstream product behaved and keeps the pipeline
// usable for formats we cannot parse yet.
package text

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/avshapoval/doc-insights/internal/core/domain"
	"github.com/avshapoval/doc-insights/internal/core/ports"
)

type Extractor struct {
	storage ports.BlobStorage
	logger  *slog.Logger
}

func NewExtractor(storage ports.BlobStorage, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{storage: storage, logger: logger}
}

func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	reader, err := e.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return "", domain.WrapError(domain.ErrUnreadable, "open source document", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", domain.WrapError(domain.ErrUnreadable, "read source document", err)
	}

	if doc.FileType == "application/pdf" {
		if text, err := pdfText(raw); err == nil {
			return text, nil
		} else {
			e.logger.Warn("pdf extraction failed, passing raw content through",
				"document_id", doc.ID, "error", err)
		}
	}

	if !utf8.Valid(raw) {
		return "", domain.WrapError(domain.ErrUnreadable, "decode source document",
			fmt.Errorf("content of %s is not valid utf-8", doc.Filename))
	}
	return string(raw), nil
}

func pdfText(raw []byte) (text string, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	if strings.TrimSpace(builder.String()) == "" {
		return "", errors.New("pdf contains no extractable text")
	}
	return builder.String(), nil
}
