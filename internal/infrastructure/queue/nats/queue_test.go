package nats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/avshapoval/doc-insights/internal/core/domain"
)

func TestDecodeUploadedEventEnvelope(t *testing.T) {
	payload := []byte(`{"document_id":"doc-1","enqueued_at":"` +
		time.Now().UTC().Add(-2*time.Second).Format(time.RFC3339Nano) + `"}`)

	documentID, queuedFor := decodeUploadedEvent(payload)
	if documentID != "doc-1" {
		t.Fatalf("expected doc-1, got %q", documentID)
	}
	if queuedFor < time.Second {
		t.Fatalf("expected queued duration of at least 1s, got %v", queuedFor)
	}
}

func TestDecodeUploadedEventBareID(t *testing.T) {
	documentID, queuedFor := decodeUploadedEvent([]byte("doc-legacy"))
	if documentID != "doc-legacy" {
		t.Fatalf("expected doc-legacy, got %q", documentID)
	}
	if queuedFor != 0 {
		t.Fatalf("expected zero queued duration for bare payload, got %v", queuedFor)
	}
}

func TestClassifyBrokerError(t *testing.T) {
	if class := classifyBrokerError(nats.ErrNoServers); !class.Retryable || !class.RecordFailure {
		t.Fatalf("connectivity error should retry and record, got %+v", class)
	}
	if class := classifyBrokerError(context.Canceled); class.Retryable || class.RecordFailure {
		t.Fatalf("cancellation should not retry or record, got %+v", class)
	}
	if class := classifyBrokerError(errors.New("bad subject")); class.Retryable {
		t.Fatalf("unknown error should not retry, got %+v", class)
	}
}

func TestMarkTemporaryTagsConnectivityErrors(t *testing.T) {
	if err := markTemporary(nats.ErrTimeout); !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary kind, got %v", err)
	}
	plain := errors.New("bad subject")
	if err := markTemporary(plain); !errors.Is(err, plain) || domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected plain error passthrough, got %v", err)
	}
	if err := markTemporary(nil); err != nil {
		t.Fatalf("expected nil passthrough, got %v", err)
	}
}
