package nats

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"

	"github.com/avshapoval/doc-insights/internal/core/domain"
	"github.com/avshapoval/doc-insights/internal/infrastructure/resilience"
)

// connectivity failures are worth retrying and count against the breaker;
// everything else fails fast.
var retryableBrokerErrors = []error{
	nats.ErrNoServers,
	nats.ErrTimeout,
	nats.ErrConnectionClosed,
	nats.ErrDisconnected,
}

func classifyBrokerError(err error) resilience.ErrorClassification {
	switch {
	case err == nil:
		return resilience.ErrorClassification{}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return resilience.ErrorClassification{}
	case resilience.IsCircuitOpen(err), isRetryableBrokerError(err):
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	default:
		return resilience.ErrorClassification{RecordFailure: true}
	}
}

func isRetryableBrokerError(err error) bool {
	for _, candidate := range retryableBrokerErrors {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

// markTemporary tags connectivity failures so callers can map them to a
// retry-later response instead of a hard error.
func markTemporary(err error) error {
	if err == nil || domain.IsKind(err, domain.ErrTemporary) {
		return err
	}
	if isRetryableBrokerError(err) || resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrTemporary, "nats publish", err)
	}
	return err
}
