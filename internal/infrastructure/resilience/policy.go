package resilience

import "time"

// Defaults tuned for broker publishes: a few quick retries, then let the
// breaker shed load for a while.
const (
	defaultRetryMaxAttempts    = 3
	defaultRetryInitialBackoff = 100 * time.Millisecond
	defaultRetryMaxBackoff     = 400 * time.Millisecond
	defaultRetryMultiplier     = 2.0

	defaultBreakerMinRequests      = uint32(10)
	defaultBreakerFailureRatio     = 0.5
	defaultBreakerOpenTimeout      = 30 * time.Second
	defaultBreakerHalfOpenMaxCalls = uint32(2)
)

type Config struct {
	RetryMaxAttempts    int
	RetryInitialBackoff time.Duration
	RetryMaxBackoff     time.Duration
	RetryMultiplier     float64

	BreakerEnabled          bool
	BreakerMinRequests      uint32
	BreakerFailureRatio     float64
	BreakerOpenTimeout      time.Duration
	BreakerHalfOpenMaxCalls uint32
}

func DefaultConfig() Config {
	return Config{
		RetryMaxAttempts:    defaultRetryMaxAttempts,
		RetryInitialBackoff: defaultRetryInitialBackoff,
		RetryMaxBackoff:     defaultRetryMaxBackoff,
		RetryMultiplier:     defaultRetryMultiplier,

		BreakerEnabled:          true,
		BreakerMinRequests:      defaultBreakerMinRequests,
		BreakerFailureRatio:     defaultBreakerFailureRatio,
		BreakerOpenTimeout:      defaultBreakerOpenTimeout,
		BreakerHalfOpenMaxCalls: defaultBreakerHalfOpenMaxCalls,
	}
}

// normalize fills zero or nonsensical values with the defaults so a
// partially-populated Config never produces a busy loop or a dead breaker.
func (c Config) normalize() Config {
	if c.RetryMaxAttempts <= 0 {
		c.RetryMaxAttempts = defaultRetryMaxAttempts
	}
	if c.RetryInitialBackoff <= 0 {
		c.RetryInitialBackoff = defaultRetryInitialBackoff
	}
	if c.RetryMaxBackoff < c.RetryInitialBackoff {
		c.RetryMaxBackoff = c.RetryInitialBackoff
	}
	if c.RetryMultiplier < 1.0 {
		c.RetryMultiplier = defaultRetryMultiplier
	}
	if c.BreakerMinRequests == 0 {
		c.BreakerMinRequests = defaultBreakerMinRequests
	}
	if c.BreakerFailureRatio <= 0 || c.BreakerFailureRatio > 1 {
		c.BreakerFailureRatio = defaultBreakerFailureRatio
	}
	if c.BreakerOpenTimeout <= 0 {
		c.BreakerOpenTimeout = defaultBreakerOpenTimeout
	}
	if c.BreakerHalfOpenMaxCalls == 0 {
		c.BreakerHalfOpenMaxCalls = defaultBreakerHalfOpenMaxCalls
	}
	return c
}
