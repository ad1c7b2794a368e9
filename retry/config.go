// Package retry runs fallible operations with exponential backoff. Only errors
// classified as transient are retried.
package retry

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Config holds retry configuration parameters.
type Config struct {
	// MaxAttempts is the maximum number of attempts (default: 3).
	// The initial call counts as attempt 1.
	MaxAttempts int

	// InitialDelay is the base delay before the first retry (default: 200ms).
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries (default: 5s).
	MaxDelay time.Duration

	// Multiplier is the exponential backoff multiplier (default: 2.0).
	Multiplier float64

	// Jitter adds randomness to prevent thundering herd (default: 0.1 = 10%).
	// Delay is multiplied by (1 + random(-jitter, +jitter)).
	Jitter float64
}

// DefaultConfig returns the default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.1,
	}
}

// Disabled returns a configuration that disables retries (single attempt).
func Disabled() Config {
	return Config{MaxAttempts: 1}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("retry: max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.InitialDelay < 0 || c.MaxDelay < 0 {
		return fmt.Errorf("retry: delays must not be negative")
	}
	if c.Jitter < 0 || c.Jitter > 1 {
		return fmt.Errorf("retry: jitter must be within [0, 1], got %v", c.Jitter)
	}
	return nil
}

// Delay calculates the delay for a given attempt number (0-indexed).
// Formula: min(maxDelay, initialDelay * multiplier^attempt) * (1 + jitter)
func (c Config) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt))
	if delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}

	// Apply jitter: random value in range [-jitter, +jitter]
	if c.Jitter > 0 {
		jitterFactor := 1.0 + (rand.Float64()*2-1)*c.Jitter
		delay *= jitterFactor
	}

	return time.Duration(delay)
}
