package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"
	"time"

	"github.com/spetersoncode/statekit"
	"github.com/stretchr/testify/assert"
)

// mockNetError simulates a network error with a timeout flag.
type mockNetError struct {
	msg     string
	timeout bool
}

func (e *mockNetError) Error() string   { return e.msg }
func (e *mockNetError) Timeout() bool   { return e.timeout }
func (e *mockNetError) Temporary() bool { return e.timeout }

var _ net.Error = (*mockNetError)(nil)

// mockStatusError simulates an HTTP client error with a status code.
type mockStatusError struct{ code int }

func (e *mockStatusError) Error() string   { return fmt.Sprintf("status %d", e.code) }
func (e *mockStatusError) StatusCode() int { return e.code }

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
		Jitter:       0,
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 5*time.Second, cfg.MaxDelay)
	assert.Equal(t, 2.0, cfg.Multiplier)
	assert.Equal(t, 0.1, cfg.Jitter)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Disabled().Validate())
	assert.Error(t, Config{}.Validate())
	assert.Error(t, Config{MaxAttempts: 1, InitialDelay: -1}.Validate())
	assert.Error(t, Config{MaxAttempts: 1, Jitter: 2}.Validate())
}

func TestConfigDelay(t *testing.T) {
	cfg := Config{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2.0,
	}

	assert.Equal(t, 100*time.Millisecond, cfg.Delay(0))
	assert.Equal(t, 200*time.Millisecond, cfg.Delay(1))
	assert.Equal(t, 400*time.Millisecond, cfg.Delay(2))
	assert.Equal(t, time.Second, cfg.Delay(10))
	assert.Equal(t, 100*time.Millisecond, cfg.Delay(-3))
}

func TestConfigDelayJitterBounds(t *testing.T) {
	cfg := Config{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   1.0,
		Jitter:       0.5,
	}

	for i := 0; i < 50; i++ {
		d := cfg.Delay(0)
		assert.GreaterOrEqual(t, d, 50*time.Millisecond)
		assert.LessOrEqual(t, d, 150*time.Millisecond)
	}
}

func TestDoSuccess(t *testing.T) {
	callCount := 0

	result, err := Do(context.Background(), DefaultConfig(), func(context.Context) (string, error) {
		callCount++
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, callCount)
}

func TestDoRetryOnTransientError(t *testing.T) {
	callCount := 0

	result, err := Do(context.Background(), fastConfig(3), func(context.Context) (int, error) {
		callCount++
		if callCount < 3 {
			return 0, statekit.NewTransientError("busy", nil)
		}
		return 42, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 3, callCount)
}

func TestDoNoRetryOnPermanentError(t *testing.T) {
	callCount := 0
	permanentErr := errors.New("permanent error")

	_, err := Do(context.Background(), fastConfig(5), func(context.Context) (string, error) {
		callCount++
		return "", permanentErr
	})

	assert.Equal(t, permanentErr, err)
	assert.Equal(t, 1, callCount)
}

func TestDoExhaustsRetries(t *testing.T) {
	callCount := 0
	transientErr := &mockNetError{msg: "timeout", timeout: true}

	_, err := Do(context.Background(), fastConfig(3), func(context.Context) (string, error) {
		callCount++
		return "", transientErr
	})

	assert.Equal(t, transientErr, err)
	assert.Equal(t, 3, callCount)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	cfg := Config{
		MaxAttempts:  10,
		InitialDelay: time.Second,
		MaxDelay:     time.Second,
		Multiplier:   1.0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	callCount := 0

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, cfg, func(context.Context) (string, error) {
		callCount++
		return "", statekit.NewTransientError("busy", nil)
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount)
}

func TestDoWithCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := Do(ctx, DefaultConfig(), func(context.Context) (string, error) {
		called = true
		return "", nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestDoWithDisabledRetry(t *testing.T) {
	callCount := 0

	_, err := Do(context.Background(), Disabled(), func(context.Context) (string, error) {
		callCount++
		return "", statekit.NewTransientError("busy", nil)
	})

	assert.Error(t, err)
	assert.Equal(t, 1, callCount)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"categorized transient", statekit.NewTransientError("busy", nil), true},
		{"categorized permanent", statekit.NewPermanentError("gone", nil), false},
		{"wrapped transient", fmt.Errorf("fetch: %w", statekit.NewTransientError("busy", nil)), true},
		{"config error", &statekit.ConfigError{Err: statekit.ErrDuplicateSlice}, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", fmt.Errorf("fetch: %w", context.DeadlineExceeded), false},
		{"status 429", &mockStatusError{code: 429}, true},
		{"status 503", &mockStatusError{code: 503}, true},
		{"status 404", &mockStatusError{code: 404}, false},
		{"net timeout", &mockNetError{msg: "timeout", timeout: true}, true},
		{"net non-timeout", &mockNetError{msg: "closed"}, false},
		{"url timeout", &url.Error{Op: "Get", URL: "http://x", Err: &mockNetError{msg: "t", timeout: true}}, true},
		{"temporary dns", &net.DNSError{Err: "try again", IsTemporary: true}, true},
		{"dns not found", &net.DNSError{Err: "no such host", IsNotFound: true}, false},
		{"connection reset", fmt.Errorf("read: %w", syscall.ECONNRESET), true},
		{"connection refused", syscall.ECONNREFUSED, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTransient(tt.err))
		})
	}
}
