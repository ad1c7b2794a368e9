package app

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/spetersoncode/statekit"
	"github.com/spetersoncode/statekit/apicache"
	"github.com/spetersoncode/statekit/counter"
	"github.com/spetersoncode/statekit/dogs"
	"github.com/spetersoncode/statekit/event"
	"github.com/spetersoncode/statekit/internal/config"
	"github.com/spetersoncode/statekit/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:          "debug",
		LogFormat:         "text",
		CacheKeepUnused:   time.Minute,
		RetryMaxAttempts:  1,
		RetryInitialDelay: time.Millisecond,
		RetryMaxDelay:     time.Millisecond,
	}
}

func newTestApp(t *testing.T, opts ...store.Option) (*App, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := testConfig()
	a, err := New(cfg, cfg.Logger(&buf), dogs.NewStaticSource(), opts...)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, &buf
}

func TestApp_InitialState(t *testing.T) {
	a, _ := newTestApp(t)

	root := a.State()
	assert.Equal(t, counter.State{Value: 0}, root.Counter)
	require.NotNil(t, root.API)
	assert.Empty(t, root.API.Queries)
	assert.Equal(t, []string{counter.Name, apicache.DefaultReducerPath}, a.Store().GetState().Names())
}

func TestApp_CounterScenario(t *testing.T) {
	a, buf := newTestApp(t)

	a.Dispatch(counter.Incremented())
	a.Dispatch(counter.AmountAdded(5))
	a.Dispatch(counter.Decrement())

	assert.Equal(t, 5, a.State().Counter.Value)
	assert.Contains(t, buf.String(), "type=counter/amountAdded")

	before := a.Store().GetState()
	a.Dispatch(statekit.Action{Type: "unknown/noop"})
	assert.Same(t, before, a.Store().GetState())
	assert.Equal(t, 5, a.State().Counter.Value)
}

func TestApp_Breeds(t *testing.T) {
	a, _ := newTestApp(t)

	a.Dispatch(dogs.FetchBreeds(a.API(), 3))
	a.API().Wait()

	breeds, entry := dogs.SelectBreeds(a.API(), a.Store().GetState(), 3)
	assert.Equal(t, apicache.StatusFulfilled, entry.Status)
	assert.Len(t, breeds, 3)

	// The API slice does not disturb the counter slice.
	assert.Equal(t, 0, a.State().Counter.Value)
}

func TestApp_ExtraMiddlewareRunsAfterDefaults(t *testing.T) {
	ch := event.NewChannel()
	a, _ := newTestApp(t, store.WithMiddleware(event.Forward(ch)))

	a.Dispatch(counter.Incremented())

	e := <-ch
	assert.Equal(t, event.ActionDispatched, e.Type)
	assert.Equal(t, counter.TypeIncremented, e.Action.Type)
}

func TestApp_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.RetryMaxAttempts = 0

	_, err := New(cfg, slog.Default(), dogs.NewStaticSource())
	require.Error(t, err)
	assert.True(t, statekit.IsConfig(err))
}
