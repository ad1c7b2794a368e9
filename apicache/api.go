// Package apicache is a statekit slice that caches the results of
// caller-supplied fetchers and tracks how long each result stays in use.
//
// Components subscribe to a query with [API.Initiate]. The first subscriber
// triggers a fetch; later subscribers share the pending or fulfilled entry.
// When the last subscriber leaves via [API.Unsubscribe], the entry is kept
// for KeepUnusedDataFor and then removed.
//
//	api, err := apicache.New(apicache.Config{
//	    Endpoints: []apicache.Endpoint{{Name: "fetchBreeds", Fetch: fetchBreeds}},
//	})
//	s, err := store.Configure([]statekit.Slice{api}, store.WithMiddleware(api.Middleware()))
//
//	s.Dispatch(api.Initiate("fetchBreeds", 10))
//	api.Wait()
//	entry := api.Select(s.GetState(), "fetchBreeds", 10)
package apicache

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/spetersoncode/statekit"
	"github.com/spetersoncode/statekit/retry"
)

// DefaultReducerPath is the slice name used when Config.ReducerPath is empty.
const DefaultReducerPath = "api"

// DefaultKeepUnusedDataFor is how long unsubscribed entries are kept.
const DefaultKeepUnusedDataFor = 60 * time.Second

// Fetcher loads the data of one endpoint for one argument.
type Fetcher func(ctx context.Context, arg any) (any, error)

// Endpoint is a named query backed by a fetcher.
type Endpoint struct {
	Name  string
	Fetch Fetcher
}

// Config configures an API slice.
type Config struct {
	// ReducerPath is the slice name (default: "api").
	ReducerPath string

	// Endpoints are the queries this API serves.
	Endpoints []Endpoint

	// KeepUnusedDataFor is how long an entry survives without subscribers
	// (default: 60s). A negative value removes entries as soon as the last
	// subscriber leaves.
	KeepUnusedDataFor time.Duration

	// Retry controls fetch retries (default: retry.DefaultConfig()).
	Retry *retry.Config

	// Logger receives fetch failures and eviction messages.
	Logger *slog.Logger

	// Now overrides the clock used for timestamps.
	Now func() time.Time
}

// API is a statekit slice plus the middleware that runs its fetches.
type API struct {
	path      string
	endpoints map[string]Endpoint
	keep      time.Duration
	retry     retry.Config
	logger    *slog.Logger
	now       func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

var _ statekit.Slice = (*API)(nil)

// New validates the configuration and creates an API slice.
func New(cfg Config) (*API, error) {
	path := cfg.ReducerPath
	if path == "" {
		path = DefaultReducerPath
	}

	endpoints := make(map[string]Endpoint, len(cfg.Endpoints))
	for _, ep := range cfg.Endpoints {
		if ep.Name == "" || ep.Fetch == nil {
			return nil, &statekit.ConfigError{Slice: path, Err: statekit.ErrInvalidEndpoint}
		}
		if _, ok := endpoints[ep.Name]; ok {
			return nil, &statekit.ConfigError{Slice: path, Err: statekit.ErrDuplicateEndpoint}
		}
		endpoints[ep.Name] = ep
	}

	retryCfg := retry.DefaultConfig()
	if cfg.Retry != nil {
		retryCfg = *cfg.Retry
	}
	if err := retryCfg.Validate(); err != nil {
		return nil, &statekit.ConfigError{Slice: path, Err: err}
	}

	keep := cfg.KeepUnusedDataFor
	if keep == 0 {
		keep = DefaultKeepUnusedDataFor
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &API{
		path:      path,
		endpoints: endpoints,
		keep:      keep,
		retry:     retryCfg,
		logger:    logger.With("slice", path),
		now:       now,
		ctx:       ctx,
		cancel:    cancel,
		timers:    make(map[string]*time.Timer),
	}, nil
}

// Name returns the reducer path.
func (a *API) Name() string {
	return a.path
}

// InitialState returns an empty cache.
func (a *API) InitialState() any {
	return newState()
}

// Type returns the full action type for one of the API transitions:
// queryRequested, queryFulfilled, queryRejected, unsubscribed, invalidated
// or removed.
func (a *API) Type(name string) string {
	return statekit.ActionType(a.path, name)
}

// Initiate returns the action that subscribes to endpoint(arg), starting a
// fetch when nothing usable is cached.
func (a *API) Initiate(endpoint string, arg any) statekit.Action {
	return statekit.Action{
		Type:    a.Type("queryRequested"),
		Payload: QueryRequest{Key: Key(endpoint, arg), Endpoint: endpoint, Arg: arg},
	}
}

// Unsubscribe returns the action that releases one subscription to
// endpoint(arg).
func (a *API) Unsubscribe(endpoint string, arg any) statekit.Action {
	return statekit.Action{
		Type:    a.Type("unsubscribed"),
		Payload: Removal{Key: Key(endpoint, arg)},
	}
}

// Invalidate returns the action that discards endpoint(arg). Subscribed
// entries are refetched, unsubscribed ones are dropped.
func (a *API) Invalidate(endpoint string, arg any) statekit.Action {
	return statekit.Action{
		Type:    a.Type("invalidated"),
		Payload: QueryRequest{Key: Key(endpoint, arg), Endpoint: endpoint, Arg: arg},
	}
}

// State returns the API slice state from a root snapshot.
func (a *API) State(st *statekit.State) *State {
	v, ok := st.Get(a.path)
	if !ok {
		return newState()
	}
	s, ok := v.(*State)
	if !ok || s == nil {
		return newState()
	}
	return s
}

// Select returns the cache entry of endpoint(arg). Missing entries have
// StatusUninitialized.
func (a *API) Select(st *statekit.State, endpoint string, arg any) Entry {
	entry, ok := a.State(st).Queries[Key(endpoint, arg)]
	if !ok {
		return Entry{Endpoint: endpoint, Arg: arg, Status: StatusUninitialized}
	}
	return entry
}

// Subscribers returns the number of subscriptions to endpoint(arg).
func (a *API) Subscribers(st *statekit.State, endpoint string, arg any) int {
	return a.State(st).Subscriptions[Key(endpoint, arg)]
}

// Reduce applies API actions to the cache state.
func (a *API) Reduce(state any, action statekit.Action) any {
	if action.Slice() != a.path {
		return state
	}
	current, ok := state.(*State)
	if !ok || current == nil {
		current = newState()
	}

	switch action.Name() {
	case "queryRequested":
		req, ok := action.Payload.(QueryRequest)
		if !ok {
			return state
		}
		next := current.clone()
		next.Subscriptions[req.Key]++
		if req.RequestID != "" {
			next.Queries[req.Key] = pending(current.Queries[req.Key], req)
		}
		return next

	case "invalidated":
		req, ok := action.Payload.(QueryRequest)
		if !ok {
			return state
		}
		if _, cached := current.Queries[req.Key]; !cached && req.RequestID == "" {
			return state
		}
		next := current.clone()
		if req.RequestID != "" {
			next.Queries[req.Key] = pending(current.Queries[req.Key], req)
		} else {
			delete(next.Queries, req.Key)
		}
		return next

	case "queryFulfilled", "queryRejected":
		res, ok := action.Payload.(QueryResult)
		if !ok {
			return state
		}
		entry, cached := current.Queries[res.Key]
		if !cached || entry.RequestID != res.RequestID {
			return state
		}
		if action.Name() == "queryFulfilled" {
			entry.Status = StatusFulfilled
			entry.Data = res.Data
			entry.Error = ""
			entry.FulfilledAt = res.At
		} else {
			entry.Status = StatusRejected
			entry.Error = res.Error
		}
		next := current.clone()
		next.Queries[res.Key] = entry
		return next

	case "unsubscribed":
		rm, ok := action.Payload.(Removal)
		if !ok || current.Subscriptions[rm.Key] == 0 {
			return state
		}
		next := current.clone()
		next.Subscriptions[rm.Key]--
		if next.Subscriptions[rm.Key] == 0 {
			delete(next.Subscriptions, rm.Key)
		}
		return next

	case "removed":
		rm, ok := action.Payload.(Removal)
		if !ok || current.Subscriptions[rm.Key] > 0 {
			return state
		}
		if _, cached := current.Queries[rm.Key]; !cached {
			return state
		}
		next := current.clone()
		delete(next.Queries, rm.Key)
		return next
	}

	return state
}

// pending marks an entry as refetching. Data from a previous fetch is kept
// until the new result arrives.
func pending(prev Entry, req QueryRequest) Entry {
	prev.Endpoint = req.Endpoint
	prev.Arg = req.Arg
	prev.Status = StatusPending
	prev.Error = ""
	prev.RequestID = req.RequestID
	prev.StartedAt = req.StartedAt
	return prev
}
