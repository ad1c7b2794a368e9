package apicache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spetersoncode/statekit"
	"github.com/spetersoncode/statekit/retry"
)

// Middleware returns the middleware that starts fetches and schedules
// evictions for this API. It must be registered on the same store as the
// slice.
func (a *API) Middleware() statekit.Middleware {
	return func(api statekit.MiddlewareAPI) func(next statekit.Dispatch) statekit.Dispatch {
		return func(next statekit.Dispatch) statekit.Dispatch {
			return func(action statekit.Action) {
				if action.Slice() != a.path {
					next(action)
					return
				}

				switch action.Name() {
				case "queryRequested":
					a.handleRequested(api, next, action)
				case "invalidated":
					a.handleInvalidated(api, next, action)
				case "unsubscribed":
					next(action)
					if rm, ok := action.Payload.(Removal); ok {
						a.maybeEvict(api, rm.Key)
					}
				default:
					next(action)
				}
			}
		}
	}
}

func (a *API) handleRequested(api statekit.MiddlewareAPI, next statekit.Dispatch, action statekit.Action) {
	req, ok := action.Payload.(QueryRequest)
	if !ok {
		next(action)
		return
	}

	ep, ok := a.endpoints[req.Endpoint]
	if !ok {
		a.logger.Warn("query dropped", "endpoint", req.Endpoint, "error", statekit.ErrUnknownEndpoint)
		return
	}

	a.cancelEviction(req.Key)

	entry, cached := a.State(api.GetState()).Queries[req.Key]
	if cached && (entry.Status == StatusPending || entry.Status == StatusFulfilled) {
		next(action)
		return
	}

	req = a.start(req)
	action.Payload = req
	next(action)
	a.fetch(api, ep, req)
}

func (a *API) handleInvalidated(api statekit.MiddlewareAPI, next statekit.Dispatch, action statekit.Action) {
	req, ok := action.Payload.(QueryRequest)
	if !ok {
		next(action)
		return
	}

	ep, known := a.endpoints[req.Endpoint]
	if !known || a.State(api.GetState()).Subscriptions[req.Key] == 0 {
		next(action)
		return
	}

	req = a.start(req)
	action.Payload = req
	next(action)
	a.fetch(api, ep, req)
}

func (a *API) start(req QueryRequest) QueryRequest {
	req.RequestID = uuid.NewString()
	req.StartedAt = a.now()
	return req
}

// fetch runs the endpoint on its own goroutine and dispatches the result.
func (a *API) fetch(api statekit.MiddlewareAPI, ep Endpoint, req QueryRequest) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.wg.Add(1)
	a.mu.Unlock()

	log := a.logger.With("endpoint", ep.Name, "key", req.Key, "request_id", req.RequestID)
	log.Debug("fetch started")

	go func() {
		defer a.wg.Done()

		data, err := retry.Do(a.ctx, a.retry, func(ctx context.Context) (any, error) {
			return ep.Fetch(ctx, req.Arg)
		})
		if a.ctx.Err() != nil {
			log.Debug("fetch abandoned", "error", a.ctx.Err())
			return
		}

		result := QueryResult{Key: req.Key, RequestID: req.RequestID, At: a.now()}
		if err != nil {
			log.Warn("fetch failed", "error", err)
			result.Error = fmt.Sprintf("%s: %v", ep.Name, err)
			api.Dispatch(statekit.Action{Type: a.Type("queryRejected"), Payload: result})
			return
		}

		log.Debug("fetch completed", "duration", result.At.Sub(req.StartedAt))
		result.Data = data
		api.Dispatch(statekit.Action{Type: a.Type("queryFulfilled"), Payload: result})
	}()
}

func (a *API) maybeEvict(api statekit.MiddlewareAPI, key string) {
	st := a.State(api.GetState())
	if st.Subscriptions[key] > 0 {
		return
	}
	if _, cached := st.Queries[key]; !cached {
		return
	}

	removed := statekit.Action{Type: a.Type("removed"), Payload: Removal{Key: key}}
	if a.keep < 0 {
		api.Dispatch(removed)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	if t, ok := a.timers[key]; ok {
		t.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(a.keep, func() {
		a.mu.Lock()
		current, ok := a.timers[key]
		if !ok || current != timer || a.closed {
			a.mu.Unlock()
			return
		}
		delete(a.timers, key)
		a.mu.Unlock()

		a.logger.Debug("evicting unused entry", "key", key)
		api.Dispatch(removed)
	})
	a.timers[key] = timer
}

func (a *API) cancelEviction(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.timers[key]; ok {
		t.Stop()
		delete(a.timers, key)
	}
}

// Wait blocks until every fetch started so far has dispatched its result.
// When another goroutine is dispatching at that moment, the result is only
// queued and is applied once that dispatch finishes; read the state after
// your own Dispatch returns to be sure it includes the result.
func (a *API) Wait() {
	a.wg.Wait()
}

// Close cancels in-flight fetches and pending evictions. Results of cancelled
// fetches are not dispatched.
func (a *API) Close() {
	a.mu.Lock()
	a.closed = true
	for key, t := range a.timers {
		t.Stop()
		delete(a.timers, key)
	}
	a.mu.Unlock()

	a.cancel()
	a.wg.Wait()
}
