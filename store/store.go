package store

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/spetersoncode/statekit"
)

// Store holds the root state of a fixed set of slices.
// It is safe for concurrent use; dispatches are processed one at a time.
type Store struct {
	slices []statekit.Slice
	logger *slog.Logger
	chain  statekit.Dispatch

	// reduceMu serializes the reducer step for middleware that calls next
	// outside of the dispatch loop.
	reduceMu sync.Mutex

	mu          sync.Mutex
	state       *statekit.State
	listeners   []*subscription
	queue       []statekit.Action
	dispatching bool
}

type subscription struct {
	fn statekit.Listener
}

var _ statekit.MiddlewareAPI = (*Store)(nil)

// Configure builds a store from slices. Each reducer is called once with its
// initial (or preloaded) state and statekit.InitAction. It fails with a
// *statekit.ConfigError when a slice is nil, has an empty name, or shares its
// name with another slice, or when preloaded state names an unknown slice.
func Configure(slices []statekit.Slice, opts ...Option) (*Store, error) {
	o := ApplyOptions(opts...)

	names := make([]string, 0, len(slices))
	seen := make(map[string]struct{}, len(slices))
	for _, sl := range slices {
		if sl == nil {
			return nil, &statekit.ConfigError{Err: statekit.ErrNilSlice}
		}
		name := sl.Name()
		if name == "" {
			return nil, &statekit.ConfigError{Err: statekit.ErrEmptySliceName}
		}
		if _, ok := seen[name]; ok {
			return nil, &statekit.ConfigError{Slice: name, Err: statekit.ErrDuplicateSlice}
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for name := range o.Preloaded {
		if _, ok := seen[name]; !ok {
			return nil, &statekit.ConfigError{Slice: name, Err: statekit.ErrUnknownSlice}
		}
	}

	values := make(map[string]any, len(slices))
	for _, sl := range slices {
		initial := sl.InitialState()
		if v, ok := o.Preloaded[sl.Name()]; ok {
			initial = v
		}
		values[sl.Name()] = sl.Reduce(initial, statekit.InitAction)
	}

	s := &Store{
		slices: append([]statekit.Slice(nil), slices...),
		logger: o.Logger,
		state:  statekit.NewState(names, values),
	}

	// Actions dispatched while the chain is being built go straight to the
	// reducers.
	s.chain = s.reduce
	chain := statekit.Dispatch(s.reduce)
	for i := len(o.Middleware) - 1; i >= 0; i-- {
		mw := o.Middleware[i]
		if mw == nil {
			continue
		}
		chain = mw(s)(chain)
	}
	s.chain = chain

	s.logger.Debug("store configured", "slices", names, "middleware", len(o.Middleware))
	return s, nil
}

// Dispatch sends an action through the middleware chain to the reducers.
// If a dispatch is already running, the action is queued and Dispatch
// returns immediately; the running dispatch processes it afterwards.
func (s *Store) Dispatch(action statekit.Action) {
	s.mu.Lock()
	s.queue = append(s.queue, action)
	if s.dispatching {
		s.mu.Unlock()
		return
	}
	s.dispatching = true
	s.mu.Unlock()

	s.drain()
}

func (s *Store) drain() {
	finished := false
	defer func() {
		// A panicking reducer or middleware must not wedge the store. Queued
		// actions are picked up by the next Dispatch.
		if !finished {
			s.mu.Lock()
			s.dispatching = false
			s.mu.Unlock()
		}
	}()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.dispatching = false
			s.mu.Unlock()
			finished = true
			return
		}
		action := s.queue[0]
		s.queue[0] = statekit.Action{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.chain(action)
	}
}

// reduce is the innermost link of the chain: it runs every slice reducer,
// publishes the new snapshot and notifies listeners.
func (s *Store) reduce(action statekit.Action) {
	prev, next, listeners := s.apply(action)

	if next != prev {
		s.logger.Debug("state changed", "action", action.Type)
	}
	for _, fn := range listeners {
		s.notify(action, fn)
	}
}

// notify runs one listener. A panicking listener is logged and does not keep
// the listeners after it from running.
func (s *Store) notify(action statekit.Action, fn statekit.Listener) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("listener panicked", "action", action.Type, "error", fmt.Sprint(r))
		}
	}()
	fn()
}

func (s *Store) apply(action statekit.Action) (prev, next *statekit.State, listeners []statekit.Listener) {
	s.reduceMu.Lock()
	defer s.reduceMu.Unlock()

	prev = s.GetState()
	updates := make(map[string]any, len(s.slices))
	for _, sl := range s.slices {
		current, _ := prev.Get(sl.Name())
		updates[sl.Name()] = sl.Reduce(current, action)
	}
	next = prev.With(updates)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
	listeners = make([]statekit.Listener, len(s.listeners))
	for i, sub := range s.listeners {
		listeners[i] = sub.fn
	}
	return prev, next, listeners
}

// GetState returns the current root snapshot. Callers must not modify the
// slice values it contains.
func (s *Store) GetState() *statekit.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener called after every completed dispatch. The
// returned function removes it; calling it more than once is a no-op.
func (s *Store) Subscribe(listener statekit.Listener) (unsubscribe func()) {
	if listener == nil {
		return func() {}
	}

	sub := &subscription{fn: listener}
	s.mu.Lock()
	s.listeners = append(s.listeners, sub)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, candidate := range s.listeners {
				if candidate == sub {
					listeners := make([]*subscription, 0, len(s.listeners)-1)
					listeners = append(listeners, s.listeners[:i]...)
					s.listeners = append(listeners, s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Listeners returns the number of registered listeners.
func (s *Store) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}
