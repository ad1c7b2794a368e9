// Package event streams store activity over channels so it can be observed
// outside of the dispatch loop (tracing, CLIs, tests).
package event

import (
	"time"

	"github.com/spetersoncode/statekit"
)

// Type identifies the kind of event.
type Type string

const (
	// ActionDispatched fires when an action reaches the Forward middleware.
	ActionDispatched Type = "action_dispatched"

	// StateChanged fires after a dispatch that produced a new snapshot.
	StateChanged Type = "state_changed"
)

// Event represents an observable occurrence in a store.
type Event struct {
	// Type identifies the kind of event.
	Type Type

	// Action is the dispatched action for ActionDispatched events.
	Action statekit.Action

	// State is the snapshot after the change for StateChanged events.
	State *statekit.State

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Emit sends an event with timestamp to the channel (non-blocking).
func Emit(ch chan<- Event, e Event) {
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
		// Channel full - don't block
	}
}

// NewChannel creates a buffered event channel with standard capacity.
func NewChannel() chan Event {
	return make(chan Event, 100)
}

// Forward returns middleware that emits an ActionDispatched event for every
// action before passing it on.
func Forward(ch chan<- Event) statekit.Middleware {
	return func(api statekit.MiddlewareAPI) func(next statekit.Dispatch) statekit.Dispatch {
		return func(next statekit.Dispatch) statekit.Dispatch {
			return func(action statekit.Action) {
				Emit(ch, Event{Type: ActionDispatched, Action: action})
				next(action)
			}
		}
	}
}

// Listener returns a store listener that emits a StateChanged event whenever
// the snapshot returned by getState differs from the last one it saw.
// Listeners run one at a time on the dispatching goroutine.
func Listener(ch chan<- Event, getState func() *statekit.State) statekit.Listener {
	last := getState()
	return func() {
		current := getState()
		if current == last {
			return
		}
		last = current
		Emit(ch, Event{Type: StateChanged, State: current})
	}
}
