// Package statekit provides the shared vocabulary for a small reducer-driven
// state container: actions, slices, root state snapshots, listeners and
// middleware.
//
// The library is split into a few packages:
//
//   - [github.com/spetersoncode/statekit/store]: the store that composes
//     slices into one root state and serializes dispatch.
//   - [github.com/spetersoncode/statekit/slice]: a builder for typed slices
//     with generated action types.
//   - [github.com/spetersoncode/statekit/middleware]: default middleware
//     (panic recovery and structured logging).
//   - [github.com/spetersoncode/statekit/apicache]: an API cache slice that
//     tracks query lifetimes for caller-supplied fetchers.
//
// # Basic Usage
//
// Define a slice and configure a store with it:
//
//	type Counter struct{ Value int }
//
//	counterSlice := slice.New("counter", Counter{}, slice.Cases[Counter]{
//	    "incremented": func(s Counter, _ statekit.Action) Counter {
//	        return Counter{Value: s.Value + 1}
//	    },
//	})
//
//	s, err := store.Configure([]statekit.Slice{counterSlice})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s.Dispatch(counterSlice.Action("incremented", nil))
//	fmt.Println(counterSlice.Select(s.GetState()).Value) // 1
//
// # Snapshots
//
// Every dispatch that changes at least one slice produces a new [*State].
// Dispatches that change nothing keep the previous pointer, so subscribers
// can compare snapshots with ==.
//
// # Actions
//
// Action types are namespaced by slice: "counter/incremented" belongs to
// the "counter" slice. Actions that no reducer recognizes are ignored.
package statekit
