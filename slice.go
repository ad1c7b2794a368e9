package statekit

// Reducer computes the next state of one slice. It must not modify state and
// must return state itself when it does not handle the action.
type Reducer func(state any, action Action) any

// Slice is a named portion of the root state together with its reducer.
type Slice interface {
	// Name is the key of the slice in the root state.
	Name() string

	// InitialState is passed to Reduce with InitAction when a store is built.
	InitialState() any

	// Reduce computes the next slice state.
	Reduce(state any, action Action) any
}

type funcSlice struct {
	name    string
	initial any
	reduce  Reducer
}

// SliceFunc adapts a plain reducer function into a Slice. This is how
// externally defined reducers are registered with a store.
func SliceFunc(name string, initial any, reduce Reducer) Slice {
	return &funcSlice{name: name, initial: initial, reduce: reduce}
}

func (s *funcSlice) Name() string      { return s.name }
func (s *funcSlice) InitialState() any { return s.initial }

func (s *funcSlice) Reduce(state any, action Action) any {
	if s.reduce == nil {
		return state
	}
	return s.reduce(state, action)
}

// Listener is invoked once per completed dispatch.
type Listener func()

// Dispatch sends an action to the next link of a middleware chain.
type Dispatch func(action Action)

// MiddlewareAPI is the view of the store handed to middleware.
type MiddlewareAPI interface {
	// Dispatch sends an action through the whole chain. While a dispatch is in
	// progress the action is queued and processed after it completes.
	Dispatch(action Action)

	// GetState returns the current root snapshot.
	GetState() *State
}

// Middleware intercepts actions before they reach the reducers. A middleware
// may inspect, transform, delay or suppress an action by choosing whether and
// how to call next.
type Middleware func(api MiddlewareAPI) func(next Dispatch) Dispatch
