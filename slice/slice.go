// Package slice builds typed statekit slices from a name, an initial state and
// a set of case reducers, generating namespaced action types.
package slice

import (
	"reflect"

	"github.com/spetersoncode/statekit"
)

// CaseReducer computes the next slice state for one transition. It receives
// the current state by value and returns the new one.
type CaseReducer[S any] func(state S, action statekit.Action) S

// Cases maps a transition name (without the slice prefix) to its reducer.
type Cases[S any] map[string]CaseReducer[S]

// Slice is a typed statekit.Slice.
type Slice[S any] struct {
	name    string
	initial S
	cases   map[string]CaseReducer[S]
}

var _ statekit.Slice = (*Slice[int])(nil)

// New creates a slice. The cases map is copied.
func New[S any](name string, initial S, cases Cases[S]) *Slice[S] {
	s := &Slice[S]{
		name:    name,
		initial: initial,
		cases:   make(map[string]CaseReducer[S], len(cases)),
	}
	for caseName, fn := range cases {
		s.cases[statekit.ActionType(name, caseName)] = fn
	}
	return s
}

// Name returns the slice name.
func (s *Slice[S]) Name() string {
	return s.name
}

// InitialState returns the initial state.
func (s *Slice[S]) InitialState() any {
	return s.initial
}

// Reduce applies the matching case reducer. Foreign and unknown actions
// return state untouched.
func (s *Slice[S]) Reduce(state any, action statekit.Action) any {
	fn, ok := s.cases[action.Type]
	if !ok || fn == nil {
		return state
	}
	current, ok := state.(S)
	if !ok {
		current = s.initial
	}
	return fn(current, action)
}

// Type returns the full action type of a transition.
func (s *Slice[S]) Type(caseName string) string {
	return statekit.ActionType(s.name, caseName)
}

// Action creates an action for a transition of this slice.
func (s *Slice[S]) Action(caseName string, payload any) statekit.Action {
	return statekit.NewAction(s.name, caseName, payload)
}

// Handles reports whether the slice has a reducer for the action type.
func (s *Slice[S]) Handles(actionType string) bool {
	_, ok := s.cases[actionType]
	return ok
}

// Select returns the slice state from a root snapshot, or the initial state
// when the slice is absent.
func (s *Slice[S]) Select(st *statekit.State) S {
	v, ok := st.Get(s.name)
	if !ok {
		return s.initial
	}
	typed, ok := v.(S)
	if !ok {
		return s.initial
	}
	return typed
}

// WithPayload adapts a reducer taking a typed payload. Payloads that cannot be
// converted to P are passed as the zero value.
func WithPayload[S, P any](fn func(state S, payload P) S) CaseReducer[S] {
	return func(state S, action statekit.Action) S {
		p, _ := Payload[P](action)
		return fn(state, p)
	}
}

// Payload returns the action payload as P. Numeric payloads of another kind
// (for example float64 from a JSON decoder) are converted with Go conversion
// rules. It reports false and the zero value when no conversion applies.
func Payload[P any](action statekit.Action) (P, bool) {
	var zero P
	if p, ok := action.Payload.(P); ok {
		return p, true
	}
	if action.Payload == nil {
		return zero, false
	}

	target := reflect.TypeOf(zero)
	if target == nil {
		return zero, false
	}
	v := reflect.ValueOf(action.Payload)
	if !isNumeric(v.Kind()) || !isNumeric(target.Kind()) {
		return zero, false
	}
	return v.Convert(target).Interface().(P), true
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
