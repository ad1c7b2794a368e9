package statekit

import (
	"reflect"
	"unsafe"
)

// State is an immutable snapshot of the root state: one value per slice name.
// A *State is never modified after it is published by a store.
type State struct {
	names  []string
	slices map[string]any
}

// NewState builds a snapshot from slice names (in registration order) and
// their values. Names missing from values map to nil.
func NewState(names []string, values map[string]any) *State {
	st := &State{
		names:  make([]string, len(names)),
		slices: make(map[string]any, len(names)),
	}
	copy(st.names, names)
	for _, name := range names {
		st.slices[name] = values[name]
	}
	return st
}

// Get returns the state of the named slice.
func (s *State) Get(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.slices[name]
	return v, ok
}

// Names returns the slice names in registration order.
func (s *State) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Len returns the number of slices.
func (s *State) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Map returns a shallow copy of the snapshot keyed by slice name.
func (s *State) Map() map[string]any {
	if s == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(s.slices))
	for k, v := range s.slices {
		out[k] = v
	}
	return out
}

// With returns a snapshot with the given slice values replaced. The receiver
// is returned unchanged when every value is identical to the current one.
func (s *State) With(updates map[string]any) *State {
	changed := false
	for name, v := range updates {
		prev, ok := s.slices[name]
		if !ok || !Identical(prev, v) {
			changed = true
			break
		}
	}
	if !changed {
		return s
	}
	next := &State{names: s.names, slices: make(map[string]any, len(s.slices))}
	for k, v := range s.slices {
		next.slices[k] = v
	}
	for k, v := range updates {
		if _, ok := next.slices[k]; ok {
			next.slices[k] = v
		}
	}
	return next
}

// Identical reports whether two slice states are the same value. A reducer
// that returns the state it was given is always identical, whatever the type.
// Otherwise comparable values use ==, so pointers compare by address, and
// maps, slices and funcs are identical only when they share the same header.
func Identical(a, b any) (same bool) {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil || dataWord(a) == dataWord(b) {
		return true
	}
	// Structs holding interface fields are comparable but == panics when the
	// interface holds a map or slice.
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	if ta.Comparable() {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	return false
}

// dataWord returns the value pointer of an interface. Copies of one interface
// value share it, so a state passed through a reducer untouched keeps it.
func dataWord(v any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&v))[1]
}
