package statekit

import "strings"

// InitAction is dispatched to every reducer once when a store is configured.
// No slice should handle it.
var InitAction = Action{Type: "@@statekit/init"}

// Action is a tagged instruction describing a requested state transition.
type Action struct {
	// Type is "<slice>/<transition>", e.g. "counter/incremented".
	Type string

	// Payload carries the transition argument, if any.
	Payload any
}

// NewAction creates an action for the given slice and transition name.
func NewAction(slice, name string, payload any) Action {
	return Action{Type: ActionType(slice, name), Payload: payload}
}

// ActionType joins a slice name and a transition name.
func ActionType(slice, name string) string {
	return slice + "/" + name
}

// Slice returns the slice segment of the action type.
func (a Action) Slice() string {
	slice, _, _ := strings.Cut(a.Type, "/")
	return slice
}

// Name returns the transition segment of the action type, or an empty string
// when the type has no slice prefix.
func (a Action) Name() string {
	_, name, ok := strings.Cut(a.Type, "/")
	if !ok {
		return ""
	}
	return name
}

// String returns the action type.
func (a Action) String() string {
	return a.Type
}
