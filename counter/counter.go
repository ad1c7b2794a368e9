// Package counter implements the counter feature: a single integer value and
// the transitions that change it.
package counter

import (
	"github.com/spetersoncode/statekit"
	"github.com/spetersoncode/statekit/slice"
)

// Name is the key of the counter slice in the root state.
const Name = "counter"

// Action types handled by the counter slice.
const (
	TypeIncremented = Name + "/incremented"
	TypeAmountAdded = Name + "/amountAdded"
	TypeDecrement   = Name + "/decrement"
)

// State holds the counter value. Arithmetic follows Go int semantics, so the
// value wraps on overflow.
type State struct {
	Value int `json:"value" yaml:"value"`
}

// Slice is the counter slice. It is safe to share between stores.
var Slice = slice.New(Name, State{}, slice.Cases[State]{
	"incremented": func(s State, _ statekit.Action) State {
		return State{Value: s.Value + 1}
	},
	"amountAdded": slice.WithPayload(func(s State, amount int) State {
		return State{Value: s.Value + amount}
	}),
	"decrement": func(s State, _ statekit.Action) State {
		return State{Value: s.Value - 1}
	},
})

// Incremented returns the action that adds one.
func Incremented() statekit.Action {
	return statekit.Action{Type: TypeIncremented}
}

// AmountAdded returns the action that adds amount, which may be zero or
// negative.
func AmountAdded(amount int) statekit.Action {
	return statekit.Action{Type: TypeAmountAdded, Payload: amount}
}

// Decrement returns the action that subtracts one.
func Decrement() statekit.Action {
	return statekit.Action{Type: TypeDecrement}
}

// Reduce applies a counter action to a state value.
func Reduce(s State, action statekit.Action) State {
	return Slice.Reduce(s, action).(State)
}

// Select returns the counter state from a root snapshot.
func Select(st *statekit.State) State {
	return Slice.Select(st)
}
