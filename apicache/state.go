package apicache

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the lifecycle stage of a cached query.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusPending       Status = "pending"
	StatusFulfilled     Status = "fulfilled"
	StatusRejected      Status = "rejected"
)

// Entry is the cached result of one endpoint called with one argument.
type Entry struct {
	Endpoint    string
	Arg         any
	Status      Status
	Data        any
	Error       string
	RequestID   string
	StartedAt   time.Time
	FulfilledAt time.Time
}

// State is the API slice state. A published *State is never modified; every
// change produces a copy.
type State struct {
	Queries       map[string]Entry
	Subscriptions map[string]int
}

func newState() *State {
	return &State{
		Queries:       map[string]Entry{},
		Subscriptions: map[string]int{},
	}
}

func (s *State) clone() *State {
	next := &State{
		Queries:       make(map[string]Entry, len(s.Queries)),
		Subscriptions: make(map[string]int, len(s.Subscriptions)),
	}
	for k, v := range s.Queries {
		next.Queries[k] = v
	}
	for k, v := range s.Subscriptions {
		next.Subscriptions[k] = v
	}
	return next
}

// Key returns the cache key of an endpoint called with arg, e.g.
// "fetchBreeds(10)".
func Key(endpoint string, arg any) string {
	raw, err := json.Marshal(arg)
	if err != nil {
		return fmt.Sprintf("%s(%v)", endpoint, arg)
	}
	return endpoint + "(" + string(raw) + ")"
}

// QueryRequest is the payload of queryRequested and invalidated actions.
// RequestID is set by the middleware when a fetch is started.
type QueryRequest struct {
	Key       string
	Endpoint  string
	Arg       any
	RequestID string
	StartedAt time.Time
}

// QueryResult is the payload of queryFulfilled and queryRejected actions.
type QueryResult struct {
	Key       string
	RequestID string
	Data      any
	Error     string
	At        time.Time
}

// Removal is the payload of unsubscribed and removed actions.
type Removal struct {
	Key string
}
