// Package store composes statekit slices into a single root state and
// provides dispatch, subscription and snapshot access.
//
// # Basic Usage
//
// Configure a store from its slices and dispatch actions:
//
//	s, err := store.Configure([]statekit.Slice{counter.Slice})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s.Dispatch(counter.Incremented())
//	s.Dispatch(counter.AmountAdded(5))
//
//	fmt.Println(counter.Select(s.GetState()).Value) // 6
//
// # Middleware
//
// Middleware wraps dispatch in caller order; the first middleware sees the
// action first:
//
//	s, err := store.Configure(slices,
//	    store.WithMiddleware(middleware.Default(logger)...),
//	    store.WithMiddleware(api.Middleware()),
//	)
//
// # Subscriptions
//
// Listeners run once per completed dispatch, in registration order:
//
//	unsubscribe := s.Subscribe(func() {
//	    fmt.Println(counter.Select(s.GetState()).Value)
//	})
//	defer unsubscribe()
//
// # Ordering
//
// Dispatches never interleave. An action dispatched while another dispatch is
// running (by a listener, a middleware or another goroutine) is queued and
// processed after the running dispatch completes; the nested Dispatch call
// returns immediately.
package store
