// Package app wires the counter and dogs features into one store.
package app

import (
	"fmt"
	"log/slog"

	"github.com/spetersoncode/statekit"
	"github.com/spetersoncode/statekit/apicache"
	"github.com/spetersoncode/statekit/counter"
	"github.com/spetersoncode/statekit/dogs"
	"github.com/spetersoncode/statekit/internal/config"
	"github.com/spetersoncode/statekit/middleware"
	"github.com/spetersoncode/statekit/store"
)

// RootState is the typed view of the application's root snapshot.
type RootState struct {
	Counter counter.State
	API     *apicache.State
}

// App owns the application store and the API slice.
type App struct {
	store  *store.Store
	api    *apicache.API
	logger *slog.Logger
}

// New configures the application store. Extra options are applied after the
// defaults, so additional middleware runs after the API middleware.
func New(cfg *config.Config, logger *slog.Logger, src dogs.Source, opts ...store.Option) (*App, error) {
	retryCfg := cfg.RetryConfig()
	api, err := apicache.New(apicache.Config{
		Endpoints:         dogs.Endpoints(src),
		KeepUnusedDataFor: cfg.CacheKeepUnused,
		Retry:             &retryCfg,
		Logger:            logger,
	})
	if err != nil {
		return nil, fmt.Errorf("app: api: %w", err)
	}

	base := []store.Option{
		store.WithLogger(logger),
		store.WithMiddleware(middleware.Default(logger)...),
		store.WithMiddleware(api.Middleware()),
	}
	s, err := store.Configure(
		[]statekit.Slice{counter.Slice, api},
		append(base, opts...)...,
	)
	if err != nil {
		api.Close()
		return nil, fmt.Errorf("app: store: %w", err)
	}

	return &App{store: s, api: api, logger: logger}, nil
}

// Store returns the application store.
func (a *App) Store() *store.Store {
	return a.store
}

// API returns the API slice.
func (a *App) API() *apicache.API {
	return a.api
}

// Dispatch dispatches an action on the application store.
func (a *App) Dispatch(action statekit.Action) {
	a.store.Dispatch(action)
}

// State returns the typed root state.
func (a *App) State() RootState {
	st := a.store.GetState()
	return RootState{
		Counter: counter.Select(st),
		API:     a.api.State(st),
	}
}

// Close stops background fetches and evictions.
func (a *App) Close() {
	a.api.Close()
}
