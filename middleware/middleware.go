// Package middleware provides the default statekit middleware chain.
package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spetersoncode/statekit"
)

// Default returns the default chain: Recoverer then Logger.
func Default(logger *slog.Logger) []statekit.Middleware {
	return []statekit.Middleware{
		Recoverer(logger),
		Logger(logger),
	}
}

// Logger logs every action that passes through it at debug level, with
// whether the root state changed and how long the rest of the chain took.
func Logger(logger *slog.Logger) statekit.Middleware {
	logger = orDiscard(logger)
	return func(api statekit.MiddlewareAPI) func(next statekit.Dispatch) statekit.Dispatch {
		return func(next statekit.Dispatch) statekit.Dispatch {
			return func(action statekit.Action) {
				before := api.GetState()
				start := time.Now()

				next(action)

				logger.Debug("action dispatched",
					"type", action.Type,
					"changed", api.GetState() != before,
					"duration", time.Since(start),
				)
			}
		}
	}
}

// Recoverer recovers panics raised further down the chain, logs them and
// drops the action. A panicking reducer publishes nothing; snapshots published
// before a later panic are kept. Listener panics are handled by the store.
func Recoverer(logger *slog.Logger) statekit.Middleware {
	logger = orDiscard(logger)
	return func(api statekit.MiddlewareAPI) func(next statekit.Dispatch) statekit.Dispatch {
		return func(next statekit.Dispatch) statekit.Dispatch {
			return func(action statekit.Action) {
				defer func() {
					if r := recover(); r != nil {
						logger.Error("action panicked",
							"type", action.Type,
							"error", fmt.Sprint(r),
						)
					}
				}()
				next(action)
			}
		}
	}
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}
