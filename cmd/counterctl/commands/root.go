package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spetersoncode/statekit/dogs"
	"github.com/spetersoncode/statekit/event"
	"github.com/spetersoncode/statekit/internal/app"
	"github.com/spetersoncode/statekit/internal/config"
	"github.com/spetersoncode/statekit/store"
)

var (
	appCtx *app.App
	events chan event.Event
	trace  bool
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "counterctl",
		Short:        "Drive the counter store from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			var opts []store.Option
			events = nil
			if trace {
				events = event.NewChannel()
				opts = append(opts, store.WithMiddleware(event.Forward(events)))
			}

			appCtx, err = app.New(cfg, cfg.Logger(cmd.ErrOrStderr()), dogs.NewStaticSource(), opts...)
			if err != nil {
				return err
			}
			if events != nil {
				appCtx.Store().Subscribe(event.Listener(events, appCtx.Store().GetState))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appCtx != nil {
				appCtx.Close()
			}
		},
	}

	root.PersistentFlags().BoolVar(&trace, "trace", false, "print dispatched actions and state changes")
	root.AddCommand(runCmd(), scriptCmd(), breedsCmd())
	return root
}

// flushEvents prints buffered trace events.
func flushEvents(w io.Writer) {
	if events == nil {
		return
	}
	for {
		select {
		case e := <-events:
			switch e.Type {
			case event.ActionDispatched:
				fmt.Fprintf(w, "  > %s %v\n", e.Action.Type, payloadString(e.Action.Payload))
			case event.StateChanged:
				fmt.Fprintf(w, "  ~ state changed (%d slices)\n", e.State.Len())
			}
		default:
			return
		}
	}
}

func payloadString(p any) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%v", p)
}
