package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spetersoncode/statekit"
	"github.com/spetersoncode/statekit/counter"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run STEP...",
		Short: "Dispatch counter steps: increment, decrement, add=N or a raw action type",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actions := make([]statekit.Action, 0, len(args))
			for _, arg := range args {
				a, err := parseStep(arg)
				if err != nil {
					return err
				}
				actions = append(actions, a)
			}

			out := cmd.OutOrStdout()
			for _, a := range actions {
				appCtx.Dispatch(a)
				fmt.Fprintf(out, "%-24s value=%d\n", a.Type, appCtx.State().Counter.Value)
				flushEvents(out)
			}
			return nil
		},
	}
}

// parseStep turns a command-line step into an action.
func parseStep(step string) (statekit.Action, error) {
	switch s := strings.TrimSpace(step); {
	case s == "increment" || s == "inc" || s == "incremented":
		return counter.Incremented(), nil
	case s == "decrement" || s == "dec":
		return counter.Decrement(), nil
	case strings.HasPrefix(s, "add="):
		n, err := strconv.Atoi(strings.TrimPrefix(s, "add="))
		if err != nil {
			return statekit.Action{}, fmt.Errorf("invalid amount in %q: %w", step, err)
		}
		return counter.AmountAdded(n), nil
	case strings.Contains(s, "/"):
		return statekit.Action{Type: s}, nil
	default:
		return statekit.Action{}, fmt.Errorf("unknown step %q", step)
	}
}
