package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spetersoncode/statekit/internal/script"
)

func scriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "script FILE",
		Short: "Dispatch the actions listed in a YAML script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := script.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if s.Name != "" {
				fmt.Fprintf(out, "script %s\n", s.Name)
			}
			for _, a := range s.Actions() {
				appCtx.Dispatch(a)
				fmt.Fprintf(out, "%-24s value=%d\n", a.Type, appCtx.State().Counter.Value)
				flushEvents(out)
			}
			return nil
		},
	}
}
