package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spetersoncode/statekit/apicache"
	"github.com/spetersoncode/statekit/dogs"
)

func breedsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "breeds",
		Short: "Fetch dog breeds through the API cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := appCtx.API()
			appCtx.Dispatch(dogs.FetchBreeds(api, limit))
			api.Wait()

			out := cmd.OutOrStdout()
			flushEvents(out)

			breeds, entry := dogs.SelectBreeds(api, appCtx.Store().GetState(), limit)
			if entry.Status == apicache.StatusRejected {
				return fmt.Errorf("fetch breeds: %s", entry.Error)
			}
			fmt.Fprintf(out, "Number of dogs fetched: %d\n", len(breeds))
			for _, b := range breeds {
				fmt.Fprintf(out, "%3d  %-28s %s\n", b.ID, b.Name, b.Temperament)
			}

			appCtx.Dispatch(dogs.ReleaseBreeds(api, limit))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", dogs.DefaultLimit, "number of breeds to fetch")
	return cmd
}
