package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/SumanHE17/tripdesk/internal/travel"
)

// NewShowCmd creates the show command, which prints one travel request and its
// itinerary.
func NewShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one travel request with its itinerary",
		Long: `Fetches the travel request collection and the itinerary of the given request
concurrently, then prints the request's fields followed by its itinerary.

An itinerary that cannot be loaded is reported in the log and shown as empty.`,
		Example: `  # Show request 42
  tripdesk show 42

  # As JSON
  tripdesk show 42 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromCmd(cmd)
			if err != nil {
				return err
			}
			return runShow(cmd, app, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(outputTable), "output format: table, json or ndjson")

	return cmd
}

func runShow(cmd *cobra.Command, app *App, idArg, output string) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid travel request id %q", idArg)
	}
	format, err := parseOutputFormat(output)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	creds := bootstrapSession(ctx, app)
	if !creds.Complete() {
		return &ExitError{Code: exitCodeAuth, Err: errNotSignedIn}
	}

	var (
		collection   travel.Collection
		related      []travel.Itinerary
		itineraryErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		collection, err = app.Client.TravelRequests(gctx, creds)
		return err
	})
	g.Go(func() error {
		related, itineraryErr = app.Client.Itineraries(gctx, creds, id)
		return nil
	})
	if err := g.Wait(); err != nil {
		return wrapFetchErr(err)
	}

	item, ok := findRequest(collection.Items, id)
	if !ok {
		return fmt.Errorf("travel request %d not found", id)
	}

	state, err := newDashboardState(ctx, app.Config, nil)
	if err != nil {
		return err
	}
	token := state.Select(item)
	state.ApplyDetail(token, id, related, itineraryErr)
	detail, _ := state.Detail()

	return renderDetail(cmd.OutOrStdout(), format, detail.Item, detail.Related)
}

func findRequest(items []travel.TravelRequest, id int64) (travel.TravelRequest, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return travel.TravelRequest{}, false
}
