package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/SumanHE17/tripdesk/internal/api"
	"github.com/SumanHE17/tripdesk/internal/cli/pagination"
	"github.com/SumanHE17/tripdesk/internal/config"
	"github.com/SumanHE17/tripdesk/internal/dashboard"
	"github.com/SumanHE17/tripdesk/internal/session"
	"github.com/SumanHE17/tripdesk/internal/travel"
)

// Exit codes used by commands beyond the generic failure.
const (
	exitCodeAuth = 2
)

var errNotSignedIn = errors.New("not signed in: run 'tripdesk login' or pass --username and --password")

type listOptions struct {
	tab    string
	search string
	output string
	strict bool
	params *pagination.Params
}

func defaultListOptions(cfg *config.Config) listOptions {
	params := pagination.NewParams()
	params.PageSize = cfg.Dashboard.ItemsPerPage
	return listOptions{
		tab:    cfg.Dashboard.DefaultTab,
		output: string(outputTable),
		params: params,
	}
}

// NewListCmd creates the list command, which prints one page of the dashboard
// without the interactive UI.
func NewListCmd() *cobra.Command {
	opts := listOptions{params: pagination.NewParams()}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of your travel requests",
		Long: `Prints one page of the travel requests you approve, filtered the same way
as the dashboard: by ownership, by status tab and by name.

Failures to reach the server are logged and produce an empty page. Use --strict
to fail instead.`,
		Example: `  # First page of pending requests
  tripdesk list

  # Rejected requests for anyone named "ann", 5 per page, page 2
  tripdesk list --tab rejected --search ann --page-size 5 --page 2

  # Highest budgets first, as JSON
  tripdesk list --sort budget:desc --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := appFromCmd(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("tab") {
				opts.tab = app.Config.Dashboard.DefaultTab
			}
			if !cmd.Flags().Changed("page-size") {
				opts.params.PageSize = app.Config.Dashboard.ItemsPerPage
			}
			return runList(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.tab, "tab", config.DefaultTab, "status tab: pending, approved or rejected")
	cmd.Flags().StringVar(&opts.search, "search", "", "case-insensitive filter on first or last name")
	cmd.Flags().IntVar(&opts.params.Page, "page", pagination.DefaultPage, "page number, starting at 1")
	cmd.Flags().IntVar(&opts.params.PageSize, "page-size", pagination.DefaultPageSize, "items per page: 5, 10, 15 or 20")
	cmd.Flags().StringVar(&opts.params.Sort, "sort", "", "sort before paging, as field or field:order (id, name, purpose, budget, status)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", string(outputTable), "output format: table, json or ndjson")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "return fetch failures as errors instead of printing an empty page")

	return cmd
}

func runList(cmd *cobra.Command, app *App, opts listOptions) error {
	tab, err := travel.ParseTab(opts.tab)
	if err != nil {
		return err
	}
	if err := opts.params.Validate(); err != nil {
		return err
	}
	format, err := parseOutputFormat(opts.output)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	creds := bootstrapSession(ctx, app)

	state, err := newDashboardState(ctx, app.Config, nil)
	if err != nil {
		return err
	}
	state.SetTab(tab)
	state.SetPerPage(opts.params.PageSize)

	if creds.Complete() {
		if err := fetchSession(ctx, app.Client, creds, state, opts.strict); err != nil {
			return err
		}
	} else {
		if opts.strict {
			return &ExitError{Code: exitCodeAuth, Err: errNotSignedIn}
		}
		logger.Warn().Ctx(ctx).Msg("no credentials available, list will be empty")
	}

	sorted, err := pagination.NewTravelSorter().Apply(state.Collection, opts.params.Sort)
	if err != nil {
		return err
	}
	state.Collection = sorted
	state.SetSearch(opts.search)
	state.SetPage(opts.params.Page)

	return renderPage(cmd.OutOrStdout(), format, state, state.Visible())
}

// bootstrapSession restores stored credentials and returns the credentials in
// effect. A store read failure is logged and ignored.
func bootstrapSession(ctx context.Context, app *App) session.Credentials {
	if _, err := app.Session.Bootstrap(ctx); err != nil {
		logger.Warn().Ctx(ctx).Err(err).Msg("continuing without stored credentials")
	}
	return app.Session.Credentials()
}

// fetchSession fetches identity and collection concurrently and applies both
// results to state. When strict, the first failure cancels the other fetch and
// is returned; otherwise failures degrade state the same way the dashboard does.
func fetchSession(
	ctx context.Context,
	client *api.Client,
	creds session.Credentials,
	state *dashboard.State,
	strict bool,
) error {
	identityToken := state.BeginIdentity()
	collectionToken := state.BeginCollection()

	var (
		account       api.UserAccount
		accountErr    error
		collection    travel.Collection
		collectionErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		account, accountErr = client.MyUserAccount(gctx, creds)
		return strictErr(strict, accountErr)
	})
	g.Go(func() error {
		collection, collectionErr = client.TravelRequests(gctx, creds)
		return strictErr(strict, collectionErr)
	})
	if err := g.Wait(); err != nil {
		return wrapFetchErr(err)
	}

	state.ApplyIdentity(identityToken, account.EmailAddress, accountErr)
	state.ApplyCollection(collectionToken, collection.Items, collectionErr)
	return nil
}

func strictErr(strict bool, err error) error {
	if strict {
		return err
	}
	return nil
}

// wrapFetchErr maps rejected credentials to the auth exit code.
func wrapFetchErr(err error) error {
	if api.IsUnauthorized(err) {
		return &ExitError{Code: exitCodeAuth, Err: fmt.Errorf("credentials rejected: %w", err)}
	}
	return fmt.Errorf("fetching travel requests: %w", err)
}
