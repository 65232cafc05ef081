package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/SumanHE17/tripdesk/internal/config"
	"github.com/SumanHE17/tripdesk/internal/dashboard"
	"github.com/SumanHE17/tripdesk/internal/logging"
	"github.com/SumanHE17/tripdesk/internal/travel"
	"github.com/SumanHE17/tripdesk/internal/tui"
)

// NewDashboardCmd creates the dashboard command, which runs the interactive
// approver dashboard.
func NewDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive approver dashboard",
		Long: `Opens the full-screen dashboard listing the travel requests you approve.

Stored credentials are restored on start. When stdout is not a terminal the
first page of the default tab is printed instead, as 'tripdesk list' would.`,
		Example: `  # Open the dashboard
  tripdesk dashboard

  # Same, with one-off credentials that are also stored
  tripdesk dashboard --username approver@example.com --password secret`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd)
		},
	}
}

func runDashboard(cmd *cobra.Command) error {
	app, err := appFromCmd(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if tui.DetectOutputMode(false, false, false) != tui.OutputModeInteractive {
		logger.Debug().Ctx(ctx).Msg("stdout is not interactive, printing list instead")
		return runList(cmd, app, defaultListOptions(app.Config))
	}

	state, err := newDashboardState(ctx, app.Config, nil)
	if err != nil {
		return err
	}
	model := tui.NewDashboardModel(ctx, app.Client, app.Session, state)
	return tui.Run(ctx, model)
}

// newDashboardState builds the view state from the dashboard section of cfg.
func newDashboardState(ctx context.Context, cfg *config.Config, sink dashboard.ErrorSink) (*dashboard.State, error) {
	tab, err := travel.ParseTab(cfg.Dashboard.DefaultTab)
	if err != nil {
		return nil, err
	}
	log := logging.ComponentLogger(*logging.FromContext(ctx), "dashboard")

	return dashboard.New(
		dashboard.WithTab(tab),
		dashboard.WithPerPage(cfg.Dashboard.ItemsPerPage),
		dashboard.WithLogger(log),
		dashboard.WithErrorSink(sink),
	), nil
}
