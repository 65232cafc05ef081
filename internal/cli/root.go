package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SumanHE17/tripdesk/internal/config"
	"github.com/SumanHE17/tripdesk/internal/logging"
	"github.com/SumanHE17/tripdesk/internal/session"
)

// Command annotations read by the root pre-run.
const (
	// annotationNoApp marks commands that work on configuration only.
	annotationNoApp = "tripdesk/no-app"
	// annotationManualLogin marks commands that handle --username/--password themselves.
	annotationManualLogin = "tripdesk/manual-login"
)

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the tripdesk CLI. Running it
// without a subcommand opens the dashboard.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "tripdesk",
		Short:         "Travel request approvals in the terminal",
		Long:          "tripdesk: browse, filter and inspect the travel requests waiting on you as approver",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd)
			logResult = &result

			if hasAnnotation(cmd, annotationNoApp) {
				return nil
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration (%s): %w", cfg.ConfigPath(), err)
			}

			app, err := NewApp(cfg)
			if err != nil {
				return err
			}
			if !hasAnnotation(cmd, annotationManualLogin) {
				applyFlagCredentials(cmd, app)
			}
			cmd.SetContext(ContextWithApp(cmd.Context(), app))
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging to stderr")
	cmd.PersistentFlags().String("config", "", "config file (default ~/.tripdesk/config.yaml)")
	cmd.PersistentFlags().String("base-url", "", "base URL of the REST service (overrides config)")
	cmd.PersistentFlags().String("username", "", "username for Basic authentication")
	cmd.PersistentFlags().String("password", "", "password for Basic authentication")

	cmd.AddCommand(
		NewDashboardCmd(), NewListCmd(), NewShowCmd(),
		NewLoginCmd(), NewLogoutCmd(), newConfigCmd(),
	)
	return cmd
}

const rootCmdExample = `  # Open the dashboard
  tripdesk

  # Store credentials once
  tripdesk login --username approver@example.com

  # Print the approved tab as JSON
  tripdesk list --tab approved --output json

  # Show one request with its itinerary
  tripdesk show 42

  # Point at another server for one run
  tripdesk --base-url https://travel.example.com list`

// loadConfig reads --config (or the default file) plus environment, then
// applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	return cfg, nil
}

// applyFlagCredentials logs in with --username/--password when both are given.
// A persistence failure is logged; the in-memory session still holds them.
func applyFlagCredentials(cmd *cobra.Command, app *App) {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	creds := session.Credentials{Username: username, Password: password}
	if !creds.Complete() {
		return
	}
	if err := app.Session.Login(creds); err != nil {
		logger.Warn().Ctx(cmd.Context()).Err(err).Msg("could not persist flag credentials")
	}
}

func hasAnnotation(cmd *cobra.Command, key string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[key] == "true" {
			return true
		}
	}
	return false
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Configuration management commands",
		Annotations: map[string]string{annotationNoApp: "true"},
	}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
