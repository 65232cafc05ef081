package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SumanHE17/tripdesk/internal/api"
	"github.com/SumanHE17/tripdesk/internal/session"
	"github.com/SumanHE17/tripdesk/internal/travel"
)

// NewLoginCmd creates the login command. Credentials are verified against the
// server before they are stored.
func NewLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Verify and store credentials",
		Long: `Prompts for a username and password (or takes --username and --password),
checks them by fetching your user account, and stores them for later runs.

Nothing is stored when the server rejects the credentials.`,
		Example: `  # Prompt for both
  tripdesk login

  # Prompt for the password only
  tripdesk login --username approver@example.com`,
		Annotations: map[string]string{annotationManualLogin: "true"},
		RunE:        runLogin,
	}
}

func runLogin(cmd *cobra.Command, _ []string) error {
	app, err := appFromCmd(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	if username == "" {
		if username, err = p.Line("Username: "); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = p.Password("Password: "); err != nil {
			return err
		}
	}

	creds := session.Credentials{Username: username, Password: password}
	if !creds.Complete() {
		return errors.New("username and password are both required")
	}

	account, err := app.Client.MyUserAccount(ctx, creds)
	if err != nil {
		if api.IsUnauthorized(err) {
			return &ExitError{Code: exitCodeAuth, Err: fmt.Errorf("login failed: %w", err)}
		}
		return fmt.Errorf("verifying credentials: %w", err)
	}

	if err := app.Session.Login(creds); err != nil {
		return err
	}
	logger.Info().Ctx(ctx).Str("username", username).Msg("credentials stored")

	cmd.Printf("Logged in as %s\n", travel.OrNA(account.EmailAddress))
	cmd.Printf("Credentials saved to %s\n", app.Store.FilePath())
	return nil
}

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := appFromCmd(cmd)
			if err != nil {
				return err
			}
			if err := app.Session.Logout(); err != nil {
				return err
			}
			cmd.Println("Logged out")
			return nil
		},
	}
}
