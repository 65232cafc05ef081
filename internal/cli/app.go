package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SumanHE17/tripdesk/internal/api"
	"github.com/SumanHE17/tripdesk/internal/config"
	"github.com/SumanHE17/tripdesk/internal/session"
)

// App bundles what every command needs: configuration, the REST client, and
// the session. It is built once per invocation in the root pre-run.
type App struct {
	Config  *config.Config
	Client  *api.Client
	Session *session.Session
	Store   *session.FileStore
}

type appKey struct{}

// NewApp builds an App from cfg. Credentials start empty; callers log in or
// bootstrap from the store.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}

	credPath, err := config.CredentialsPath()
	if err != nil {
		return nil, fmt.Errorf("resolving credentials path: %w", err)
	}
	store, err := session.NewFileStore(credPath)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithUserAgent(cfg.API.UserAgent),
		api.WithPageSize(cfg.API.PageSize),
	)

	return &App{
		Config:  cfg,
		Client:  client,
		Session: session.New(store, session.Credentials{}),
		Store:   store,
	}, nil
}

// ContextWithApp stores app on ctx.
func ContextWithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

// AppFromContext returns the App stored on ctx, or nil.
func AppFromContext(ctx context.Context) *App {
	if ctx == nil {
		return nil
	}
	app, _ := ctx.Value(appKey{}).(*App)
	return app
}

func appFromCmd(cmd *cobra.Command) (*App, error) {
	app := AppFromContext(cmd.Context())
	if app == nil {
		return nil, errors.New("command context is not initialized")
	}
	return app, nil
}

// ExitError carries a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
