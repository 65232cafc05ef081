package tui

import (
	"context"

	"github.com/SumanHE17/tripdesk/internal/api"
	"github.com/SumanHE17/tripdesk/internal/dashboard"
	"github.com/SumanHE17/tripdesk/internal/session"
	"github.com/SumanHE17/tripdesk/internal/travel"
)

// Fetcher is the remote data source the dashboard reads from.
type Fetcher interface {
	MyUserAccount(ctx context.Context, creds session.Credentials) (api.UserAccount, error)
	TravelRequests(ctx context.Context, creds session.Credentials) (travel.Collection, error)
	Itineraries(ctx context.Context, creds session.Credentials, id int64) ([]travel.Itinerary, error)
}

// SessionChangedMsg tells the dashboard the credentials changed, so identity
// and collection are fetched again.
type SessionChangedMsg struct{}

type identityLoadedMsg struct {
	token    dashboard.Token
	identity string
	err      error
}

type collectionLoadedMsg struct {
	token dashboard.Token
	items []travel.TravelRequest
	err   error
}

type detailLoadedMsg struct {
	token   dashboard.Token
	id      int64
	related []travel.Itinerary
	err     error
}
