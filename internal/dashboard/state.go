// Package dashboard holds the approver dashboard's view state and the
// transitions that change it. It has no terminal dependencies; the TUI drives
// it by calling transitions in response to keys and fetch results.
package dashboard

import (
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/SumanHE17/tripdesk/internal/travel"
)

// Token identifies one issued fetch. Results carrying an outdated token are dropped.
type Token string

// Mode is either Browsing or ViewingDetail.
type Mode interface {
	isMode()
}

// Browsing shows the filtered, paginated list.
type Browsing struct{}

// ViewingDetail shows one request and its related itinerary records. The list
// is hidden while in this mode.
type ViewingDetail struct {
	Item    travel.TravelRequest
	Related []travel.Itinerary
	// Loaded is false until the related-records fetch resolves.
	Loaded bool
}

func (Browsing) isMode()      {}
func (ViewingDetail) isMode() {}

// State is the dashboard view state.
type State struct {
	Tab         travel.Tab
	Search      string
	PerPage     int
	CurrentPage int
	// Identity is the viewer's email address; empty until resolved.
	Identity   string
	Collection []travel.TravelRequest
	Loading    bool
	Mode       Mode
	// LastErr is the most recent fetch failure, cleared by the next success of the same kind.
	LastErr *FetchError

	identityToken   Token
	collectionToken Token
	detailToken     Token

	sink     ErrorSink
	logger   zerolog.Logger
	newToken func() Token
}

// Option configures a State.
type Option func(*State)

// WithTab sets the initial tab.
func WithTab(tab travel.Tab) Option {
	return func(s *State) { s.Tab = tab }
}

// WithPerPage sets the initial page size.
func WithPerPage(n int) Option {
	return func(s *State) {
		if n > 0 {
			s.PerPage = n
		}
	}
}

// WithErrorSink registers a callback that receives every applied fetch failure.
func WithErrorSink(sink ErrorSink) Option {
	return func(s *State) { s.sink = sink }
}

// WithLogger sets the logger used for dropped results and failures.
func WithLogger(l zerolog.Logger) Option {
	return func(s *State) { s.logger = l }
}

// New returns a browsing state on page 1 of the pending tab.
func New(opts ...Option) *State {
	s := &State{
		Tab:         travel.TabPending,
		PerPage:     travel.DefaultPerPage,
		CurrentPage: travel.DefaultPage,
		Mode:        Browsing{},
		logger:      zerolog.Nop(),
		newToken:    func() Token { return Token(ulid.Make().String()) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetTab switches the status tab and returns to page 1.
func (s *State) SetTab(tab travel.Tab) {
	s.Tab = tab
	s.CurrentPage = travel.DefaultPage
}

// SetSearch sets the name filter and returns to page 1.
func (s *State) SetSearch(term string) {
	s.Search = term
	s.CurrentPage = travel.DefaultPage
}

// SetPerPage sets the page size and returns to page 1.
func (s *State) SetPerPage(n int) {
	if n <= 0 {
		n = travel.DefaultPerPage
	}
	s.PerPage = n
	s.CurrentPage = travel.DefaultPage
}

// SetPage sets the current page as given.
func (s *State) SetPage(page int) {
	s.CurrentPage = page
}

// NextPage advances one page, stopping at the last page.
func (s *State) NextPage() {
	if s.CurrentPage < s.Visible().TotalPages {
		s.CurrentPage++
	}
}

// PrevPage goes back one page, stopping at page 1.
func (s *State) PrevPage() {
	if s.CurrentPage > 1 {
		s.CurrentPage--
	}
}

// Visible derives the page of rows to render from the current state.
func (s *State) Visible() travel.Page {
	return travel.Derive(s.Collection, travel.Query{
		Identity: s.Identity,
		Tab:      s.Tab,
		Search:   s.Search,
		PerPage:  s.PerPage,
		Page:     s.CurrentPage,
	})
}

// Detail returns the detail mode and true when a request is selected.
func (s *State) Detail() (ViewingDetail, bool) {
	d, ok := s.Mode.(ViewingDetail)
	return d, ok
}

// Select switches to the detail view of item immediately and returns the
// token for its related-records fetch. Any earlier detail fetch becomes stale.
func (s *State) Select(item travel.TravelRequest) Token {
	s.Mode = ViewingDetail{Item: item}
	s.detailToken = s.newToken()
	return s.detailToken
}

// Back returns to the list. Tab, search, page size and page are untouched.
func (s *State) Back() {
	s.Mode = Browsing{}
	s.detailToken = ""
}

// BeginIdentity issues a token for a new identity fetch.
func (s *State) BeginIdentity() Token {
	s.identityToken = s.newToken()
	return s.identityToken
}

// BeginCollection issues a token for a new collection fetch and marks the
// state as loading.
func (s *State) BeginCollection() Token {
	s.collectionToken = s.newToken()
	s.Loading = true
	return s.collectionToken
}

// InvalidateSession forgets the identity and collection and drops any
// outstanding fetches tied to the previous credentials.
func (s *State) InvalidateSession() {
	s.identityToken = ""
	s.collectionToken = ""
	s.Identity = ""
	s.Collection = nil
	s.Loading = false
}

// ApplyIdentity applies an identity fetch result. On failure the identity is
// left unset, so the ownership filter yields nothing. It reports whether the
// result was current.
func (s *State) ApplyIdentity(token Token, identity string, err error) bool {
	if !s.current(FetchIdentity, token, s.identityToken) {
		return false
	}
	s.identityToken = ""

	if err != nil {
		s.Identity = ""
		s.report(FetchIdentity, token, err)
		return true
	}
	s.Identity = identity
	s.clearErr(FetchIdentity)
	return true
}

// ApplyCollection applies a collection fetch result. On failure the previous
// collection is kept. Loading ends either way.
func (s *State) ApplyCollection(token Token, items []travel.TravelRequest, err error) bool {
	if !s.current(FetchCollection, token, s.collectionToken) {
		return false
	}
	s.collectionToken = ""
	s.Loading = false

	if err != nil {
		s.report(FetchCollection, token, err)
		return true
	}
	s.Collection = items
	s.clearErr(FetchCollection)
	return true
}

// ApplyDetail applies a related-records result for the request with id. On
// failure the detail view stays open with no related records.
func (s *State) ApplyDetail(token Token, id int64, related []travel.Itinerary, err error) bool {
	if !s.current(FetchDetail, token, s.detailToken) {
		return false
	}
	detail, ok := s.Detail()
	if !ok || detail.Item.ID != id {
		s.logger.Debug().Str("component", "dashboard").Int64("id", id).
			Msg("dropping detail result for unselected request")
		return false
	}
	s.detailToken = ""

	if err != nil || related == nil {
		related = []travel.Itinerary{}
	}
	detail.Related = related
	detail.Loaded = true
	s.Mode = detail

	if err != nil {
		s.report(FetchDetail, token, err)
		return true
	}
	s.clearErr(FetchDetail)
	return true
}

func (s *State) current(kind FetchKind, got, want Token) bool {
	if got != "" && got == want {
		return true
	}
	s.logger.Debug().Str("component", "dashboard").Stringer("kind", kind).
		Str("token", string(got)).Msg("dropping stale fetch result")
	return false
}

func (s *State) clearErr(kind FetchKind) {
	if s.LastErr != nil && s.LastErr.Kind == kind {
		s.LastErr = nil
	}
}

func (s *State) report(kind FetchKind, token Token, err error) {
	fe := &FetchError{Kind: kind, Token: token, Err: err}
	s.LastErr = fe
	s.logger.Warn().Str("component", "dashboard").Stringer("kind", kind).
		Str("token", string(token)).Err(err).Msg("fetch failed")
	if s.sink != nil {
		s.sink(*fe)
	}
}
