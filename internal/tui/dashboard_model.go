package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SumanHE17/tripdesk/internal/dashboard"
	"github.com/SumanHE17/tripdesk/internal/session"
	"github.com/SumanHE17/tripdesk/internal/travel"
	"github.com/SumanHE17/tripdesk/internal/tui/detail"
)

const (
	defaultWidth  = 120
	defaultHeight = 30
	// chromeRows is the height taken by tabs, search, heading, pager, and help.
	chromeRows     = 12
	minTableRows   = 3
	searchMaxChars = 64
)

// DashboardModel is the Bubble Tea model for the approver dashboard.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	ctx     context.Context
	fetcher Fetcher
	session *session.Session
	state   *dashboard.State

	// Interactive components
	table   table.Model
	search  textinput.Model
	pager   paginator.Model
	loading *LoadingState
	detail  detail.Model

	// In-flight fetches by kind; a new fetch cancels the previous one.
	cancels map[dashboard.FetchKind]context.CancelFunc

	searching bool
	quitting  bool
	width     int
	height    int
}

// NewDashboardModel creates the dashboard over state. Fetches run under ctx and
// use the session's current credentials.
func NewDashboardModel(
	ctx context.Context,
	fetcher Fetcher,
	sess *session.Session,
	state *dashboard.State,
) DashboardModel {
	m := DashboardModel{
		ctx:     ctx,
		fetcher: fetcher,
		session: sess,
		state:   state,
		search:  newSearchInput(),
		pager:   newPager(),
		loading: NewLoadingState(),
		cancels: make(map[dashboard.FetchKind]context.CancelFunc),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.table = newTravelTable(m.tableHeight())
	m.refreshTable()
	return m
}

// State exposes the underlying view state.
func (m DashboardModel) State() *dashboard.State {
	return m.state
}

// Init reconciles stored credentials and starts the identity and collection
// fetches (Bubble Tea interface).
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.bootstrap(), m.fetchSession())
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(m.tableHeight())
		if _, ok := m.state.Detail(); ok {
			m.detail, _ = m.detail.Update(msg)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		return m, m.loading.Update(msg)

	case identityLoadedMsg:
		m.state.ApplyIdentity(msg.token, msg.identity, msg.err)
		m.refreshTable()
		return m, nil

	case collectionLoadedMsg:
		m.state.ApplyCollection(msg.token, msg.items, msg.err)
		m.refreshTable()
		return m, nil

	case detailLoadedMsg:
		if m.state.ApplyDetail(msg.token, msg.id, msg.related, msg.err) {
			if d, ok := m.state.Detail(); ok {
				m.detail = m.detail.WithRelated(d.Related)
			}
		}
		return m, nil

	case SessionChangedMsg:
		m.state.InvalidateSession()
		m.refreshTable()
		return m, m.fetchSession()

	case detail.BackMsg:
		m.cancel(dashboard.FetchDetail)
		m.state.Back()
		m.refreshTable()
		return m, nil

	case detail.RetryMsg:
		d, ok := m.state.Detail()
		if !ok || d.Item.ID != msg.ID {
			return m, nil
		}
		return m.openDetail(d.Item)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		return m.quit()
	}
	if _, ok := m.state.Detail(); ok {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	return m.handleListKey(msg)
}

func (m DashboardModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if term := m.search.Value(); term != m.state.Search {
		m.state.SetSearch(term)
		m.refreshTable()
	}
	return m, cmd
}

//nolint:cyclop // One branch per key binding.
func (m DashboardModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		return m.quit()
	case keyPending:
		m.state.SetTab(travel.TabPending)
	case keyApproved:
		m.state.SetTab(travel.TabApproved)
	case keyRejected:
		m.state.SetTab(travel.TabRejected)
	case keyTab:
		m.state.SetTab(m.state.Tab.Next())
	case keyShiftTab:
		m.state.SetTab(m.state.Tab.Prev())
	case keySearch:
		m.searching = true
		return m, m.search.Focus()
	case keyLeft, keyPgUp:
		m.state.PrevPage()
	case keyRight, keyPgDown:
		m.state.NextPage()
	case keyPlus, keyEquals:
		m.state.SetPerPage(travel.NextPageSize(m.state.PerPage))
	case keyMinus:
		m.state.SetPerPage(travel.PrevPageSize(m.state.PerPage))
	case keyEnter:
		return m.selectCurrent()
	case keyRefresh:
		return m, m.refresh()
	case keyUp, keyDown, keyVimUp, keyVimDown:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
	m.refreshTable()
	return m, nil
}

func (m DashboardModel) selectCurrent() (tea.Model, tea.Cmd) {
	rows := m.state.Visible().Rows
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(rows) {
		return m, nil
	}
	return m.openDetail(rows[idx])
}

// openDetail switches to the detail view at once and fetches related records.
func (m DashboardModel) openDetail(item travel.TravelRequest) (tea.Model, tea.Cmd) {
	token := m.state.Select(item)
	m.detail = detail.New(item, m.width, m.height)
	return m, m.fetchDetail(token, item.ID)
}

func (m DashboardModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	for kind := range m.cancels {
		m.cancel(kind)
	}
	return m, tea.Quit
}

// bootstrap restores stored credentials; a change re-runs the session fetches.
func (m DashboardModel) bootstrap() tea.Cmd {
	ctx := m.ctx
	sess := m.session
	return func() tea.Msg {
		changed, err := sess.Bootstrap(ctx)
		if err != nil || !changed {
			return nil
		}
		return SessionChangedMsg{}
	}
}

// fetchSession starts the identity and collection fetches when credentials
// are complete.
func (m DashboardModel) fetchSession() tea.Cmd {
	if !m.session.Credentials().Complete() {
		return nil
	}
	return tea.Batch(m.fetchIdentity(), m.refresh())
}

// refresh re-fetches the collection, starting the spinner if it is idle.
func (m DashboardModel) refresh() tea.Cmd {
	if !m.session.Credentials().Complete() {
		return nil
	}
	var tick tea.Cmd
	if !m.state.Loading {
		tick = m.loading.Init()
	}
	return tea.Batch(tick, m.fetchCollection())
}

func (m DashboardModel) fetchIdentity() tea.Cmd {
	token := m.state.BeginIdentity()
	ctx := m.begin(dashboard.FetchIdentity)
	creds := m.session.Credentials()
	fetcher := m.fetcher

	return func() tea.Msg {
		account, err := fetcher.MyUserAccount(ctx, creds)
		return identityLoadedMsg{token: token, identity: account.EmailAddress, err: err}
	}
}

func (m DashboardModel) fetchCollection() tea.Cmd {
	token := m.state.BeginCollection()
	ctx := m.begin(dashboard.FetchCollection)
	creds := m.session.Credentials()
	fetcher := m.fetcher

	return func() tea.Msg {
		coll, err := fetcher.TravelRequests(ctx, creds)
		return collectionLoadedMsg{token: token, items: coll.Items, err: err}
	}
}

func (m DashboardModel) fetchDetail(token dashboard.Token, id int64) tea.Cmd {
	ctx := m.begin(dashboard.FetchDetail)
	creds := m.session.Credentials()
	fetcher := m.fetcher

	return func() tea.Msg {
		related, err := fetcher.Itineraries(ctx, creds, id)
		return detailLoadedMsg{token: token, id: id, related: related, err: err}
	}
}

// begin cancels any in-flight fetch of kind and returns a context for the next one.
func (m *DashboardModel) begin(kind dashboard.FetchKind) context.Context {
	m.cancel(kind)
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancels[kind] = cancel
	return ctx
}

func (m *DashboardModel) cancel(kind dashboard.FetchKind) {
	if cancel, ok := m.cancels[kind]; ok {
		cancel()
		delete(m.cancels, kind)
	}
}

// refreshTable re-derives the visible page and loads it into the table and pager.
func (m *DashboardModel) refreshTable() {
	page := m.state.Visible()

	rows := make([]table.Row, 0, len(page.Rows))
	for _, r := range page.Rows {
		rows = append(rows, table.Row{
			r.DisplayID(),
			r.DisplayName(),
			travel.OrNA(r.TravelPurpose),
			travel.OrNA(r.Manager),
			travel.OrNA(r.HOD),
			r.TravelBudget.String(),
			r.StatusName(),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) || m.table.Cursor() < 0 {
		m.table.SetCursor(0)
	}

	m.pager.PerPage = m.state.PerPage
	m.pager.TotalPages = max(page.TotalPages, 1)
	m.pager.Page = max(m.state.CurrentPage-1, 0)
}

func (m DashboardModel) tableHeight() int {
	return max(m.height-chromeRows, minTableRows)
}

func newTravelTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Travel Number", Width: 13},
			{Title: "Name", Width: 22},
			{Title: "Travel Purpose", Width: 22},
			{Title: "Approver 1", Width: 24},
			{Title: "Approver 2", Width: 24},
			{Title: "Budget", Width: 12},
			{Title: "Status", Width: 20},
		}),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = SelectedRowStyle
	t.SetStyles(s)
	return t
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "first or last name"
	ti.CharLimit = searchMaxChars
	return ti
}

func newPager() paginator.Model {
	p := paginator.New()
	p.Type = paginator.Arabic
	p.ArabicFormat = "Page %d/%d"
	return p
}

// Run starts the full-screen dashboard and blocks until it exits.
func Run(ctx context.Context, m DashboardModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
