package detail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SumanHE17/tripdesk/internal/travel"
	listview "github.com/SumanHE17/tripdesk/internal/tui/list"
)

const (
	defaultWidth   = 100
	defaultHeight  = 30
	headerRows     = 14
	minListRows    = 3
	labelWidth     = 16
	loadingMessage = "Loading itinerary..."
	emptyMessage   = "No itinerary records"
	helpLine       = "esc/b back • ↑/↓ scroll • r reload • q quit"
)

//nolint:gochecknoglobals // lipgloss styles are immutable values.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(labelWidth)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// BackMsg asks the parent to return to the list.
type BackMsg struct{}

// RetryMsg asks the parent to fetch the related records of ID again.
type RetryMsg struct {
	ID int64
}

// Model is the detail view.
type Model struct {
	item    travel.TravelRequest
	related *listview.Model[travel.Itinerary]
	loaded  bool
	width   int
	height  int
}

// New opens the detail view of item with its related records still loading.
func New(item travel.TravelRequest, width, height int) Model {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return Model{
		item:    item,
		related: listview.New[travel.Itinerary](nil, listRows(height), renderItinerary),
		width:   width,
		height:  height,
	}
}

// WithRelated returns the model with the related records loaded.
func (m Model) WithRelated(related []travel.Itinerary) Model {
	m.related.SetItems(related)
	m.loaded = true
	return m
}

// Item returns the request being shown.
func (m Model) Item() travel.TravelRequest {
	return m.item
}

// Loaded reports whether the related-records fetch has resolved.
func (m Model) Loaded() bool {
	return m.loaded
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys and resizes.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.related.SetHeight(listRows(msg.Height))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace", "b":
			return m, func() tea.Msg { return BackMsg{} }
		case "r":
			id := m.item.ID
			return m, func() tea.Msg { return RetryMsg{ID: id} }
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		m.related.Update(msg)
	}
	return m, nil
}

// View renders the request fields followed by the related records.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("TRAVEL REQUEST " + m.item.DisplayID()))
	b.WriteString("\n\n")

	for _, row := range [][2]string{
		{"Name", m.item.DisplayName()},
		{"Travel Purpose", travel.OrNA(m.item.TravelPurpose)},
		{"Approver 1", travel.OrNA(m.item.Manager)},
		{"Approver 2", travel.OrNA(m.item.HOD)},
		{"Budget", m.item.TravelBudget.String()},
		{"Status", m.item.StatusName()},
	} {
		b.WriteString(labelStyle.Render(row[0]+":") + " " + row[1] + "\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("ITINERARY (%d)", m.related.Len())))
	b.WriteString("\n")

	switch {
	case !m.loaded:
		b.WriteString(mutedStyle.Render(loadingMessage))
	case m.related.Len() == 0:
		b.WriteString(mutedStyle.Render(emptyMessage))
	default:
		b.WriteString(m.related.View())
	}

	body := boxStyle.Width(max(m.width-2, labelWidth*2)).Render(b.String())
	return body + "\n" + mutedStyle.Render(helpLine)
}

func renderItinerary(it travel.Itinerary, selected bool) string {
	line := fmt.Sprintf("#%d  %s", it.ID, it.Summary())
	if selected {
		return selectedStyle.Render("> " + line)
	}
	return "  " + line
}

func listRows(height int) int {
	return max(height-headerRows, minListRows)
}
