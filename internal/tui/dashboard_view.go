package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SumanHE17/tripdesk/internal/travel"
)

const (
	noDataMessage    = "No data available"
	signedOutMessage = "Not signed in. Run 'tripdesk login' to store credentials."
)

// View renders the list or, while a request is selected, its detail (Bubble Tea interface).
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}
	if _, ok := m.state.Detail(); ok {
		return m.detail.View()
	}

	var content strings.Builder

	content.WriteString(m.renderTabs())
	content.WriteString("\n")
	content.WriteString(m.search.View())
	content.WriteString("\n\n")
	content.WriteString(HeaderStyle.Render(m.state.Tab.Label()))
	content.WriteString("\n")
	content.WriteString(m.renderBody())
	content.WriteString("\n")
	content.WriteString(m.renderPager())
	content.WriteString("\n")

	if m.state.LastErr != nil {
		content.WriteString(StatusErrorStyle.Render("! " + m.state.LastErr.Error()))
		content.WriteString("\n")
	}

	content.WriteString(HelpStyle.Render(listHelp))
	return content.String()
}

func (m DashboardModel) renderTabs() string {
	tabs := make([]string, 0, len(travel.Tabs()))
	for i, tab := range travel.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, tab.Label())
		if tab == m.state.Tab {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m DashboardModel) renderBody() string {
	switch {
	case !m.session.Credentials().Complete():
		return EmptyStyle.Render(signedOutMessage)
	case m.state.Loading:
		return m.loading.View()
	case len(m.state.Visible().Rows) == 0:
		return EmptyStyle.Render(noDataMessage)
	default:
		return m.table.View()
	}
}

func (m DashboardModel) renderPager() string {
	page := m.state.Visible()
	return HelpStyle.Render(fmt.Sprintf("%s  •  Items per page: %d  •  %d matching",
		m.pager.View(), m.state.PerPage, page.FilteredCount))
}
