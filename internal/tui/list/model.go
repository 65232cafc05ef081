package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected is true for the cursor row.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a cursor-driven list that keeps the cursor inside a fixed-height
// viewport.
type Model[T any] struct {
	items  []T
	render RenderFunc[T]

	cursor int
	offset int
	height int
}

// New creates a list showing height rows at a time.
func New[T any](items []T, height int, render RenderFunc[T]) *Model[T] {
	if height < 1 {
		height = 1
	}
	return &Model[T]{items: items, render: render, height: height}
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update moves the cursor on navigation keys.
//
//nolint:exhaustive // Only navigation keys are handled.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		m.SetCursor(m.cursor - 1)
	case tea.KeyDown:
		m.SetCursor(m.cursor + 1)
	case tea.KeyPgUp:
		m.SetCursor(m.cursor - m.height)
	case tea.KeyPgDown:
		m.SetCursor(m.cursor + m.height)
	case tea.KeyHome:
		m.SetCursor(0)
	case tea.KeyEnd:
		m.SetCursor(len(m.items) - 1)
	case tea.KeyRunes:
		switch keyMsg.String() {
		case "k":
			m.SetCursor(m.cursor - 1)
		case "j":
			m.SetCursor(m.cursor + 1)
		}
	default:
	}
	return m, nil
}

// View renders the rows inside the viewport.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	from, to := m.Window()
	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		lines = append(lines, m.render(m.items[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

// SetItems replaces the items and resets the cursor.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor = 0
	m.offset = 0
}

// SetHeight changes the viewport height.
func (m *Model[T]) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	m.height = height
	m.SetCursor(m.cursor)
}

// SetCursor moves the cursor, clamped to the item range, and scrolls so it
// stays visible.
func (m *Model[T]) SetCursor(index int) {
	if len(m.items) == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = max(0, min(index, len(m.items)-1))

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// Cursor returns the cursor index.
func (m *Model[T]) Cursor() int {
	return m.cursor
}

// Len returns the number of items.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// Window returns the [from, to) range of rendered items.
func (m *Model[T]) Window() (int, int) {
	to := min(m.offset+m.height, len(m.items))
	return m.offset, to
}

// Selected returns the item under the cursor, or nil for an empty list.
func (m *Model[T]) Selected() *T {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.cursor]
}
