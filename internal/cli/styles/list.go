package styles

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/reklai/harpoon-telescope/internal/domain/entity"
)

const (
	cursorEmpty    = "  "
	cursorSelected = "\u25b8 " // ▸
)

// SessionItem adapts a saved session to list.Item.
type SessionItem struct {
	Session entity.Session
}

// FilterValue implements list.Item.
func (i SessionItem) FilterValue() string {
	return i.Session.Name
}

// SessionDelegate renders one session per two lines.
type SessionDelegate struct {
	Theme *Theme
}

// Height returns the height of each item.
func (d SessionDelegate) Height() int { return 2 }

// Spacing returns the spacing between items.
func (d SessionDelegate) Spacing() int { return 0 }

// Update handles item-level events.
func (d SessionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders a single list item.
func (d SessionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	si, ok := item.(SessionItem)
	if !ok {
		return
	}
	t := d.Theme
	s := si.Session

	cursor := cursorEmpty
	nameStyle := t.ListItemTitle
	descStyle := t.ListItemDesc
	if index == m.Index() {
		cursor = cursorSelected
		nameStyle = nameStyle.Foreground(t.Accent).Bold(true)
		descStyle = descStyle.Foreground(t.Text)
	}

	first := ""
	if len(s.Entries) > 0 {
		first = s.Entries[0].Title
		if first == "" {
			first = s.Entries[0].URL
		}
	}

	line1 := lipgloss.JoinHorizontal(lipgloss.Left,
		t.Highlight.Render(cursor),
		nameStyle.Render(s.Name),
		"  ",
		t.MutedBadge(pluralize(len(s.Entries), "tab")),
		" ",
		t.Subtle.Render(RelativeTime(s.SavedAt)),
	)
	line2 := cursorEmpty + " " + descStyle.Render(truncate(first, maxURLWidth))

	_, _ = fmt.Fprintf(w, "%s\n%s", line1, line2)
}

// NewSessionList creates a themed list over sessions.
func NewSessionList(theme *Theme, sessions entity.SessionList, width, height int) list.Model {
	l := list.New(SessionItems(sessions), SessionDelegate{Theme: theme}, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)

	l.Styles.PaginationStyle = lipgloss.NewStyle().Foreground(theme.Muted)
	l.Styles.ActivePaginationDot = lipgloss.NewStyle().Foreground(theme.Accent)
	l.Styles.InactivePaginationDot = lipgloss.NewStyle().Foreground(theme.Muted)
	return l
}

// SessionItems converts sessions to list items.
func SessionItems(sessions entity.SessionList) []list.Item {
	items := make([]list.Item, len(sessions))
	for i, s := range sessions {
		items[i] = SessionItem{Session: s}
	}
	return items
}

// NewNameInput creates the themed input used to rename a session.
func NewNameInput(theme *Theme, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "session name"
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.Muted)
	ti.TextStyle = lipgloss.NewStyle().Foreground(theme.Text)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	ti.PromptStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	ti.Prompt = "→ "
	ti.CharLimit = 64
	ti.SetValue(value)
	ti.CursorEnd()
	return ti
}
