package styles

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModel is a yes/no dialog embedded by a parent model.
// It starts on "No" so a stray enter never confirms a deletion.
type ConfirmModel struct {
	Message   string
	Yes       bool // current selection
	Confirmed bool // enter was pressed
	Canceled  bool // esc was pressed
	theme     *Theme
	keys      ConfirmKeyMap
}

// ConfirmKeyMap defines keybindings for the confirm dialog.
type ConfirmKeyMap struct {
	Yes     key.Binding
	No      key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeyMap returns the default keybindings.
func DefaultConfirmKeyMap() ConfirmKeyMap {
	return ConfirmKeyMap{
		Yes:     key.NewBinding(key.WithKeys("y", "right", "l"), key.WithHelp("y/→", "yes")),
		No:      key.NewBinding(key.WithKeys("n", "left", "h"), key.WithHelp("n/←", "no")),
		Toggle:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "cancel")),
	}
}

// NewConfirm creates a new confirmation dialog.
func NewConfirm(theme *Theme, message string) ConfirmModel {
	return ConfirmModel{
		Message: message,
		theme:   theme,
		keys:    DefaultConfirmKeyMap(),
	}
}

// Update handles one key press. Other messages are ignored.
func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Yes):
		m.Yes = true
	case key.Matches(km, m.keys.No):
		m.Yes = false
	case key.Matches(km, m.keys.Toggle):
		m.Yes = !m.Yes
	case key.Matches(km, m.keys.Confirm):
		m.Confirmed = true
	case key.Matches(km, m.keys.Cancel):
		m.Canceled = true
	}
	return m, nil
}

// View renders the dialog box.
func (m ConfirmModel) View() string {
	t := m.theme

	yesStyle, noStyle := t.InactiveTab, t.ActiveTab
	if m.Yes {
		yesStyle, noStyle = t.ActiveTab, t.InactiveTab
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		noStyle.Render(" No "), "  ", yesStyle.Render(" Yes "))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		t.Title.Render(m.Message),
		"",
		buttons,
		"",
		t.Subtle.Render("y/n to select • enter to confirm • esc to cancel"),
	)
	return t.Box.Render(content)
}

// Done reports whether the dialog is finished.
func (m ConfirmModel) Done() bool {
	return m.Confirmed || m.Canceled
}

// Result reports whether the user confirmed "Yes".
func (m ConfirmModel) Result() bool {
	return m.Confirmed && m.Yes
}
