// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/reklai/harpoon-telescope/internal/cli/styles"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

// SessionBrowser is the part of the session store the browser drives.
type SessionBrowser interface {
	ListSorted(ctx context.Context) (entity.SessionList, error)
	LoadPlan(ctx context.Context, name string) (*entity.LoadPlan, error)
	Rename(ctx context.Context, oldName, newName string) error
	Delete(ctx context.Context, name string) error
}

// SessionsModel is the Bubble Tea model for the interactive session browser.
type SessionsModel struct {
	help    help.Model
	keys    sessionsKeyMap
	list    list.Model
	confirm *styles.ConfirmModel
	rename  *textinput.Model

	plan          *entity.LoadPlan
	planErr       error
	width         int
	height        int
	err           error
	statusMessage string

	ctx      context.Context
	store    SessionBrowser
	theme    *styles.Theme
	renderer *styles.SessionsCLIRenderer
}

type sessionsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Rename  key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k sessionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Rename, k.Delete, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k sessionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Rename, k.Delete, k.Refresh},
		{k.Help, k.Quit},
	}
}

func defaultSessionsKeyMap() sessionsKeyMap {
	return sessionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "d"),
			key.WithHelp("x", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewSessionsModel creates a new sessions browser model.
func NewSessionsModel(ctx context.Context, theme *styles.Theme, store SessionBrowser) SessionsModel {
	return SessionsModel{
		help:     help.New(),
		keys:     defaultSessionsKeyMap(),
		list:     styles.NewSessionList(theme, nil, 80, 16),
		width:    80,
		height:   24,
		ctx:      ctx,
		store:    store,
		theme:    theme,
		renderer: styles.NewSessionsCLIRenderer(theme),
	}
}

// Init implements tea.Model.
func (m SessionsModel) Init() tea.Cmd {
	return m.loadSessions
}

type sessionsLoadedMsg struct {
	sessions entity.SessionList
	err      error
}

type planLoadedMsg struct {
	name string
	plan *entity.LoadPlan
	err  error
}

type sessionDeletedMsg struct {
	name string
	err  error
}

type sessionRenamedMsg struct {
	oldName string
	newName string
	err     error
}

func (m SessionsModel) loadSessions() tea.Msg {
	sessions, err := m.store.ListSorted(m.ctx)
	if err != nil {
		logging.FromContext(m.ctx).Error().Err(err).Msg("failed to load sessions")
		return sessionsLoadedMsg{err: err}
	}
	return sessionsLoadedMsg{sessions: sessions}
}

func (m SessionsModel) loadPlan(name string) tea.Cmd {
	return func() tea.Msg {
		plan, err := m.store.LoadPlan(m.ctx, name)
		return planLoadedMsg{name: name, plan: plan, err: err}
	}
}

func (m SessionsModel) deleteSession(name string) tea.Cmd {
	return func() tea.Msg {
		logging.FromContext(m.ctx).Info().Str("session", name).Msg("deleting session")
		return sessionDeletedMsg{name: name, err: m.store.Delete(m.ctx, name)}
	}
}

func (m SessionsModel) renameSession(oldName, newName string) tea.Cmd {
	return func() tea.Msg {
		logging.FromContext(m.ctx).Info().Str("session", oldName).Str("to", newName).Msg("renaming session")
		return sessionRenamedMsg{oldName: oldName, newName: newName, err: m.store.Rename(m.ctx, oldName, newName)}
	}
}

// selected returns the highlighted session, if any.
func (m SessionsModel) selected() (entity.Session, bool) {
	item, ok := m.list.SelectedItem().(styles.SessionItem)
	if !ok {
		return entity.Session{}, false
	}
	return item.Session, true
}

// previewSelected asks for the load plan of the highlighted session.
func (m SessionsModel) previewSelected() tea.Cmd {
	s, ok := m.selected()
	if !ok {
		return nil
	}
	return m.loadPlan(s.Name)
}

// Update implements tea.Model.
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		if m.confirm != nil {
			return m.handleConfirm(km)
		}
		if m.rename != nil {
			return m.handleRename(km)
		}
		return m.handleKeyMsg(km)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.SetSize(msg.Width, m.listHeight())
		return m, nil

	case sessionsLoadedMsg:
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.list.SetItems(styles.SessionItems(msg.sessions))
		m.plan, m.planErr = nil, nil
		return m, m.previewSelected()

	case planLoadedMsg:
		// A late answer for a row the cursor already left is dropped.
		if s, ok := m.selected(); !ok || s.Name != msg.name {
			return m, nil
		}
		m.plan, m.planErr = msg.plan, msg.err
		return m, nil

	case sessionDeletedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.statusMessage = fmt.Sprintf("Session %s deleted", msg.name)
		return m, m.loadSessions

	case sessionRenamedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.statusMessage = fmt.Sprintf("Session %s renamed to %s", msg.oldName, msg.newName)
		return m, m.loadSessions
	}

	return m, nil
}

func (m SessionsModel) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirm, cmd := m.confirm.Update(msg)
	m.confirm = &confirm
	if !confirm.Done() {
		return m, cmd
	}
	m.confirm = nil
	if !confirm.Result() {
		return m, nil
	}
	if s, ok := m.selected(); ok {
		return m, m.deleteSession(s.Name)
	}
	return m, nil
}

func (m SessionsModel) handleRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.rename = nil
		return m, nil
	case tea.KeyEnter:
		newName := entity.NormalizeSessionName(m.rename.Value())
		m.rename = nil
		s, ok := m.selected()
		if !ok || newName == s.Name {
			return m, nil
		}
		return m, m.renameSession(s.Name, newName)
	}
	input, cmd := m.rename.Update(msg)
	m.rename = &input
	return m, cmd
}

func (m SessionsModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		before := m.list.Index()
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		if m.list.Index() == before {
			return m, cmd
		}
		m.plan, m.planErr = nil, nil
		return m, tea.Batch(cmd, m.previewSelected())

	case key.Matches(msg, m.keys.Rename):
		if s, ok := m.selected(); ok {
			input := styles.NewNameInput(m.theme, s.Name)
			focus := input.Focus()
			m.rename = &input
			return m, focus
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if s, ok := m.selected(); ok {
			confirm := styles.NewConfirm(m.theme, fmt.Sprintf("Delete session %s?", s.Name))
			m.confirm = &confirm
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.statusMessage = ""
		return m, m.loadSessions

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// listHeight leaves room for the header, preview and help lines.
func (m SessionsModel) listHeight() int {
	return max(m.height-(entity.MaxSlots+10), 4)
}

// View implements tea.Model.
func (m SessionsModel) View() string {
	if m.confirm != nil {
		return m.confirm.View()
	}

	t := m.theme
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(t.ErrorStyle.Render(fmt.Sprintf("%s Error: %v", styles.IconX, m.err)))
		b.WriteString("\n\n")
	}
	if m.statusMessage != "" {
		b.WriteString(t.Subtle.Render(m.statusMessage))
		b.WriteString("\n\n")
	}

	if len(m.list.Items()) == 0 {
		b.WriteString(t.Subtle.Render("  No saved sessions found."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n\n")
		b.WriteString(m.renderPreview())
		b.WriteString("\n")
	}

	if m.rename != nil {
		b.WriteString("\n")
		b.WriteString(t.Subtitle.Render("Rename to"))
		b.WriteString("\n")
		b.WriteString(m.rename.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m SessionsModel) renderHeader() string {
	t := m.theme
	icon := lipgloss.NewStyle().Foreground(t.Accent).Render(styles.IconSessionStack)
	title := t.Title.MarginLeft(1).Render("Sessions")
	count := t.Subtle.Render(fmt.Sprintf("  %d/%d", len(m.list.Items()), entity.MaxSessions))
	return icon + title + count
}

func (m SessionsModel) renderPreview() string {
	switch {
	case m.planErr != nil:
		return m.theme.ErrorStyle.Render(fmt.Sprintf("%s %v", styles.IconX, m.planErr))
	case m.plan == nil:
		return m.theme.Subtle.Render("Loading preview...")
	default:
		return m.renderer.RenderPlan(m.plan)
	}
}

var _ tea.Model = (*SessionsModel)(nil)
