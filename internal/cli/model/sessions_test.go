package model

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reklai/harpoon-telescope/internal/cli/styles"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
)

type fakeSessions struct {
	sessions entity.SessionList
	current  entity.SlotList
	deleted  []string
	renamed  [][2]string
	planErr  error
}

func (f *fakeSessions) ListSorted(context.Context) (entity.SessionList, error) {
	return f.sessions, nil
}

func (f *fakeSessions) LoadPlan(_ context.Context, name string) (*entity.LoadPlan, error) {
	if f.planErr != nil {
		return nil, f.planErr
	}
	i := f.sessions.Index(name)
	if i < 0 {
		return nil, errors.New("not found")
	}
	return entity.BuildLoadPlan(&f.sessions[i], f.current), nil
}

func (f *fakeSessions) Rename(_ context.Context, oldName, newName string) error {
	f.renamed = append(f.renamed, [2]string{oldName, newName})
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

func newFakeSessions() *fakeSessions {
	now := time.Now()
	return &fakeSessions{
		sessions: entity.SessionList{
			{Name: "Work", Entries: []entity.SessionEntry{{URL: "https://a.test", Title: "A"}}, SavedAt: now},
			{Name: "Play", Entries: []entity.SessionEntry{{URL: "https://b.test"}}, SavedAt: now.Add(-time.Hour)},
		},
		current: entity.SlotList{{URL: "https://a.test", Slot: 1}},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// step feeds msg to m and runs the returned command once, if any.
func step(t *testing.T, m SessionsModel, msg tea.Msg) (SessionsModel, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionsModel)
	require.True(t, ok)
	if cmd == nil {
		return sm, nil
	}
	return sm, cmd()
}

func loadedModel(t *testing.T, store *fakeSessions) SessionsModel {
	t.Helper()
	m := NewSessionsModel(context.Background(), styles.NewTheme(), store)
	m, planMsg := step(t, m, m.Init()())
	require.IsType(t, planLoadedMsg{}, planMsg)
	m, _ = step(t, m, planMsg)
	return m
}

func TestSessionsModel_ListsSessionsWithPreview(t *testing.T) {
	m := loadedModel(t, newFakeSessions())

	view := m.View()
	assert.Contains(t, view, "Work")
	assert.Contains(t, view, "Play")
	assert.Contains(t, view, "2/4")
	assert.Contains(t, view, "matches the current slots")
}

func TestSessionsModel_MovingCursorPreviewsNextSession(t *testing.T) {
	store := newFakeSessions()
	m := loadedModel(t, store)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(SessionsModel)
	require.NotNil(t, cmd)
	assert.Nil(t, m.plan, "preview is cleared until the new plan arrives")

	// A plan for the row the cursor left is dropped.
	m, _ = step(t, m, planLoadedMsg{name: "Work", plan: &entity.LoadPlan{Session: "Work"}})
	assert.Nil(t, m.plan)

	plan, err := store.LoadPlan(context.Background(), "Play")
	require.NoError(t, err)
	m, _ = step(t, m, planLoadedMsg{name: "Play", plan: plan})
	require.NotNil(t, m.plan)
	assert.Contains(t, m.View(), "https://b.test")
	assert.NotContains(t, m.View(), "matches the current slots")
}

func TestSessionsModel_DeleteAsksFirst(t *testing.T) {
	store := newFakeSessions()
	m := loadedModel(t, store)

	m, _ = step(t, m, keyRunes("x"))
	require.NotNil(t, m.confirm)
	assert.Contains(t, m.View(), "Delete session Work?")

	// Enter on the default answer cancels.
	m, msg := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, msg)
	assert.Nil(t, m.confirm)
	assert.Empty(t, store.deleted)

	m, _ = step(t, m, keyRunes("x"))
	m, _ = step(t, m, keyRunes("y"))
	m, msg = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.IsType(t, sessionDeletedMsg{}, msg)
	assert.Equal(t, []string{"Work"}, store.deleted)

	m, reload := step(t, m, msg)
	assert.Contains(t, m.View(), "Session Work deleted")
	assert.IsType(t, sessionsLoadedMsg{}, reload)
}

func TestSessionsModel_RenameEditsSelectedName(t *testing.T) {
	store := newFakeSessions()
	m := loadedModel(t, store)

	next, _ := m.Update(keyRunes("r"))
	m = next.(SessionsModel)
	require.NotNil(t, m.rename)
	assert.Equal(t, "Work", m.rename.Value())

	next, _ = m.Update(keyRunes("s"))
	m = next.(SessionsModel)
	assert.Equal(t, "Works", m.rename.Value())

	m, msg := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.rename)
	require.IsType(t, sessionRenamedMsg{}, msg)
	assert.Equal(t, [][2]string{{"Work", "Works"}}, store.renamed)

	m, _ = step(t, m, msg)
	assert.Contains(t, m.View(), "renamed to Works")
}

func TestSessionsModel_RenameEscapeCancels(t *testing.T) {
	store := newFakeSessions()
	m := loadedModel(t, store)

	next, _ := m.Update(keyRunes("r"))
	m = next.(SessionsModel)
	m, msg := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, msg)
	assert.Nil(t, m.rename)
	assert.Empty(t, store.renamed)
}

func TestSessionsModel_PreviewErrorIsShown(t *testing.T) {
	store := newFakeSessions()
	store.planErr = errors.New("database locked")
	m := loadedModel(t, store)

	assert.Contains(t, m.View(), "database locked")
}

func TestSessionsModel_EmptyStore(t *testing.T) {
	m := NewSessionsModel(context.Background(), styles.NewTheme(), &fakeSessions{})
	m, msg := step(t, m, m.Init()())
	assert.Nil(t, msg)
	assert.Contains(t, m.View(), "No saved sessions found.")
}

func TestSessionsModel_QuitKey(t *testing.T) {
	m := loadedModel(t, newFakeSessions())
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
