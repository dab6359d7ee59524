package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portmocks "github.com/reklai/harpoon-telescope/internal/application/port/mocks"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
)

func fastLifecycle() LifecycleTimings {
	return LifecycleTimings{InitialDelay: time.Millisecond, Attempts: 5, Interval: time.Millisecond}
}

func newLifecycleHarness(t *testing.T) (*sessionHarness, *LifecycleReconciler) {
	t.Helper()
	h := newSessionHarness()
	l := NewLifecycleReconciler(h.ctx, h.store, h.tabs, h.host, h.messenger, fastLifecycle, nil)
	return h, l
}

func TestLifecycle_NoSessionsLeavesSlotsAlone(t *testing.T) {
	h, l := newLifecycleHarness(t)
	h.pin("https://a.test")

	started, err := l.OnStartup(h.ctx)
	require.NoError(t, err)
	l.Wait()

	assert.False(t, started)
	slots, _ := h.tabs.Slots(h.ctx)
	assert.Len(t, slots, 1)
	assert.Zero(t, h.messenger.promptCount())
}

func TestLifecycle_ClearsSlotsAndPromptsAfterRetries(t *testing.T) {
	h, l := newLifecycleHarness(t)
	h.pin("https://a.test")
	_, err := h.store.Save(h.ctx, "Work")
	require.NoError(t, err)
	h.messenger.promptFails = 3

	started, err := l.OnStartup(h.ctx)
	require.NoError(t, err)
	l.Wait()

	assert.True(t, started)
	slots, _ := h.tabs.Slots(h.ctx)
	assert.Empty(t, slots)
	assert.Empty(t, h.slotRepo.stored(), "cleared list is persisted")
	assert.Equal(t, 1, h.messenger.promptCount())
}

func TestLifecycle_PromptExhaustionIsNotAnError(t *testing.T) {
	h, l := newLifecycleHarness(t)
	h.pin("https://a.test")
	_, err := h.store.Save(h.ctx, "Work")
	require.NoError(t, err)
	h.messenger.promptFails = 100

	started, err := l.OnStartup(h.ctx)
	require.NoError(t, err)
	l.Wait()

	assert.True(t, started)
	assert.Zero(t, h.messenger.promptCount())
	h.messenger.mu.Lock()
	assert.Equal(t, 95, h.messenger.promptFails, "exactly five attempts")
	h.messenger.mu.Unlock()
}

func TestLifecycle_NewStartupSupersedesOlderPromptLoop(t *testing.T) {
	h := newSessionHarness()
	h.pin("https://a.test")
	_, err := h.store.Save(h.ctx, "Work")
	require.NoError(t, err)
	active, _ := h.host.ActiveTab(h.ctx)
	require.NotNil(t, active)

	messenger := portmocks.NewMockTabMessenger(t)
	messenger.EXPECT().
		ShowSessionRestorePrompt(mock.Anything, active.ID).
		Return(nil).
		Once()

	slow := func() LifecycleTimings {
		return LifecycleTimings{InitialDelay: 30 * time.Millisecond, Attempts: 1, Interval: time.Millisecond}
	}
	l := NewLifecycleReconciler(h.ctx, h.store, h.tabs, h.host, messenger, slow, nil)

	_, err = l.OnStartup(h.ctx)
	require.NoError(t, err)
	_, err = l.OnStartup(h.ctx)
	require.NoError(t, err)
	l.Wait()
}

func TestLifecycle_NoFocusedTabKeepsRetrying(t *testing.T) {
	h, l := newLifecycleHarness(t)
	h.pin("https://a.test")
	_, err := h.store.Save(h.ctx, "Work")
	require.NoError(t, err)
	h.host.focus(entity.NoTab)

	started, err := l.OnStartup(h.ctx)
	require.NoError(t, err)
	l.Wait()

	assert.True(t, started)
	assert.Zero(t, h.messenger.promptCount())
}
