package usecase

import (
	"context"
	"strconv"

	"github.com/reklai/harpoon-telescope/internal/domain/entity"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

// SlotListeners receives host tab lifecycle events the manager does not
// observe itself. None of these ever return an error: failures are logged
// and the event is dropped.
type SlotListeners interface {
	OnTabClosed(ctx context.Context, id entity.TabID)
	OnTabUpdated(ctx context.Context, tab entity.TabInfo)
	OnTabActivated(ctx context.Context, id entity.TabID)
}

var _ SlotListeners = (*TabManager)(nil)

func updateKey(id entity.TabID) string {
	return "tab-updated:" + strconv.FormatInt(int64(id), 10)
}

// OnTabClosed marks the pinned entry for id as closed.
func (m *TabManager) OnTabClosed(ctx context.Context, id entity.TabID) {
	log := logging.FromContext(logging.WithTabID(ctx, int64(id)))
	m.updates.Cancel(updateKey(id))
	if m.restorer != nil {
		m.restorer.Forget(id)
	}

	if err := m.ensureLoaded(ctx); err != nil {
		log.Warn().Err(err).Msg("tab closed event dropped")
		return
	}

	m.mu.Lock()
	if m.lastActive == id {
		m.lastActive = entity.NoTab
	}
	if idx := m.slots.IndexOfOpenTab(id); idx >= 0 {
		m.slots[idx].Closed = true
		m.persistBestEffortLocked(ctx)
		log.Debug().Int("slot", m.slots[idx].Slot).Msg("pinned tab closed")
	}
	m.mu.Unlock()

	if m.onTabClosed != nil {
		m.onTabClosed(ctx, id)
	}
}

// OnTabUpdated refreshes url and title of the pinned entry for tab.ID.
// Bursts for the same tab collapse into one write carrying the latest values.
func (m *TabManager) OnTabUpdated(ctx context.Context, tab entity.TabInfo) {
	if tab.ID == entity.NoTab {
		return
	}
	bg := context.WithoutCancel(ctx)
	m.updates.Post(updateKey(tab.ID), func() {
		m.applyTabUpdate(bg, tab)
	})
}

func (m *TabManager) applyTabUpdate(ctx context.Context, tab entity.TabInfo) {
	if err := m.ensureLoaded(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("tab update dropped")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.slots.IndexOfOpenTab(tab.ID)
	if idx < 0 {
		return
	}
	entry := &m.slots[idx]
	changed := false
	if tab.URL != "" && tab.URL != entry.URL {
		entry.URL = tab.URL
		changed = true
	}
	if tab.Title != "" && tab.Title != entry.Title {
		entry.Title = tab.Title
		changed = true
	}
	if changed {
		m.persistBestEffortLocked(ctx)
	}
}

// OnTabActivated runs the activation hook, then stores the scroll offset of
// the tab that just lost focus.
func (m *TabManager) OnTabActivated(ctx context.Context, id entity.TabID) {
	if m.onTabActivated != nil {
		m.onTabActivated(ctx, id)
	}
	if err := m.ensureLoaded(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("tab activated event dropped")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.lastActive
	m.lastActive = id
	if prev != entity.NoTab && prev != id {
		m.captureScrollLocked(ctx, prev)
	}
}
