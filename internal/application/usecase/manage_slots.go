package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/reklai/harpoon-telescope/internal/app/mainloop"
	"github.com/reklai/harpoon-telescope/internal/application/port"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
	"github.com/reklai/harpoon-telescope/internal/domain/repository"
	domainurl "github.com/reklai/harpoon-telescope/internal/domain/url"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

const (
	// DefaultMessageTimeout bounds best-effort round trips to a tab.
	DefaultMessageTimeout = 3 * time.Second
	// DefaultUpdateDebounce coalesces bursts of tab-updated events.
	DefaultUpdateDebounce = 250 * time.Millisecond
)

// TabHook is an externally supplied callback for tab lifecycle events.
type TabHook func(ctx context.Context, id entity.TabID)

// TabManagerOptions carries timings and hooks. Zero values use defaults.
type TabManagerOptions struct {
	MessageTimeout func() time.Duration
	UpdateDebounce func() time.Duration
	OnTabClosed    TabHook
	OnTabActivated TabHook
}

// AddResult is the outcome of pinning a tab. TabID is set when a new entry
// was created, so the caller can confirm it in the page.
type AddResult struct {
	OK             bool         `json:"ok"`
	Reason         string       `json:"reason,omitempty"`
	Slot           int          `json:"slot,omitempty"`
	TabID          entity.TabID `json:"tab_id,omitempty"`
	AlreadyPresent bool         `json:"already_present,omitempty"`
	Revived        bool         `json:"revived,omitempty"`
}

// JumpResult is the outcome of focusing a slot.
type JumpResult struct {
	OK       bool         `json:"ok"`
	Reason   string       `json:"reason,omitempty"`
	Slot     int          `json:"slot,omitempty"`
	TabID    entity.TabID `json:"tab_id,omitempty"`
	Reopened bool         `json:"reopened,omitempty"`
	Removed  bool         `json:"removed,omitempty"`
}

// TabManager owns the canonical slot list. It is the only writer of the
// slot key in the repository; every public operation runs under one lock.
type TabManager struct {
	repo      repository.SlotRepository
	host      port.TabHost
	messenger port.TabMessenger
	restorer  *ScrollRestorer

	messageTimeout func() time.Duration
	onTabClosed    TabHook
	onTabActivated TabHook
	updates        *mainloop.Coalescer

	loadGroup singleflight.Group
	loaded    atomic.Bool

	mu         sync.Mutex
	slots      entity.SlotList
	lastActive entity.TabID
}

// NewTabManager creates a new slot manager. The slot list is loaded on first use.
func NewTabManager(
	repo repository.SlotRepository,
	host port.TabHost,
	messenger port.TabMessenger,
	restorer *ScrollRestorer,
	opts TabManagerOptions,
) *TabManager {
	if opts.MessageTimeout == nil {
		opts.MessageTimeout = func() time.Duration { return DefaultMessageTimeout }
	}
	if opts.UpdateDebounce == nil {
		opts.UpdateDebounce = func() time.Duration { return DefaultUpdateDebounce }
	}
	return &TabManager{
		repo:           repo,
		host:           host,
		messenger:      messenger,
		restorer:       restorer,
		messageTimeout: opts.MessageTimeout,
		onTabClosed:    opts.OnTabClosed,
		onTabActivated: opts.OnTabActivated,
		updates:        mainloop.NewDebouncer(opts.UpdateDebounce),
		slots:          entity.SlotList{},
	}
}

// ensureLoaded reads the persisted list once per process. Concurrent first
// callers share one read; a failed read is retried by the next caller.
func (m *TabManager) ensureLoaded(ctx context.Context) error {
	if m.loaded.Load() {
		return nil
	}
	_, err, _ := m.loadGroup.Do("slots", func() (any, error) {
		if m.loaded.Load() {
			return nil, nil
		}
		stored, err := m.repo.LoadSlots(ctx)
		if err != nil {
			return nil, fmt.Errorf("load slots: %w", err)
		}
		clean := stored.Sanitize()

		m.mu.Lock()
		m.slots = clean
		m.loaded.Store(true)
		m.mu.Unlock()

		logging.FromContext(ctx).Debug().Int("slots", len(clean)).Msg("slot list loaded")
		return nil, nil
	})
	return err
}

func (m *TabManager) persistLocked(ctx context.Context) error {
	if err := m.repo.SaveSlots(ctx, m.slots.Clone()); err != nil {
		return fmt.Errorf("save slots: %w", err)
	}
	return nil
}

// persistBestEffortLocked is for paths that must not fail: background
// listeners, reconciliation, and the tail of a jump whose tab already exists.
func (m *TabManager) persistBestEffortLocked(ctx context.Context) {
	if err := m.persistLocked(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to persist slot list")
	}
}

func (m *TabManager) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.messageTimeout())
}

// readScroll asks the content script for its scroll offset.
func (m *TabManager) readScroll(ctx context.Context, id entity.TabID) (entity.ScrollPosition, bool) {
	if id == entity.NoTab {
		return entity.ScrollPosition{}, false
	}
	bctx, cancel := m.bounded(ctx)
	defer cancel()
	pos, err := m.messenger.GetScrollPosition(bctx, id)
	if err != nil {
		logging.FromContext(logging.WithTabID(ctx, int64(id))).Trace().Err(err).Msg("scroll capture failed")
		return entity.ScrollPosition{}, false
	}
	return pos, true
}

func (m *TabManager) activeTab(ctx context.Context) *entity.TabInfo {
	tab, err := m.host.ActiveTab(ctx)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("failed to query active tab")
		return nil
	}
	return tab
}

// Add pins tab. A tab already pinned by id or URL is reported as present;
// a closed entry for the same page is revived in place.
func (m *TabManager) Add(ctx context.Context, tab entity.TabInfo) (AddResult, error) {
	if err := m.ensureLoaded(ctx); err != nil {
		return AddResult{}, err
	}
	if tab.URL == "" {
		return AddResult{Reason: "tab has no url"}, nil
	}
	log := logging.FromContext(logging.WithTabID(ctx, int64(tab.ID)))

	m.mu.Lock()
	defer m.mu.Unlock()

	m.reconcileLocked(ctx)

	idx := m.slots.IndexOfTab(tab.ID)
	if idx < 0 {
		idx = m.slots.IndexFunc(func(e *entity.SlotEntry) bool {
			return domainurl.SameDocument(e.URL, tab.URL)
		})
	}
	if idx >= 0 {
		entry := &m.slots[idx]
		if !entry.Closed {
			return AddResult{OK: true, Slot: entry.Slot, AlreadyPresent: true, Reason: fmt.Sprintf("already in slot %d", entry.Slot)}, nil
		}

		prev := *entry
		entry.TabID = tab.ID
		entry.URL = tab.URL
		if tab.Title != "" {
			entry.Title = tab.Title
		}
		entry.Closed = tab.ID == entity.NoTab
		if err := m.persistLocked(ctx); err != nil {
			m.slots[idx] = prev
			return AddResult{}, err
		}
		log.Info().Int("slot", entry.Slot).Msg("revived closed slot")
		return AddResult{OK: true, Slot: entry.Slot, AlreadyPresent: true, Revived: true, Reason: fmt.Sprintf("already in slot %d", entry.Slot)}, nil
	}

	if len(m.slots) >= entity.MaxSlots {
		return AddResult{Reason: fmt.Sprintf("slots full (max %d)", entity.MaxSlots)}, nil
	}

	var pos entity.ScrollPosition
	if !domainurl.IsRestricted(tab.URL) {
		pos, _ = m.readScroll(ctx, tab.ID)
	}
	entry := entity.SlotEntry{
		TabID:  tab.ID,
		URL:    tab.URL,
		Title:  tab.Title,
		Slot:   len(m.slots) + 1,
		Closed: tab.ID == entity.NoTab,
	}
	entry.SetScroll(pos)

	prev := m.slots
	m.slots = append(m.slots.Clone(), entry)
	if err := m.persistLocked(ctx); err != nil {
		m.slots = prev
		return AddResult{}, err
	}

	log.Info().Int("slot", entry.Slot).Str("url", tab.URL).Msg("tab added to slot")
	return AddResult{OK: true, Slot: entry.Slot, TabID: tab.ID}, nil
}

// Remove unpins every entry mapped to tabID. Returns false when none matched.
func (m *TabManager) Remove(ctx context.Context, tabID entity.TabID) (bool, error) {
	if err := m.ensureLoaded(ctx); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.slots
	next := m.slots.Clone()
	removed := false
	for i := next.IndexOfTab(tabID); i >= 0; i = next.IndexOfTab(tabID) {
		next = next.RemoveAt(i)
		removed = true
	}
	if !removed {
		return false, nil
	}

	m.slots = next
	if err := m.persistLocked(ctx); err != nil {
		m.slots = prev
		return false, err
	}
	logging.FromContext(logging.WithTabID(ctx, int64(tabID))).Info().Int("slots", len(next)).Msg("tab removed from slots")
	return true, nil
}

// RemoveSlot unpins the entry at slot n.
func (m *TabManager) RemoveSlot(ctx context.Context, n int) (bool, error) {
	if err := m.ensureLoaded(ctx); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.slots.IndexOfSlot(n)
	if idx < 0 {
		return false, nil
	}
	prev := m.slots
	m.slots = m.slots.RemoveAt(idx)
	if err := m.persistLocked(ctx); err != nil {
		m.slots = prev
		return false, err
	}
	return true, nil
}

// Jump focuses the tab in slot n, reopening it if it was closed.
func (m *TabManager) Jump(ctx context.Context, n int) (JumpResult, error) {
	if err := m.ensureLoaded(ctx); err != nil {
		return JumpResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.jumpLocked(ctx, n, m.activeTab(ctx)), nil
}

func (m *TabManager) jumpLocked(ctx context.Context, n int, active *entity.TabInfo) JumpResult {
	idx := m.slots.IndexOfSlot(n)
	if idx < 0 {
		return JumpResult{Slot: n, Reason: fmt.Sprintf("slot %d is empty", n)}
	}

	target := m.slots[idx]
	if active != nil && !(target.IsOpen() && target.TabID == active.ID) {
		m.captureScrollLocked(ctx, active.ID)
	}
	return m.focusSlotLocked(ctx, n, true)
}

// focusSlotLocked runs the open or closed path for slot n. A stale handle on
// the open path is marked closed and sent once through the closed path.
func (m *TabManager) focusSlotLocked(ctx context.Context, n int, retryStale bool) JumpResult {
	log := logging.FromContext(ctx)
	idx := m.slots.IndexOfSlot(n)
	if idx < 0 {
		return JumpResult{Slot: n, Reason: fmt.Sprintf("slot %d is empty", n)}
	}
	entry := &m.slots[idx]

	if entry.IsOpen() {
		err := m.host.ActivateTab(ctx, entry.TabID)
		if err == nil {
			m.lastActive = entry.TabID
			return JumpResult{OK: true, Slot: n, TabID: entry.TabID}
		}
		if !errors.Is(err, port.ErrTabNotFound) || !retryStale {
			log.Warn().Err(err).Int("slot", n).Msg("failed to focus slot tab")
			return JumpResult{Slot: n, TabID: entry.TabID, Reason: "could not focus tab"}
		}
		logging.FromContext(logging.WithTabID(ctx, int64(entry.TabID))).Debug().Int("slot", n).Msg("slot tab vanished, reopening")
		entry.Closed = true
		return m.focusSlotLocked(ctx, n, false)
	}

	tab, err := m.host.CreateTab(ctx, entry.URL, true)
	if err != nil || tab == nil {
		log.Warn().Err(err).Int("slot", n).Str("url", entry.URL).Msg("failed to reopen slot, removing it")
		m.slots = m.slots.RemoveAt(idx)
		m.persistBestEffortLocked(ctx)
		return JumpResult{Slot: n, Removed: true, Reason: fmt.Sprintf("slot %d could not be reopened and was removed", n)}
	}

	// A reused id still held by another open entry would break uniqueness.
	if other := m.slots.IndexOfOpenTab(tab.ID); other >= 0 && other != idx {
		m.slots[other].Closed = true
	}
	entry.TabID = tab.ID
	entry.Closed = false
	m.lastActive = tab.ID
	m.persistBestEffortLocked(ctx)

	if m.restorer != nil {
		m.restorer.Schedule(ctx, tab.ID, entry.Scroll())
	}
	logging.FromContext(logging.WithTabID(ctx, int64(tab.ID))).Info().Int("slot", n).Msg("reopened closed slot")
	return JumpResult{OK: true, Slot: n, TabID: tab.ID, Reopened: true}
}

// Cycle jumps to the neighbour of the focused slot, wrapping around.
// When the focused tab is not pinned, next starts at the first slot and
// prev at the last.
func (m *TabManager) Cycle(ctx context.Context, dir entity.Direction) (JumpResult, error) {
	if err := m.ensureLoaded(ctx); err != nil {
		return JumpResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	count := len(m.slots)
	if count == 0 {
		return JumpResult{Reason: "no slots"}, nil
	}

	active := m.activeTab(ctx)
	cur := -1
	if active != nil {
		cur = m.slots.IndexOfOpenTab(active.ID)
	}

	var next int
	switch {
	case cur < 0 && dir == entity.DirectionPrev:
		next = count - 1
	case cur < 0:
		next = 0
	case dir == entity.DirectionPrev:
		next = (cur - 1 + count) % count
	default:
		next = (cur + 1) % count
	}
	return m.jumpLocked(ctx, m.slots[next].Slot, active), nil
}

// Reconcile marks entries whose tab no longer exists as closed.
func (m *TabManager) Reconcile(ctx context.Context) (bool, error) {
	if err := m.ensureLoaded(ctx); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reconcileLocked(ctx), nil
}

// reconcileLocked never reopens anything: only Add and Jump clear closed.
func (m *TabManager) reconcileLocked(ctx context.Context) bool {
	tabs, err := m.host.QueryTabs(ctx)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("reconcile skipped, tab query failed")
		return false
	}
	live := make(map[entity.TabID]bool, len(tabs))
	for _, t := range tabs {
		live[t.ID] = true
	}

	changed := false
	for i := range m.slots {
		e := &m.slots[i]
		if !e.Closed && !live[e.TabID] {
			e.Closed = true
			changed = true
		}
	}
	if m.slots.Renumber() {
		changed = true
	}
	if changed {
		logging.FromContext(ctx).Debug().Msg("reconcile marked closed slots")
		m.persistBestEffortLocked(ctx)
	}
	return changed
}

// captureScrollLocked stores the scroll offset of an open pinned tab.
func (m *TabManager) captureScrollLocked(ctx context.Context, id entity.TabID) bool {
	idx := m.slots.IndexOfOpenTab(id)
	if idx < 0 || domainurl.IsRestricted(m.slots[idx].URL) {
		return false
	}
	pos, ok := m.readScroll(ctx, id)
	if !ok {
		return false
	}
	entry := &m.slots[idx]
	if entry.Scroll() == pos {
		return true
	}
	entry.SetScroll(pos)
	m.persistBestEffortLocked(ctx)
	return true
}

// SaveCurrentTabScroll captures the focused tab's scroll offset if it is pinned.
func (m *TabManager) SaveCurrentTabScroll(ctx context.Context) bool {
	if err := m.ensureLoaded(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("scroll capture skipped")
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	active := m.activeTab(ctx)
	if active == nil {
		return false
	}
	return m.captureScrollLocked(ctx, active.ID)
}

// Reorder replaces the list wholesale with a user-arranged one.
func (m *TabManager) Reorder(ctx context.Context, list entity.SlotList) error {
	return m.ReplaceAll(ctx, list)
}

// ReplaceAll installs list as the canonical slot list.
func (m *TabManager) ReplaceAll(ctx context.Context, list entity.SlotList) error {
	if err := m.ensureLoaded(ctx); err != nil {
		return err
	}
	clean := list.Sanitize()

	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.slots
	m.slots = clean
	if err := m.persistLocked(ctx); err != nil {
		m.slots = prev
		return err
	}
	logging.FromContext(ctx).Debug().Int("slots", len(clean)).Msg("slot list replaced")
	return nil
}

// Clear empties the slot list.
func (m *TabManager) Clear(ctx context.Context) error {
	return m.ReplaceAll(ctx, entity.SlotList{})
}

// Slots returns a copy of the list as it is in memory.
func (m *TabManager) Slots(ctx context.Context) (entity.SlotList, error) {
	if err := m.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots.Clone(), nil
}

// List reconciles against live tabs and returns a copy of the list.
func (m *TabManager) List(ctx context.Context) (entity.SlotList, error) {
	if err := m.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reconcileLocked(ctx)
	return m.slots.Clone(), nil
}

// Close stops pending debounced work.
func (m *TabManager) Close() {
	m.updates.Destroy()
}
