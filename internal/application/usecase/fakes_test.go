package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/reklai/harpoon-telescope/internal/application/port"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

var fastDelays = func() []time.Duration {
	return []time.Duration{0, time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}
}

// fakeHost is an in-memory browser window.
type fakeHost struct {
	mu        sync.Mutex
	tabs      map[entity.TabID]entity.TabInfo
	order     []entity.TabID
	nextID    entity.TabID
	active    entity.TabID
	failURLs  map[string]bool
	queryErr  error
	created   []string
	activated []entity.TabID
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		tabs:     make(map[entity.TabID]entity.TabInfo),
		nextID:   100,
		failURLs: make(map[string]bool),
	}
}

func (h *fakeHost) open(url string) entity.TabInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.openLocked(url)
}

func (h *fakeHost) openLocked(url string) entity.TabInfo {
	h.nextID++
	tab := entity.TabInfo{ID: h.nextID, URL: url, Title: "title of " + url}
	h.tabs[tab.ID] = tab
	h.order = append(h.order, tab.ID)
	return tab
}

func (h *fakeHost) close(id entity.TabID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.tabs, id)
	for i, o := range h.order {
		if o == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	if h.active == id {
		h.active = entity.NoTab
	}
}

func (h *fakeHost) focus(id entity.TabID) {
	h.mu.Lock()
	h.active = id
	h.mu.Unlock()
}

func (h *fakeHost) QueryTabs(context.Context) ([]entity.TabInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.queryErr != nil {
		return nil, h.queryErr
	}
	out := make([]entity.TabInfo, 0, len(h.order))
	for _, id := range h.order {
		t := h.tabs[id]
		t.Active = id == h.active
		out = append(out, t)
	}
	return out, nil
}

func (h *fakeHost) ActiveTab(context.Context) (*entity.TabInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.tabs[h.active]
	if !ok {
		return nil, nil
	}
	t.Active = true
	return &t, nil
}

func (h *fakeHost) CreateTab(_ context.Context, url string, active bool) (*entity.TabInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failURLs[url] {
		return nil, errors.New("disallowed url")
	}
	tab := h.openLocked(url)
	h.created = append(h.created, url)
	if active {
		h.active = tab.ID
	}
	return &tab, nil
}

func (h *fakeHost) ActivateTab(_ context.Context, id entity.TabID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.tabs[id]; !ok {
		return port.ErrTabNotFound
	}
	h.active = id
	h.activated = append(h.activated, id)
	return nil
}

type scrollCall struct {
	tab entity.TabID
	pos entity.ScrollPosition
}

// fakeMessenger stands in for content scripts. Tabs listed in silent have
// no listener.
type fakeMessenger struct {
	mu          sync.Mutex
	scroll      map[entity.TabID]entity.ScrollPosition
	silent      map[entity.TabID]bool
	setFailures int
	delivered   []scrollCall
	toasts      []string
	prompts     []entity.TabID
	promptFails int
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{
		scroll: make(map[entity.TabID]entity.ScrollPosition),
		silent: make(map[entity.TabID]bool),
	}
}

func (f *fakeMessenger) setScroll(id entity.TabID, pos entity.ScrollPosition) {
	f.mu.Lock()
	f.scroll[id] = pos
	f.mu.Unlock()
}

func (f *fakeMessenger) deliveries() []scrollCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]scrollCall(nil), f.delivered...)
}

func (f *fakeMessenger) GetScrollPosition(_ context.Context, id entity.TabID) (entity.ScrollPosition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.silent[id] {
		return entity.ScrollPosition{}, port.ErrNoListener
	}
	return f.scroll[id], nil
}

func (f *fakeMessenger) SetScrollPosition(_ context.Context, id entity.TabID, pos entity.ScrollPosition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.silent[id] {
		return port.ErrNoListener
	}
	if f.setFailures > 0 {
		f.setFailures--
		return port.ErrNoListener
	}
	f.scroll[id] = pos
	f.delivered = append(f.delivered, scrollCall{tab: id, pos: pos})
	return nil
}

func (f *fakeMessenger) Notify(_ context.Context, id entity.TabID, message string, _ port.NotificationType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.silent[id] {
		return port.ErrNoListener
	}
	f.toasts = append(f.toasts, message)
	return nil
}

func (f *fakeMessenger) ShowSessionRestorePrompt(_ context.Context, id entity.TabID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.promptFails > 0 {
		f.promptFails--
		return port.ErrNoListener
	}
	f.prompts = append(f.prompts, id)
	return nil
}

func (f *fakeMessenger) promptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// memSlotRepo and memSessionRepo keep what was last saved.
type memSlotRepo struct {
	mu    sync.Mutex
	slots entity.SlotList
	loads int
	saves int
}

func (r *memSlotRepo) LoadSlots(context.Context) (entity.SlotList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	return r.slots.Clone(), nil
}

func (r *memSlotRepo) SaveSlots(_ context.Context, slots entity.SlotList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.slots = slots.Clone()
	return nil
}

func (r *memSlotRepo) stored() entity.SlotList {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slots.Clone()
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions entity.SessionList
}

func (r *memSessionRepo) LoadSessions(context.Context) (entity.SessionList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions.Clone(), nil
}

func (r *memSessionRepo) SaveSessions(_ context.Context, sessions entity.SessionList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = sessions.Clone()
	return nil
}

type harness struct {
	ctx       context.Context
	host      *fakeHost
	messenger *fakeMessenger
	slotRepo  *memSlotRepo
	restorer  *ScrollRestorer
	tabs      *TabManager
}

func newHarness() *harness {
	ctx := testContext()
	h := &harness{
		ctx:       ctx,
		host:      newFakeHost(),
		messenger: newFakeMessenger(),
		slotRepo:  &memSlotRepo{},
	}
	h.restorer = NewScrollRestorer(ctx, h.messenger, WithRetryDelays(fastDelays))
	h.tabs = NewTabManager(h.slotRepo, h.host, h.messenger, h.restorer, TabManagerOptions{
		UpdateDebounce: func() time.Duration { return 5 * time.Millisecond },
	})
	return h
}

// pin opens url, focuses it and adds it.
func (h *harness) pin(url string) entity.TabInfo {
	tab := h.host.open(url)
	h.host.focus(tab.ID)
	if _, err := h.tabs.Add(h.ctx, tab); err != nil {
		panic(err)
	}
	return tab
}
