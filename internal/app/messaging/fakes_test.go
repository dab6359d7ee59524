package messaging

import (
	"context"
	"sync"
	"time"

	"github.com/reklai/harpoon-telescope/internal/application/port"
	"github.com/reklai/harpoon-telescope/internal/application/usecase"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

func testContext() context.Context {
	return logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))
}

func fastDelays() []time.Duration {
	return []time.Duration{0, time.Millisecond, 2 * time.Millisecond}
}

// browser fakes both the tabs API and the content scripts.
type browser struct {
	mu       sync.Mutex
	tabs     map[entity.TabID]entity.TabInfo
	order    []entity.TabID
	nextID   entity.TabID
	active   entity.TabID
	scroll   map[entity.TabID]entity.ScrollPosition
	deaf     map[entity.TabID]bool
	toasts   map[entity.TabID][]string
	prompted []entity.TabID
	// toastGate, when set, holds every Notify until it is closed.
	toastGate chan struct{}
}

func newBrowser() *browser {
	return &browser{
		tabs:   make(map[entity.TabID]entity.TabInfo),
		nextID: 10,
		scroll: make(map[entity.TabID]entity.ScrollPosition),
		deaf:   make(map[entity.TabID]bool),
		toasts: make(map[entity.TabID][]string),
	}
}

func (b *browser) open(url string, focus bool) entity.TabInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.openLocked(url, focus)
}

func (b *browser) openLocked(url string, focus bool) entity.TabInfo {
	b.nextID++
	tab := entity.TabInfo{ID: b.nextID, URL: url, Title: url}
	b.tabs[tab.ID] = tab
	b.order = append(b.order, tab.ID)
	if focus {
		b.active = tab.ID
	}
	return tab
}

func (b *browser) close(id entity.TabID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.tabs, id)
	for i, o := range b.order {
		if o == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	if b.active == id {
		b.active = entity.NoTab
	}
}

func (b *browser) toastsFor(id entity.TabID) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.toasts[id]...)
}

func (b *browser) QueryTabs(context.Context) ([]entity.TabInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entity.TabInfo, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.tabs[id])
	}
	return out, nil
}

func (b *browser) ActiveTab(context.Context) (*entity.TabInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.tabs[b.active]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (b *browser) CreateTab(_ context.Context, url string, active bool) (*entity.TabInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	tab := b.openLocked(url, active)
	return &tab, nil
}

func (b *browser) ActivateTab(_ context.Context, id entity.TabID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.tabs[id]; !ok {
		return port.ErrTabNotFound
	}
	b.active = id
	return nil
}

func (b *browser) GetScrollPosition(_ context.Context, id entity.TabID) (entity.ScrollPosition, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.deaf[id] {
		return entity.ScrollPosition{}, port.ErrNoListener
	}
	return b.scroll[id], nil
}

func (b *browser) SetScrollPosition(_ context.Context, id entity.TabID, pos entity.ScrollPosition) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.deaf[id] {
		return port.ErrNoListener
	}
	b.scroll[id] = pos
	return nil
}

func (b *browser) Notify(ctx context.Context, id entity.TabID, message string, _ port.NotificationType) error {
	b.mu.Lock()
	gate := b.toastGate
	b.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.tabs[id]; !ok {
		return port.ErrTabNotFound
	}
	if b.deaf[id] {
		return port.ErrNoListener
	}
	b.toasts[id] = append(b.toasts[id], message)
	return nil
}

func (b *browser) ShowSessionRestorePrompt(_ context.Context, id entity.TabID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prompted = append(b.prompted, id)
	return nil
}

type memSlots struct {
	mu    sync.Mutex
	slots entity.SlotList
}

func (r *memSlots) LoadSlots(context.Context) (entity.SlotList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slots.Clone(), nil
}

func (r *memSlots) SaveSlots(_ context.Context, slots entity.SlotList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots = slots.Clone()
	return nil
}

type memSessions struct {
	mu       sync.Mutex
	sessions entity.SessionList
}

func (r *memSessions) LoadSessions(context.Context) (entity.SessionList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions.Clone(), nil
}

func (r *memSessions) SaveSessions(_ context.Context, sessions entity.SessionList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = sessions.Clone()
	return nil
}

// fixture wires a router over real use cases.
type fixture struct {
	ctx       context.Context
	browser   *browser
	restorer  *usecase.ScrollRestorer
	tabs      *usecase.TabManager
	sessions  *usecase.SessionStore
	lifecycle *usecase.LifecycleReconciler
	router    *Router
}

func newFixture(opts ...RouterOption) *fixture {
	ctx := testContext()
	b := newBrowser()
	restorer := usecase.NewScrollRestorer(ctx, b, usecase.WithRetryDelays(fastDelays))
	tabs := usecase.NewTabManager(&memSlots{}, b, b, restorer, usecase.TabManagerOptions{
		UpdateDebounce: func() time.Duration { return time.Millisecond },
	})
	sessions := usecase.NewSessionStore(&memSessions{}, tabs, b, restorer)
	lifecycle := usecase.NewLifecycleReconciler(ctx, sessions, tabs, b, b, func() usecase.LifecycleTimings {
		return usecase.LifecycleTimings{InitialDelay: time.Millisecond, Attempts: 2, Interval: time.Millisecond}
	}, nil)

	router := NewRouter(ctx, Services{
		Slots:     tabs,
		Sessions:  sessions,
		Scrolls:   restorer,
		Lifecycle: lifecycle,
		Host:      b,
		Notifier:  NewNotifier(b, fastDelays, nil),
	}, opts...)

	return &fixture{
		ctx:       ctx,
		browser:   b,
		restorer:  restorer,
		tabs:      tabs,
		sessions:  sessions,
		lifecycle: lifecycle,
		router:    router,
	}
}

func (f *fixture) send(raw string) *Response {
	return f.router.Handle(f.ctx, []byte(raw))
}

func (f *fixture) wait() {
	f.router.Wait()
	f.restorer.Wait()
	f.lifecycle.Wait()
}
