package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/reklai/harpoon-telescope/internal/application/port"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
	"github.com/reklai/harpoon-telescope/internal/domain/repository"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

// SlotAccessor is the view of the live slot list the session store works
// through. TabManager implements it.
type SlotAccessor interface {
	Slots(ctx context.Context) (entity.SlotList, error)
	ReplaceAll(ctx context.Context, list entity.SlotList) error
}

var _ SlotAccessor = (*TabManager)(nil)

// LoadResult reports what loading a session did.
type LoadResult struct {
	Session string           `json:"session"`
	Opened  int              `json:"opened"`
	Skipped int              `json:"skipped"`
	Plan    *entity.LoadPlan `json:"plan,omitempty"`
}

// SessionStore saves and restores named snapshots of the slot list.
// It is the only writer of the sessions key.
type SessionStore struct {
	repo     repository.SessionRepository
	slots    SlotAccessor
	host     port.TabHost
	restorer *ScrollRestorer
	now      func() time.Time

	mu       sync.Mutex
	loaded   bool
	sessions entity.SessionList
}

// NewSessionStore creates a new session store backed by repo.
func NewSessionStore(
	repo repository.SessionRepository,
	slots SlotAccessor,
	host port.TabHost,
	restorer *ScrollRestorer,
) *SessionStore {
	return &SessionStore{
		repo:     repo,
		slots:    slots,
		host:     host,
		restorer: restorer,
		now:      time.Now,
	}
}

func (s *SessionStore) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	stored, err := s.repo.LoadSessions(ctx)
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	if len(stored) > entity.MaxSessions {
		logging.FromContext(ctx).Warn().Int("stored", len(stored)).Msg("too many stored sessions, keeping the first ones")
		stored = stored[:entity.MaxSessions]
	}
	s.sessions = stored.Clone()
	s.loaded = true
	return nil
}

// commitLocked persists next and installs it only once the write succeeded.
func (s *SessionStore) commitLocked(ctx context.Context, next entity.SessionList) error {
	if err := s.repo.SaveSessions(ctx, next); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	s.sessions = next
	return nil
}

func (s *SessionStore) currentSlots(ctx context.Context) (entity.SlotList, error) {
	slots, err := s.slots.Slots(ctx)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrEmptySlots
	}
	return slots, nil
}

// Save snapshots the current slots under a new name.
func (s *SessionStore) Save(ctx context.Context, name string) (*entity.Session, error) {
	name = entity.NormalizeSessionName(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	slots, err := s.currentSlots(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	if s.sessions.Index(name) >= 0 {
		return nil, ErrSessionExists
	}
	if len(s.sessions) >= entity.MaxSessions {
		return nil, ErrSessionsFull
	}

	session := entity.NewSession(name, slots, s.now())
	next := append(s.sessions.Clone(), *session)
	if err := s.commitLocked(ctx, next); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info().Str("session", name).Int("entries", len(session.Entries)).Msg("session saved")
	return session, nil
}

// List returns every session in storage order.
func (s *SessionStore) List(ctx context.Context) (entity.SessionList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return s.sessions.Clone(), nil
}

// ListSorted returns every session, most recently saved first.
func (s *SessionStore) ListSorted(ctx context.Context) (entity.SessionList, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return list.SortedByRecent(), nil
}

// HasSessions reports whether anything is saved.
func (s *SessionStore) HasSessions(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return false, err
	}
	return len(s.sessions) > 0, nil
}

// Get returns a copy of the named session.
func (s *SessionStore) Get(ctx context.Context, name string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	idx := s.sessions.Index(name)
	if idx < 0 {
		return nil, ErrSessionNotFound
	}
	session := s.sessions.Clone()[idx]
	return &session, nil
}

// LoadPlan previews loading name against the current slots. It mutates nothing.
func (s *SessionStore) LoadPlan(ctx context.Context, name string) (*entity.LoadPlan, error) {
	session, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	current, err := s.slots.Slots(ctx)
	if err != nil {
		return nil, err
	}
	return entity.BuildLoadPlan(session, current), nil
}

// Load replaces the slot list with fresh tabs for every entry of name.
// Entries whose tab cannot be created are skipped.
func (s *SessionStore) Load(ctx context.Context, name string) (*LoadResult, error) {
	log := logging.FromContext(ctx)

	session, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	current, err := s.slots.Slots(ctx)
	if err != nil {
		return nil, err
	}
	result := &LoadResult{
		Session: session.Name,
		Plan:    entity.BuildLoadPlan(session, current),
	}

	list := make(entity.SlotList, 0, len(session.Entries))
	for _, e := range session.Entries {
		tab, err := s.host.CreateTab(ctx, e.URL, false)
		if err != nil || tab == nil {
			log.Warn().Err(err).Str("url", e.URL).Msg("skipping session entry, tab could not be opened")
			result.Skipped++
			continue
		}
		list = append(list, entity.SlotEntry{
			TabID:   tab.ID,
			URL:     e.URL,
			Title:   e.Title,
			ScrollX: e.ScrollX,
			ScrollY: e.ScrollY,
		})
	}
	list = list.Sanitize()
	result.Opened = len(list)

	if err := s.slots.ReplaceAll(ctx, list); err != nil {
		return nil, err
	}

	for _, e := range list {
		if s.restorer != nil && !e.Scroll().IsZero() {
			s.restorer.Schedule(ctx, e.TabID, e.Scroll())
		}
	}
	if len(list) > 0 {
		if err := s.host.ActivateTab(ctx, list[0].TabID); err != nil {
			log.Debug().Err(err).Msg("failed to focus first session tab")
		}
	}

	log.Info().
		Str("session", session.Name).
		Int("opened", result.Opened).
		Int("skipped", result.Skipped).
		Msg("session loaded")
	return result, nil
}

// Update overwrites an existing session with the current slots.
func (s *SessionStore) Update(ctx context.Context, name string) (*entity.Session, error) {
	slots, err := s.currentSlots(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	idx := s.sessions.Index(name)
	if idx < 0 {
		return nil, ErrSessionNotFound
	}

	next := s.sessions.Clone()
	next[idx].Entries = entity.SessionEntriesFromSlots(slots)
	next[idx].SavedAt = s.now().UTC()
	if err := s.commitLocked(ctx, next); err != nil {
		return nil, err
	}
	updated := next.Clone()[idx]
	return &updated, nil
}

// Rename changes a session's name.
func (s *SessionStore) Rename(ctx context.Context, oldName, newName string) error {
	newName = entity.NormalizeSessionName(newName)
	if newName == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	idx := s.sessions.Index(oldName)
	if idx < 0 {
		return ErrSessionNotFound
	}
	if other := s.sessions.Index(newName); other >= 0 && other != idx {
		return ErrSessionExists
	}

	next := s.sessions.Clone()
	next[idx].Name = newName
	return s.commitLocked(ctx, next)
}

// Delete removes name. A missing name is not an error.
func (s *SessionStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	idx := s.sessions.Index(name)
	if idx < 0 {
		return nil
	}

	next := append(s.sessions[:idx:idx].Clone(), s.sessions[idx+1:].Clone()...)
	return s.commitLocked(ctx, next)
}

// Replace overwrites oldName with the current slots and renames it to
// newName. Any other session already called newName is dropped.
func (s *SessionStore) Replace(ctx context.Context, oldName, newName string) (*entity.Session, error) {
	newName = entity.NormalizeSessionName(newName)
	if newName == "" {
		return nil, ErrEmptyName
	}
	slots, err := s.currentSlots(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	idx := s.sessions.Index(oldName)
	if idx < 0 {
		return nil, ErrSessionNotFound
	}

	replaced := entity.NewSession(newName, slots, s.now())
	next := make(entity.SessionList, 0, len(s.sessions))
	for i, existing := range s.sessions.Clone() {
		switch {
		case i == idx:
			next = append(next, *replaced)
		case entity.SameSessionName(existing.Name, newName):
			continue
		default:
			next = append(next, existing)
		}
	}
	if err := s.commitLocked(ctx, next); err != nil {
		return nil, err
	}
	return replaced, nil
}
