package entity

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// MaxSessions is the number of named sessions that can be stored.
const MaxSessions = 4

// SessionEntry is the portable part of a slot: tab ids and the closed flag
// are meaningless after a restart and are not saved.
type SessionEntry struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	ScrollX float64 `json:"scroll_x"`
	ScrollY float64 `json:"scroll_y"`
}

// Scroll returns the saved scroll offset.
func (e SessionEntry) Scroll() ScrollPosition {
	return ScrollPosition{X: e.ScrollX, Y: e.ScrollY}
}

// Session is a named snapshot of the slot list.
type Session struct {
	Name    string         `json:"name"`
	Entries []SessionEntry `json:"entries"`
	SavedAt time.Time      `json:"saved_at"`
}

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrEmptyName      = errors.New("session name cannot be empty")
)

// NormalizeSessionName trims surrounding whitespace from a user-entered name.
func NormalizeSessionName(name string) string {
	return strings.TrimSpace(name)
}

// SameSessionName compares names case-insensitively.
func SameSessionName(a, b string) bool {
	return strings.EqualFold(NormalizeSessionName(a), NormalizeSessionName(b))
}

// NewSession snapshots slots in slot order.
func NewSession(name string, slots SlotList, savedAt time.Time) *Session {
	return &Session{
		Name:    NormalizeSessionName(name),
		Entries: SessionEntriesFromSlots(slots),
		SavedAt: savedAt.UTC(),
	}
}

// SessionEntriesFromSlots converts the live list into portable entries.
func SessionEntriesFromSlots(slots SlotList) []SessionEntry {
	ordered := slots.Clone()
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Slot < ordered[j].Slot })

	entries := make([]SessionEntry, 0, len(ordered))
	for _, s := range ordered {
		entries = append(entries, SessionEntry{
			URL:     s.URL,
			Title:   s.Title,
			ScrollX: s.ScrollX,
			ScrollY: s.ScrollY,
		})
	}
	return entries
}

// Validate checks that the session can be stored.
func (s *Session) Validate() error {
	if s == nil {
		return ErrInvalidSession
	}
	if NormalizeSessionName(s.Name) == "" {
		return ErrEmptyName
	}
	if len(s.Entries) == 0 || len(s.Entries) > MaxSlots {
		return ErrInvalidSession
	}
	if s.SavedAt.IsZero() {
		return ErrInvalidSession
	}
	return nil
}

// SessionList is the persisted set of named sessions.
type SessionList []Session

// Index returns the position of the session named name (case-insensitive), or -1.
func (l SessionList) Index(name string) int {
	for i := range l {
		if SameSessionName(l[i].Name, name) {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy.
func (l SessionList) Clone() SessionList {
	out := make(SessionList, len(l))
	for i, s := range l {
		s.Entries = append([]SessionEntry(nil), s.Entries...)
		out[i] = s
	}
	return out
}

// SortedByRecent returns a copy ordered most-recently-saved first.
func (l SessionList) SortedByRecent() SessionList {
	out := l.Clone()
	sort.SliceStable(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out
}
