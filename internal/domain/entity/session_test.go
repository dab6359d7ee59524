package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_OrdersBySlotAndDropsTabState(t *testing.T) {
	slots := SlotList{
		{TabID: 2, URL: "https://b.test", Title: "B", Slot: 2, ScrollY: 40},
		{TabID: 1, URL: "https://a.test", Title: "A", Slot: 1, Closed: true},
	}
	savedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))

	s := NewSession("  Work ", slots, savedAt)

	assert.Equal(t, "Work", s.Name)
	require.Len(t, s.Entries, 2)
	assert.Equal(t, "https://a.test", s.Entries[0].URL)
	assert.Equal(t, SessionEntry{URL: "https://b.test", Title: "B", ScrollY: 40}, s.Entries[1])
	assert.Equal(t, time.UTC, s.SavedAt.Location())
	require.NoError(t, s.Validate())
}

func TestSession_Validate(t *testing.T) {
	now := time.Now()
	entries := []SessionEntry{{URL: "https://a.test"}}

	assert.ErrorIs(t, (*Session)(nil).Validate(), ErrInvalidSession)
	assert.ErrorIs(t, (&Session{Name: " ", Entries: entries, SavedAt: now}).Validate(), ErrEmptyName)
	assert.ErrorIs(t, (&Session{Name: "x", SavedAt: now}).Validate(), ErrInvalidSession)
	assert.ErrorIs(t, (&Session{Name: "x", Entries: entries}).Validate(), ErrInvalidSession)
}

func TestSessionList_IndexIsCaseInsensitive(t *testing.T) {
	list := SessionList{{Name: "Work"}, {Name: "Reading"}}

	assert.Equal(t, 0, list.Index("work"))
	assert.Equal(t, 1, list.Index(" READING "))
	assert.Equal(t, -1, list.Index("play"))
}

func TestSessionList_SortedByRecent(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	list := SessionList{
		{Name: "old", SavedAt: base},
		{Name: "new", SavedAt: base.Add(2 * time.Hour)},
		{Name: "mid", SavedAt: base.Add(time.Hour)},
	}

	sorted := list.SortedByRecent()

	assert.Equal(t, "new", sorted[0].Name)
	assert.Equal(t, "mid", sorted[1].Name)
	assert.Equal(t, "old", sorted[2].Name)
	assert.Equal(t, "old", list[0].Name, "source list untouched")
}
