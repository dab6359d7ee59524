package entity

import (
	"errors"
	"fmt"
)

// MaxSlots is the number of pinned slots a user can hold.
const MaxSlots = 4

// SlotEntry is one pinned tab.
// A closed entry keeps its slot and can be revived by Add or Jump.
type SlotEntry struct {
	TabID   TabID   `json:"tab_id"`
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	ScrollX float64 `json:"scroll_x"`
	ScrollY float64 `json:"scroll_y"`
	Slot    int     `json:"slot"` // 1-based, dense
	Closed  bool    `json:"closed"`
}

// Scroll returns the stored scroll offset.
func (e *SlotEntry) Scroll() ScrollPosition {
	return ScrollPosition{X: e.ScrollX, Y: e.ScrollY}
}

// SetScroll stores a scroll offset.
func (e *SlotEntry) SetScroll(pos ScrollPosition) {
	e.ScrollX = pos.X
	e.ScrollY = pos.Y
}

// IsOpen reports whether the entry is mapped to a live tab.
func (e *SlotEntry) IsOpen() bool {
	return !e.Closed && e.TabID != NoTab
}

// SlotList is the ordered list of pinned slots.
type SlotList []SlotEntry

// ErrInvalidSlotList is returned by Validate when an invariant is broken.
var ErrInvalidSlotList = errors.New("invalid slot list")

// Clone returns a deep copy.
func (l SlotList) Clone() SlotList {
	if l == nil {
		return SlotList{}
	}
	out := make(SlotList, len(l))
	copy(out, l)
	return out
}

// Renumber rewrites slot numbers to 1..N in list order.
// Returns true if any slot number changed.
func (l SlotList) Renumber() bool {
	changed := false
	for i := range l {
		if l[i].Slot != i+1 {
			l[i].Slot = i + 1
			changed = true
		}
	}
	return changed
}

// IndexOfSlot returns the index of the entry holding slot n, or -1.
func (l SlotList) IndexOfSlot(n int) int {
	for i := range l {
		if l[i].Slot == n {
			return i
		}
	}
	return -1
}

// IndexOfOpenTab returns the index of the non-closed entry mapped to id, or -1.
func (l SlotList) IndexOfOpenTab(id TabID) int {
	if id == NoTab {
		return -1
	}
	for i := range l {
		if !l[i].Closed && l[i].TabID == id {
			return i
		}
	}
	return -1
}

// IndexOfTab returns the index of any entry (open or closed) mapped to id, or -1.
func (l SlotList) IndexOfTab(id TabID) int {
	if id == NoTab {
		return -1
	}
	for i := range l {
		if l[i].TabID == id {
			return i
		}
	}
	return -1
}

// IndexFunc returns the first index satisfying fn, or -1.
func (l SlotList) IndexFunc(fn func(*SlotEntry) bool) int {
	for i := range l {
		if fn(&l[i]) {
			return i
		}
	}
	return -1
}

// RemoveAt deletes the entry at index i and renumbers the rest.
func (l SlotList) RemoveAt(i int) SlotList {
	if i < 0 || i >= len(l) {
		return l
	}
	out := append(l[:i:i], l[i+1:]...)
	out.Renumber()
	return out
}

// Sanitize enforces the list invariants on data of unknown provenance
// (persisted state, UI reorder payloads): at most MaxSlots entries, no two
// open entries sharing a tab, dense slot numbers.
func (l SlotList) Sanitize() SlotList {
	out := make(SlotList, 0, min(len(l), MaxSlots))
	seen := make(map[TabID]bool, len(l))
	for _, e := range l {
		if len(out) == MaxSlots {
			break
		}
		if e.URL == "" {
			continue
		}
		if e.TabID == NoTab {
			e.Closed = true
		}
		if !e.Closed {
			if seen[e.TabID] {
				e.Closed = true
			} else {
				seen[e.TabID] = true
			}
		}
		out = append(out, e)
	}
	out.Renumber()
	return out
}

// Validate checks the list invariants.
func (l SlotList) Validate() error {
	if len(l) > MaxSlots {
		return fmt.Errorf("%w: %d entries exceeds max %d", ErrInvalidSlotList, len(l), MaxSlots)
	}
	open := make(map[TabID]int, len(l))
	for i, e := range l {
		if e.Slot != i+1 {
			return fmt.Errorf("%w: entry %d has slot %d", ErrInvalidSlotList, i, e.Slot)
		}
		if e.Closed {
			continue
		}
		if prev, dup := open[e.TabID]; dup {
			return fmt.Errorf("%w: slots %d and %d share tab %d", ErrInvalidSlotList, prev, e.Slot, e.TabID)
		}
		open[e.TabID] = e.Slot
	}
	return nil
}
