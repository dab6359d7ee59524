package usecase

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/reklai/harpoon-telescope/internal/domain/entity"
)

// Any interleaving of user operations and out-of-band tab churn keeps the
// slot list dense, capped and free of duplicate open tabs.
func TestTabManager_InvariantsHoldUnderRandomOperations(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := newHarness()
		urls := []string{"https://a.test", "https://b.test", "https://c.test", "https://d.test", "https://e.test", "https://f.test"}

		check := func(op string) {
			slots, err := h.tabs.Slots(h.ctx)
			if err != nil {
				t.Fatalf("%s: %v", op, err)
			}
			if err := slots.Validate(); err != nil {
				t.Fatalf("%s: %v (%+v)", op, err, slots)
			}
			if err := h.slotRepo.stored().Validate(); err != nil {
				t.Fatalf("%s: stored list: %v", op, err)
			}
		}

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := range steps {
			op := rapid.SampledFrom([]string{"open", "add", "close", "close-silent", "remove", "jump", "cycle", "reconcile", "reorder", "fail-url"}).Draw(t, "op")
			label := fmt.Sprintf("step %d %s", i, op)

			switch op {
			case "open":
				tab := h.host.open(rapid.SampledFrom(urls).Draw(t, "url"))
				h.host.focus(tab.ID)
			case "add":
				tabs, _ := h.host.QueryTabs(h.ctx)
				if len(tabs) == 0 {
					continue
				}
				tab := rapid.SampledFrom(tabs).Draw(t, "tab")
				if _, err := h.tabs.Add(h.ctx, tab); err != nil {
					t.Fatalf("%s: %v", label, err)
				}
			case "close", "close-silent":
				tabs, _ := h.host.QueryTabs(h.ctx)
				if len(tabs) == 0 {
					continue
				}
				tab := rapid.SampledFrom(tabs).Draw(t, "victim")
				h.host.close(tab.ID)
				if op == "close" {
					h.tabs.OnTabClosed(h.ctx, tab.ID)
				}
			case "remove":
				slots, _ := h.tabs.Slots(h.ctx)
				if len(slots) == 0 {
					continue
				}
				e := rapid.SampledFrom(slots).Draw(t, "entry")
				if _, err := h.tabs.Remove(h.ctx, e.TabID); err != nil {
					t.Fatalf("%s: %v", label, err)
				}
			case "jump":
				n := rapid.IntRange(0, entity.MaxSlots+1).Draw(t, "slot")
				if _, err := h.tabs.Jump(h.ctx, n); err != nil {
					t.Fatalf("%s: %v", label, err)
				}
			case "cycle":
				dir := rapid.SampledFrom([]entity.Direction{entity.DirectionNext, entity.DirectionPrev}).Draw(t, "dir")
				if _, err := h.tabs.Cycle(h.ctx, dir); err != nil {
					t.Fatalf("%s: %v", label, err)
				}
			case "reconcile":
				if _, err := h.tabs.Reconcile(h.ctx); err != nil {
					t.Fatalf("%s: %v", label, err)
				}
			case "reorder":
				slots, _ := h.tabs.Slots(h.ctx)
				perm := rapid.Permutation(slots).Draw(t, "perm")
				if err := h.tabs.Reorder(h.ctx, perm); err != nil {
					t.Fatalf("%s: %v", label, err)
				}
			case "fail-url":
				h.host.mu.Lock()
				h.host.failURLs[rapid.SampledFrom(urls).Draw(t, "bad")] = true
				h.host.mu.Unlock()
			}
			check(label)
		}
		h.restorer.Wait()
	})
}
