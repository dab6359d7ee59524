package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/reklai/harpoon-telescope/internal/domain/entity"
)

const maxURLWidth = 60

// SlotsCLIRenderer renders `harpoon slots` output.
type SlotsCLIRenderer struct {
	theme *Theme
}

// NewSlotsCLIRenderer creates a new slots renderer with the given theme.
func NewSlotsCLIRenderer(theme *Theme) *SlotsCLIRenderer {
	return &SlotsCLIRenderer{theme: theme}
}

func (r *SlotsCLIRenderer) RenderList(slots entity.SlotList) string {
	if len(slots) == 0 {
		return r.theme.Subtle.Render("No pinned slots.")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s %s\n\n",
		r.theme.Highlight.Render(IconAnchor),
		r.theme.Title.Render("Slots"),
		r.theme.Subtle.Render(fmt.Sprintf("(%d/%d)", len(slots), entity.MaxSlots)),
	))
	for _, e := range slots {
		b.WriteString(r.renderOne(e))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderSavedAt renders the footer naming when the list was last written.
func (r *SlotsCLIRenderer) RenderSavedAt(at time.Time) string {
	return r.theme.Subtle.Render(fmt.Sprintf("%s last saved %s", IconClock, RelativeTime(at)))
}

func (r *SlotsCLIRenderer) renderOne(e entity.SlotEntry) string {
	state := r.theme.SuccessStyle.Render(IconOpen)
	if e.Closed {
		state = r.theme.Subtle.Render(IconClosed)
	}

	title := e.Title
	if title == "" {
		title = e.URL
	}
	line := fmt.Sprintf("%s %s %s  %s",
		r.theme.AccentBadge(fmt.Sprintf("%d", e.Slot)),
		state,
		r.theme.Normal.Render(truncate(title, maxURLWidth)),
		r.theme.Subtle.Render(truncate(e.URL, maxURLWidth)),
	)
	if e.ScrollY > 0 || e.ScrollX > 0 {
		line += "  " + r.theme.MutedBadge(fmt.Sprintf("scroll %.0f,%.0f", e.ScrollX, e.ScrollY))
	}
	return line
}

func (r *SlotsCLIRenderer) RenderRemoved(n int) string {
	return fmt.Sprintf("%s Slot %s removed.", r.theme.SuccessStyle.Render(IconCheck), r.theme.Highlight.Render(fmt.Sprintf("%d", n)))
}

func (r *SlotsCLIRenderer) RenderCleared() string {
	return fmt.Sprintf("%s All slots cleared.", r.theme.SuccessStyle.Render(IconTrash))
}

func (r *SlotsCLIRenderer) RenderError(err error) string {
	return fmt.Sprintf("%s %v", r.theme.ErrorStyle.Render(IconX), err)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
