package styles

import (
	"fmt"
	"strings"

	"github.com/reklai/harpoon-telescope/internal/domain/entity"
)

// SessionsCLIRenderer renders `harpoon sessions` output.
type SessionsCLIRenderer struct {
	theme *Theme
}

// NewSessionsCLIRenderer creates a new sessions renderer with the given theme.
func NewSessionsCLIRenderer(theme *Theme) *SessionsCLIRenderer {
	return &SessionsCLIRenderer{theme: theme}
}

func (r *SessionsCLIRenderer) RenderEmptyList() string {
	return r.theme.Subtle.Render("No saved sessions found.")
}

func (r *SessionsCLIRenderer) RenderList(sessions entity.SessionList) string {
	if len(sessions) == 0 {
		return r.RenderEmptyList()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s %s\n\n",
		r.theme.Highlight.Render(IconSessionStack),
		r.theme.Title.Render("Sessions"),
		r.theme.Subtle.Render(fmt.Sprintf("(%d/%d)", len(sessions), entity.MaxSessions)),
	))
	for _, s := range sessions {
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			r.theme.Highlight.Render(s.Name),
			r.theme.MutedBadge(pluralize(len(s.Entries), "tab")),
			r.theme.Subtle.Render(RelativeTime(s.SavedAt)),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *SessionsCLIRenderer) RenderSession(s *entity.Session) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s  %s %s\n\n",
		r.theme.Highlight.Render(IconSessionStack),
		r.theme.Title.Render(s.Name),
		r.theme.Subtle.Render(IconClock),
		r.theme.Subtle.Render(s.SavedAt.Local().Format("2006-01-02 15:04")),
	))
	for i, e := range s.Entries {
		title := e.Title
		if title == "" {
			title = e.URL
		}
		line := fmt.Sprintf("%s %s  %s",
			r.theme.AccentBadge(fmt.Sprintf("%d", i+1)),
			r.theme.Normal.Render(truncate(title, maxURLWidth)),
			r.theme.Subtle.Render(truncate(e.URL, maxURLWidth)),
		)
		if e.ScrollY > 0 || e.ScrollX > 0 {
			line += "  " + r.theme.MutedBadge(fmt.Sprintf("scroll %.0f,%.0f", e.ScrollX, e.ScrollY))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderPlan renders what loading a session would do to the current slots.
func (r *SessionsCLIRenderer) RenderPlan(plan *entity.LoadPlan) string {
	t := r.theme
	var b strings.Builder
	b.WriteString(t.Subtitle.Render("Load preview"))
	b.WriteString("\n")
	if plan.IsNoop() {
		b.WriteString(t.SuccessStyle.Render(IconCheck + " matches the current slots"))
		return b.String()
	}
	for _, step := range plan.Steps {
		var mark string
		url := step.SessionURL
		switch step.Op {
		case entity.PlanAdded:
			mark = t.SuccessStyle.Render(string(step.Op))
		case entity.PlanRemoved:
			mark = t.ErrorStyle.Render(string(step.Op))
			url = step.CurrentURL
		case entity.PlanReplaced:
			mark = t.WarningStyle.Render(string(step.Op))
		default:
			mark = t.Subtle.Render(string(step.Op))
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			mark,
			t.AccentBadge(fmt.Sprintf("%d", step.Slot)),
			t.Normal.Render(truncate(url, maxURLWidth)),
		))
	}
	b.WriteString(t.Subtle.Render(fmt.Sprintf("+%d ~%d -%d =%d",
		plan.Count(entity.PlanAdded),
		plan.Count(entity.PlanReplaced),
		plan.Count(entity.PlanRemoved),
		plan.Count(entity.PlanUnchanged),
	)))
	return b.String()
}

func (r *SessionsCLIRenderer) RenderDeleted(name string) string {
	return fmt.Sprintf("%s Session %s deleted.",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(name),
	)
}

func (r *SessionsCLIRenderer) RenderRenamed(oldName, newName string) string {
	return fmt.Sprintf("%s Session %s renamed to %s.",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Subtle.Render(oldName),
		r.theme.Highlight.Render(newName),
	)
}

func (r *SessionsCLIRenderer) RenderError(err error) string {
	return fmt.Sprintf("%s %v", r.theme.ErrorStyle.Render(IconX), err)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
