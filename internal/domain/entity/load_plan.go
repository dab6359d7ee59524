package entity

import domainurl "github.com/reklai/harpoon-telescope/internal/domain/url"

// PlanOp classifies one slot position in a session load preview.
type PlanOp string

const (
	PlanUnchanged PlanOp = "="
	PlanAdded     PlanOp = "+"
	PlanRemoved   PlanOp = "-"
	PlanReplaced  PlanOp = "~"
)

// PlanStep is the outcome for one slot position.
type PlanStep struct {
	Slot       int    `json:"slot"`
	Op         PlanOp `json:"op"`
	CurrentURL string `json:"current_url,omitempty"`
	SessionURL string `json:"session_url,omitempty"`
	Title      string `json:"title,omitempty"`
}

// LoadPlan previews what loading a session would do to the current slots.
type LoadPlan struct {
	Session string     `json:"session"`
	Steps   []PlanStep `json:"steps"`
}

// BuildLoadPlan compares session entries with the current slots position by
// position. It does not look at tab identity, only at canonical URLs.
func BuildLoadPlan(session *Session, current SlotList) *LoadPlan {
	plan := &LoadPlan{Session: session.Name}
	n := max(len(session.Entries), len(current))
	for i := range n {
		step := PlanStep{Slot: i + 1}
		hasSession := i < len(session.Entries)
		hasCurrent := i < len(current)
		if hasSession {
			step.SessionURL = session.Entries[i].URL
			step.Title = session.Entries[i].Title
		}
		if hasCurrent {
			step.CurrentURL = current[i].URL
			if step.Title == "" {
				step.Title = current[i].Title
			}
		}
		switch {
		case hasSession && !hasCurrent:
			step.Op = PlanAdded
		case !hasSession && hasCurrent:
			step.Op = PlanRemoved
		case domainurl.SameDocument(step.SessionURL, step.CurrentURL):
			step.Op = PlanUnchanged
		default:
			step.Op = PlanReplaced
		}
		plan.Steps = append(plan.Steps, step)
	}
	return plan
}

// Count returns how many steps carry op.
func (p *LoadPlan) Count(op PlanOp) int {
	n := 0
	for _, s := range p.Steps {
		if s.Op == op {
			n++
		}
	}
	return n
}

// IsNoop reports whether loading would leave the slot URLs untouched.
func (p *LoadPlan) IsNoop() bool {
	return p.Count(PlanUnchanged) == len(p.Steps)
}
