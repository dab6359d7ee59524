package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/reklai/harpoon-telescope/internal/application/port"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

type namePayload struct {
	Name string `json:"name"`
}

type renamePayload struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

type reorderPayload struct {
	Slots entity.SlotList `json:"slots"`
}

func (r *Router) handleAddCurrentTab(ctx context.Context, _ json.RawMessage) (outcome, error) {
	active, err := r.svc.Host.ActiveTab(ctx)
	if err != nil {
		return outcome{}, err
	}
	if active == nil {
		return rejected("no active tab", nil), nil
	}
	return r.addTab(ctx, *active)
}

func (r *Router) addTab(ctx context.Context, tab entity.TabInfo) (outcome, error) {
	res, err := r.svc.Slots.Add(ctx, tab)
	if err != nil {
		return outcome{}, err
	}
	if !res.OK {
		return rejected(res.Reason, res), nil
	}
	if !res.AlreadyPresent {
		r.toast(ctx, res.TabID, fmt.Sprintf("Added to slot %d", res.Slot), port.NotificationSuccess)
	}
	return accepted(res), nil
}

func (r *Router) handleRemoveTab(ctx context.Context, payload json.RawMessage) (outcome, error) {
	var (
		removed bool
		err     error
	)
	if gjson.GetBytes(payload, "slot").Exists() {
		slot, perr := parseSlot(payload)
		if perr != nil {
			return outcome{}, perr
		}
		removed, err = r.svc.Slots.RemoveSlot(ctx, slot)
	} else {
		id, perr := parseTabID(payload, "tab_id")
		if perr != nil {
			return outcome{}, perr
		}
		removed, err = r.svc.Slots.Remove(ctx, id)
	}
	if err != nil {
		return outcome{}, err
	}
	return accepted(map[string]bool{"removed": removed}), nil
}

func (r *Router) handleListSlots(ctx context.Context, _ json.RawMessage) (outcome, error) {
	slots, err := r.svc.Slots.List(ctx)
	if err != nil {
		return outcome{}, err
	}
	r.metrics.SetSlots(len(slots))
	return accepted(slots), nil
}

func (r *Router) handleJumpToSlot(ctx context.Context, payload json.RawMessage) (outcome, error) {
	slot, err := parseSlot(payload)
	if err != nil {
		return outcome{}, err
	}
	return r.jump(ctx, slot)
}

func (r *Router) jump(ctx context.Context, slot int) (outcome, error) {
	res, err := r.svc.Slots.Jump(ctx, slot)
	if err != nil {
		return outcome{}, err
	}
	if res.Reopened {
		r.toast(ctx, res.TabID, fmt.Sprintf("Reopened slot %d", res.Slot), port.NotificationInfo)
	}
	if !res.OK {
		return rejected(res.Reason, res), nil
	}
	return accepted(res), nil
}

func (r *Router) handleCycleSlot(ctx context.Context, payload json.RawMessage) (outcome, error) {
	dir := entity.ParseDirection(gjson.GetBytes(payload, "direction").String())
	return r.cycle(ctx, dir)
}

func (r *Router) cycle(ctx context.Context, dir entity.Direction) (outcome, error) {
	res, err := r.svc.Slots.Cycle(ctx, dir)
	if err != nil {
		return outcome{}, err
	}
	if res.Reopened {
		r.toast(ctx, res.TabID, fmt.Sprintf("Reopened slot %d", res.Slot), port.NotificationInfo)
	}
	if !res.OK {
		return rejected(res.Reason, res), nil
	}
	return accepted(res), nil
}

func (r *Router) handleSaveCurrentScroll(ctx context.Context, _ json.RawMessage) (outcome, error) {
	saved := r.svc.Slots.SaveCurrentTabScroll(ctx)
	return accepted(map[string]bool{"saved": saved}), nil
}

func (r *Router) handleReorderSlots(ctx context.Context, payload json.RawMessage) (outcome, error) {
	var p reorderPayload
	if err := decode(payload, &p); err != nil {
		return outcome{}, err
	}
	if err := r.svc.Slots.Reorder(ctx, p.Slots); err != nil {
		return outcome{}, err
	}
	slots, err := r.svc.Slots.List(ctx)
	if err != nil {
		return outcome{}, err
	}
	return accepted(slots), nil
}

func (r *Router) handleSaveSession(ctx context.Context, payload json.RawMessage) (outcome, error) {
	var p namePayload
	if err := decode(payload, &p); err != nil {
		return outcome{}, err
	}
	session, err := r.svc.Sessions.Save(ctx, p.Name)
	if err != nil {
		return outcome{}, err
	}
	return accepted(session), nil
}

func (r *Router) handleListSessions(ctx context.Context, _ json.RawMessage) (outcome, error) {
	sessions, err := r.svc.Sessions.ListSorted(ctx)
	if err != nil {
		return outcome{}, err
	}
	return accepted(sessions), nil
}

func (r *Router) handlePlanSessionLoad(ctx context.Context, payload json.RawMessage) (outcome, error) {
	var p namePayload
	if err := decode(payload, &p); err != nil {
		return outcome{}, err
	}
	plan, err := r.svc.Sessions.LoadPlan(ctx, p.Name)
	if err != nil {
		return outcome{}, err
	}
	return accepted(plan), nil
}

func (r *Router) handleLoadSession(ctx context.Context, payload json.RawMessage) (outcome, error) {
	var p namePayload
	if err := decode(payload, &p); err != nil {
		return outcome{}, err
	}
	res, err := r.svc.Sessions.Load(ctx, p.Name)
	if err != nil {
		return outcome{}, err
	}
	return accepted(res), nil
}

func (r *Router) handleDeleteSession(ctx context.Context, payload json.RawMessage) (outcome, error) {
	var p namePayload
	if err := decode(payload, &p); err != nil {
		return outcome{}, err
	}
	if err := r.svc.Sessions.Delete(ctx, p.Name); err != nil {
		return outcome{}, err
	}
	return accepted(nil), nil
}

func (r *Router) handleRenameSession(ctx context.Context, payload json.RawMessage) (outcome, error) {
	var p renamePayload
	if err := decode(payload, &p); err != nil {
		return outcome{}, err
	}
	if err := r.svc.Sessions.Rename(ctx, p.OldName, p.NewName); err != nil {
		return outcome{}, err
	}
	return accepted(nil), nil
}

func (r *Router) handleUpdateSession(ctx context.Context, payload json.RawMessage) (outcome, error) {
	var p namePayload
	if err := decode(payload, &p); err != nil {
		return outcome{}, err
	}
	session, err := r.svc.Sessions.Update(ctx, p.Name)
	if err != nil {
		return outcome{}, err
	}
	return accepted(session), nil
}

func (r *Router) handleReplaceSession(ctx context.Context, payload json.RawMessage) (outcome, error) {
	var p renamePayload
	if err := decode(payload, &p); err != nil {
		return outcome{}, err
	}
	session, err := r.svc.Sessions.Replace(ctx, p.OldName, p.NewName)
	if err != nil {
		return outcome{}, err
	}
	return accepted(session), nil
}

// handleTabSideReady is the pull path: a content script that just attached
// asks whether a scroll restore is waiting for its tab.
func (r *Router) handleTabSideReady(ctx context.Context, payload json.RawMessage) (outcome, error) {
	id, err := parseTabID(payload, "tab_id")
	if err != nil {
		return outcome{}, err
	}
	if r.svc.Scrolls == nil {
		return accepted(ScrollReply{}), nil
	}
	pos, ok := r.svc.Scrolls.TakePending(id)
	if !ok {
		return accepted(ScrollReply{}), nil
	}
	logging.FromContext(logging.WithTabID(ctx, int64(id))).Debug().Float64("y", pos.Y).Msg("pending scroll pulled")
	return accepted(ScrollReply{Pending: true, X: pos.X, Y: pos.Y}), nil
}

func (r *Router) handleCommand(ctx context.Context, payload json.RawMessage) (outcome, error) {
	name := strings.TrimSpace(gjson.GetBytes(payload, "command").String())
	switch {
	case name == CommandCyclePrev:
		return r.cycle(ctx, entity.DirectionPrev)
	case name == CommandCycleNext:
		return r.cycle(ctx, entity.DirectionNext)
	case name == CommandAddTab:
		return r.handleAddCurrentTab(ctx, payload)
	case strings.HasPrefix(name, CommandJumpSlotPrefix):
		n, err := strconv.Atoi(strings.TrimPrefix(name, CommandJumpSlotPrefix))
		if err != nil || n < 1 || n > entity.MaxSlots {
			return rejected(fmt.Sprintf("unknown command %q", name), nil), nil
		}
		return r.jump(ctx, n)
	default:
		return rejected(fmt.Sprintf("unknown command %q", name), nil), nil
	}
}

func (r *Router) handleTabClosed(ctx context.Context, payload json.RawMessage) error {
	id, err := parseTabID(payload, "tab_id")
	if err != nil {
		return err
	}
	r.svc.Slots.OnTabClosed(ctx, id)
	return nil
}

func (r *Router) handleTabUpdated(ctx context.Context, payload json.RawMessage) error {
	id, err := parseTabID(payload, "tab_id")
	if err != nil {
		return err
	}
	r.svc.Slots.OnTabUpdated(ctx, entity.TabInfo{
		ID:    id,
		URL:   gjson.GetBytes(payload, "url").String(),
		Title: gjson.GetBytes(payload, "title").String(),
	})
	return nil
}

func (r *Router) handleTabActivated(ctx context.Context, payload json.RawMessage) error {
	id, err := parseTabID(payload, "tab_id")
	if err != nil {
		return err
	}
	r.svc.Slots.OnTabActivated(ctx, id)
	return nil
}

func (r *Router) handleHostStartup(ctx context.Context, _ json.RawMessage) error {
	if r.svc.Lifecycle == nil {
		return nil
	}
	_, err := r.svc.Lifecycle.OnStartup(ctx)
	return err
}
