// Package messaging routes JSON messages from the browser extension to the
// slot and session use cases.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/reklai/harpoon-telescope/internal/application/port"
	"github.com/reklai/harpoon-telescope/internal/application/usecase"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
	"github.com/reklai/harpoon-telescope/internal/infrastructure/telemetry"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

// Request types sent by the extension UI.
const (
	TypeAddCurrentTab     = "add_current_tab"
	TypeRemoveTab         = "remove_tab"
	TypeListSlots         = "list_slots"
	TypeJumpToSlot        = "jump_to_slot"
	TypeCycleSlot         = "cycle_slot"
	TypeSaveCurrentScroll = "save_current_scroll"
	TypeReorderSlots      = "reorder_slots"
	TypeSaveSession       = "save_session"
	TypeListSessions      = "list_sessions"
	TypePlanSessionLoad   = "plan_session_load"
	TypeLoadSession       = "load_session"
	TypeDeleteSession     = "delete_session"
	TypeRenameSession     = "rename_session"
	TypeUpdateSession     = "update_session"
	TypeReplaceSession    = "replace_session"
	TypeTabSideReady      = "tab_side_ready"
	TypeCommand           = "command"
)

// Host events. These never get a response.
const (
	EventTabClosed    = "tab_closed"
	EventTabUpdated   = "tab_updated"
	EventTabActivated = "tab_activated"
	EventHostStartup  = "host_startup"
)

// Keyboard shortcut names carried by TypeCommand.
const (
	CommandJumpSlotPrefix = "jump-slot-"
	CommandCyclePrev      = "cycle-prev"
	CommandCycleNext      = "cycle-next"
	CommandAddTab         = "add-tab"
)

var errInvalidPayload = errors.New("invalid payload")

// Envelope is one inbound message.
type Envelope struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response answers a request envelope.
type Response struct {
	ID     string `json:"id,omitempty"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ScrollReply answers tab_side_ready.
type ScrollReply struct {
	Pending bool    `json:"pending"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
}

// SlotService is the slot surface the router drives.
type SlotService interface {
	usecase.SlotListeners
	Add(ctx context.Context, tab entity.TabInfo) (usecase.AddResult, error)
	Remove(ctx context.Context, id entity.TabID) (bool, error)
	RemoveSlot(ctx context.Context, n int) (bool, error)
	Jump(ctx context.Context, n int) (usecase.JumpResult, error)
	Cycle(ctx context.Context, dir entity.Direction) (usecase.JumpResult, error)
	SaveCurrentTabScroll(ctx context.Context) bool
	Reorder(ctx context.Context, list entity.SlotList) error
	List(ctx context.Context) (entity.SlotList, error)
}

// SessionService is the session surface the router drives.
type SessionService interface {
	Save(ctx context.Context, name string) (*entity.Session, error)
	ListSorted(ctx context.Context) (entity.SessionList, error)
	LoadPlan(ctx context.Context, name string) (*entity.LoadPlan, error)
	Load(ctx context.Context, name string) (*usecase.LoadResult, error)
	Update(ctx context.Context, name string) (*entity.Session, error)
	Rename(ctx context.Context, oldName, newName string) error
	Delete(ctx context.Context, name string) error
	Replace(ctx context.Context, oldName, newName string) (*entity.Session, error)
}

// PendingScrolls hands a queued scroll restore to a tab that asks for it.
type PendingScrolls interface {
	TakePending(tabID entity.TabID) (entity.ScrollPosition, bool)
}

// StartupHandler reacts to the browser starting.
type StartupHandler interface {
	OnStartup(ctx context.Context) (bool, error)
}

// Services bundles the router's collaborators.
type Services struct {
	Slots     SlotService
	Sessions  SessionService
	Scrolls   PendingScrolls
	Lifecycle StartupHandler
	Host      port.TabHost
	Notifier  *Notifier
}

// RouterOption customises a Router.
type RouterOption func(*Router)

// WithDeduplicator drops repeated request ids.
func WithDeduplicator(d *RequestDeduplicator) RouterOption {
	return func(r *Router) { r.dedup = d }
}

// WithMetrics records dispatch counts and durations.
func WithMetrics(m *telemetry.Metrics) RouterOption {
	return func(r *Router) { r.metrics = m }
}

// WithTracer wraps every dispatch in a span.
func WithTracer(t trace.Tracer) RouterOption {
	return func(r *Router) {
		if t != nil {
			r.tracer = t
		}
	}
}

// outcome is what a handler produced for a request.
type outcome struct {
	ok     bool
	reason string
	data   any
}

func accepted(data any) outcome { return outcome{ok: true, data: data} }

func rejected(reason string, data any) outcome { return outcome{reason: reason, data: data} }

type handlerFunc func(ctx context.Context, payload json.RawMessage) (outcome, error)

// Router dispatches envelopes to use cases. It is safe for concurrent use;
// ordering between messages is the caller's concern.
type Router struct {
	svc     Services
	dedup   *RequestDeduplicator
	metrics *telemetry.Metrics
	tracer  trace.Tracer

	requests map[string]handlerFunc
	events   map[string]func(ctx context.Context, payload json.RawMessage) error

	baseCtx context.Context
	wg      sync.WaitGroup
}

// NewRouter builds a router. ctx bounds background toast deliveries.
func NewRouter(ctx context.Context, svc Services, opts ...RouterOption) *Router {
	r := &Router{
		svc:     svc,
		tracer:  noop.NewTracerProvider().Tracer("noop"),
		baseCtx: ctx,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.requests = map[string]handlerFunc{
		TypeAddCurrentTab:     r.handleAddCurrentTab,
		TypeRemoveTab:         r.handleRemoveTab,
		TypeListSlots:         r.handleListSlots,
		TypeJumpToSlot:        r.handleJumpToSlot,
		TypeCycleSlot:         r.handleCycleSlot,
		TypeSaveCurrentScroll: r.handleSaveCurrentScroll,
		TypeReorderSlots:      r.handleReorderSlots,
		TypeSaveSession:       r.handleSaveSession,
		TypeListSessions:      r.handleListSessions,
		TypePlanSessionLoad:   r.handlePlanSessionLoad,
		TypeLoadSession:       r.handleLoadSession,
		TypeDeleteSession:     r.handleDeleteSession,
		TypeRenameSession:     r.handleRenameSession,
		TypeUpdateSession:     r.handleUpdateSession,
		TypeReplaceSession:    r.handleReplaceSession,
		TypeTabSideReady:      r.handleTabSideReady,
		TypeCommand:           r.handleCommand,
	}
	r.events = map[string]func(ctx context.Context, payload json.RawMessage) error{
		EventTabClosed:    r.handleTabClosed,
		EventTabUpdated:   r.handleTabUpdated,
		EventTabActivated: r.handleTabActivated,
		EventHostStartup:  r.handleHostStartup,
	}
	return r
}

// IsEvent reports whether msgType is a fire-and-forget host event.
func (r *Router) IsEvent(msgType string) bool {
	_, ok := r.events[msgType]
	return ok
}

// Handle processes one raw message. A nil response means nothing should be
// sent back: the message was an event or an in-flight duplicate.
func (r *Router) Handle(ctx context.Context, raw []byte) *Response {
	if !gjson.ValidBytes(raw) {
		logging.FromContext(ctx).Warn().Int("bytes", len(raw)).Msg("dropping malformed message")
		return &Response{Reason: "malformed message"}
	}
	id := gjson.GetBytes(raw, "id").String()
	msgType := gjson.GetBytes(raw, "type").String()

	if r.dedup != nil {
		if fresh, previous := r.dedup.Begin(id); !fresh {
			r.metrics.RecordDuplicate()
			logging.FromContext(ctx).Debug().Str("request_id", id).Str("type", msgType).Msg("duplicate request dropped")
			return previous
		}
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return r.finish(id, &Response{ID: id, Reason: "malformed message"})
	}
	return r.finish(id, r.Dispatch(ctx, env))
}

func (r *Router) finish(id string, resp *Response) *Response {
	if r.dedup != nil {
		r.dedup.Complete(id, resp)
	}
	return resp
}

// Dispatch routes a decoded envelope.
func (r *Router) Dispatch(ctx context.Context, env Envelope) *Response {
	start := time.Now()
	ctx = logging.WithComponent(ctx, "router")
	if env.ID != "" {
		ctx = logging.WithRequestID(ctx, env.ID)
	}
	log := logging.FromContext(ctx)

	ctx, span := r.tracer.Start(ctx, "router."+env.Type,
		trace.WithAttributes(
			attribute.String("message.type", env.Type),
			attribute.String("message.id", env.ID),
		),
	)
	defer span.End()

	if fn, ok := r.events[env.Type]; ok {
		result := "ok"
		if err := fn(ctx, env.Payload); err != nil {
			result = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Warn().Err(err).Str("type", env.Type).Msg("event dropped")
		}
		r.metrics.RecordMessage(env.Type, result, time.Since(start))
		return nil
	}

	fn, ok := r.requests[env.Type]
	if !ok {
		log.Warn().Str("type", env.Type).Msg("unknown message type")
		r.metrics.RecordMessage("unknown", "rejected", time.Since(start))
		return &Response{ID: env.ID, Reason: fmt.Sprintf("unknown message type %q", env.Type)}
	}

	out, err := fn(ctx, env.Payload)
	if err != nil {
		if reason, ok := userReason(err); ok {
			out = rejected(reason, nil)
		} else {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Error().Err(err).Str("type", env.Type).Msg("request failed")
			r.metrics.RecordMessage(env.Type, "error", time.Since(start))
			return &Response{ID: env.ID, Reason: "internal error"}
		}
	}

	result := "ok"
	if !out.ok {
		result = "rejected"
		span.SetAttributes(attribute.String("message.reason", out.reason))
	}
	r.metrics.RecordMessage(env.Type, result, time.Since(start))
	log.Debug().Str("type", env.Type).Bool("ok", out.ok).Dur("elapsed", time.Since(start)).Msg("request handled")
	return &Response{ID: env.ID, OK: out.ok, Reason: out.reason, Data: out.data}
}

// userReason maps rejected-request errors onto the text shown to the user.
func userReason(err error) (string, bool) {
	if errors.Is(err, errInvalidPayload) {
		return err.Error(), true
	}
	return usecase.FailureReason(err)
}

// Wait blocks until background toast deliveries finish.
func (r *Router) Wait() {
	r.wg.Wait()
}

// toast delivers a notification off the request path.
func (r *Router) toast(ctx context.Context, tabID entity.TabID, message string, notifType port.NotificationType) {
	if r.svc.Notifier == nil || tabID == entity.NoTab {
		return
	}
	toastCtx := logging.FromContext(ctx).WithContext(r.baseCtx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.svc.Notifier.SendWithRetry(toastCtx, tabID, message, notifType)
	}()
}

func decode(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: missing payload", errInvalidPayload)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidPayload, err)
	}
	return nil
}

// parseTabID reads a tab id that the extension may send as a number or as a
// numeric string.
func parseTabID(payload json.RawMessage, path string) (entity.TabID, error) {
	res := gjson.GetBytes(payload, path)
	switch res.Type {
	case gjson.Number:
		return entity.TabID(res.Int()), nil
	case gjson.String:
		id, err := strconv.ParseInt(strings.TrimSpace(res.Str), 10, 64)
		if err != nil {
			return entity.NoTab, fmt.Errorf("%w: %s is not a tab id", errInvalidPayload, path)
		}
		return entity.TabID(id), nil
	default:
		return entity.NoTab, fmt.Errorf("%w: missing %s", errInvalidPayload, path)
	}
}

func parseSlot(payload json.RawMessage) (int, error) {
	res := gjson.GetBytes(payload, "slot")
	if res.Type != gjson.Number {
		return 0, fmt.Errorf("%w: missing slot", errInvalidPayload)
	}
	return int(res.Int()), nil
}
