package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/reklai/harpoon-telescope/internal/app/mainloop"
	"github.com/reklai/harpoon-telescope/internal/application/port"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

// DefaultScrollRetryDelays is the wait before each delivery attempt.
var DefaultScrollRetryDelays = []time.Duration{0, 80 * time.Millisecond, 220 * time.Millisecond, 420 * time.Millisecond}

// RestoreOutcome describes how a scroll restore ended.
type RestoreOutcome string

const (
	RestoreDelivered  RestoreOutcome = "delivered"
	RestoreSuperseded RestoreOutcome = "superseded"
	RestoreExhausted  RestoreOutcome = "exhausted"
	RestorePulled     RestoreOutcome = "pulled"
)

type pendingRestore struct {
	pos   entity.ScrollPosition
	token uint64
}

// ScrollRestorer delivers scroll positions to freshly created tabs whose
// content script may not be listening yet. Each Schedule call for a tab
// supersedes every older retry loop for that tab.
type ScrollRestorer struct {
	messenger port.TabMessenger
	delays    func() []time.Duration
	timeout   func() time.Duration
	observe   func(RestoreOutcome)

	baseCtx context.Context
	gens    *mainloop.Generations[entity.TabID]

	mu      sync.Mutex
	pending map[entity.TabID]pendingRestore
	wg      sync.WaitGroup
}

// ScrollRestorerOption configures a ScrollRestorer.
type ScrollRestorerOption func(*ScrollRestorer)

// WithRetryDelays sets the attempt schedule. fn is read once per Schedule.
func WithRetryDelays(fn func() []time.Duration) ScrollRestorerOption {
	return func(r *ScrollRestorer) {
		if fn != nil {
			r.delays = fn
		}
	}
}

// WithAttemptTimeout bounds each delivery attempt.
func WithAttemptTimeout(fn func() time.Duration) ScrollRestorerOption {
	return func(r *ScrollRestorer) {
		if fn != nil {
			r.timeout = fn
		}
	}
}

// WithRestoreObserver is called once per finished loop or pull.
func WithRestoreObserver(fn func(RestoreOutcome)) ScrollRestorerOption {
	return func(r *ScrollRestorer) {
		if fn != nil {
			r.observe = fn
		}
	}
}

// NewScrollRestorer creates a restorer. Retry loops stop when ctx is cancelled.
func NewScrollRestorer(ctx context.Context, messenger port.TabMessenger, opts ...ScrollRestorerOption) *ScrollRestorer {
	r := &ScrollRestorer{
		messenger: messenger,
		delays:    func() []time.Duration { return DefaultScrollRetryDelays },
		timeout:   func() time.Duration { return DefaultMessageTimeout },
		observe:   func(RestoreOutcome) {},
		baseCtx:   ctx,
		gens:      mainloop.NewGenerations[entity.TabID](),
		pending:   make(map[entity.TabID]pendingRestore),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Schedule records a restore owed to tabID and starts delivering it.
// A zero position clears any pending restore instead. Returns the token of
// the new loop, or 0 when nothing was scheduled.
func (r *ScrollRestorer) Schedule(ctx context.Context, tabID entity.TabID, pos entity.ScrollPosition) uint64 {
	log := logging.FromContext(logging.WithTabID(ctx, int64(tabID)))

	r.mu.Lock()
	if pos.IsZero() {
		delete(r.pending, tabID)
		r.gens.Invalidate(tabID)
		r.mu.Unlock()
		return 0
	}
	token := r.gens.Next(tabID)
	r.pending[tabID] = pendingRestore{pos: pos, token: token}
	r.mu.Unlock()

	log.Debug().
		Float64("x", pos.X).
		Float64("y", pos.Y).
		Uint64("token", token).
		Msg("scroll restore scheduled")

	loopCtx := log.WithContext(r.baseCtx)
	delays := append([]time.Duration(nil), r.delays()...)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.observe(r.run(loopCtx, tabID, pos, token, delays))
	}()
	return token
}

func (r *ScrollRestorer) run(
	ctx context.Context,
	tabID entity.TabID,
	pos entity.ScrollPosition,
	token uint64,
	delays []time.Duration,
) RestoreOutcome {
	log := logging.FromContext(ctx)

	for attempt, delay := range delays {
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return RestoreSuperseded
			case <-timer.C:
			}
		}

		if !r.gens.IsCurrent(tabID, token) {
			return RestoreSuperseded
		}

		attemptCtx, cancel := context.WithTimeout(ctx, r.timeout())
		err := r.messenger.SetScrollPosition(attemptCtx, tabID, pos)
		cancel()

		if err == nil {
			r.mu.Lock()
			current := r.gens.Release(tabID, token)
			if current {
				delete(r.pending, tabID)
			}
			r.mu.Unlock()
			if !current {
				log.Debug().Uint64("token", token).Msg("stale scroll restore ack ignored")
				return RestoreSuperseded
			}
			log.Debug().Int("attempt", attempt+1).Msg("scroll restored")
			return RestoreDelivered
		}

		if !r.gens.IsCurrent(tabID, token) {
			return RestoreSuperseded
		}
		log.Trace().Err(err).Int("attempt", attempt+1).Msg("scroll restore attempt failed")
	}

	// The pending record stays so the tab can still pull it when its
	// content script announces itself.
	log.Debug().Int("attempts", len(delays)).Msg("scroll restore retries exhausted")
	return RestoreExhausted
}

// TakePending returns and clears the restore owed to tabID, cancelling any
// loop still retrying it.
func (r *ScrollRestorer) TakePending(tabID entity.TabID) (entity.ScrollPosition, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pending[tabID]
	if !ok {
		return entity.ScrollPosition{}, false
	}
	delete(r.pending, tabID)
	r.gens.Invalidate(tabID)
	r.observe(RestorePulled)
	return p.pos, true
}

// Pending reports the restore currently owed to tabID without consuming it.
func (r *ScrollRestorer) Pending(tabID entity.TabID) (entity.ScrollPosition, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[tabID]
	return p.pos, ok
}

// Forget drops any restore owed to a tab that went away.
func (r *ScrollRestorer) Forget(tabID entity.TabID) {
	r.mu.Lock()
	delete(r.pending, tabID)
	r.gens.Invalidate(tabID)
	r.mu.Unlock()
}

// Wait blocks until every running retry loop has returned.
func (r *ScrollRestorer) Wait() {
	r.wg.Wait()
}
