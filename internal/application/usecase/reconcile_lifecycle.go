package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/reklai/harpoon-telescope/internal/app/mainloop"
	"github.com/reklai/harpoon-telescope/internal/application/port"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

// LifecycleTimings controls the restore prompt after a browser start.
type LifecycleTimings struct {
	InitialDelay time.Duration
	Attempts     int
	Interval     time.Duration
}

// DefaultLifecycleTimings waits for the first tab to load, then tries for
// about five seconds.
func DefaultLifecycleTimings() LifecycleTimings {
	return LifecycleTimings{
		InitialDelay: 1500 * time.Millisecond,
		Attempts:     5,
		Interval:     time.Second,
	}
}

// SessionPresence reports whether any session is saved.
type SessionPresence interface {
	HasSessions(ctx context.Context) (bool, error)
}

// SlotClearer empties the live slot list.
type SlotClearer interface {
	Clear(ctx context.Context) error
}

const promptKey = "restore-prompt"

// LifecycleReconciler reacts to the browser starting. Tab ids from the
// previous run are meaningless, so pinned slots are dropped and the user is
// offered to load a saved session instead.
type LifecycleReconciler struct {
	sessions  SessionPresence
	slots     SlotClearer
	host      port.TabHost
	messenger port.TabMessenger
	timings   func() LifecycleTimings
	timeout   func() time.Duration

	baseCtx context.Context
	gens    *mainloop.Generations[string]
	wg      sync.WaitGroup
}

// NewLifecycleReconciler creates a new reconciler for browser startup and shutdown.
func NewLifecycleReconciler(
	ctx context.Context,
	sessions SessionPresence,
	slots SlotClearer,
	host port.TabHost,
	messenger port.TabMessenger,
	timings func() LifecycleTimings,
	timeout func() time.Duration,
) *LifecycleReconciler {
	if timings == nil {
		timings = DefaultLifecycleTimings
	}
	if timeout == nil {
		timeout = func() time.Duration { return DefaultMessageTimeout }
	}
	return &LifecycleReconciler{
		sessions:  sessions,
		slots:     slots,
		host:      host,
		messenger: messenger,
		timings:   timings,
		timeout:   timeout,
		baseCtx:   ctx,
		gens:      mainloop.NewGenerations[string](),
	}
}

// OnStartup handles a browser start signal. It returns true when a restore
// prompt loop was started. A newer signal supersedes an older prompt loop.
func (l *LifecycleReconciler) OnStartup(ctx context.Context) (bool, error) {
	log := logging.FromContext(ctx)

	has, err := l.sessions.HasSessions(ctx)
	if err != nil {
		return false, err
	}
	if !has {
		log.Debug().Msg("startup: no saved sessions")
		return false, nil
	}

	if err := l.slots.Clear(ctx); err != nil {
		return false, err
	}
	log.Info().Msg("startup: cleared stale slots, offering session restore")

	token := l.gens.Next(promptKey)
	timings := l.timings()
	loopCtx := log.WithContext(l.baseCtx)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.promptLoop(loopCtx, token, timings)
	}()
	return true, nil
}

func (l *LifecycleReconciler) promptLoop(ctx context.Context, token uint64, timings LifecycleTimings) {
	log := logging.FromContext(ctx)
	defer l.gens.Release(promptKey, token)

	wait := timings.InitialDelay
	for attempt := 1; attempt <= timings.Attempts; attempt++ {
		if !sleepCtx(ctx, wait) {
			return
		}
		wait = timings.Interval

		if !l.gens.IsCurrent(promptKey, token) {
			return
		}
		if l.tryPrompt(ctx) {
			log.Debug().Int("attempt", attempt).Msg("session restore prompt shown")
			return
		}
	}
	log.Debug().Int("attempts", timings.Attempts).Msg("session restore prompt not delivered")
}

func (l *LifecycleReconciler) tryPrompt(ctx context.Context) bool {
	tab, err := l.host.ActiveTab(ctx)
	if err != nil || tab == nil {
		return false
	}
	bctx, cancel := context.WithTimeout(ctx, l.timeout())
	defer cancel()
	return l.messenger.ShowSessionRestorePrompt(bctx, tab.ID) == nil
}

// Wait blocks until the prompt loop has returned.
func (l *LifecycleReconciler) Wait() {
	l.wg.Wait()
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
