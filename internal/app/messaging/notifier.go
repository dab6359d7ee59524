package messaging

import (
	"context"
	"errors"
	"time"

	"github.com/reklai/harpoon-telescope/internal/app/mainloop"
	"github.com/reklai/harpoon-telescope/internal/application/port"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

// DefaultNotifyDelays are the waits before each toast delivery attempt.
// A freshly created tab needs a moment before its listener is attached.
var DefaultNotifyDelays = []time.Duration{0, 150 * time.Millisecond, 400 * time.Millisecond, 800 * time.Millisecond}

// Notifier delivers toasts to tab-side listeners with bounded retry.
// Sending to a tab supersedes any retry still running for that tab.
type Notifier struct {
	messenger port.TabMessenger
	delays    func() []time.Duration
	timeout   func() time.Duration
	gens      *mainloop.Generations[entity.TabID]
}

// NewNotifier creates a toast sender with retry delays and a per-attempt timeout.
func NewNotifier(messenger port.TabMessenger, delays func() []time.Duration, timeout func() time.Duration) *Notifier {
	if delays == nil {
		delays = func() []time.Duration { return DefaultNotifyDelays }
	}
	if timeout == nil {
		timeout = func() time.Duration { return 3 * time.Second }
	}
	return &Notifier{
		messenger: messenger,
		delays:    delays,
		timeout:   timeout,
		gens:      mainloop.NewGenerations[entity.TabID](),
	}
}

// SendWithRetry blocks until the toast is delivered, the tab is gone, a
// newer send to the same tab takes over, or the attempts run out.
func (n *Notifier) SendWithRetry(ctx context.Context, tabID entity.TabID, message string, notifType port.NotificationType) bool {
	log := logging.FromContext(logging.WithTabID(ctx, int64(tabID))).With().
		Str("notification", notifType.String()).
		Logger()

	token := n.gens.Next(tabID)
	for attempt, delay := range n.delays() {
		if delay > 0 {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(delay):
			}
		}
		if !n.gens.IsCurrent(tabID, token) {
			log.Debug().Msg("toast superseded")
			return false
		}

		sendCtx, cancel := context.WithTimeout(ctx, n.timeout())
		err := n.messenger.Notify(sendCtx, tabID, message, notifType)
		cancel()
		if err == nil {
			n.gens.Release(tabID, token)
			return true
		}
		if errors.Is(err, port.ErrTabNotFound) {
			log.Debug().Msg("toast target closed")
			return false
		}
		log.Debug().Err(err).Int("attempt", attempt+1).Msg("toast delivery failed")
	}
	log.Debug().Msg("toast dropped after retries")
	return false
}

// Forget stops any retry loop still trying to reach tabID.
func (n *Notifier) Forget(tabID entity.TabID) {
	n.gens.Invalidate(tabID)
}
