package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portmocks "github.com/reklai/harpoon-telescope/internal/application/port/mocks"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
)

func TestScrollRestorer_DeliversAfterTransientFailures(t *testing.T) {
	ctx := testContext()
	messenger := newFakeMessenger()
	messenger.setFailures = 2

	var outcomes []RestoreOutcome
	var mu sync.Mutex
	r := NewScrollRestorer(ctx, messenger, WithRetryDelays(fastDelays), WithRestoreObserver(func(o RestoreOutcome) {
		mu.Lock()
		outcomes = append(outcomes, o)
		mu.Unlock()
	}))

	token := r.Schedule(ctx, 7, entity.ScrollPosition{Y: 450})
	r.Wait()

	assert.NotZero(t, token)
	assert.Equal(t, []scrollCall{{tab: 7, pos: entity.ScrollPosition{Y: 450}}}, messenger.deliveries())
	_, pending := r.Pending(7)
	assert.False(t, pending)
	assert.Equal(t, []RestoreOutcome{RestoreDelivered}, outcomes)
}

func TestScrollRestorer_ZeroOffsetClearsPending(t *testing.T) {
	ctx := testContext()
	messenger := newFakeMessenger()
	messenger.silent[3] = true
	r := NewScrollRestorer(ctx, messenger, WithRetryDelays(fastDelays))

	r.Schedule(ctx, 3, entity.ScrollPosition{X: 1, Y: 2})
	token := r.Schedule(ctx, 3, entity.ScrollPosition{})
	r.Wait()

	assert.Zero(t, token)
	_, pending := r.Pending(3)
	assert.False(t, pending)
	assert.Empty(t, messenger.deliveries())
}

func TestScrollRestorer_KeepsPendingAfterRetriesExhausted(t *testing.T) {
	ctx := testContext()
	messenger := newFakeMessenger()
	messenger.silent[9] = true
	r := NewScrollRestorer(ctx, messenger, WithRetryDelays(fastDelays))

	r.Schedule(ctx, 9, entity.ScrollPosition{Y: 120})
	r.Wait()

	pos, ok := r.TakePending(9)
	require.True(t, ok)
	assert.Equal(t, entity.ScrollPosition{Y: 120}, pos)

	_, ok = r.TakePending(9)
	assert.False(t, ok, "pull consumes the restore")
}

func TestScrollRestorer_TakePendingStopsRetryLoop(t *testing.T) {
	ctx := testContext()
	messenger := newFakeMessenger()
	messenger.silent[4] = true
	r := NewScrollRestorer(ctx, messenger, WithRetryDelays(func() []time.Duration {
		return []time.Duration{0, 20 * time.Millisecond, 20 * time.Millisecond}
	}))

	r.Schedule(ctx, 4, entity.ScrollPosition{Y: 10})
	_, ok := r.TakePending(4)
	require.True(t, ok)

	messenger.mu.Lock()
	messenger.silent[4] = false
	messenger.mu.Unlock()
	r.Wait()

	assert.Empty(t, messenger.deliveries(), "pulled restore is not delivered again by the loop")
}

func TestScrollRestorer_ForgetDropsPending(t *testing.T) {
	ctx := testContext()
	messenger := newFakeMessenger()
	messenger.silent[5] = true
	r := NewScrollRestorer(ctx, messenger, WithRetryDelays(fastDelays))

	r.Schedule(ctx, 5, entity.ScrollPosition{Y: 10})
	r.Forget(5)
	r.Wait()

	_, ok := r.Pending(5)
	assert.False(t, ok)
}

// gatedMessenger blocks deliveries of one payload until released.
type gatedMessenger struct {
	*fakeMessenger
	gated    entity.ScrollPosition
	entered  chan struct{}
	release  chan struct{}
	gatedHit atomic.Int32
}

func (g *gatedMessenger) SetScrollPosition(ctx context.Context, id entity.TabID, pos entity.ScrollPosition) error {
	if pos == g.gated {
		if g.gatedHit.Add(1) == 1 {
			close(g.entered)
		}
		<-g.release
		return nil
	}
	return g.fakeMessenger.SetScrollPosition(ctx, id, pos)
}

func TestScrollRestorer_NewerScheduleSupersedesInFlightLoop(t *testing.T) {
	ctx := testContext()
	first := entity.ScrollPosition{Y: 100}
	second := entity.ScrollPosition{Y: 900}

	messenger := &gatedMessenger{
		fakeMessenger: newFakeMessenger(),
		gated:         first,
		entered:       make(chan struct{}),
		release:       make(chan struct{}),
	}
	// The second payload never lands so its pending record must survive.
	messenger.setFailures = 1000

	var superseded atomic.Int32
	r := NewScrollRestorer(ctx, messenger, WithRetryDelays(fastDelays), WithRestoreObserver(func(o RestoreOutcome) {
		if o == RestoreSuperseded {
			superseded.Add(1)
		}
	}))

	g1 := r.Schedule(ctx, 11, first)
	<-messenger.entered

	g2 := r.Schedule(ctx, 11, second)
	require.Greater(t, g2, g1)

	// g1's delivery now reports success, after g2 took over.
	close(messenger.release)
	r.Wait()

	pos, ok := r.Pending(11)
	require.True(t, ok, "stale success must not clear the newer restore")
	assert.Equal(t, second, pos)
	assert.Equal(t, int32(1), messenger.gatedHit.Load(), "g1 never retries once superseded")
	assert.Equal(t, int32(1), superseded.Load())
}

func TestScrollRestorer_UsesAttemptTimeout(t *testing.T) {
	ctx := testContext()
	messenger := portmocks.NewMockTabMessenger(t)
	messenger.EXPECT().
		SetScrollPosition(mock.Anything, entity.TabID(21), entity.ScrollPosition{X: 5, Y: 6}).
		RunAndReturn(func(ctx context.Context, _ entity.TabID, _ entity.ScrollPosition) error {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 40*time.Millisecond)
			return nil
		}).
		Once()

	r := NewScrollRestorer(ctx, messenger,
		WithRetryDelays(fastDelays),
		WithAttemptTimeout(func() time.Duration { return 50 * time.Millisecond }),
	)
	r.Schedule(ctx, 21, entity.ScrollPosition{X: 5, Y: 6})
	r.Wait()
}

func TestScrollRestorer_StopsWhenBaseContextCancelled(t *testing.T) {
	base, cancel := context.WithCancel(testContext())
	messenger := newFakeMessenger()
	messenger.silent[8] = true
	r := NewScrollRestorer(base, messenger, WithRetryDelays(func() []time.Duration {
		return []time.Duration{0, time.Hour}
	}))

	r.Schedule(testContext(), 8, entity.ScrollPosition{Y: 1})
	cancel()

	done := make(chan struct{})
	go func() { r.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("retry loop ignored cancellation")
	}
}
