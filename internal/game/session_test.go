package game

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startSession runs s in the background and returns its cancel func.
func startSession(t *testing.T, s *Session) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-s.Done()
	})
	return cancel
}

func TestSessionActionsApplyInOrder(t *testing.T) {
	u := mustUniverse(t)
	s := NewSession(u, time.Hour, rand.New(rand.NewSource(1)))
	startSession(t, s)
	ctx := context.Background()

	require.NoError(t, s.HoldService(ctx))
	require.NoError(t, s.Tick(ctx))
	joined, err := s.Outreach(ctx)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.Day)
	assert.Equal(t, 100.0+17-10, snap.Money)
	assert.Equal(t, 40.0, snap.Spirit)
	assert.Equal(t, 5.0+float64(joined), snap.Members)

	assert.ErrorIs(t, s.Hire(ctx, "adminStaff"), ErrInsufficientFunds)
	assert.ErrorIs(t, s.UpgradeVenue(ctx), ErrInsufficientFunds)
}

func TestSessionSnapshotIsACopy(t *testing.T) {
	u := mustUniverse(t)
	s := NewSession(u, time.Hour, nil)

	snap := s.Snapshot()
	snap.Money = 1e9
	snap.Staff["adminStaff"] = 40

	again := s.Snapshot()
	assert.Equal(t, 100.0, again.Money)
	assert.Equal(t, 0, again.Staff["adminStaff"])
}

func TestSessionTimerTicks(t *testing.T) {
	u := mustUniverse(t)
	s := NewSession(u, 2*time.Millisecond, nil)
	startSession(t, s)

	assert.Eventually(t, func() bool { return s.Snapshot().Day >= 4 }, time.Second, time.Millisecond)
}

func TestSessionStopsTickingAfterTeardown(t *testing.T) {
	u := mustUniverse(t)
	s := NewSession(u, time.Millisecond, nil)

	var mu sync.Mutex
	changes := 0
	s.OnChange(func(*Universe, State) {
		mu.Lock()
		changes++
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return s.Snapshot().Day >= 3 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)

	day := s.Snapshot().Day
	mu.Lock()
	seen := changes
	mu.Unlock()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, day, s.Snapshot().Day, "no tick after teardown")
	mu.Lock()
	assert.Equal(t, seen, changes)
	mu.Unlock()

	assert.ErrorIs(t, s.Tick(context.Background()), ErrSessionClosed)
}

func TestSessionDoRespectsContext(t *testing.T) {
	u := mustUniverse(t)
	s := NewSession(u, time.Hour, nil) // never started

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Tick(ctx), context.DeadlineExceeded)
}

func TestSessionOnChangeReceivesSnapshots(t *testing.T) {
	u := mustUniverse(t)
	s := NewSession(u, time.Hour, nil)

	var got []State
	s.OnChange(func(_ *Universe, st State) { got = append(got, st) })
	startSession(t, s)

	require.NoError(t, s.Tick(context.Background()))
	require.NoError(t, s.Tick(context.Background()))

	// Do returns after listeners ran on the loop.
	snap := s.Snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, snap, got[1])
}

func TestSessionReload(t *testing.T) {
	u := mustUniverse(t)
	s := NewSession(u, time.Hour, nil)
	startSession(t, s)
	ctx := context.Background()

	tiny, err := ParseConfig([]byte(tinyConfig))
	require.NoError(t, err)
	assert.Error(t, s.Reload(ctx, tiny), "living_room is missing from the tiny universe")
	assert.Same(t, u, s.Universe())

	smaller := mustUniverse(t)
	smaller.Venues[0].Capacity = 3
	require.NoError(t, s.Reload(ctx, smaller))
	assert.Same(t, smaller, s.Universe())
	assert.Equal(t, 3.0, s.Snapshot().Members)
}

func TestSessionReloadFollowsTickInterval(t *testing.T) {
	u := mustUniverse(t)
	u.BalanceConfig.TickInterval = time.Hour
	s := NewSession(u, 0, rand.New(rand.NewSource(1)))
	startSession(t, s)

	faster := mustUniverse(t)
	faster.BalanceConfig.TickInterval = 5 * time.Millisecond
	require.NoError(t, s.Reload(context.Background(), faster))

	assert.Equal(t, 5*time.Millisecond, s.interval)
	assert.Eventually(t, func() bool { return s.Snapshot().Day >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestSessionReloadKeepsPinnedInterval(t *testing.T) {
	u := mustUniverse(t)
	s := NewSession(u, time.Hour, rand.New(rand.NewSource(1)))
	startSession(t, s)

	faster := mustUniverse(t)
	faster.BalanceConfig.TickInterval = 5 * time.Millisecond
	require.NoError(t, s.Reload(context.Background(), faster))

	assert.Equal(t, time.Hour, s.interval)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, s.Snapshot().Day)
}

func TestSessionHasID(t *testing.T) {
	u := mustUniverse(t)
	a, b := NewSession(u, 0, nil), NewSession(u, 0, nil)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, time.Second, a.interval)
}
