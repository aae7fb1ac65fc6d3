/*
Package game
File: session.go
Description:
    A Session owns one economy and is its only writer.

    Run is the session loop: it selects over the day timer and the command
    channel and applies each transition to completion before taking the
    next, so ticks and player actions interleave in arrival order and none
    can observe another half-applied. Readers get deep-copied snapshots.
    Cancelling Run's context stops the timer; nothing fires afterwards.
*/

package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionClosed is returned for commands submitted after the loop ended.
var ErrSessionClosed = errors.New("session closed")

// Transition mutates the state inside the session loop.
type Transition func(u *Universe, st *State, rng *rand.Rand) error

type command struct {
	apply  Transition
	result chan error
}

// Session runs one player's economy.
type Session struct {
	ID string

	mu    sync.RWMutex
	uni   *Universe
	state State

	rng      *rand.Rand
	interval time.Duration
	pinned   bool         // interval set by the caller, not the config
	ticker   *time.Ticker // owned by the Run loop
	commands chan command
	done     chan struct{}

	listeners []func(*Universe, State)
}

// NewSession creates a session with the starting state of u. A zero
// interval follows the universe's tick interval, across reloads too; a
// positive one is kept for the session's lifetime. A nil rng is seeded
// from the clock.
func NewSession(u *Universe, interval time.Duration, rng *rand.Rand) *Session {
	pinned := interval > 0
	if !pinned {
		interval = u.BalanceConfig.TickInterval
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		ID:       uuid.NewString(),
		uni:      u,
		state:    NewState(u),
		rng:      rng,
		interval: interval,
		pinned:   pinned,
		commands: make(chan command),
		done:     make(chan struct{}),
	}
}

// OnChange registers fn to receive the universe and a state snapshot after
// every transition. Register listeners before calling Run. fn runs on the
// session loop and must not block or submit commands to the session.
func (s *Session) OnChange(fn func(*Universe, State)) {
	s.listeners = append(s.listeners, fn)
}

// Run drives the session until ctx is cancelled. It must be called once.
func (s *Session) Run(ctx context.Context) error {
	s.ticker = time.NewTicker(s.interval)
	defer s.ticker.Stop()
	defer close(s.done)

	log.Printf("Session %s: running, 1 day every %s", s.ID, s.interval)
	for {
		// Teardown wins over a pending tick.
		if err := ctx.Err(); err != nil {
			log.Printf("Session %s: stopped", s.ID)
			return err
		}

		select {
		case <-ctx.Done():
			log.Printf("Session %s: stopped", s.ID)
			return ctx.Err()

		case <-s.ticker.C:
			s.apply(func(u *Universe, st *State, _ *rand.Rand) error {
				st.Tick(u)
				return nil
			})

		case cmd := <-s.commands:
			cmd.result <- s.apply(cmd.apply)
		}
	}
}

// Done is closed once Run has returned.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) apply(t Transition) error {
	s.mu.Lock()
	err := t(s.uni, &s.state, s.rng)
	uni, snap := s.uni, s.state.Clone()
	s.mu.Unlock()

	for _, fn := range s.listeners {
		fn(uni, snap)
	}
	return err
}

// Do submits a transition to the loop and waits for it to be applied.
func (s *Session) Do(ctx context.Context, t Transition) error {
	cmd := command{apply: t, result: make(chan error, 1)}
	select {
	case s.commands <- cmd:
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	// The loop always answers a command it accepted.
	return <-cmd.result
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Universe returns the configuration the session currently runs on.
func (s *Session) Universe() *Universe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uni
}

// Tick applies one day immediately, outside the timer.
func (s *Session) Tick(ctx context.Context) error {
	return s.Do(ctx, func(u *Universe, st *State, _ *rand.Rand) error {
		st.Tick(u)
		return nil
	})
}

// HoldService runs the Hold Service action.
func (s *Session) HoldService(ctx context.Context) error {
	return s.Do(ctx, func(u *Universe, st *State, _ *rand.Rand) error {
		return HoldService(u, st)
	})
}

// Outreach runs the Outreach action and reports how many members joined.
func (s *Session) Outreach(ctx context.Context) (int, error) {
	var joined int
	err := s.Do(ctx, func(u *Universe, st *State, rng *rand.Rand) error {
		var err error
		joined, err = Outreach(u, st, rng)
		return err
	})
	return joined, err
}

// UpgradeVenue runs the venue upgrade action.
func (s *Session) UpgradeVenue(ctx context.Context) error {
	return s.Do(ctx, func(u *Universe, st *State, _ *rand.Rand) error {
		return UpgradeVenue(u, st)
	})
}

// Hire runs the staff hire action for role.
func (s *Session) Hire(ctx context.Context, role string) error {
	return s.Do(ctx, func(u *Universe, st *State, _ *rand.Rand) error {
		return Hire(u, st, role)
	})
}

// Reload swaps in a new universe. It is refused, leaving the session
// untouched, when the current venue or any owned staff role is missing
// from next. Members are re-clamped to the new capacity, and a session
// that follows the config picks up the new tick interval.
func (s *Session) Reload(ctx context.Context, next *Universe) error {
	return s.Do(ctx, func(_ *Universe, st *State, _ *rand.Rand) error {
		if next.GetVenue(st.Venue) == nil {
			return fmt.Errorf("reload: venue %q missing from new config", st.Venue)
		}
		for role, n := range st.Staff {
			if n > 0 && next.GetStaff(role) == nil {
				return fmt.Errorf("reload: staff role %q missing from new config", role)
			}
		}
		for _, r := range next.Staff {
			if _, ok := st.Staff[r.Key]; !ok {
				st.Staff[r.Key] = 0
			}
		}
		st.Members = clamp(st.Members, 0, next.Capacity(st.Venue))
		// apply holds the write lock while this runs.
		s.uni = next
		if !s.pinned {
			s.retime(next.BalanceConfig.TickInterval)
		}
		return nil
	})
}

// retime changes the day length. It runs on the session loop.
func (s *Session) retime(d time.Duration) {
	if d <= 0 || d == s.interval {
		return
	}
	log.Printf("Session %s: 1 day every %s", s.ID, d)
	s.interval = d
	s.ticker.Reset(d)
}
