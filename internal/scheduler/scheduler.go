// Package scheduler arms and cancels the per-player turn clock described in
// the specification's turn scheduler section: a primary timer, a one-tick-
// per-second time-bank cascade on expiry, and a synthesized fold once the
// bank itself runs dry. It is built on a fake-clock-testable clock so tests
// never sleep in real time, the same pattern the teacher's network agent
// uses for its own per-connection timers.
package scheduler

import (
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
)

// Fingerprint identifies exactly which turn a timer belongs to. A timer
// whose fingerprint no longer matches the scheduler's current turn when it
// fires is stale and is discarded.
type Fingerprint struct {
	TableID    string
	HandNumber int
	Street     int
	Seat       int
}

// ExpireFunc is invoked when the primary timer elapses with no time bank
// left to spend, or when the time bank itself is exhausted. Either way the
// caller's turn is over; the scheduler does not decide *what* happens next
// (a synthesized fold), it only reports that the clock ran out.
type ExpireFunc func(fp Fingerprint)

// TickFunc is invoked once per second while the time bank is running, so a
// transport layer can push the remaining seconds to observers.
type TickFunc func(fp Fingerprint, remainingSeconds int)

// TurnScheduler owns the single armed timer for one table actor. Its state
// is guarded by mu because timer callbacks run on the clock's goroutines;
// the table actor that owns it calls Arm and Cancel from its own serialized
// message loop, same as it calls into the table.
type TurnScheduler struct {
	clock  quartz.Clock
	logger zerolog.Logger

	mu          sync.Mutex
	primary     *quartz.Timer
	bankTicker  *quartz.Timer
	current     Fingerprint
	armed       bool
	bankSeconds int

	onExpire ExpireFunc
	onTick   TickFunc
}

// New creates a scheduler driven by clock, reporting expirations to
// onExpire and time-bank ticks to onTick.
func New(clock quartz.Clock, logger zerolog.Logger, onExpire ExpireFunc, onTick TickFunc) *TurnScheduler {
	return &TurnScheduler{clock: clock, logger: logger, onExpire: onExpire, onTick: onTick}
}

// Arm starts the primary timer for fp, cancelling whatever was previously
// armed. bankSeconds is the player's remaining time bank, spent only if the
// primary timer itself elapses.
func (s *TurnScheduler) Arm(fp Fingerprint, turnTimer time.Duration, bankSeconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()

	s.current = fp
	s.armed = true
	s.bankSeconds = bankSeconds
	s.primary = s.clock.AfterFunc(turnTimer, func() { s.firePrimary(fp) })
}

// Cancel stops every timer belonging to fp and returns the time bank
// seconds that were left unspent at the moment of cancellation, so the
// caller can persist it back onto the player before the next Arm.
// Cancelling a fingerprint that is no longer armed is a no-op returning 0,
// since a stale cancel can race a fresh Arm for the next actor.
func (s *TurnScheduler) Cancel(fp Fingerprint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.armed || s.current != fp {
		return 0
	}
	remaining := s.bankSeconds
	s.cancelLocked()
	return remaining
}

func (s *TurnScheduler) cancelLocked() {
	if s.primary != nil {
		s.primary.Stop()
		s.primary = nil
	}
	if s.bankTicker != nil {
		s.bankTicker.Stop()
		s.bankTicker = nil
	}
	s.armed = false
}

func (s *TurnScheduler) firePrimary(fp Fingerprint) {
	s.mu.Lock()
	if !s.armed || s.current != fp {
		s.mu.Unlock()
		return
	}
	if s.bankSeconds <= 0 {
		s.cancelLocked()
		s.mu.Unlock()
		s.onExpire(fp)
		return
	}
	s.primary = nil
	s.bankTicker = s.clock.AfterFunc(time.Second, func() { s.fireTick(fp) })
	s.mu.Unlock()
}

func (s *TurnScheduler) fireTick(fp Fingerprint) {
	s.mu.Lock()
	if !s.armed || s.current != fp {
		s.mu.Unlock()
		return
	}
	s.bankSeconds--
	remaining := s.bankSeconds
	if remaining <= 0 {
		s.cancelLocked()
		s.mu.Unlock()
		s.onExpire(fp)
		return
	}
	s.bankTicker = s.clock.AfterFunc(time.Second, func() { s.fireTick(fp) })
	s.mu.Unlock()
	s.onTick(fp, remaining)
}
