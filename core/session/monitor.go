package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/coursatplus/coursat/core"
)

// State of a Monitor.
type State int

const (
	StateIdle       State = iota // no active session
	StateWatching                // session active, periodic checks running
	StateTerminated              // session forcibly ended, awaiting logout
)

func (s State) String() string {
	switch s {
	case StateWatching:
		return "watching"
	case StateTerminated:
		return "terminated"
	}
	return "idle"
}

// Monitor re-checks an active session's code against the store on a fixed
// interval and enforces expiry/revocation while the student is mid-session.
//
// Exactly one timer exists per active session: Start cancels any prior one,
// and every exit path (logout, termination) cancels it too. An in-flight
// check compares its session generation before committing any mutation, so a
// logout can never be resurrected by a late tick.
type Monitor struct {
	gw       Gateway
	logger   core.Logger
	interval time.Duration

	mu       sync.Mutex
	state    State
	sess     Session
	gen      string // session generation; rotated on every Start/Stop
	cancel   context.CancelFunc
	failures int // consecutive failed reconciliations, logged only
}

func NewMonitor(gw Gateway, logger core.Logger, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Monitor{gw: gw, logger: logger, interval: interval}
}

// Start commits identity as the live session and begins watching it:
// one check immediately, then one per interval, plus one at local midnight.
func (m *Monitor) Start(identity Identity) {
	ctx, gen := m.begin(identity)
	go m.watch(ctx, gen)
}

func (m *Monitor) begin(identity Identity) (context.Context, string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil { // only one timer per session
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.state = StateWatching
	m.sess = Session{Authenticated: true, Identity: identity}
	m.gen = uuid.New().String()
	m.failures = 0
	return ctx, m.gen
}

func (m *Monitor) watch(ctx context.Context, gen string) {
	m.tick(ctx, gen)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	midnight := time.NewTimer(untilMidnight(nowFunc()))
	defer midnight.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx, gen)
		case <-midnight.C:
			m.tick(ctx, gen)
			midnight.Reset(untilMidnight(nowFunc()))
		}
	}
}

// tick runs one validity check: the local expiry comparison first (no network
// cost), then reconciliation against the store record. Transport failures are
// swallowed; the next scheduled tick is the retry.
func (m *Monitor) tick(ctx context.Context, gen string) {
	m.mu.Lock()
	if m.gen != gen || m.state != StateWatching {
		m.mu.Unlock()
		return
	}
	identity := m.sess.Identity
	if !nowFunc().Before(identity.ExpiryDate) {
		m.terminate(TerminationExpired)
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	ac, err := m.gw.FindActivationCode(ctx, identity.Code)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen || m.state != StateWatching { // session changed mid-flight
		return
	}
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			m.terminate(TerminationRevoked)
			return
		}
		m.failures++
		if m.logger != nil {
			m.logger.Warn(fmt.Sprintf("session check for code %s failed (%d in a row), keeping session: %v",
				identity.Code, m.failures, err))
		}
		return
	}
	m.failures = 0
	if !ac.ExpiryDate.Equal(m.sess.Identity.ExpiryDate) { // administrative extension or correction
		m.sess.Identity.ExpiryDate = ac.ExpiryDate
	}
}

// terminate must be called with m.mu held.
func (m *Monitor) terminate(reason TerminationReason) {
	m.state = StateTerminated
	m.sess.Authenticated = false
	m.sess.Reason = reason
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.logger != nil {
		m.logger.Info(fmt.Sprintf("session for code %s terminated: %s", m.sess.Identity.Code, reason))
	}
}

// Stop ends the session: the timer is cancelled and the identity cleared
// before Stop returns. This is the only way out of StateTerminated.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.state = StateIdle
	m.sess = Session{}
	m.gen = ""
	m.failures = 0
}

func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Monitor) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess
}

// Countdown projects the remaining time of the watched session.
// ok reports false when there is no time left or no session.
func (m *Monitor) Countdown() (Countdown, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateWatching {
		return Countdown{}, false
	}
	return Remaining(m.sess.Identity.ExpiryDate, nowFunc())
}

func untilMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now)
}
