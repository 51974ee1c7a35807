package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coursatplus/coursat/core"
)

func newTestMonitor(gw Gateway) *Monitor {
	// interval is irrelevant here; ticks are driven by hand
	return NewMonitor(gw, nopLogger{}, time.Hour)
}

// Repeated ticks against an unchanged, still-valid record never mutate the
// identity and never leave StateWatching.
func TestMonitorTick_idempotent(t *testing.T) {
	now := time.Date(2021, time.March, 10, 12, 0, 0, 0, time.UTC)
	defer setNow(now)()

	ac := ActivationCode{Code: "1111111", StudentName: "Omar", Section: "A", ExpiryDate: now.AddDate(0, 0, 5)}
	gw := newFakeGateway(ac)
	m := newTestMonitor(gw)
	ctx, gen := m.begin(NewIdentity(ac))

	for i := 0; i < 3; i++ {
		m.tick(ctx, gen)
	}

	assert.Equal(t, StateWatching, m.State())
	sess := m.Session()
	assert.True(t, sess.Authenticated)
	assert.Equal(t, NewIdentity(ac), sess.Identity)
	assert.Equal(t, TerminationNone, sess.Reason)
	assert.Equal(t, 3, gw.callCount())
}

// A locally expired session terminates on the next tick without a network call.
func TestMonitorTick_localExpiry(t *testing.T) {
	now := time.Date(2021, time.March, 10, 21, 5, 0, 0, time.UTC)
	defer setNow(now)()

	// code expired today at 21:00, clock already past it
	expiry := time.Date(2021, time.March, 10, 21, 0, 0, 0, time.UTC)
	ac := ActivationCode{Code: "2222222", StudentName: "Sara", ExpiryDate: expiry}
	gw := newFakeGateway(ac)
	m := newTestMonitor(gw)
	ctx, gen := m.begin(NewIdentity(ac))

	m.tick(ctx, gen)

	assert.Equal(t, StateTerminated, m.State())
	sess := m.Session()
	assert.False(t, sess.Authenticated)
	assert.Equal(t, TerminationExpired, sess.Reason)
	assert.Equal(t, 0, gw.callCount(), "local expiry must skip the network call")
}

// Deleting the code from the store mid-session terminates with reason revoked.
func TestMonitorTick_revoked(t *testing.T) {
	now := time.Date(2021, time.March, 10, 12, 0, 0, 0, time.UTC)
	defer setNow(now)()

	ac := ActivationCode{Code: "1111111", ExpiryDate: now.AddDate(0, 0, 5)}
	gw := newFakeGateway(ac)
	m := newTestMonitor(gw)
	ctx, gen := m.begin(NewIdentity(ac))

	m.tick(ctx, gen)
	assert.Equal(t, StateWatching, m.State())

	gw.remove(ac.Code)
	m.tick(ctx, gen)

	assert.Equal(t, StateTerminated, m.State())
	assert.Equal(t, TerminationRevoked, m.Session().Reason)
}

// A changed store expiry is folded into the cached identity; nothing else moves.
func TestMonitorTick_driftReconciliation(t *testing.T) {
	now := time.Date(2021, time.March, 10, 12, 0, 0, 0, time.UTC)
	defer setNow(now)()

	ac := ActivationCode{Code: "1111111", StudentName: "Omar", Section: "A", ExpiryDate: now.AddDate(0, 0, 5)}
	gw := newFakeGateway(ac)
	m := newTestMonitor(gw)
	ctx, gen := m.begin(NewIdentity(ac))

	extended := now.AddDate(0, 0, 9)
	ac.ExpiryDate = extended
	gw.set(ac)
	m.tick(ctx, gen)

	assert.Equal(t, StateWatching, m.State())
	sess := m.Session()
	assert.True(t, extended.Equal(sess.Identity.ExpiryDate))
	assert.Equal(t, "Omar", sess.Identity.Name)
	assert.Equal(t, "A", sess.Identity.Section)
	assert.True(t, sess.Authenticated)
}

// Transport failures during reconciliation are a no-op; the session survives.
func TestMonitorTick_networkFailureSwallowed(t *testing.T) {
	now := time.Date(2021, time.March, 10, 12, 0, 0, 0, time.UTC)
	defer setNow(now)()

	ac := ActivationCode{Code: "1111111", ExpiryDate: now.AddDate(0, 0, 5)}
	gw := newFakeGateway(ac)
	m := newTestMonitor(gw)
	ctx, gen := m.begin(NewIdentity(ac))

	gw.setErr(core.NewRemoteError(core.RemoteNetwork, "could not reach the server", nil))
	m.tick(ctx, gen)
	gw.setErr(core.NewRemoteError(core.RemoteServer, "the platform server is having a problem", nil))
	m.tick(ctx, gen)

	assert.Equal(t, StateWatching, m.State())
	sess := m.Session()
	assert.True(t, sess.Authenticated)
	assert.Equal(t, NewIdentity(ac), sess.Identity)
}

// Once terminated, no tick may bring the session back without a logout.
func TestMonitor_monotonicTermination(t *testing.T) {
	now := time.Date(2021, time.March, 10, 12, 0, 0, 0, time.UTC)
	defer setNow(now)()

	ac := ActivationCode{Code: "1111111", ExpiryDate: now.AddDate(0, 0, 5)}
	gw := newFakeGateway(ac)
	m := newTestMonitor(gw)
	ctx, gen := m.begin(NewIdentity(ac))

	gw.remove(ac.Code)
	m.tick(ctx, gen)
	assert.Equal(t, StateTerminated, m.State())

	// the record coming back changes nothing
	gw.set(ac)
	for i := 0; i < 3; i++ {
		m.tick(ctx, gen)
	}
	assert.Equal(t, StateTerminated, m.State())
	assert.Equal(t, TerminationRevoked, m.Session().Reason)
}

// A tick that was already in flight when logout fired must abandon itself.
func TestMonitor_logoutAbandonsInFlightTick(t *testing.T) {
	now := time.Date(2021, time.March, 10, 12, 0, 0, 0, time.UTC)
	defer setNow(now)()

	ac := ActivationCode{Code: "1111111", ExpiryDate: now.AddDate(0, 0, 5)}
	gw := newFakeGateway(ac)
	m := newTestMonitor(gw)
	ctx, gen := m.begin(NewIdentity(ac))

	// logout lands while the store lookup is in flight, and the store would
	// have reported the code revoked
	gw.remove(ac.Code)
	gw.onFind = func() { m.Stop() }
	m.tick(ctx, gen)

	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, Session{}, m.Session())
}

// Five days of simulated ticks against a code expiring in five days.
func TestMonitor_fiveDayScenario(t *testing.T) {
	start := time.Date(2021, time.March, 10, 12, 0, 0, 0, time.UTC)
	defer setNow(start)()

	ac := ActivationCode{Code: "1111111", StudentName: "Omar", ExpiryDate: start.AddDate(0, 0, 5)}
	gw := newFakeGateway(ac)
	m := newTestMonitor(gw)
	ctx, gen := m.begin(NewIdentity(ac))

	cd, ok := m.Countdown()
	assert.True(t, ok)
	assert.Equal(t, Countdown{Days: 5}, cd)

	for day := 0; day < 5; day++ {
		nowFunc = func() time.Time { return start.AddDate(0, 0, day).Add(time.Hour) }
		m.tick(ctx, gen)
		assert.Equal(t, StateWatching, m.State())
	}

	nowFunc = func() time.Time { return start.AddDate(0, 0, 5).Add(time.Second) }
	m.tick(ctx, gen)
	assert.Equal(t, StateTerminated, m.State())
	assert.Equal(t, TerminationExpired, m.Session().Reason)
}

func TestRegistry(t *testing.T) {
	now := time.Now().UTC()
	ac := ActivationCode{Code: "1111111", StudentName: "Omar", ExpiryDate: now.AddDate(0, 0, 5)}
	gw := newFakeGateway(ac)
	reg := NewRegistry(gw, nopLogger{}, time.Hour)
	defer reg.Shutdown()

	_, err := reg.Activate(context.Background(), "0000000")
	assert.Equal(t, ErrInvalidCode, err)
	_, ok := reg.Get("0000000")
	assert.False(t, ok)

	identity, err := reg.Activate(context.Background(), ac.Code)
	assert.NoError(t, err)
	assert.Equal(t, ac.StudentName, identity.Name)

	mon, ok := reg.Get(ac.Code)
	assert.True(t, ok)
	assert.Equal(t, StateWatching, mon.State())

	// re-activation replaces the monitor; the old timer is stopped
	_, err = reg.Activate(context.Background(), ac.Code)
	assert.NoError(t, err)
	fresh, ok := reg.Get(ac.Code)
	assert.True(t, ok)
	assert.NotSame(t, mon, fresh)
	assert.Equal(t, StateIdle, mon.State())
	assert.Equal(t, StateWatching, fresh.State())

	reg.Logout(ac.Code)
	assert.Equal(t, StateIdle, fresh.State())
	_, ok = reg.Get(ac.Code)
	assert.False(t, ok)
}
