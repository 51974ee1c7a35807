package session

import (
	"context"
	"time"
)

// Countdown is the remaining-time view derived from an expiry timestamp.
// Never persisted; recomputed from the clock on every refresh.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Remaining breaks the time left until expiry into days/hours/minutes/seconds.
// ok reports false once expiry is no longer in the future (the expired sentinel).
func Remaining(expiry, now time.Time) (Countdown, bool) {
	diff := expiry.Sub(now)
	if diff <= 0 {
		return Countdown{}, false
	}
	secs := int(diff / time.Second)
	return Countdown{
		Days:    secs / 86400,
		Hours:   secs / 3600 % 24,
		Minutes: secs / 60 % 60,
		Seconds: secs % 60,
	}, true
}

// Project emits a fresh snapshot every interval until the expiry passes or
// ctx is cancelled, then closes the channel. It is display-only and safe to
// start and stop freely; it never terminates a session.
func Project(ctx context.Context, expiry time.Time, interval time.Duration) <-chan Countdown {
	ch := make(chan Countdown, 1)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cd, ok := Remaining(expiry, nowFunc())
				if !ok {
					return
				}
				select {
				case ch <- cd:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch
}
