package session

import (
	"context"
	"sync"
	"time"
)

// fakeGateway is an in-memory Gateway recording every lookup.
type fakeGateway struct {
	mu     sync.Mutex
	codes  map[string]ActivationCode
	err    error
	onFind func() // runs inside FindActivationCode, before returning
	calls  int
}

func newFakeGateway(codes ...ActivationCode) *fakeGateway {
	gw := &fakeGateway{codes: make(map[string]ActivationCode)}
	for _, ac := range codes {
		gw.codes[ac.Code] = ac
	}
	return gw
}

func (gw *fakeGateway) FindActivationCode(_ context.Context, code string) (ActivationCode, error) {
	gw.mu.Lock()
	gw.calls++
	ac, ok := gw.codes[code]
	err := gw.err
	hook := gw.onFind
	gw.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return ActivationCode{}, err
	}
	if !ok {
		return ActivationCode{}, ErrNotFound
	}
	return ac, nil
}

func (gw *fakeGateway) set(ac ActivationCode) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	gw.codes[ac.Code] = ac
}

func (gw *fakeGateway) remove(code string) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	delete(gw.codes, code)
}

func (gw *fakeGateway) setErr(err error) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	gw.err = err
}

func (gw *fakeGateway) callCount() int {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	return gw.calls
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func setNow(t time.Time) func() {
	nowFunc = func() time.Time { return t }
	return func() { nowFunc = time.Now }
}
