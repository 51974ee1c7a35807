package session

import (
	"context"
	"sync"
	"time"

	"github.com/coursatplus/coursat/core"
)

// Registry owns every live session Monitor, keyed by activation code.
// All session mutations are funnelled through Activate/Logout so that a code
// can never accumulate more than one running timer.
type Registry struct {
	svc      *Service
	gw       Gateway
	logger   core.Logger
	interval time.Duration

	mu       sync.Mutex
	monitors map[string]*Monitor
}

func NewRegistry(gw Gateway, logger core.Logger, interval time.Duration) *Registry {
	return &Registry{
		svc:      NewService(gw),
		gw:       gw,
		logger:   logger,
		interval: interval,
		monitors: make(map[string]*Monitor),
	}
}

// Activate validates code and, on success, starts watching it.
// Re-activating a code replaces its previous monitor.
func (r *Registry) Activate(ctx context.Context, code string) (Identity, error) {
	identity, err := r.svc.Validate(ctx, code)
	if err != nil {
		return Identity{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.monitors[identity.Code]; ok {
		prev.Stop()
	}
	mon := NewMonitor(r.gw, r.logger, r.interval)
	mon.Start(identity)
	r.monitors[identity.Code] = mon
	return identity, nil
}

func (r *Registry) Get(code string) (*Monitor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mon, ok := r.monitors[code]
	return mon, ok
}

// Logout stops and forgets the monitor for code, if any. The timer is
// cancelled before Logout returns.
func (r *Registry) Logout(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if mon, ok := r.monitors[code]; ok {
		mon.Stop()
		delete(r.monitors, code)
	}
}

// Shutdown stops every live monitor.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for code, mon := range r.monitors {
		mon.Stop()
		delete(r.monitors, code)
	}
}
