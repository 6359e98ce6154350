// Package connectivity tracks real and simulated network reachability for
// the cashier terminal and exposes a single effective-online signal.
package connectivity

import (
	"sync"

	"go.uber.org/zap"
)

// Monitor derives the effective connectivity state:
//
//	effectiveOnline = rawNetworkOnline AND NOT simulatedOffline
//
// It is push-based: the platform reports reachability edges via
// SetNetworkOnline and an operator toggles SetSimulatedOffline. On an
// offline->online effective transition the monitor arms a one-shot
// auto-sync flag instead of invoking sync itself, which keeps flapping
// connectivity from triggering sync storms.
type Monitor struct {
	mu               sync.Mutex
	networkOnline    bool
	simulatedOffline bool
	autoSyncEligible bool
	listeners        map[int]func(online bool)
	nextID           int
	logger           *zap.Logger
}

// NewMonitor returns a monitor that assumes the network is reachable
// until the platform reports otherwise.
func NewMonitor(logger *zap.Logger) *Monitor {
	return &Monitor{
		networkOnline: true,
		listeners:     make(map[int]func(bool)),
		logger:        logger,
	}
}

// Online reports the current effective connectivity.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.effective()
}

// NetworkOnline reports raw platform reachability, ignoring simulation.
func (m *Monitor) NetworkOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.networkOnline
}

// SimulatedOffline reports whether the operator override is active.
func (m *Monitor) SimulatedOffline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.simulatedOffline
}

// SetNetworkOnline records a platform reachability event.
func (m *Monitor) SetNetworkOnline(online bool) {
	m.transition(func() { m.networkOnline = online })
}

// SetSimulatedOffline sets the operator-controlled override used for
// testing offline capture at the counter.
func (m *Monitor) SetSimulatedOffline(simulated bool) {
	m.transition(func() { m.simulatedOffline = simulated })
}

// ConsumeAutoSync returns true at most once per offline->online edge.
func (m *Monitor) ConsumeAutoSync() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	eligible := m.autoSyncEligible
	m.autoSyncEligible = false
	return eligible
}

// Subscribe registers a listener invoked on every effective transition.
// The returned function unsubscribes it.
func (m *Monitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *Monitor) effective() bool {
	return m.networkOnline && !m.simulatedOffline
}

// transition applies a state mutation and, if the effective state
// changed, arms the one-shot flag on a true edge and notifies listeners
// outside the lock.
func (m *Monitor) transition(apply func()) {
	m.mu.Lock()
	before := m.effective()
	apply()
	after := m.effective()
	if before == after {
		m.mu.Unlock()
		return
	}
	if after {
		m.autoSyncEligible = true
	}
	fns := make([]func(bool), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	m.logger.Info("connectivity transition",
		zap.Bool("online", after))
	for _, fn := range fns {
		fn(after)
	}
}
