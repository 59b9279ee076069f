package systems

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeusync/collider/internal/core/observability/log"
)

// TickFunc is invoked after every tick with the tick number and the delta
// that was handed to the systems.
type TickFunc func(tick uint64, deltaTime float64)

// Manager drives registered systems at a fixed interval, highest priority first.
type Manager struct {
	mu       sync.RWMutex
	systems  []System
	metrics  map[string]*Metrics
	onTick   []TickFunc
	interval time.Duration
	logger   log.Log

	tick    atomic.Uint64
	running atomic.Bool
}

// NewManager creates a manager stepping every interval. A nil logger falls
// back to the process-wide one.
func NewManager(interval time.Duration, logger log.Log) (*Manager, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if logger == nil {
		logger = log.Provide()
	}
	return &Manager{
		metrics:  make(map[string]*Metrics),
		interval: interval,
		logger:   logger.With(log.String("component", "systems.manager")),
	}, nil
}

// Register adds a system. Names must be unique.
func (m *Manager) Register(s System) error {
	if s == nil {
		return ErrNilSystem
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.metrics[s.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, s.Name())
	}
	m.systems = append(m.systems, s)
	sort.SliceStable(m.systems, func(i, j int) bool {
		return m.systems[i].Priority() > m.systems[j].Priority()
	})
	m.metrics[s.Name()] = &Metrics{}
	return nil
}

func (m *Manager) Unregister(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.systems {
		if s.Name() == name {
			m.systems = append(m.systems[:i], m.systems[i+1:]...)
			delete(m.metrics, name)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotRegistered, name)
}

// Systems returns the registered systems in execution order.
func (m *Manager) Systems() []System {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]System, len(m.systems))
	copy(out, m.systems)
	return out
}

// OnTick registers a callback run after each tick.
func (m *Manager) OnTick(fn TickFunc) {
	m.mu.Lock()
	m.onTick = append(m.onTick, fn)
	m.mu.Unlock()
}

// Metrics returns a copy of the metrics collected for the named system.
func (m *Manager) Metrics(name string) (Metrics, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	metrics, ok := m.metrics[name]
	if !ok {
		return Metrics{}, false
	}
	return *metrics, true
}

// Ticks returns how many ticks have completed.
func (m *Manager) Ticks() uint64 {
	return m.tick.Load()
}

func (m *Manager) InitializeAll(ctx context.Context) error {
	for _, s := range m.Systems() {
		if err := s.Initialize(ctx); err != nil {
			return fmt.Errorf("initialize %s: %w", s.Name(), err)
		}
	}
	return nil
}

// ShutdownAll stops systems in reverse execution order and reports every
// failure.
func (m *Manager) ShutdownAll(ctx context.Context) error {
	list := m.Systems()
	var errs []error
	for i := len(list) - 1; i >= 0; i-- {
		if err := list[i].Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown %s: %w", list[i].Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Tick runs every system once with deltaTime. A failing system is logged and
// recorded in its metrics but does not stop the others.
func (m *Manager) Tick(deltaTime float64) error {
	list := m.Systems()
	var errs []error
	for _, s := range list {
		start := time.Now()
		err := s.Update(deltaTime)
		elapsed := time.Since(start)

		m.mu.Lock()
		if metrics, ok := m.metrics[s.Name()]; ok {
			metrics.record(start, elapsed, err)
		}
		m.mu.Unlock()

		if err != nil {
			m.logger.Error("system update failed",
				log.String("system", s.Name()),
				log.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}

	tick := m.tick.Add(1)
	m.mu.RLock()
	callbacks := m.onTick
	m.mu.RUnlock()
	for _, fn := range callbacks {
		fn(tick, deltaTime)
	}
	return errors.Join(errs...)
}

// Run ticks with a fixed delta of interval seconds until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	if !m.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer m.running.Store(false)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	dt := m.interval.Seconds()

	m.logger.Info("tick loop started", log.Duration("interval", m.interval))
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("tick loop stopped", log.Uint64("ticks", m.tick.Load()))
			return nil
		case <-ticker.C:
			_ = m.Tick(dt)
		}
	}
}
