package simulation

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/zeusync/collider/internal/core/events/bus"
	"github.com/zeusync/collider/internal/core/observability/log"
	"github.com/zeusync/collider/internal/core/systems"
	"github.com/zeusync/collider/internal/core/systems/physics"
)

var _ systems.System = (*World)(nil)

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger. The process-wide logger is used otherwise.
func WithLogger(logger log.Log) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithEventBus publishes contact and boundary events to b. Handlers run
// inside Step and must not call back into the World.
func WithEventBus(b bus.EventBus) Option {
	return func(w *World) {
		w.bus = b
	}
}

type entry struct {
	id   string
	body physics.Interact
}

// World owns an ordered collection of bodies and steps them together.
// Insertion order is the index order used for pair evaluation.
type World struct {
	mu      sync.RWMutex
	cfg     Config
	entries []entry
	tick    uint64

	logger log.Log
	bus    bus.EventBus
}

func NewWorld(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{cfg: cfg}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = log.Provide()
	}
	w.logger = w.logger.With(log.String("component", "simulation"))

	w.logger.Info("world created",
		log.Float32("arena_extent", cfg.ArenaExtent),
		log.Float64("time_scale", cfg.TimeScale),
		log.Int("workers", cfg.Workers),
	)
	return w, nil
}

// Add appends a body and returns its handle.
func (w *World) Add(body physics.Interact) string {
	id := uuid.NewString()
	w.mu.Lock()
	w.entries = append(w.entries, entry{id: id, body: body})
	w.mu.Unlock()
	return id
}

// Remove drops the body with the given handle, keeping the order of the rest.
func (w *World) Remove(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, e := range w.entries {
		if e.id == id {
			w.entries = append(w.entries[:i], w.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownBody, id)
}

func (w *World) Get(id string) (physics.Interact, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, e := range w.entries {
		if e.id == id {
			return e.body, true
		}
	}
	return nil, false
}

// Bodies returns the bodies in evaluation order.
func (w *World) Bodies() []physics.Interact {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]physics.Interact, len(w.entries))
	for i, e := range w.entries {
		out[i] = e.body
	}
	return out
}

func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entries)
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tick
}

func (w *World) Config() Config { return w.cfg }

// System

func (w *World) Name() string               { return "physics" }
func (w *World) Priority() systems.Priority { return systems.PriorityHigh }

func (w *World) Initialize(context.Context) error {
	w.logger.Debug("initialized", log.Int("bodies", w.Len()))
	return nil
}

func (w *World) Update(deltaTime float64) error {
	_, err := w.Step(deltaTime)
	return err
}

func (w *World) Shutdown(context.Context) error {
	w.logger.Info("shutdown",
		log.Uint64("ticks", w.Tick()),
		log.Int("bodies", w.Len()),
	)
	return nil
}
