package simulation

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/collider/internal/core/events/bus"
	"github.com/zeusync/collider/internal/core/observability/log"
	"github.com/zeusync/collider/internal/core/systems/physics"
)

func newWorld(t *testing.T, cfg Config, opts ...Option) *World {
	t.Helper()
	opts = append([]Option{WithLogger(log.NewNop())}, opts...)
	w, err := NewWorld(cfg, opts...)
	require.NoError(t, err)
	return w
}

func addParticle(t *testing.T, w *World, x, y float32, fx, fy, mass float64, size float32) string {
	t.Helper()
	p, err := physics.NewParticle(physics.Point{X: x, Y: y}, physics.NewVector2D(fx, fy), mass, size)
	require.NoError(t, err)
	return w.Add(p)
}

func TestNewWorld_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArenaExtent = 0
	_, err := NewWorld(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWorld_AddRemove(t *testing.T) {
	w := newWorld(t, DefaultConfig())

	first := addParticle(t, w, 0, 0, 0, 0, 1, 10)
	second := addParticle(t, w, 50, 0, 0, 0, 1, 10)
	third := addParticle(t, w, 100, 0, 0, 0, 1, 10)
	require.Equal(t, 3, w.Len())
	require.NotEqual(t, first, second)

	require.NoError(t, w.Remove(second))
	require.ErrorIs(t, w.Remove(second), ErrUnknownBody)

	bodies := w.Bodies()
	require.Len(t, bodies, 2)
	require.Equal(t, float32(0), bodies[0].Position().X)
	require.Equal(t, float32(100), bodies[1].Position().X)

	body, ok := w.Get(third)
	require.True(t, ok)
	require.Equal(t, float32(100), body.Position().X)

	_, ok = w.Get(second)
	require.False(t, ok)
}

func TestWorld_StepResolvesContact(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	light := addParticle(t, w, 0, 0, 10, 0, 1, 10)
	heavy := addParticle(t, w, 8, 0, -5, 0, 2, 10)
	addParticle(t, w, 200, 200, 0, 0, 1, 10)

	report, err := w.Step(0)
	require.NoError(t, err)
	require.Equal(t, uint64(1), report.Tick)
	require.Equal(t, 3, report.Pairs)
	require.Equal(t, 1, report.Contacts)
	require.Positive(t, report.Collisions)
	require.Zero(t, report.BoundaryHits)

	a, _ := w.Get(light)
	b, _ := w.Get(heavy)
	require.Equal(t, physics.NewVector2D(-22.5, 0), a.Force())
	require.Equal(t, physics.NewVector2D(-7.5, 0), b.Force())
	require.Equal(t, uint64(1), w.Tick())
}

func TestWorld_StepIntegrates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeScale = 0.5
	w := newWorld(t, cfg)
	id := addParticle(t, w, 0, 0, 4, -2, 2, 10)

	_, err := w.Step(2)
	require.NoError(t, err)

	body, _ := w.Get(id)
	require.Equal(t, physics.Point{X: 2, Y: -1}, body.Position())
}

func TestWorld_StepBoundary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArenaExtent = 100
	w := newWorld(t, cfg)

	escaping := addParticle(t, w, 150, 0, 5, 3, 1, 10)
	returning := addParticle(t, w, 150, 50, -5, 0, 1, 10)
	corner := addParticle(t, w, -150, -150, -1, -1, 1, 10)
	inside := addParticle(t, w, 0, -50, 0, -4, 1, 10)

	report, err := w.Step(0)
	require.NoError(t, err)
	require.Equal(t, 2, report.BoundaryHits)

	forceOf := func(id string) physics.Vector2D {
		body, ok := w.Get(id)
		require.True(t, ok)
		return body.Force()
	}
	require.Equal(t, physics.NewVector2D(-5, 3), forceOf(escaping))
	require.Equal(t, physics.NewVector2D(-5, 0), forceOf(returning))
	require.Equal(t, physics.NewVector2D(1, 1), forceOf(corner))
	require.Equal(t, physics.NewVector2D(0, -4), forceOf(inside))

	// Once turned back the body is left alone even though it is still outside.
	report, err = w.Step(0)
	require.NoError(t, err)
	require.Zero(t, report.BoundaryHits)
	require.Equal(t, physics.NewVector2D(-5, 3), forceOf(escaping))
}

func TestWorld_Events(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArenaExtent = 100
	eventBus := bus.New()

	var contacts []ContactEvent
	var boundaries []BoundaryEvent
	_, err := eventBus.Subscribe(EventContact, func(e bus.Event) error {
		contacts = append(contacts, e.Data().(ContactEvent))
		return nil
	})
	require.NoError(t, err)
	_, err = eventBus.Subscribe(EventBoundary, func(e bus.Event) error {
		boundaries = append(boundaries, e.Data().(BoundaryEvent))
		return nil
	})
	require.NoError(t, err)

	w := newWorld(t, cfg, WithEventBus(eventBus))
	a := addParticle(t, w, 0, 0, 1, 0, 1, 10)
	b := addParticle(t, w, 0, 8, 0, -1, 1, 10)
	out := addParticle(t, w, 0, 120, 0, 1, 1, 10)

	_, err = w.Step(0)
	require.NoError(t, err)

	require.Len(t, contacts, 1)
	require.Equal(t, a, contacts[0].A)
	require.Equal(t, b, contacts[0].B)
	require.Equal(t, uint64(1), contacts[0].Tick)
	require.NotEmpty(t, contacts[0].Points)

	require.Len(t, boundaries, 1)
	require.Equal(t, out, boundaries[0].Body)
	require.True(t, boundaries[0].InvertY)
	require.False(t, boundaries[0].InvertX)
}

func TestWorld_DeterministicAcrossWorkers(t *testing.T) {
	scene := func(workers int) *Scene {
		rng := rand.New(rand.NewSource(42))
		cfg := DefaultConfig()
		cfg.ArenaExtent = 60
		cfg.Workers = workers
		s := &Scene{Config: cfg}
		for i := 0; i < 36; i++ {
			s.Bodies = append(s.Bodies, BodyConfig{
				X:    float32(i%6)*18 - 45,
				Y:    float32(i/6)*18 - 45,
				FX:   rng.Float64()*40 - 20,
				FY:   rng.Float64()*40 - 20,
				Mass: 1 + rng.Float64()*3,
			})
		}
		return s
	}

	serial, err := scene(1).Build(WithLogger(log.NewNop()))
	require.NoError(t, err)
	parallel, err := scene(4).Build(WithLogger(log.NewNop()))
	require.NoError(t, err)
	require.Equal(t, serial.Digest(), parallel.Digest())

	contacts := 0
	for i := 0; i < 200; i++ {
		r1, err := serial.Step(0.05)
		require.NoError(t, err)
		r2, err := parallel.Step(0.05)
		require.NoError(t, err)
		require.Equal(t, r1, r2)
		require.Equal(t, serial.Digest(), parallel.Digest(), "diverged at tick %d", i+1)
		contacts += r1.Contacts
	}
	require.Positive(t, contacts)
}

func TestWorld_Snapshot(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	id := addParticle(t, w, 3, 4, 1, 2, 5, 6)

	snap := w.Snapshot()
	require.Equal(t, uint64(0), snap.Tick)
	require.Equal(t, float32(500), snap.Extent)
	require.Equal(t, []BodyState{{ID: id, X: 3, Y: 4, FX: 1, FY: 2, Mass: 5, Size: 6}}, snap.Bodies)

	before := w.Digest()
	_, err := w.Step(1)
	require.NoError(t, err)
	require.NotEqual(t, before, w.Digest())
	require.Equal(t, uint64(1), w.Snapshot().Tick)
}

func TestWorld_System(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	addParticle(t, w, 0, 0, 2, 0, 1, 10)

	require.Equal(t, "physics", w.Name())
	require.NoError(t, w.Initialize(t.Context()))
	require.NoError(t, w.Update(0.5))
	require.Equal(t, uint64(1), w.Tick())
	require.Equal(t, float32(1), w.Bodies()[0].Position().X)
	require.NoError(t, w.Shutdown(t.Context()))
}

func TestLoadYAML(t *testing.T) {
	doc := `
config:
  arena_extent: 250
  tick_interval: 20ms
  workers: 2
bodies:
  - {x: 0, y: 0, fx: 10, fy: 0, mass: 1}
  - {x: 8, y: 0, fx: -5, fy: 0, mass: 2, size: 4}
`
	scene, err := LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, float32(250), scene.Config.ArenaExtent)
	require.Equal(t, 20*time.Millisecond, scene.Config.TickInterval)
	require.Equal(t, 2, scene.Config.Workers)
	require.Equal(t, 1.0, scene.Config.TimeScale)
	require.Len(t, scene.Bodies, 2)

	w, err := scene.Build(WithLogger(log.NewNop()))
	require.NoError(t, err)
	snap := w.Snapshot()
	require.Len(t, snap.Bodies, 2)
	require.Equal(t, float32(10), snap.Bodies[0].Size)
	require.Equal(t, float32(4), snap.Bodies[1].Size)
}

func TestLoadJSON(t *testing.T) {
	scene, err := LoadJSON(strings.NewReader(`{"config": {"time_scale": 2}, "bodies": [{"x": 1, "y": 2, "mass": 0}]}`))
	require.NoError(t, err)
	require.Equal(t, 2.0, scene.Config.TimeScale)
	require.Equal(t, float32(500), scene.Config.ArenaExtent)

	_, err = scene.Build(WithLogger(log.NewNop()))
	require.ErrorIs(t, err, physics.ErrInvalidMass)

	_, err = LoadJSON(strings.NewReader(`{"config":`))
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"extent", func(c *Config) { c.ArenaExtent = -1 }},
		{"time_scale", func(c *Config) { c.TimeScale = 0 }},
		{"tick_interval", func(c *Config) { c.TickInterval = 0 }},
		{"workers", func(c *Config) { c.Workers = 0 }},
		{"body_size", func(c *Config) { c.BodySize = 0 }},
	}
	require.NoError(t, DefaultConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
