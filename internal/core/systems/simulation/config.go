package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/collider/internal/core/systems/physics"
)

var (
	ErrInvalidConfig = errors.New("invalid simulation config")
	ErrUnknownBody   = errors.New("unknown body")
)

// Config holds the values the simulation step needs every tick.
type Config struct {
	// ArenaExtent is the half-extent of the square arena [-extent, extent].
	ArenaExtent float32 `json:"arena_extent" yaml:"arena_extent"`
	// TimeScale multiplies the delta handed to Step before integration.
	TimeScale    float64       `json:"time_scale" yaml:"time_scale"`
	TickInterval time.Duration `json:"tick_interval" yaml:"tick_interval"`
	// Workers bounds the goroutines used by the detection pass. 1 keeps it serial.
	Workers  int     `json:"workers" yaml:"workers"`
	BodySize float32 `json:"body_size" yaml:"body_size"`
}

func DefaultConfig() Config {
	return Config{
		ArenaExtent:  500,
		TimeScale:    1,
		TickInterval: 16 * time.Millisecond,
		Workers:      1,
		BodySize:     10,
	}
}

func (c Config) Validate() error {
	switch {
	case !(c.ArenaExtent > 0) || math.IsInf(float64(c.ArenaExtent), 1):
		return fmt.Errorf("%w: arena_extent must be positive, got %v", ErrInvalidConfig, c.ArenaExtent)
	case !(c.TimeScale > 0) || math.IsInf(c.TimeScale, 1):
		return fmt.Errorf("%w: time_scale must be positive, got %v", ErrInvalidConfig, c.TimeScale)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick_interval must be positive, got %v", ErrInvalidConfig, c.TickInterval)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	case !(c.BodySize > 0):
		return fmt.Errorf("%w: body_size must be positive, got %v", ErrInvalidConfig, c.BodySize)
	}
	return nil
}

// Scene describes a world and the bodies it starts with.
type Scene struct {
	Config Config       `json:"config" yaml:"config"`
	Bodies []BodyConfig `json:"bodies" yaml:"bodies"`
}

// BodyConfig describes one particle. A zero Size falls back to Config.BodySize.
type BodyConfig struct {
	X    float32 `json:"x" yaml:"x"`
	Y    float32 `json:"y" yaml:"y"`
	FX   float64 `json:"fx" yaml:"fx"`
	FY   float64 `json:"fy" yaml:"fy"`
	Mass float64 `json:"mass" yaml:"mass"`
	Size float32 `json:"size,omitempty" yaml:"size,omitempty"`
}

// LoadJSON reads a scene from JSON. Missing config values keep their defaults.
func LoadJSON(r io.Reader) (*Scene, error) {
	s := Scene{Config: DefaultConfig()}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &s, nil
}

// LoadYAML reads a scene from YAML. Missing config values keep their defaults.
func LoadYAML(r io.Reader) (*Scene, error) {
	s := Scene{Config: DefaultConfig()}
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &s, nil
}

// Build creates a World from the scene and adds every body in order.
func (s *Scene) Build(opts ...Option) (*World, error) {
	world, err := NewWorld(s.Config, opts...)
	if err != nil {
		return nil, err
	}
	for i, b := range s.Bodies {
		size := b.Size
		if size == 0 {
			size = s.Config.BodySize
		}
		particle, err := physics.NewParticle(
			physics.Point{X: b.X, Y: b.Y},
			physics.NewVector2D(b.FX, b.FY),
			b.Mass,
			size,
		)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		world.Add(particle)
	}
	return world, nil
}
