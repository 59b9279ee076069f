package simulation

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeusync/collider/internal/core/events/bus"
	"github.com/zeusync/collider/internal/core/observability/log"
	"github.com/zeusync/collider/internal/core/systems/physics"
	"github.com/zeusync/collider/pkg/concurrent"
)

const (
	EventContact  = "physics.contact"
	EventBoundary = "physics.boundary"

	eventSource = "simulation"
)

// ContactEvent is published once per resolved pair.
type ContactEvent struct {
	Tick   uint64          `json:"tick"`
	A      string          `json:"a"`
	B      string          `json:"b"`
	Points []physics.Point `json:"points"`
	// Angle is the contact angle of the first collision found.
	Angle float32 `json:"angle"`
}

// BoundaryEvent is published when a body has a force component turned back
// into the arena.
type BoundaryEvent struct {
	Tick     uint64        `json:"tick"`
	Body     string        `json:"body"`
	Position physics.Point `json:"position"`
	InvertX  bool          `json:"invert_x"`
	InvertY  bool          `json:"invert_y"`
}

// StepReport summarizes one call to Step.
type StepReport struct {
	Tick         uint64
	Pairs        int
	Contacts     int
	Collisions   int
	BoundaryHits int
}

type pair struct {
	i, j int
}

// Step advances the world by one tick: every touching pair i<j is resolved
// once in index order, bodies outside the arena are turned back, then every
// body is integrated by delta scaled by the configured time scale.
//
// Detection may run on several workers. Resolution is always serial so the
// outcome does not depend on the worker count. The tick always completes;
// the returned error only carries event handler failures.
func (w *World) Step(delta float64) (StepReport, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	tick := w.tick + 1
	report := StepReport{Tick: tick}

	pairs := make([]pair, 0, len(w.entries)*(len(w.entries)-1)/2)
	for i := range w.entries {
		for j := i + 1; j < len(w.entries); j++ {
			pairs = append(pairs, pair{i: i, j: j})
		}
	}
	report.Pairs = len(pairs)

	found := make([][]physics.Collision, len(pairs))
	err := concurrent.ForEach(context.Background(), len(pairs), w.cfg.Workers, func(_ context.Context, k int) error {
		p := pairs[k]
		found[k] = w.entries[p.i].body.CollisionsWith(w.entries[p.j].body)
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("detect collisions: %w", err)
	}

	var publishErrs []error

	for k, p := range pairs {
		collisions := found[k]
		if len(collisions) == 0 {
			continue
		}
		a, b := w.entries[p.i], w.entries[p.j]

		// Contact points reference the meshes, so read them before anything moves.
		points := make([]physics.Point, len(collisions))
		for n, c := range collisions {
			points[n] = c.Pos()
		}
		angle := collisions[0].Angle()

		a.body.Collide(b.body)
		report.Contacts++
		report.Collisions += len(collisions)

		w.logger.Debug("contact",
			log.Uint64("tick", tick),
			log.String("a", a.id),
			log.String("b", b.id),
			log.Int("collisions", len(collisions)),
			log.Float32("angle", angle),
		)
		publishErrs = append(publishErrs, w.publish(EventContact, ContactEvent{
			Tick:   tick,
			A:      a.id,
			B:      b.id,
			Points: points,
			Angle:  angle,
		}))
	}

	extent := w.cfg.ArenaExtent
	for _, e := range w.entries {
		pos, force := e.body.Position(), e.body.Force()
		invertX := outward(pos.X, force.X, extent)
		invertY := outward(pos.Y, force.Y, extent)
		if !invertX && !invertY {
			continue
		}

		if invertX && invertY {
			e.body.Bounce()
		} else if invertX {
			e.body.SetForce(physics.NewVector2D(-force.X, force.Y))
		} else {
			e.body.SetForce(physics.NewVector2D(force.X, -force.Y))
		}
		report.BoundaryHits++

		w.logger.Debug("boundary",
			log.Uint64("tick", tick),
			log.String("body", e.id),
			log.Bool("invert_x", invertX),
			log.Bool("invert_y", invertY),
		)
		publishErrs = append(publishErrs, w.publish(EventBoundary, BoundaryEvent{
			Tick:     tick,
			Body:     e.id,
			Position: pos,
			InvertX:  invertX,
			InvertY:  invertY,
		}))
	}

	dt := delta * w.cfg.TimeScale
	for _, e := range w.entries {
		e.body.Advance(dt)
	}
	w.tick = tick

	return report, errors.Join(publishErrs...)
}

// outward reports whether a coordinate beyond the extent is still being
// pushed further out. Unlike plain inversion, a body already heading back in
// keeps its force.
func outward(coord float32, force float64, extent float32) bool {
	return (coord > extent && force > 0) || (coord < -extent && force < 0)
}

func (w *World) publish(eventType string, data any) error {
	if w.bus == nil {
		return nil
	}
	return w.bus.Publish(bus.NewEvent(eventType, eventSource, data, 0, nil))
}
