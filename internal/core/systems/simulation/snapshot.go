package simulation

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// BodyState is the externally visible state of one body.
type BodyState struct {
	ID   string  `json:"id"`
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	FX   float64 `json:"fx"`
	FY   float64 `json:"fy"`
	Mass float64 `json:"mass"`
	Size float32 `json:"size,omitempty"`
}

// Snapshot is a copy of the world taken between ticks.
type Snapshot struct {
	Tick   uint64      `json:"tick"`
	Extent float32     `json:"extent"`
	Bodies []BodyState `json:"bodies"`
}

type sized interface {
	Size() float32
}

func (w *World) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	snap := Snapshot{
		Tick:   w.tick,
		Extent: w.cfg.ArenaExtent,
		Bodies: make([]BodyState, len(w.entries)),
	}
	for i, e := range w.entries {
		pos, force := e.body.Position(), e.body.Force()
		state := BodyState{
			ID:   e.id,
			X:    pos.X,
			Y:    pos.Y,
			FX:   force.X,
			FY:   force.Y,
			Mass: e.body.Mass(),
		}
		if s, ok := e.body.(sized); ok {
			state.Size = s.Size()
		}
		snap.Bodies[i] = state
	}
	return snap
}

// Digest fingerprints the position and force of every body in order. Two
// worlds with equal digests hold bit-identical state.
func (w *World) Digest() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()

	h := xxhash.New()
	var buf [8]byte
	write := func(bits uint64) {
		binary.LittleEndian.PutUint64(buf[:], bits)
		_, _ = h.Write(buf[:])
	}
	for _, e := range w.entries {
		pos, force := e.body.Position(), e.body.Force()
		write(uint64(math.Float32bits(pos.X)))
		write(uint64(math.Float32bits(pos.Y)))
		write(math.Float64bits(force.X))
		write(math.Float64bits(force.Y))
	}
	return h.Sum64()
}
