// Package metrics provides per-run diagnostics evaluated over engine
// snapshots: energy and momentum drift, and peak body speed.
package metrics

import (
	"math"

	"github.com/Fer14/gravitybox/internal/engine"
)

// EnergyDrift tracks the maximum relative drift of total mechanical energy
// from its first observed value. Wall rebounds deliberately shed energy, so
// a bounded run with no wall contact should keep this small.
type EnergyDrift struct {
	initial float64
	max     float64
	samples int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (m *EnergyDrift) Name() string { return "energy_drift" }

func (m *EnergyDrift) Observe(e *engine.Engine, t float64) {
	energy := e.TotalEnergy()
	if m.samples == 0 {
		m.initial = energy
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(energy-m.initial) / math.Abs(m.initial)
		m.max = math.Max(m.max, drift)
	}
}

func (m *EnergyDrift) Value() float64 { return m.max }

func (m *EnergyDrift) Reset() {
	m.initial = 0
	m.max = 0
	m.samples = 0
}

// MomentumDrift tracks the maximum deviation of total linear momentum from
// its first observed value. With no wall contact the pairwise forces cancel
// exactly and this stays at numerical noise.
type MomentumDrift struct {
	initial engine.Vec2
	max     float64
	samples int
}

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(e *engine.Engine, t float64) {
	p := e.Momentum()
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++

	m.max = math.Max(m.max, p.Sub(m.initial).Len())
}

func (m *MomentumDrift) Value() float64 { return m.max }

func (m *MomentumDrift) Reset() {
	m.initial = engine.Vec2{}
	m.max = 0
	m.samples = 0
}

// MaxSpeed records the fastest body speed seen during a run.
type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(e *engine.Engine, t float64) {
	for _, b := range e.Bodies() {
		m.max = math.Max(m.max, b.Vel.Len())
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }
