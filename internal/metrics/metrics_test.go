package metrics

import (
	"math"
	"testing"

	"github.com/Fer14/gravitybox/internal/engine"
)

func seededEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e := engine.New(engine.DefaultConfig())
	e.Seed([]engine.Body{
		{Pos: engine.Vec2{X: 300, Y: 300}, Vel: engine.Vec2{X: 0.2, Y: 0}, Mass: 10, Radius: engine.RadiusForMass(10)},
		{Pos: engine.Vec2{X: 500, Y: 320}, Vel: engine.Vec2{X: -0.2, Y: 0}, Mass: 10, Radius: engine.RadiusForMass(10)},
	})
	return e
}

func TestMomentumConservedAwayFromWalls(t *testing.T) {
	e := seededEngine(t)
	m := NewMomentumDrift()

	for i := 0; i < 200; i++ {
		m.Observe(e, float64(i)/60)
		if err := e.Step(1.0 / 60); err != nil {
			t.Fatalf("step: %v", err)
		}
	}

	if m.Value() > 1e-9 {
		t.Errorf("momentum drifted with no wall contact: %g", m.Value())
	}
}

func TestEnergyDriftFirstObservationIsBaseline(t *testing.T) {
	e := seededEngine(t)
	m := NewEnergyDrift()

	m.Observe(e, 0)
	if m.Value() != 0 {
		t.Errorf("single observation should have zero drift, got %g", m.Value())
	}
}

func TestEnergyDriftReset(t *testing.T) {
	e := seededEngine(t)
	m := NewEnergyDrift()

	m.Observe(e, 0)
	for i := 0; i < 50; i++ {
		if err := e.Step(0.5); err != nil {
			t.Fatalf("step: %v", err)
		}
		m.Observe(e, float64(i)*0.5)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected zero after reset, got %g", m.Value())
	}
}

func TestMaxSpeed(t *testing.T) {
	e := engine.New(engine.DefaultConfig())
	e.Seed([]engine.Body{
		{Pos: engine.Vec2{X: 400, Y: 300}, Vel: engine.Vec2{X: 3, Y: 4}, Mass: 10, Radius: engine.RadiusForMass(10)},
	})

	m := NewMaxSpeed()
	m.Observe(e, 0)

	if math.Abs(m.Value()-5) > 1e-12 {
		t.Errorf("expected max speed 5, got %g", m.Value())
	}
}
