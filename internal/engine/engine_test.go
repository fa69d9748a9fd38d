package engine

import (
	"errors"
	"math"
	"testing"
)

func mustBody(t *testing.T, pos, vel Vec2, mass float64) Body {
	t.Helper()
	b, err := NewBody(pos, vel, mass)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	return b
}

func TestStepRejectsNonPositiveDt(t *testing.T) {
	e := New(DefaultConfig())

	for _, dt := range []float64{0, -0.01} {
		if err := e.Step(dt); !errors.Is(err, ErrNonPositiveStep) {
			t.Errorf("dt=%f: expected ErrNonPositiveStep, got %v", dt, err)
		}
	}
}

func TestEmptyEngineStepIsNoOp(t *testing.T) {
	e := New(DefaultConfig())
	if err := e.Step(0.1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Len() != 0 {
		t.Errorf("expected 0 bodies, got %d", e.Len())
	}
}

func TestCapacityEnforced(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodies = 3
	e := New(cfg)

	for i := 0; i < 3; i++ {
		if !e.AddAt(100+float64(i)*50, 300) {
			t.Fatalf("insertion %d unexpectedly rejected", i)
		}
	}

	if e.AddAt(400, 300) {
		t.Error("insertion beyond capacity should report false")
	}
	if e.Len() != 3 {
		t.Errorf("expected 3 bodies after rejected insertion, got %d", e.Len())
	}
}

func TestSingleBodyKinematics(t *testing.T) {
	e := New(DefaultConfig())
	e.Add(mustBody(t, Vec2{100, 100}, Vec2{2, 3}, 10))

	dt := 0.5
	steps := 20
	for i := 0; i < steps; i++ {
		if err := e.Step(dt); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	elapsed := dt * float64(steps)
	b := e.Bodies()[0]
	wantX := 100 + 2*elapsed
	wantY := 100 + 3*elapsed
	if math.Abs(b.Pos.X-wantX) > 1e-9 || math.Abs(b.Pos.Y-wantY) > 1e-9 {
		t.Errorf("expected position (%f, %f), got (%f, %f)", wantX, wantY, b.Pos.X, b.Pos.Y)
	}
	if b.Vel != (Vec2{2, 3}) {
		t.Errorf("velocity changed with no other bodies: %v", b.Vel)
	}
}

func TestPairForceSymmetry(t *testing.T) {
	e := New(DefaultConfig())
	e.Add(mustBody(t, Vec2{200, 250}, Vec2{}, 10))
	e.Add(mustBody(t, Vec2{350, 380}, Vec2{}, 10))

	if err := e.Step(0.1); err != nil {
		t.Fatalf("step: %v", err)
	}

	bodies := e.Bodies()
	// Equal masses, so equal-and-opposite forces mean equal-and-opposite
	// velocity changes.
	if math.Abs(bodies[0].Vel.X+bodies[1].Vel.X) > 1e-12 ||
		math.Abs(bodies[0].Vel.Y+bodies[1].Vel.Y) > 1e-12 {
		t.Errorf("velocities not opposite: %v vs %v", bodies[0].Vel, bodies[1].Vel)
	}

	p := e.Momentum()
	if math.Abs(p.X) > 1e-12 || math.Abs(p.Y) > 1e-12 {
		t.Errorf("momentum not conserved: %v", p)
	}
}

func TestTwoBodyAttraction(t *testing.T) {
	e := New(DefaultConfig())
	e.Add(mustBody(t, Vec2{100, 300}, Vec2{}, 10))
	e.Add(mustBody(t, Vec2{200, 300}, Vec2{}, 10))

	if err := e.Step(1); err != nil {
		t.Fatalf("step: %v", err)
	}

	// |F| = G*m1*m2/d² = 9.8*100/10000 = 0.098, so each body gains
	// |v| = |F|/m * dt = 0.0098 toward the other.
	wantSpeed := 9.8 * 100 / (100 * 100) / 10
	bodies := e.Bodies()

	if math.Abs(bodies[0].Vel.X-wantSpeed) > 1e-12 || math.Abs(bodies[0].Vel.Y) > 1e-12 {
		t.Errorf("body 0: expected velocity (%f, 0), got %v", wantSpeed, bodies[0].Vel)
	}
	if math.Abs(bodies[1].Vel.X+wantSpeed) > 1e-12 || math.Abs(bodies[1].Vel.Y) > 1e-12 {
		t.Errorf("body 1: expected velocity (%f, 0), got %v", -wantSpeed, bodies[1].Vel)
	}

	// Positions move by the post-update velocity times dt.
	if math.Abs(bodies[0].Pos.X-(100+wantSpeed)) > 1e-12 {
		t.Errorf("body 0: expected x %f, got %f", 100+wantSpeed, bodies[0].Pos.X)
	}
	if math.Abs(bodies[1].Pos.X-(200-wantSpeed)) > 1e-12 {
		t.Errorf("body 1: expected x %f, got %f", 200-wantSpeed, bodies[1].Pos.X)
	}
}

func TestBoundaryReboundLeftWall(t *testing.T) {
	e := New(DefaultConfig())
	b := mustBody(t, Vec2{0, 300}, Vec2{-10, 0}, 10)
	b.Pos.X = b.Radius + 5
	e.Add(b)

	if err := e.Step(1); err != nil {
		t.Fatalf("step: %v", err)
	}

	got := e.Bodies()[0]
	if got.Pos.X != b.Radius {
		t.Errorf("expected clamp at x=%f, got %f", b.Radius, got.Pos.X)
	}
	if math.Abs(got.Vel.X-5) > 1e-12 {
		t.Errorf("expected rebound velocity 5, got %f", got.Vel.X)
	}
}

func TestCornerReboundBothAxes(t *testing.T) {
	cfg := DefaultConfig()
	e := New(cfg)
	b := mustBody(t, Vec2{}, Vec2{20, 16}, 10)
	b.Pos = Vec2{cfg.Width - b.Radius - 4, cfg.Height - b.Radius - 2}
	e.Add(b)

	if err := e.Step(1); err != nil {
		t.Fatalf("step: %v", err)
	}

	got := e.Bodies()[0]
	if got.Pos.X != cfg.Width-b.Radius || got.Pos.Y != cfg.Height-b.Radius {
		t.Errorf("expected clamp to corner, got %v", got.Pos)
	}
	if math.Abs(got.Vel.X+10) > 1e-12 || math.Abs(got.Vel.Y+8) > 1e-12 {
		t.Errorf("expected velocity (-10, -8), got %v", got.Vel)
	}
}

func TestCoincidentBodiesStayFinite(t *testing.T) {
	e := New(DefaultConfig())
	e.Add(mustBody(t, Vec2{400, 300}, Vec2{}, 10))
	e.Add(mustBody(t, Vec2{400, 300}, Vec2{}, 10))

	if err := e.Step(0.5); err != nil {
		t.Fatalf("step: %v", err)
	}

	for i, b := range e.Bodies() {
		if !b.Pos.IsValid() || !b.Vel.IsValid() {
			t.Errorf("body %d has NaN/Inf state: pos=%v vel=%v", i, b.Pos, b.Vel)
		}
	}
}

func TestDeterminism(t *testing.T) {
	seed := []Body{
		{Pos: Vec2{300, 400}, Vel: Vec2{0.1, 0.1}, Mass: 10, Radius: RadiusForMass(10)},
		{Pos: Vec2{400, 227}, Vel: Vec2{-0.1, 0.1}, Mass: 10, Radius: RadiusForMass(10)},
		{Pos: Vec2{500, 400}, Vel: Vec2{0.1, -0.1}, Mass: 10, Radius: RadiusForMass(10)},
	}

	a := New(DefaultConfig())
	b := New(DefaultConfig())
	a.Seed(seed)
	b.Seed(seed)

	for i := 0; i < 500; i++ {
		if err := a.Step(1.0 / 60); err != nil {
			t.Fatalf("step: %v", err)
		}
		if err := b.Step(1.0 / 60); err != nil {
			t.Fatalf("step: %v", err)
		}
	}

	sa, sb := a.State(), b.State()
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("state diverged at index %d: %v != %v", i, sa[i], sb[i])
		}
	}
}

func TestSeedAndReset(t *testing.T) {
	e := New(DefaultConfig())
	e.Seed([]Body{
		{Pos: Vec2{300, 300}, Vel: Vec2{1, 0}, Mass: 10, Radius: RadiusForMass(10)},
		{Pos: Vec2{500, 300}, Vel: Vec2{-1, 0}, Mass: 10, Radius: RadiusForMass(10)},
	})

	for i := 0; i < 10; i++ {
		if err := e.Step(0.1); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	e.AddAt(100, 100)

	e.Reset()
	if e.Len() != 2 {
		t.Fatalf("expected 2 bodies after reset, got %d", e.Len())
	}
	b := e.Bodies()[0]
	if b.Pos != (Vec2{300, 300}) || b.Vel != (Vec2{1, 0}) {
		t.Errorf("reset did not restore seed state: %+v", b)
	}
}

func TestSeedTruncatedToCapacity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodies = 2
	e := New(cfg)

	seed := make([]Body, 5)
	for i := range seed {
		seed[i] = Body{Pos: Vec2{float64(100 + i*50), 300}, Mass: 10, Radius: RadiusForMass(10)}
	}
	e.Seed(seed)

	if e.Len() != 2 {
		t.Errorf("expected seed truncated to 2, got %d", e.Len())
	}
}

func TestBodiesReturnsSnapshot(t *testing.T) {
	e := New(DefaultConfig())
	e.Add(mustBody(t, Vec2{100, 100}, Vec2{}, 10))

	snap := e.Bodies()
	snap[0].Pos.X = -999

	if e.Bodies()[0].Pos.X != 100 {
		t.Error("mutating a snapshot leaked into the engine")
	}
}

func TestEnergyDecreasesOnWallContact(t *testing.T) {
	e := New(DefaultConfig())
	b := mustBody(t, Vec2{0, 300}, Vec2{-10, 0}, 10)
	b.Pos.X = b.Radius + 1
	e.Add(b)

	before := e.TotalEnergy()
	if err := e.Step(1); err != nil {
		t.Fatalf("step: %v", err)
	}
	after := e.TotalEnergy()

	if after >= before {
		t.Errorf("rebound damping should shed energy: before=%f after=%f", before, after)
	}
}
