package engine

import "math"

const (
	DefaultG         = 9.8
	DefaultWidth     = 800.0
	DefaultHeight    = 600.0
	DefaultRebound   = 0.5
	DefaultSoftening = 1.0
	DefaultMaxBodies = 10
	DefaultMass      = 10.0
)

// Config carries the fixed parameters of a simulation. It is supplied once
// at construction and never changes for the lifetime of the engine.
type Config struct {
	G         float64 // gravitational constant
	Width     float64 // viewport width, pixels
	Height    float64 // viewport height, pixels
	Rebound   float64 // velocity damping applied on wall contact
	Softening float64 // minimum pair distance in the force law
	MaxBodies int
	Mass      float64 // mass assigned to pointer-inserted bodies
}

func DefaultConfig() Config {
	return Config{
		G:         DefaultG,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Rebound:   DefaultRebound,
		Softening: DefaultSoftening,
		MaxBodies: DefaultMaxBodies,
		Mass:      DefaultMass,
	}
}

// Engine owns the ordered body list and advances it one tick at a time.
// It is not safe for concurrent use; a single driver loop calls Step and
// Add and reads snapshots between steps.
type Engine struct {
	cfg    Config
	bodies []Body
	seed   []Body
	forces []Vec2
}

// New creates an engine with the given configuration. Non-positive
// softening or capacity fall back to the defaults so the force law always
// has its singularity safeguard.
func New(cfg Config) *Engine {
	if cfg.Softening <= 0 {
		cfg.Softening = DefaultSoftening
	}
	if cfg.MaxBodies <= 0 {
		cfg.MaxBodies = DefaultMaxBodies
	}
	if cfg.Mass <= 0 {
		cfg.Mass = DefaultMass
	}
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) Len() int { return len(e.bodies) }

// Bodies returns a copy of the body list. Renderers read the snapshot;
// they never hold a reference into the engine's own slice.
func (e *Engine) Bodies() []Body {
	out := make([]Body, len(e.bodies))
	copy(out, e.bodies)
	return out
}

// State returns the flattened state vector [x, y, vx, vy] per body.
func (e *Engine) State() []float64 {
	s := make([]float64, len(e.bodies)*4)
	for i, b := range e.bodies {
		s[i*4] = b.Pos.X
		s[i*4+1] = b.Pos.Y
		s[i*4+2] = b.Vel.X
		s[i*4+3] = b.Vel.Y
	}
	return s
}

// Seed installs the initial body set, truncated to capacity, and remembers
// it for Reset.
func (e *Engine) Seed(bodies []Body) {
	if len(bodies) > e.cfg.MaxBodies {
		bodies = bodies[:e.cfg.MaxBodies]
	}
	e.seed = make([]Body, len(bodies))
	copy(e.seed, bodies)
	e.bodies = make([]Body, len(bodies))
	copy(e.bodies, bodies)
}

// Reset restores the seed bodies.
func (e *Engine) Reset() {
	e.bodies = e.bodies[:0]
	e.bodies = append(e.bodies, e.seed...)
}

// Add appends a body. It reports false, without mutating anything, once
// the configured capacity is reached.
func (e *Engine) Add(b Body) bool {
	if len(e.bodies) >= e.cfg.MaxBodies {
		return false
	}
	e.bodies = append(e.bodies, b)
	return true
}

// AddAt inserts a default-mass body at the given viewport position with a
// small initial drift, the way pointer clicks seed bodies.
func (e *Engine) AddAt(x, y float64) bool {
	b, err := NewBody(Vec2{x, y}, Vec2{0.1, 0.1}, e.cfg.Mass)
	if err != nil {
		return false
	}
	return e.Add(b)
}

// Step advances the simulation by dt: pairwise force accumulation from a
// single snapshot, semi-implicit Euler integration, then boundary rebound.
func (e *Engine) Step(dt float64) error {
	if dt <= 0 {
		return ErrNonPositiveStep
	}
	n := len(e.bodies)
	if n == 0 {
		return nil
	}

	if cap(e.forces) < n {
		e.forces = make([]Vec2, n)
	}
	f := e.forces[:n]
	for i := range f {
		f[i] = Vec2{}
	}

	eps2 := e.cfg.Softening * e.cfg.Softening
	for i := 0; i < n; i++ {
		bi := e.bodies[i]
		for j := i + 1; j < n; j++ {
			bj := e.bodies[j]

			d := bj.Pos.Sub(bi.Pos)
			r2 := d.LenSq()
			if r2 < eps2 {
				r2 = eps2
			}
			rInv := 1.0 / math.Sqrt(r2)

			// |F| / r, so the components come straight from d.
			fr := e.cfg.G * bi.Mass * bj.Mass / r2 * rInv
			f[i].X += fr * d.X
			f[i].Y += fr * d.Y
			f[j].X -= fr * d.X
			f[j].Y -= fr * d.Y
		}
	}

	for i := range e.bodies {
		b := &e.bodies[i]
		b.Vel = b.Vel.Add(f[i].Scale(dt / b.Mass))
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		e.rebound(b)
	}

	return nil
}

// rebound clamps a body so its full extent stays inside the viewport and
// damps the wall-normal velocity component. Axes are handled independently
// so a corner hit rebounds on both.
func (e *Engine) rebound(b *Body) {
	if b.Pos.X-b.Radius < 0 {
		b.Pos.X = b.Radius
		b.Vel.X = -b.Vel.X * e.cfg.Rebound
	} else if b.Pos.X+b.Radius > e.cfg.Width {
		b.Pos.X = e.cfg.Width - b.Radius
		b.Vel.X = -b.Vel.X * e.cfg.Rebound
	}
	if b.Pos.Y-b.Radius < 0 {
		b.Pos.Y = b.Radius
		b.Vel.Y = -b.Vel.Y * e.cfg.Rebound
	} else if b.Pos.Y+b.Radius > e.cfg.Height {
		b.Pos.Y = e.cfg.Height - b.Radius
		b.Vel.Y = -b.Vel.Y * e.cfg.Rebound
	}
}

// TotalEnergy returns kinetic plus softened gravitational potential energy.
func (e *Engine) TotalEnergy() float64 {
	ke := 0.0
	pe := 0.0
	eps2 := e.cfg.Softening * e.cfg.Softening

	for i := range e.bodies {
		bi := e.bodies[i]
		ke += 0.5 * bi.Mass * bi.Vel.LenSq()

		for j := i + 1; j < len(e.bodies); j++ {
			bj := e.bodies[j]
			r := math.Sqrt(bj.Pos.Sub(bi.Pos).LenSq() + eps2)
			pe -= e.cfg.G * bi.Mass * bj.Mass / r
		}
	}

	return ke + pe
}

// Momentum returns the total linear momentum.
func (e *Engine) Momentum() Vec2 {
	var p Vec2
	for _, b := range e.bodies {
		p = p.Add(b.Vel.Scale(b.Mass))
	}
	return p
}

// AngularMomentum returns the total angular momentum about the origin.
func (e *Engine) AngularMomentum() float64 {
	L := 0.0
	for _, b := range e.bodies {
		L += b.Mass * (b.Pos.X*b.Vel.Y - b.Pos.Y*b.Vel.X)
	}
	return L
}
