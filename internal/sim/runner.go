package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/Fer14/gravitybox/internal/engine"
)

// Metric observes the engine once per step and reduces to a scalar.
type Metric interface {
	Name() string
	Observe(e *engine.Engine, t float64)
	Value() float64
	Reset()
}

// RunConfig parameterizes a headless run.
type RunConfig struct {
	Dt       float64
	Duration float64
}

// Result holds the recorded trajectory of a run. States are flattened
// [x, y, vx, vy] per body in insertion order.
type Result struct {
	States      [][]float64
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}

// Runner drives an engine through a fixed number of steps, recording state
// snapshots and evaluating metrics.
type Runner struct {
	eng     *engine.Engine
	metrics []Metric
}

func New(eng *engine.Engine) *Runner {
	return &Runner{eng: eng}
}

func (r *Runner) AddMetric(m Metric) { r.metrics = append(r.metrics, m) }

func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("sim: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("sim: duration must be positive, got %f", cfg.Duration)
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:  make([][]float64, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	result.States = append(result.States, r.eng.State())
	result.Times = append(result.Times, t)

	initialEnergy := r.eng.TotalEnergy()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range r.metrics {
			m.Observe(r.eng, t)
		}

		if err := r.eng.Step(cfg.Dt); err != nil {
			return result, err
		}
		t += cfg.Dt
		result.StepsTaken++

		result.States = append(result.States, r.eng.State())
		result.Times = append(result.Times, t)
	}

	if initialEnergy != 0 {
		finalEnergy := r.eng.TotalEnergy()
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
