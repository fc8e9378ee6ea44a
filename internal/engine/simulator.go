package engine

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	sys        System
	integrator Integrator
	controller Controller
	metrics    []Metric
	observers  []Observer
}

func New(sys System, integrator Integrator, controller Controller) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		controller: controller,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// System exposes the underlying system for contact queries.
func (s *Simulator) System() System { return s.sys }

func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != s.sys.StateDim() {
		return nil, fmt.Errorf("%w: state has %d entries, system wants %d",
			ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}

	steps := cfg.Steps()
	result := &Result{
		States:   make([]State, 0, steps+1),
		Controls: make([]Control, 0, steps),
		Times:    make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy := s.computeEnergy(x)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
		default:
		}

		u := s.controller.Compute(x, t)

		for _, m := range s.metrics {
			m.Observe(x, u, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(i, x, u, t)
		}

		newX := s.integrator.Step(s.sys, x, u, t, cfg.Dt)

		if cfg.ValidateState && !newX.IsValid() {
			err := SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		x = newX
		t += cfg.Dt
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Controls = append(result.Controls, u.Clone())
		result.Times = append(result.Times, t)
	}

	finalEnergy := s.computeEnergy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback streams steps to the callback; returning false stops the run.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(step int, x State, u Control, t float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	x := x0.Clone()
	t := 0.0

	for i := 0; i < cfg.Steps(); i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
		default:
		}

		u := s.controller.Compute(x, t)

		if !callback(i, x, u, t) {
			return nil
		}

		x = s.integrator.Step(s.sys, x, u, t, cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			return SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
		}
	}

	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

func (s *Simulator) computeEnergy(x State) float64 {
	if ec, ok := s.sys.(Hamiltonian); ok {
		return ec.Energy(x)
	}
	return 0
}
