// Package experiment assembles a scene, a compiled model, a controller and
// a simulator from a single configuration, so the CLI and the parameter
// sweeps build runs the same way.
package experiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"grasplab/internal/config"
	"grasplab/internal/control"
	"grasplab/internal/diag"
	"grasplab/internal/engine"
	"grasplab/internal/metrics"
	"grasplab/internal/physics"
	"grasplab/internal/scene"
	"grasplab/internal/storage"
)

// Setup is a fully wired run: the assembled world, its compiled model and
// a simulator carrying the default metrics.
type Setup struct {
	Config     *config.Config
	World      *scene.World
	Model      *physics.Model
	Integrator engine.Integrator
	Controller engine.Controller
	Cycle      *control.GraspCycle // nil unless the controller is the grasp cycle
	Simulator  *engine.Simulator

	contacts []storage.ContactEvent
}

// Build wires a complete grasp run from cfg. The controller name comes
// from the registry; "grasp_cycle" is what the demo uses.
func Build(cfg *config.Config, controllerName string) (*Setup, error) {
	world := scene.DemoWorld(cfg.DemoParams())

	model, err := physics.Compile(world, cfg.PhysicsParams())
	if err != nil {
		return nil, fmt.Errorf("compile model: %w", err)
	}

	integ, err := NewIntegrator(cfg.Sim.Integrator)
	if err != nil {
		return nil, err
	}

	ctrl, err := NewController(controllerName, cfg, model)
	if err != nil {
		return nil, err
	}

	s := &Setup{
		Config:     cfg,
		World:      world,
		Model:      model,
		Integrator: integ,
		Controller: ctrl,
	}
	if cycle, ok := ctrl.(*control.GraspCycle); ok {
		s.Cycle = cycle
	}

	sim := engine.New(model, integ, ctrl)
	sim.AddMetric(metrics.NewLiftHeight(model))
	sim.AddMetric(metrics.NewContactTime(model))
	sim.AddMetric(metrics.NewControlEffort())
	s.Simulator = sim

	return s, nil
}

// AttachDiagnostics wires the periodic contact printer and, when the
// controller is the grasp cycle, phase change logging. Printed contacts
// are retained with their step for the run store.
func (s *Setup) AttachDiagnostics(logger *zap.Logger) {
	printer := diag.NewContactPrinter(s.Model, logger, s.Config.Diag.Interval)

	var currentStep int
	printer.OnContact(func(c engine.Contact) {
		s.contacts = append(s.contacts, storage.ContactEvent{
			Step:    currentStep,
			Time:    float64(currentStep) * s.Config.Sim.Dt,
			Contact: c,
		})
	})
	s.Simulator.AddObserver(observerFunc(func(step int, x engine.State, u engine.Control, t float64) {
		currentStep = step
		printer.OnStep(step, x, u, t)
	}))

	if s.Cycle != nil {
		diag.LogPhaseChanges(s.Cycle, logger)
	}
}

// Contacts returns the contact events retained by AttachDiagnostics.
func (s *Setup) Contacts() []storage.ContactEvent { return s.contacts }

// Run executes the configured number of steps from the model's initial
// state.
func (s *Setup) Run(ctx context.Context) (*engine.Result, error) {
	simCfg := engine.DefaultConfig()
	simCfg.Dt = s.Config.Sim.Dt
	simCfg.Duration = s.Config.Sim.Dt * float64(s.Config.Sim.Steps)
	simCfg.Seed = s.Config.Sim.Seed
	return s.Simulator.Run(ctx, s.Model.InitialState(), simCfg)
}

type observerFunc func(step int, x engine.State, u engine.Control, t float64)

func (f observerFunc) OnStep(step int, x engine.State, u engine.Control, t float64) {
	f(step, x, u, t)
}
