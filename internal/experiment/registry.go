package experiment

import (
	"fmt"
	"sort"

	"grasplab/internal/config"
	"grasplab/internal/control"
	"grasplab/internal/engine"
	"grasplab/internal/integrators"
	"grasplab/internal/physics"
	"grasplab/internal/scene"
)

var integratorFactories = map[string]func() engine.Integrator{
	"euler":         func() engine.Integrator { return integrators.NewEuler() },
	"semi_implicit": func() engine.Integrator { return integrators.NewSemiImplicit() },
	"rk4":           func() engine.Integrator { return integrators.NewRK4() },
}

// NewIntegrator resolves an integrator by name. An empty name selects
// semi_implicit, which handles the stiff contact forces.
func NewIntegrator(name string) (engine.Integrator, error) {
	if name == "" {
		name = "semi_implicit"
	}
	fn, ok := integratorFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (have %v)", name, ListIntegrators())
	}
	return fn(), nil
}

// ListIntegrators returns the registered integrator names, sorted.
func ListIntegrators() []string {
	names := make([]string, 0, len(integratorFactories))
	for name := range integratorFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewController resolves a controller by name against the compiled model.
//
//	grasp_cycle  the fixed four phase plan
//	hold_open    keep the jaw open at the retracted height
//	none         zero targets on every actuator
//	pid_z        feedback tracking of the low slider height
func NewController(name string, cfg *config.Config, model *physics.Model) (engine.Controller, error) {
	switch name {
	case "", "grasp_cycle":
		zID, err := model.ActuatorID(scene.ActuatorGripperZ)
		if err != nil {
			return nil, err
		}
		jawIDs := make([]int, 0, 2)
		for _, act := range scene.FingerActuators() {
			id, err := model.ActuatorID(act)
			if err != nil {
				return nil, err
			}
			jawIDs = append(jawIDs, id)
		}
		return control.NewGraspCycle(control.GraspCycleConfig{
			ControlDim: model.ControlDim(),
			ZID:        zID,
			JawIDs:     jawIDs,
			Open:       cfg.Cycle.Open,
			Closed:     cfg.Cycle.Closed,
			Period:     cfg.Cycle.Period,
			ZLow:       cfg.Cycle.ZLow,
			ZHigh:      cfg.Cycle.ZHigh,
		}), nil
	case "hold_open":
		zID, err := model.ActuatorID(scene.ActuatorGripperZ)
		if err != nil {
			return nil, err
		}
		u := make([]float64, model.ControlDim())
		u[zID] = cfg.Cycle.ZHigh
		for i, act := range scene.FingerActuators() {
			id, err := model.ActuatorID(act)
			if err != nil {
				return nil, err
			}
			if i < len(cfg.Cycle.Open) {
				u[id] = cfg.Cycle.Open[i]
			}
		}
		return control.NewHold(u), nil
	case "pid_z":
		zID, err := model.ActuatorID(scene.ActuatorGripperZ)
		if err != nil {
			return nil, err
		}
		va, err := model.JointVelAddr(scene.JointGripperZ)
		if err != nil {
			return nil, err
		}
		qIdx := va - model.NQ()
		return control.NewPID(2.0, 1.5, 0.1, cfg.Cycle.ZLow, qIdx, zID, model.ControlDim()), nil
	case "none":
		return control.NewNone(model.ControlDim()), nil
	default:
		return nil, fmt.Errorf("unknown controller: %s", name)
	}
}

// ListControllers returns the controller names NewController accepts.
func ListControllers() []string {
	return []string{"grasp_cycle", "hold_open", "none", "pid_z"}
}
