package engine

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

type Control []float64

func (c Control) Clone() Control {
	out := make(Control, len(c))
	copy(out, c)
	return out
}

// System is a controllable dynamical system dx/dt = f(x, u, t).
type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

// Hamiltonian is implemented by systems that can report total energy.
type Hamiltonian interface {
	Energy(x State) float64
}

// Contact is a reported collision between two named geoms. Normal points
// from geom1 into geom2; Depth is the penetration depth.
type Contact struct {
	Geom1    string
	Geom2    string
	Normal   [3]float64
	Friction [3]float64
	Depth    float64
	Force    float64
}

// ContactSource is implemented by systems that can derive the active
// contact set from a state vector.
type ContactSource interface {
	Contacts(x State) []Contact
}

type Integrator interface {
	Step(sys System, x State, u Control, t float64, dt float64) State
}

type Controller interface {
	Compute(x State, t float64) Control
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

// Observer is notified after the controller runs but before the step.
type Observer interface {
	OnStep(step int, x State, u Control, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.002,
		Duration:      10.0,
		ValidateState: true,
	}
}

// Steps is the number of integration steps the config implies, rounded
// so a duration assembled as dt*n yields exactly n.
func (c Config) Steps() int {
	return int(math.Round(c.Duration / c.Dt))
}

type Result struct {
	States      []State
	Controls    []Control
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
