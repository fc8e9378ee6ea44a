package control

import "grasplab/internal/engine"

// Default grasp cycle constants.
const (
	DefaultPeriod = 500 // steps per phase

	// Slider setpoints in the flipped gripper frame: low is toward the
	// table, high is retracted.
	DefaultZLow  = 0.07
	DefaultZHigh = -0.02
)

// Phase is one entry of the open-loop plan: whether the gripper should be
// at its low height and whether the jaw should be closed.
type Phase struct {
	Low    bool
	Closed bool
}

// The fixed plan: descend open, close, lift closed, release.
var DefaultPlan = []Phase{
	{Low: false, Closed: false},
	{Low: true, Closed: false},
	{Low: true, Closed: true},
	{Low: false, Closed: true},
}

// PhaseChange reports a plan advance to an observer.
type PhaseChange struct {
	Step  int
	Index int
	Phase Phase
}

// GraspCycle drives the gripper through the fixed plan, advancing one
// entry every Period calls and writing height and jaw setpoints into the
// control vector unconditionally each tick. There is no feedback: the
// cycle never reads the state.
type GraspCycle struct {
	Plan    []Phase
	Period  int
	ZLow    float64
	ZHigh   float64
	Open    []float64
	Closed  []float64
	ZID     int
	JawIDs  []int
	dim     int
	step    int
	current Phase
	index   int
	onPhase func(PhaseChange)
}

// GraspCycleConfig binds the cycle to resolved actuator ids.
type GraspCycleConfig struct {
	ControlDim int
	ZID        int
	JawIDs     []int
	Open       []float64
	Closed     []float64
	Period     int
	ZLow       float64
	ZHigh      float64
}

func NewGraspCycle(cfg GraspCycleConfig) *GraspCycle {
	g := &GraspCycle{
		Plan:   DefaultPlan,
		Period: cfg.Period,
		ZLow:   cfg.ZLow,
		ZHigh:  cfg.ZHigh,
		Open:   cfg.Open,
		Closed: cfg.Closed,
		ZID:    cfg.ZID,
		JawIDs: cfg.JawIDs,
		dim:    cfg.ControlDim,
	}
	if g.Period <= 0 {
		g.Period = DefaultPeriod
	}
	if g.ZLow == 0 && g.ZHigh == 0 {
		g.ZLow, g.ZHigh = DefaultZLow, DefaultZHigh
	}
	return g
}

// OnPhaseChange registers a hook invoked whenever the plan advances.
func (g *GraspCycle) OnPhaseChange(fn func(PhaseChange)) {
	g.onPhase = fn
}

// Compute implements engine.Controller. Calls are tick-ordered; each call
// is one simulation step.
func (g *GraspCycle) Compute(x engine.State, t float64) engine.Control {
	if g.step%g.Period == 0 {
		g.index = (g.step / g.Period) % len(g.Plan)
		g.current = g.Plan[g.index]
		if g.onPhase != nil {
			g.onPhase(PhaseChange{Step: g.step, Index: g.index, Phase: g.current})
		}
	}
	g.step++

	u := make(engine.Control, g.dim)
	if g.current.Low {
		u[g.ZID] = g.ZLow
	} else {
		u[g.ZID] = g.ZHigh
	}

	jaw := g.Open
	if g.current.Closed {
		jaw = g.Closed
	}
	for i, id := range g.JawIDs {
		if i < len(jaw) {
			u[id] = jaw[i]
		}
	}

	return u
}

// Current returns the active phase and its plan index.
func (g *GraspCycle) Current() (Phase, int) {
	return g.current, g.index
}

// Reset rewinds the plan to its first entry.
func (g *GraspCycle) Reset() {
	g.step = 0
	g.index = 0
	g.current = Phase{}
}
