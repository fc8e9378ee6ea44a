package control

import "grasplab/internal/engine"

// PID tracks a target on one state index and writes the output to one
// control index. Retained for single-joint setpoint experiments.
type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	Target   float64
	StateIdx int
	CtrlIdx  int
	Dim      int

	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd, target float64, stateIdx, ctrlIdx, dim int) *PID {
	return &PID{
		Kp:       kp,
		Ki:       ki,
		Kd:       kd,
		Target:   target,
		StateIdx: stateIdx,
		CtrlIdx:  ctrlIdx,
		Dim:      dim,
		first:    true,
	}
}

func (p *PID) Compute(x engine.State, t float64) engine.Control {
	u := make(engine.Control, p.Dim)
	if p.StateIdx >= len(x) {
		return u
	}

	err := p.Target - x[p.StateIdx]

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		u[p.CtrlIdx] = p.Kp * err
		return u
	}

	dt := t - p.prevT
	if dt > 0 {
		p.integral += err * dt
		derivative := (err - p.prevErr) / dt

		u[p.CtrlIdx] = p.Kp*err + p.Ki*p.integral + p.Kd*derivative

		p.prevErr = err
		p.prevT = t
		return u
	}

	u[p.CtrlIdx] = p.Kp * err
	return u
}

// Reset clears integral and derivative state.
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.first = true
}
