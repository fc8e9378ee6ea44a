package control

import "grasplab/internal/engine"

// Hold emits constant setpoints.
type Hold struct {
	setpoints engine.Control
}

func NewHold(setpoints []float64) *Hold {
	return &Hold{setpoints: engine.Control(setpoints)}
}

func (h *Hold) Compute(x engine.State, t float64) engine.Control {
	return h.setpoints.Clone()
}
