package control

import "grasplab/internal/engine"

type None struct {
	dim int
}

func NewNone(dim int) *None {
	return &None{
		dim: dim,
	}
}

func (n *None) Compute(x engine.State, t float64) engine.Control {
	return make(engine.Control, n.dim)
}
