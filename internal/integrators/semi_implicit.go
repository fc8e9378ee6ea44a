package integrators

import "grasplab/internal/engine"

// SemiImplicit is symplectic Euler: velocities update first, positions
// integrate the new velocities. It assumes the first half of the state is
// positions and the second half velocities, which holds for every system
// in this repo. Much better behaved than explicit Euler on the stiff
// penalty contacts.
type SemiImplicit struct{}

func NewSemiImplicit() *SemiImplicit {
	return &SemiImplicit{}
}

func (s *SemiImplicit) Step(sys engine.System, x engine.State, u engine.Control, t float64, dt float64) engine.State {
	n := len(x) / 2
	dx := sys.Derive(x, u, t)

	result := make(engine.State, len(x))
	for i := 0; i < n; i++ {
		result[n+i] = x[n+i] + dt*dx[n+i]
		result[i] = x[i] + dt*result[n+i]
	}
	return result
}
