package integrators

import "grasplab/internal/engine"

type RK4 struct {
	k1, k2, k3, k4 engine.State
	scratch        engine.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(engine.State, n)
		r.k2 = make(engine.State, n)
		r.k3 = make(engine.State, n)
		r.k4 = make(engine.State, n)
		r.scratch = make(engine.State, n)
	}
}

func (r *RK4) Step(sys engine.System, x engine.State, u engine.Control, t, dt float64) engine.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(x, u, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, sys.Derive(r.scratch, u, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, sys.Derive(r.scratch, u, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	copy(r.k4, sys.Derive(r.scratch, u, t+dt))

	result := make(engine.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
