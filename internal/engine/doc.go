// Package engine provides the simulation core for grasplab.
//
// The package defines the fundamental interfaces and types used everywhere
// else in the repo:
//
//   - [State]: flat vector of joint positions and velocities
//   - [System]: a controllable dynamical system (dx/dt = f(x, u, t))
//   - [Integrator]: numerical stepping scheme
//   - [Controller]: per-tick setpoint source
//   - [Contact]: engine-reported collision between two named geoms
//   - [Simulator]: orchestrates simulation runs
//
// # Example
//
//	model := scene.DemoWorld().Compile()
//	sim := engine.New(model, integrators.NewSemiImplicit(), control.NewGraspCycle(model))
//	result, _ := sim.Run(ctx, model.InitialState(), engine.DefaultConfig())
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe; run each on its own goroutine
// with its own System.
package engine
