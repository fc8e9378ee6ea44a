package engine

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("engine: invalid state (NaN or Inf detected)")

	// ErrUnknownActuator indicates an actuator name that no scene body defines.
	ErrUnknownActuator = errors.New("engine: unknown actuator name")

	// ErrUnknownJoint indicates a joint name that no scene body defines.
	ErrUnknownJoint = errors.New("engine: unknown joint name")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("engine: simulation canceled by context")

	// ErrDimensionMismatch indicates mismatched state/control dimensions.
	ErrDimensionMismatch = errors.New("engine: dimension mismatch between state and system")
)
