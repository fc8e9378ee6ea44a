// Package control holds the setpoint sources for the demo: the open-loop
// four-phase grasp cycle, constant holds, and a PID kept around for
// single-joint experiments.
package control
