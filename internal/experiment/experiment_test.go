package experiment

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"grasplab/internal/config"
)

func TestBuildGraspCycle(t *testing.T) {
	setup, err := Build(config.Default(), "grasp_cycle")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if setup.Cycle == nil {
		t.Fatal("expected grasp cycle controller")
	}
	if got := setup.Model.ControlDim(); got != 3 {
		t.Errorf("ControlDim = %d, want 3", got)
	}
}

func TestBuildControllers(t *testing.T) {
	for _, name := range ListControllers() {
		if _, err := Build(config.Default(), name); err != nil {
			t.Errorf("Build(%q): %v", name, err)
		}
	}
	if _, err := Build(config.Default(), "bang_bang"); err == nil {
		t.Error("expected error for unknown controller")
	}
}

func TestNewIntegrator(t *testing.T) {
	for _, name := range ListIntegrators() {
		if _, err := NewIntegrator(name); err != nil {
			t.Errorf("NewIntegrator(%q): %v", name, err)
		}
	}
	if _, err := NewIntegrator("verlet"); err == nil {
		t.Error("expected error for unknown integrator")
	}
	if integ, err := NewIntegrator(""); err != nil || integ == nil {
		t.Errorf("empty name should select a default, got %v", err)
	}
}

func TestRunShort(t *testing.T) {
	cfg := config.Default()
	cfg.Sim.Steps = 50

	setup, err := Build(cfg, "hold_open")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	setup.AttachDiagnostics(zap.NewNop())

	result, err := setup.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.States) != cfg.Sim.Steps+1 {
		t.Errorf("got %d states, want %d", len(result.States), cfg.Sim.Steps+1)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if _, ok := result.Metrics["lift_height"]; !ok {
		t.Error("lift_height metric missing from result")
	}
	// Diagnostics fire on step 0, so the resting box/table contact shows up.
	if len(setup.Contacts()) == 0 {
		t.Error("expected retained contact events")
	}
}
