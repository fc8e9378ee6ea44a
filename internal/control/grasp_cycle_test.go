package control

import (
	"testing"

	"grasplab/internal/engine"
)

func testCycle(period int) *GraspCycle {
	return NewGraspCycle(GraspCycleConfig{
		ControlDim: 3,
		ZID:        2,
		JawIDs:     []int{0, 1},
		Open:       []float64{-0.0115, 0.0115},
		Closed:     []float64{0.020833, -0.020833},
		Period:     period,
	})
}

func TestGraspCyclePlanOrder(t *testing.T) {
	g := testCycle(10)
	x := engine.State{}

	var seen []Phase
	g.OnPhaseChange(func(pc PhaseChange) {
		seen = append(seen, pc.Phase)
	})

	for step := 0; step < 40; step++ {
		g.Compute(x, float64(step)*0.002)
	}

	want := []Phase{
		{Low: false, Closed: false},
		{Low: true, Closed: false},
		{Low: true, Closed: true},
		{Low: false, Closed: true},
	}
	if len(seen) != len(want) {
		t.Fatalf("expected %d phase changes, got %d", len(want), len(seen))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("phase %d = %+v, want %+v", i, seen[i], want[i])
		}
	}
}

func TestGraspCycleWrapsAround(t *testing.T) {
	g := testCycle(5)
	x := engine.State{}

	var indexes []int
	g.OnPhaseChange(func(pc PhaseChange) {
		indexes = append(indexes, pc.Index)
	})

	// Two full cycles: the plan index must cycle through exactly 4
	// entries, advancing every period.
	for step := 0; step < 40; step++ {
		g.Compute(x, 0)
	}

	want := []int{0, 1, 2, 3, 0, 1, 2, 3}
	if len(indexes) != len(want) {
		t.Fatalf("expected %d changes, got %d", len(want), len(indexes))
	}
	for i := range want {
		if indexes[i] != want[i] {
			t.Errorf("change %d index = %d, want %d", i, indexes[i], want[i])
		}
	}
}

func TestGraspCycleSetpoints(t *testing.T) {
	g := testCycle(2)
	x := engine.State{}

	// Phase 0: high, open.
	u := g.Compute(x, 0)
	if u[2] != DefaultZHigh {
		t.Errorf("phase 0 z setpoint = %f, want %f", u[2], DefaultZHigh)
	}
	if u[0] != -0.0115 || u[1] != 0.0115 {
		t.Errorf("phase 0 jaw setpoints = %f, %f", u[0], u[1])
	}

	g.Compute(x, 0)

	// Phase 1: low, still open.
	u = g.Compute(x, 0)
	if u[2] != DefaultZLow {
		t.Errorf("phase 1 z setpoint = %f, want %f", u[2], DefaultZLow)
	}

	g.Compute(x, 0)

	// Phase 2: low, closed.
	u = g.Compute(x, 0)
	if u[0] != 0.020833 || u[1] != -0.020833 {
		t.Errorf("phase 2 jaw setpoints = %f, %f", u[0], u[1])
	}
	if u[2] != DefaultZLow {
		t.Errorf("phase 2 z setpoint = %f, want %f", u[2], DefaultZLow)
	}
}

func TestGraspCycleDefaults(t *testing.T) {
	g := NewGraspCycle(GraspCycleConfig{ControlDim: 1})
	if g.Period != DefaultPeriod {
		t.Errorf("default period = %d, want %d", g.Period, DefaultPeriod)
	}
	if g.ZLow != DefaultZLow || g.ZHigh != DefaultZHigh {
		t.Errorf("default heights = %f, %f", g.ZLow, g.ZHigh)
	}
}

func TestGraspCycleReset(t *testing.T) {
	g := testCycle(3)
	x := engine.State{}

	for i := 0; i < 10; i++ {
		g.Compute(x, 0)
	}
	g.Reset()

	changes := 0
	g.OnPhaseChange(func(pc PhaseChange) {
		if changes == 0 && pc.Index != 0 {
			t.Errorf("first phase after reset has index %d", pc.Index)
		}
		changes++
	})
	g.Compute(x, 0)
	if changes != 1 {
		t.Errorf("expected a phase change right after reset, got %d", changes)
	}
}

func TestHoldAndNone(t *testing.T) {
	h := NewHold([]float64{1, 2})
	u := h.Compute(engine.State{}, 0)
	if u[0] != 1 || u[1] != 2 {
		t.Errorf("hold setpoints = %v", u)
	}
	u[0] = 99
	if h.Compute(engine.State{}, 0)[0] != 1 {
		t.Error("hold must not share its backing array with callers")
	}

	n := NewNone(3)
	u = n.Compute(engine.State{}, 0)
	if len(u) != 3 {
		t.Fatalf("none dim = %d", len(u))
	}
	for i, v := range u {
		if v != 0 {
			t.Errorf("none output[%d] = %f", i, v)
		}
	}
}
