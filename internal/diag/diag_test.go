package diag

import (
	"testing"

	"go.uber.org/zap"

	"grasplab/internal/control"
	"grasplab/internal/engine"
)

type staticContacts struct {
	contacts []engine.Contact
	queries  int
}

func (s *staticContacts) Contacts(x engine.State) []engine.Contact {
	s.queries++
	return s.contacts
}

func TestContactPrinterSamplesAtInterval(t *testing.T) {
	src := &staticContacts{contacts: []engine.Contact{
		{Geom1: "table_collision", Geom2: "box_g0"},
	}}
	p := NewContactPrinter(src, zap.NewNop(), 100)

	for step := 0; step < 250; step++ {
		p.OnStep(step, nil, nil, 0)
	}

	// Steps 0, 100, 200.
	if src.queries != 3 {
		t.Errorf("expected 3 contact queries, got %d", src.queries)
	}
}

func TestContactPrinterSkipsFloorPair(t *testing.T) {
	src := &staticContacts{contacts: []engine.Contact{
		{Geom1: "floor", Geom2: "floor"},
		{Geom1: "table_collision", Geom2: "box_g0"},
	}}
	p := NewContactPrinter(src, zap.NewNop(), 1)

	var seen []engine.Contact
	p.OnContact(func(c engine.Contact) {
		seen = append(seen, c)
	})

	p.OnStep(0, nil, nil, 0)

	if len(seen) != 1 {
		t.Fatalf("expected 1 contact through the sink, got %d", len(seen))
	}
	if seen[0].Geom1 != "table_collision" {
		t.Errorf("wrong contact passed through: %+v", seen[0])
	}
}

func TestContactPrinterDefaultInterval(t *testing.T) {
	p := NewContactPrinter(&staticContacts{}, zap.NewNop(), 0)
	if p.Interval != DefaultInterval {
		t.Errorf("interval = %d, want %d", p.Interval, DefaultInterval)
	}
}

func TestLogPhaseChanges(t *testing.T) {
	g := control.NewGraspCycle(control.GraspCycleConfig{ControlDim: 3, Period: 1})
	LogPhaseChanges(g, zap.NewNop())

	// Must not panic with a wired hook; the hook itself is exercised via
	// the cycle's own tests.
	g.Compute(engine.State{}, 0)
}
