package metrics

import (
	"math"
	"testing"

	"grasplab/internal/engine"
)

type fakeHeights struct {
	heights []float64
	idx     int
}

func (f *fakeHeights) BoxHeight(x engine.State) float64 {
	h := f.heights[f.idx]
	if f.idx < len(f.heights)-1 {
		f.idx++
	}
	return h
}

func (f *fakeHeights) TableTop() float64 { return 0.1 }

type fakeContacts struct {
	sets [][]engine.Contact
	idx  int
}

func (f *fakeContacts) Contacts(x engine.State) []engine.Contact {
	s := f.sets[f.idx]
	if f.idx < len(f.sets)-1 {
		f.idx++
	}
	return s
}

func TestLiftHeightPeak(t *testing.T) {
	src := &fakeHeights{heights: []float64{0.11, 0.18, 0.21, 0.13}}
	m := NewLiftHeight(src)

	for i := 0; i < 4; i++ {
		m.Observe(nil, nil, 0)
	}

	if math.Abs(m.Value()-0.11) > 1e-12 {
		t.Errorf("peak lift = %f, want 0.11", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("reset peak = %f", m.Value())
	}
}

func TestContactTimeFraction(t *testing.T) {
	pad := engine.Contact{Geom1: "left_finger_pad", Geom2: "box_g0"}
	table := engine.Contact{Geom1: "table_collision", Geom2: "box_g0"}

	src := &fakeContacts{sets: [][]engine.Contact{
		{table},
		{table, pad},
		{pad},
		nil,
	}}
	m := NewContactTime(src)

	for i := 0; i < 4; i++ {
		m.Observe(nil, nil, 0)
	}

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("contact fraction = %f, want 0.5", m.Value())
	}
}

func TestControlEffortMean(t *testing.T) {
	m := NewControlEffort()

	m.Observe(nil, engine.Control{1, -2}, 0)
	m.Observe(nil, engine.Control{0, 0}, 0)

	if math.Abs(m.Value()-1.5) > 1e-12 {
		t.Errorf("mean effort = %f, want 1.5", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("reset effort = %f", m.Value())
	}
}
