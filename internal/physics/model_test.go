package physics

import (
	"errors"
	"math"
	"testing"

	"grasplab/internal/engine"
	"grasplab/internal/scene"
)

func demoModel(t *testing.T) *Model {
	t.Helper()
	m, err := Compile(scene.DemoWorld(scene.DefaultDemoParams()), DefaultParams())
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return m
}

func TestCompileDimensions(t *testing.T) {
	m := demoModel(t)

	// gripper z, two fingers, box.
	if m.NQ() != 4 {
		t.Errorf("expected 4 DOFs, got %d", m.NQ())
	}
	if m.StateDim() != 8 {
		t.Errorf("expected state dim 8, got %d", m.StateDim())
	}
	if m.ControlDim() != 3 {
		t.Errorf("expected 3 actuators, got %d", m.ControlDim())
	}
}

func TestActuatorLookup(t *testing.T) {
	m := demoModel(t)

	id, err := m.ActuatorID(scene.ActuatorGripperZ)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if id < 0 || id >= m.ControlDim() {
		t.Errorf("actuator id out of range: %d", id)
	}

	if _, err := m.ActuatorID("no_such_servo"); !errors.Is(err, engine.ErrUnknownActuator) {
		t.Errorf("expected ErrUnknownActuator, got %v", err)
	}
}

func TestJointVelAddr(t *testing.T) {
	m := demoModel(t)

	addr, err := m.JointVelAddr(scene.JointGripperZ)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if addr < m.NQ() || addr >= m.StateDim() {
		t.Errorf("velocity address %d outside velocity block [%d,%d)", addr, m.NQ(), m.StateDim())
	}

	if _, err := m.JointVelAddr("no_such_joint"); !errors.Is(err, engine.ErrUnknownJoint) {
		t.Errorf("expected ErrUnknownJoint, got %v", err)
	}
}

func TestGeomNames(t *testing.T) {
	m := demoModel(t)

	for _, name := range []string{"floor", "table_collision", "box_g0",
		scene.GeomLeftFingerPad, scene.GeomRightFingerPad} {
		id, err := m.GeomID(name)
		if err != nil {
			t.Errorf("geom %q not registered: %v", name, err)
			continue
		}
		if got := m.GeomName(id); got != name {
			t.Errorf("geom id %d resolves to %q, want %q", id, got, name)
		}
	}
}

func TestCompileRejectsEmptyScene(t *testing.T) {
	if _, err := Compile(scene.NewWorld(), DefaultParams()); err == nil {
		t.Error("expected error compiling empty scene")
	}
}

func TestCompileRejectsUnknownActuatorJoint(t *testing.T) {
	w := scene.DemoWorld(scene.DefaultDemoParams())
	w.AddActuator(scene.Actuator{Name: "bad", Joint: "ghost_joint", Kp: 1})

	if _, err := Compile(w, DefaultParams()); !errors.Is(err, engine.ErrUnknownJoint) {
		t.Errorf("expected ErrUnknownJoint, got %v", err)
	}
}

func TestGravityCompensationAtRest(t *testing.T) {
	m := demoModel(t)

	x := m.InitialState()
	u := make(engine.Control, m.ControlDim())
	dx := m.Derive(x, u, 0)

	// The compensated slider should not accelerate under gravity.
	zAddr, _ := m.JointVelAddr(scene.JointGripperZ)
	if math.Abs(dx[zAddr]) > 1e-9 {
		t.Errorf("compensated slider accelerates: %f", dx[zAddr])
	}
}

func TestUncompensatedSliderFalls(t *testing.T) {
	w := scene.DemoWorld(scene.DefaultDemoParams())
	w.GravityCompensated = nil
	m, err := Compile(w, DefaultParams())
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	x := m.InitialState()
	u := make(engine.Control, m.ControlDim())
	dx := m.Derive(x, u, 0)

	// The flipped slider falls toward larger q (down is positive).
	zAddr, _ := m.JointVelAddr(scene.JointGripperZ)
	if dx[zAddr] < 9.0 {
		t.Errorf("expected gravity acceleration on slider, got %f", dx[zAddr])
	}
}

func TestInitialContacts(t *testing.T) {
	m := demoModel(t)

	contacts := m.Contacts(m.InitialState())

	foundTable := false
	for _, c := range contacts {
		if c.Geom1 == "floor" && c.Geom2 == "floor" {
			t.Error("floor/floor pair should never be reported")
		}
		if c.Geom1 == "table_collision" && c.Geom2 == "box_g0" {
			foundTable = true
			if c.Normal != [3]float64{0, 0, 1} {
				t.Errorf("table contact normal = %v", c.Normal)
			}
			if c.Depth <= 0 {
				t.Errorf("table contact depth = %f", c.Depth)
			}
		}
		if c.Geom1 == scene.GeomLeftFingerPad || c.Geom1 == scene.GeomRightFingerPad {
			t.Errorf("unexpected pad contact at home: %+v", c)
		}
	}
	if !foundTable {
		t.Error("box should start in contact with the table")
	}
}

func TestPalmContactWhenOverdriven(t *testing.T) {
	m := demoModel(t)
	x := m.InitialState()

	// Drive the slider far past the box so the palm lands on its top.
	zi := m.jointIDs[scene.JointGripperZ]
	x[zi] = 0.12

	found := false
	for _, c := range m.Contacts(x) {
		if c.Geom1 == scene.GeomPalm && c.Geom2 == "box_g0" {
			found = true
			if c.Normal != [3]float64{0, 0, -1} {
				t.Errorf("palm contact normal = %v", c.Normal)
			}
			if math.Abs(c.Depth-0.03) > 1e-9 {
				t.Errorf("palm contact depth = %f, want 0.03", c.Depth)
			}
		}
	}
	if !found {
		t.Error("expected a palm/box contact with the slider overdriven")
	}
}

func TestBoxHeightHelpers(t *testing.T) {
	m := demoModel(t)
	x := m.InitialState()

	if got := m.BoxHeight(x); math.Abs(got-0.11) > 1e-12 {
		t.Errorf("box height = %f, want 0.11", got)
	}
	if got := m.GripperHeight(x); math.Abs(got-(scene.CarriageHeight-scene.GripperPadDrop)) > 1e-12 {
		t.Errorf("gripper height = %f", got)
	}
	if got := m.TableTop(); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("table top = %f, want 0.1", got)
	}
	// Palm underside: carriage origin minus palm drop and half-height.
	if got := m.PalmHeight(x); math.Abs(got-(scene.CarriageHeight-scene.GripperPalmDrop-0.02)) > 1e-12 {
		t.Errorf("palm underside = %f", got)
	}

	// Lowering the slider by q moves the pads down by q.
	x[0] = 0.07
	if got := m.GripperHeight(x); math.Abs(got-(scene.CarriageHeight-0.07-scene.GripperPadDrop)) > 1e-12 {
		t.Errorf("lowered gripper height = %f", got)
	}
}

func TestPadPositionsCloseSymmetrically(t *testing.T) {
	m := demoModel(t)
	x := m.InitialState()

	l, r := m.PadPositions(x)
	if math.Abs(l-scene.GripperPadSpread) > 1e-12 || math.Abs(r+scene.GripperPadSpread) > 1e-12 {
		t.Fatalf("home pad positions = %f, %f", l, r)
	}

	// Closed setpoints move both pads inward by the same amount.
	li, _ := m.jointIDs[scene.JointFingerLeft]
	ri, _ := m.jointIDs[scene.JointFingerRight]
	x[li] = scene.FingersClosed[0]
	x[ri] = scene.FingersClosed[1]

	l, r = m.PadPositions(x)
	if math.Abs(l+r) > 1e-12 {
		t.Errorf("closed pads not symmetric: %f, %f", l, r)
	}
	if l >= scene.GripperPadSpread {
		t.Errorf("left pad did not move inward: %f", l)
	}
}
