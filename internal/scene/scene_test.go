package scene

import (
	"strings"
	"testing"
)

func TestDemoWorldAssembly(t *testing.T) {
	w := DemoWorld(DefaultDemoParams())

	for _, name := range []string{"floor", "table", BodyCarriage, BoxName, "x_ref", "y_ref"} {
		if w.FindBody(name) == nil {
			t.Errorf("missing body %q", name)
		}
	}

	carriage := w.FindBody(BodyCarriage)
	if len(carriage.Joints) != 1 || carriage.Joints[0].Name != JointGripperZ {
		t.Fatalf("carriage should carry the z slider, got %+v", carriage.Joints)
	}
	if carriage.Joints[0].Damping != GripperZDamping {
		t.Errorf("slider damping = %f, want %d", carriage.Joints[0].Damping, GripperZDamping)
	}
	if carriage.Quat != [4]float64{0, 0, 1, 0} {
		t.Errorf("carriage should be flipped, quat = %v", carriage.Quat)
	}

	// Fingers re-parented under the carriage.
	if w.FindBody("left_finger") == nil || w.FindBody("right_finger") == nil {
		t.Error("finger bodies not merged under carriage")
	}
}

func TestDemoWorldActuators(t *testing.T) {
	w := DemoWorld(DefaultDemoParams())

	byName := make(map[string]Actuator)
	for _, a := range w.Actuators {
		byName[a.Name] = a
	}

	z, ok := byName[ActuatorGripperZ]
	if !ok {
		t.Fatal("missing gripper_z actuator")
	}
	if z.Joint != JointGripperZ {
		t.Errorf("gripper_z drives %q, want %q", z.Joint, JointGripperZ)
	}
	if z.Kp != GripperZKp {
		t.Errorf("gripper_z kp = %f, want %d", z.Kp, GripperZKp)
	}

	for _, name := range FingerActuators() {
		if _, ok := byName[name]; !ok {
			t.Errorf("missing finger actuator %q", name)
		}
	}
}

func TestDemoWorldGravityCompensation(t *testing.T) {
	w := DemoWorld(DefaultDemoParams())

	found := false
	for _, j := range w.GravityCompensated {
		if j == JointGripperZ {
			found = true
		}
	}
	if !found {
		t.Error("z slider should be gravity compensated")
	}
}

func TestMergeActuatorsLeavesBodies(t *testing.T) {
	w := NewWorld()
	g := NewParallelGripper()

	w.MergeActuators(g)

	if len(w.Bodies) != 0 {
		t.Errorf("expected no bodies after actuator-only merge, got %d", len(w.Bodies))
	}
	if len(w.Actuators) != 2 {
		t.Errorf("expected 2 finger actuators, got %d", len(w.Actuators))
	}
}

func TestVisualBoxHasNoJoint(t *testing.T) {
	b := NewVisualBox("x_ref", [3]float64{0.01, 0.01, 0.01}, [4]float64{0, 1, 0, 1})

	if len(b.Joints) != 0 {
		t.Errorf("visual box should be jointless, got %d joints", len(b.Joints))
	}
	if !b.Geoms[0].Visual {
		t.Error("visual box geom should be collision-free")
	}
}

func TestMarshalXML(t *testing.T) {
	w := DemoWorld(DefaultDemoParams())

	out, err := w.MarshalXML("gripper_demo")
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	s := string(out)
	for _, want := range []string{
		`<mujoco model="gripper_demo">`,
		`name="gripper_z_joint"`,
		`name="box_g0"`,
		`joint="gripper_z_joint"`,
		`kp="500"`,
		`quat="0 0 1 0"`,
		`pos="0 0 0.3"`,
		`axis="0 0 1"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("xml output missing %q", want)
		}
	}

	// Zero components inside a vector must be written, not dropped.
	if strings.Contains(s, `=" `) {
		t.Error("vector attribute with a dropped leading zero component")
	}
}

func TestTableArenaLegs(t *testing.T) {
	w := NewTableArena(DefaultTableSize, DefaultTableOffset, true)
	table := w.FindBody("table")
	if table == nil {
		t.Fatal("missing table body")
	}

	legs := 0
	for _, g := range table.Geoms {
		if strings.HasPrefix(g.Name, "table_leg") {
			legs++
		}
	}
	if legs != 4 {
		t.Errorf("expected 4 legs, got %d", legs)
	}
}
