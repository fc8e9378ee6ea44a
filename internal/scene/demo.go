package scene

// Canonical demo names and constants.
const (
	JointGripperZ    = "gripper_z_joint"
	ActuatorGripperZ = "gripper_z"
	BodyCarriage     = "gripper_carriage"
	BoxName          = "box"

	GripperZKp      = 500
	GripperZDamping = 50
	GripperZLimit   = 200

	// Carriage height and the flipped mounting orientation: the gripper
	// points down, so a larger slider value moves the fingers toward the
	// table.
	CarriageHeight = 0.3
)

// DemoParams are the tunable pieces of the standard demo scene.
type DemoParams struct {
	TableSize   [3]float64
	TableOffset [3]float64
	TableLegs   bool
	BoxHalfSize [3]float64
	BoxRGBA     [4]float64
	BoxFriction [3]float64
	BoxStartZ   float64
	Markers     bool
}

func DefaultDemoParams() DemoParams {
	return DemoParams{
		TableSize:   DefaultTableSize,
		TableOffset: DefaultTableOffset,
		TableLegs:   false,
		BoxHalfSize: [3]float64{0.02, 0.02, 0.02},
		BoxRGBA:     [4]float64{1, 0, 0, 1},
		BoxFriction: [3]float64{1, 0.005, 0.0001},
		BoxStartZ:   0.11,
		Markers:     true,
	}
}

// DemoWorld assembles the gripper interaction scene: table arena, parallel
// gripper hung from a damped vertical slider, a red graspable box, and two
// visual axis markers.
func DemoWorld(p DemoParams) *World {
	world := NewWorld()

	arena := NewTableArena(p.TableSize, p.TableOffset, p.TableLegs)
	world.Merge(arena)

	gripper := NewParallelGripper()

	// Carriage body with the vertical slide joint; the gripper assembly is
	// re-parented under it, flipped to face the table.
	carriage := &Body{
		Name: BodyCarriage,
		Pos:  [3]float64{0, 0, CarriageHeight},
		Quat: [4]float64{0, 0, 1, 0}, // 180 degrees: z points down
	}
	carriage.Joints = append(carriage.Joints,
		NewSlideJoint(JointGripperZ, [3]float64{0, 0, 1}, GripperZDamping))
	for _, b := range gripper.Bodies {
		carriage.Append(b)
	}

	// Actuators merge on their own; the bodies were moved by hand above.
	world.MergeActuators(gripper)
	world.Append(carriage)

	world.AddActuator(Actuator{
		Name:       ActuatorGripperZ,
		Joint:      JointGripperZ,
		Kp:         GripperZKp,
		ForceLimit: GripperZLimit,
	})

	box := NewBoxObject(BoxName, p.BoxHalfSize, p.BoxRGBA, p.BoxFriction)
	box.Pos = [3]float64{0, 0, p.BoxStartZ}
	world.Append(box)

	if p.Markers {
		xRef := NewVisualBox("x_ref", [3]float64{0.01, 0.01, 0.01}, [4]float64{0, 1, 0, 1})
		xRef.Pos = [3]float64{0.2, 0, 0.105}
		world.Append(xRef)

		yRef := NewVisualBox("y_ref", [3]float64{0.01, 0.01, 0.01}, [4]float64{0, 0, 1, 1})
		yRef.Pos = [3]float64{0, 0.2, 0.105}
		world.Append(yRef)
	}

	world.GravityCompensated = append(world.GravityCompensated, JointGripperZ)

	return world
}
