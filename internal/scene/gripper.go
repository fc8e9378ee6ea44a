package scene

// Parallel gripper geometry. The pads sit padSpread either side of the
// grip axis at rest and travel along x under their slide joints.
const (
	GripperPadSpread    = 0.04  // pad center offset from grip axis at q=0
	GripperPadHalfWidth = 0.005 // pad half-thickness along x
	GripperPadDrop      = 0.11  // pad center below the carriage origin
	GripperPalmDrop     = 0.06  // palm center below the carriage origin
	GripperFingerKp     = 300
	GripperFingerDamp   = 10
)

// Gripper joint and actuator names.
const (
	JointFingerLeft    = "finger_l_joint"
	JointFingerRight   = "finger_r_joint"
	ActuatorFingerL    = "gripper_finger_l"
	ActuatorFingerR    = "gripper_finger_r"
	GeomPalm           = "palm"
	GeomLeftFingerPad  = "left_finger_pad"
	GeomRightFingerPad = "right_finger_pad"
)

// FingerActuators lists the gripper's jaw actuators in control order,
// left before right.
func FingerActuators() []string {
	return []string{ActuatorFingerL, ActuatorFingerR}
}

// Finger setpoints. Both fingers travel along +x: the left finger starts at
// -padSpread so a positive command moves it inward, the right finger starts
// at +padSpread so a negative command moves it inward.
var (
	FingersOpen   = []float64{-0.0115, 0.0115}
	FingersClosed = []float64{0.020833, -0.020833}
)

// NewParallelGripper builds a two-finger parallel gripper sub-assembly.
// The worldbody carries the palm and finger bodies; actuator definitions
// ride alongside so they can be merged independently of the bodies.
func NewParallelGripper() *World {
	w := NewWorld()

	base := &Body{
		Name: "gripper_base",
		Quat: [4]float64{1, 0, 0, 0},
		Mass: 0.6,
	}
	base.Geoms = append(base.Geoms, Geom{
		Name:    GeomPalm,
		Type:    "box",
		Size:    [3]float64{0.055, 0.02, 0.02},
		Pos:     [3]float64{0, 0, GripperPalmDrop},
		RGBA:    [4]float64{0.2, 0.2, 0.2, 1},
		Density: 2000,
	})

	left := &Body{
		Name: "left_finger",
		Pos:  [3]float64{-GripperPadSpread, 0, GripperPadDrop},
		Mass: 0.05,
	}
	left.Joints = append(left.Joints,
		NewSlideJoint(JointFingerLeft, [3]float64{1, 0, 0}, GripperFingerDamp))
	left.Geoms = append(left.Geoms, Geom{
		Name:     GeomLeftFingerPad,
		Type:     "box",
		Size:     [3]float64{GripperPadHalfWidth, 0.015, 0.025},
		RGBA:     [4]float64{0.3, 0.3, 0.3, 1},
		Friction: [3]float64{1, 0.005, 0.0001},
		Density:  1000,
	})

	right := &Body{
		Name: "right_finger",
		Pos:  [3]float64{GripperPadSpread, 0, GripperPadDrop},
		Mass: 0.05,
	}
	right.Joints = append(right.Joints,
		NewSlideJoint(JointFingerRight, [3]float64{1, 0, 0}, GripperFingerDamp))
	right.Geoms = append(right.Geoms, Geom{
		Name:     GeomRightFingerPad,
		Type:     "box",
		Size:     [3]float64{GripperPadHalfWidth, 0.015, 0.025},
		RGBA:     [4]float64{0.3, 0.3, 0.3, 1},
		Friction: [3]float64{1, 0.005, 0.0001},
		Density:  1000,
	})

	base.Append(left)
	base.Append(right)
	w.Append(base)

	w.AddActuator(Actuator{
		Name: ActuatorFingerL, Joint: JointFingerLeft,
		Kp: GripperFingerKp, ForceLimit: 20,
	})
	w.AddActuator(Actuator{
		Name: ActuatorFingerR, Joint: JointFingerRight,
		Kp: GripperFingerKp, ForceLimit: 20,
	})

	return w
}
