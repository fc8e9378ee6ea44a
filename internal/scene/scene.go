package scene

// Geom is a collision or visual primitive attached to a body. Positions are
// relative to the owning body frame; Size holds half-extents for boxes.
type Geom struct {
	Name     string
	Type     string // "box" or "plane"
	Size     [3]float64
	Pos      [3]float64
	RGBA     [4]float64
	Friction [3]float64 // sliding, torsional, rolling
	Density  float64
	Visual   bool // no collision when true
}

// Joint is a degree of freedom attached to a body. Only slide joints are
// used in this scenario.
type Joint struct {
	Name    string
	Type    string // "slide"
	Axis    [3]float64
	Damping float64
	Range   [2]float64
	Limited bool
}

// Body is a node in the scene graph. Quat is (w, x, y, z).
type Body struct {
	Name     string
	Pos      [3]float64
	Quat     [4]float64
	Mass     float64
	Joints   []Joint
	Geoms    []Geom
	Children []*Body
}

// Append adds a child body.
func (b *Body) Append(child *Body) {
	b.Children = append(b.Children, child)
}

// Actuator is a position servo driving a named joint.
type Actuator struct {
	Name       string
	Joint      string
	Kp         float64
	ForceLimit float64
}

// World is the root of the scene graph plus the actuator table. It is
// mutated during assembly only; Compile snapshots it.
type World struct {
	Bodies    []*Body
	Actuators []Actuator

	// GravityCompensated joints receive a bias-cancelling applied force
	// each step, like copying qfrc_bias into qfrc_applied.
	GravityCompensated []string

	Gravity float64
}

func NewWorld() *World {
	return &World{Gravity: 9.81}
}

// Append adds a top-level body to the world.
func (w *World) Append(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// AddActuator registers a position servo.
func (w *World) AddActuator(a Actuator) {
	w.Actuators = append(w.Actuators, a)
}

// Merge copies another world's bodies and actuators into w.
func (w *World) Merge(other *World) {
	w.Bodies = append(w.Bodies, other.Bodies...)
	w.Actuators = append(w.Actuators, other.Actuators...)
	w.GravityCompensated = append(w.GravityCompensated, other.GravityCompensated...)
}

// MergeActuators copies only the actuator table, leaving bodies behind.
// Used when a sub-assembly's bodies are re-parented manually.
func (w *World) MergeActuators(other *World) {
	w.Actuators = append(w.Actuators, other.Actuators...)
}

// NewSlideJoint builds a slide joint, mirroring the mjcf new_joint helper.
func NewSlideJoint(name string, axis [3]float64, damping float64) Joint {
	return Joint{Name: name, Type: "slide", Axis: axis, Damping: damping}
}

// NewPositionActuator builds a position servo, mirroring new_actuator.
func NewPositionActuator(name, joint string, kp float64) Actuator {
	return Actuator{Name: name, Joint: joint, Kp: kp}
}

// FindBody walks the graph for a body by name.
func (w *World) FindBody(name string) *Body {
	var walk func(b *Body) *Body
	walk = func(b *Body) *Body {
		if b.Name == name {
			return b
		}
		for _, c := range b.Children {
			if found := walk(c); found != nil {
				return found
			}
		}
		return nil
	}
	for _, b := range w.Bodies {
		if found := walk(b); found != nil {
			return found
		}
	}
	return nil
}

// AllGeoms returns every geom in the world in tree order.
func (w *World) AllGeoms() []Geom {
	var out []Geom
	var walk func(b *Body)
	walk = func(b *Body) {
		out = append(out, b.Geoms...)
		for _, c := range b.Children {
			walk(c)
		}
	}
	for _, b := range w.Bodies {
		walk(b)
	}
	return out
}

// AllJoints returns every joint in the world in tree order.
func (w *World) AllJoints() []Joint {
	var out []Joint
	var walk func(b *Body)
	walk = func(b *Body) {
		out = append(out, b.Joints...)
		for _, c := range b.Children {
			walk(c)
		}
	}
	for _, b := range w.Bodies {
		walk(b)
	}
	return out
}
