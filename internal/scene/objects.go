package scene

// NewBoxObject builds a free-standing graspable box. The geom is named
// name+"_g0" and the vertical slide joint name+"_joint"; this scenario's
// dynamics are vertical, so the box carries a single z slide DOF rather
// than a full free joint.
func NewBoxObject(name string, halfSize [3]float64, rgba [4]float64, friction [3]float64) *Body {
	b := &Body{
		Name: name,
		Quat: [4]float64{1, 0, 0, 0},
	}
	b.Joints = append(b.Joints, NewSlideJoint(name+"_joint", [3]float64{0, 0, 1}, 0))
	b.Geoms = append(b.Geoms, Geom{
		Name:     name + "_g0",
		Type:     "box",
		Size:     halfSize,
		RGBA:     rgba,
		Friction: friction,
		Density:  1000,
	})
	return b
}

// NewVisualBox builds a jointless, collision-free marker box.
func NewVisualBox(name string, halfSize [3]float64, rgba [4]float64) *Body {
	b := &Body{
		Name: name,
		Quat: [4]float64{1, 0, 0, 0},
	}
	b.Geoms = append(b.Geoms, Geom{
		Name:   name + "_g0",
		Type:   "box",
		Size:   halfSize,
		RGBA:   rgba,
		Visual: true,
	})
	return b
}
