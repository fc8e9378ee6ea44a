package physics

import (
	"math"

	"grasplab/internal/engine"
)

// padContact is one finger pad pressing on the box.
type padContact struct {
	geom    int
	pen     float64 // penetration depth along x
	penRate float64 // closing speed
	normal  float64 // resulting normal force, >= 0
	nx      float64 // world x component of the contact normal
}

// tableContact is the box resting on the table.
type tableContact struct {
	pen    float64
	normal float64
}

// palmContact is the palm underside pressing down on the box top.
type palmContact struct {
	pen    float64
	normal float64
}

// Derive implements engine.System. u holds one position setpoint per
// actuator in actuator-table order.
func (m *Model) Derive(x engine.State, u engine.Control, t float64) engine.State {
	n := len(m.dofs)
	dx := make(engine.State, 2*n)

	for i := 0; i < n; i++ {
		dx[i] = x[n+i]
	}

	force := make([]float64, n)

	// Position servos: force = kp*(setpoint - q), clamped.
	for i, s := range m.servos {
		target := 0.0
		if i < len(u) {
			target = u[i]
		}
		f := s.kp * (target - x[s.joint])
		if s.forceLimit > 0 {
			f = clamp(f, -s.forceLimit, s.forceLimit)
		}
		force[s.joint] += f
	}

	// Gravity, compensation, joint damping.
	for i, d := range m.dofs {
		g := -d.mass * m.params.Gravity * d.dzdq
		force[i] += g
		if d.gravComp {
			force[i] -= g
		}
		force[i] -= d.damping * x[n+i]
	}

	// Contacts.
	if tc := m.tableContact(x); tc.normal > 0 {
		force[m.boxJoint] += tc.normal
	}
	if pc := m.palmContact(x); pc.normal > 0 {
		force[m.boxJoint] -= pc.normal
		force[m.zJoint] += pc.normal * m.dofs[m.zJoint].dzdq
	}

	vPadZ := m.dofs[m.zJoint].dzdq * x[n+m.zJoint]
	vBoxZ := x[n+m.boxJoint]

	squeeze := 0.0
	for _, pc := range m.padContacts(x) {
		// Reaction pushes the finger back out along its own axis.
		var fingerDOF int
		if pc.geom == m.leftPad {
			fingerDOF = m.lJoint
		} else {
			fingerDOF = m.rJoint
		}
		// Normal force acts outward on the pad; project on the DOF axis.
		force[fingerDOF] += pc.normal * -pc.nx * m.dofs[fingerDOF].dxdq
		squeeze += pc.normal
	}

	// Tangential friction couples the box to the gripper's vertical
	// motion: viscous inside the stick band, clamped to the Coulomb
	// cone. The slope is fixed rather than proportional to the normal
	// force, which keeps the squeezed box stable at the default dt.
	if squeeze > 0 {
		cone := m.padMu * squeeze
		fric := clamp(-m.params.FrictionSlope*(vBoxZ-vPadZ), -cone, cone)
		force[m.boxJoint] += fric
		force[m.zJoint] += -fric * m.dofs[m.zJoint].dzdq
	}

	for i, d := range m.dofs {
		dx[n+i] = force[i] / d.mass
	}

	return dx
}

// tableContact evaluates box/table penetration.
func (m *Model) tableContact(x engine.State) tableContact {
	n := len(m.dofs)
	boxBottom := m.BoxHeight(x) - m.boxHalf[2]
	pen := m.tableTop - boxBottom
	if pen <= 0 {
		return tableContact{}
	}
	vBox := x[n+m.boxJoint]
	f := m.params.ContactStiffness*pen - m.params.ContactDamping*vBox
	if f < 0 {
		f = 0
	}
	return tableContact{pen: pen, normal: f}
}

// palmContact evaluates the box top pushing into the palm underside,
// which happens when the slider overdrives past the box.
func (m *Model) palmContact(x engine.State) palmContact {
	if m.palmGeom < 0 {
		return palmContact{}
	}
	pen := m.BoxHeight(x) + m.boxHalf[2] - m.PalmHeight(x)
	if pen <= 0 {
		return palmContact{}
	}
	n := len(m.dofs)
	rate := x[n+m.boxJoint] - m.dofs[m.zJoint].dzdq*x[n+m.zJoint]
	f := m.params.ContactStiffness*pen + m.params.ContactDamping*rate
	if f < 0 {
		f = 0
	}
	return palmContact{pen: pen, normal: f}
}

// padContacts evaluates finger pad/box penetrations.
func (m *Model) padContacts(x engine.State) []padContact {
	n := len(m.dofs)

	// Pads engage only when they overlap the box vertically.
	if math.Abs(m.GripperHeight(x)-m.BoxHeight(x)) > m.padHalfZ+m.boxHalf[2] {
		return nil
	}

	var out []padContact
	xL, xR := m.PadPositions(x)

	// Left pad sits on +x; its inner face is xL - padHalf.
	penL := (m.boxHalf[0] + m.padHalf) - xL
	if penL > 0 {
		rate := -m.dofs[m.lJoint].dxdq * x[n+m.lJoint]
		f := m.params.ContactStiffness*penL + m.params.ContactDamping*rate
		if f > 0 {
			out = append(out, padContact{
				geom: m.leftPad, pen: penL, penRate: rate, normal: f, nx: -1,
			})
		}
	}

	penR := xR + m.boxHalf[0] + m.padHalf
	if penR > 0 {
		rate := m.dofs[m.rJoint].dxdq * x[n+m.rJoint]
		f := m.params.ContactStiffness*penR + m.params.ContactDamping*rate
		if f > 0 {
			out = append(out, padContact{
				geom: m.rightPad, pen: penR, penRate: rate, normal: f, nx: 1,
			})
		}
	}

	return out
}

// Contacts implements engine.ContactSource: the active contact set as
// named geom pairs with friction and normal data.
func (m *Model) Contacts(x engine.State) []engine.Contact {
	var out []engine.Contact

	if tc := m.tableContact(x); tc.normal > 0 {
		out = append(out, engine.Contact{
			Geom1:    m.GeomName(m.tableGeom),
			Geom2:    m.GeomName(m.boxGeom),
			Normal:   [3]float64{0, 0, 1},
			Friction: m.pairFriction(m.tableGeom, m.boxGeom),
			Depth:    tc.pen,
			Force:    tc.normal,
		})
	}

	if pc := m.palmContact(x); pc.normal > 0 {
		out = append(out, engine.Contact{
			Geom1:    m.GeomName(m.palmGeom),
			Geom2:    m.GeomName(m.boxGeom),
			Normal:   [3]float64{0, 0, -1},
			Friction: m.pairFriction(m.palmGeom, m.boxGeom),
			Depth:    pc.pen,
			Force:    pc.normal,
		})
	}

	for _, pc := range m.padContacts(x) {
		out = append(out, engine.Contact{
			Geom1:    m.GeomName(pc.geom),
			Geom2:    m.GeomName(m.boxGeom),
			Normal:   [3]float64{pc.nx, 0, 0},
			Friction: m.pairFriction(pc.geom, m.boxGeom),
			Depth:    pc.pen,
			Force:    pc.normal,
		})
	}

	return out
}

// pairFriction combines two geoms' friction triples elementwise, taking
// the smaller coefficient.
func (m *Model) pairFriction(g1, g2 int) [3]float64 {
	f1 := m.geoms[g1].friction
	f2 := m.geoms[g2].friction
	var out [3]float64
	for i := range out {
		out[i] = math.Min(f1[i], f2[i])
	}
	return out
}

// Energy reports kinetic plus gravitational potential energy. Penalty
// springs make this non-conserved during contact, which is fine for the
// drift diagnostic it feeds.
func (m *Model) Energy(x engine.State) float64 {
	n := len(m.dofs)
	e := 0.0
	for i, d := range m.dofs {
		v := x[n+i]
		e += 0.5 * d.mass * v * v
		e += d.mass * m.params.Gravity * d.dzdq * x[i]
	}
	return e
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
