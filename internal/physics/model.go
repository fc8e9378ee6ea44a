package physics

import (
	"fmt"
	"math"

	"grasplab/internal/engine"
	"grasplab/internal/scene"
)

// Params tune the penalty contact model. The defaults are chosen so the
// coupled box/slider pair stays stable under semi-implicit stepping at
// dt=0.002: the box's total velocity feedback (contact damping plus
// friction slope) must stay well below 2m/dt.
type Params struct {
	ContactStiffness float64 // N/m penalty spring
	ContactDamping   float64 // N s/m penalty damper
	FrictionSlope    float64 // N s/m viscous slope of the friction stick band
	Gravity          float64 // m/s^2
}

func DefaultParams() Params {
	return Params{
		ContactStiffness: 400,
		ContactDamping:   20,
		FrictionSlope:    30,
		Gravity:          9.81,
	}
}

type dof struct {
	name     string
	damping  float64
	mass     float64 // subtree mass the DOF carries
	dzdq     float64 // world dz per unit q (0 for horizontal DOFs)
	dxdq     float64 // world dx per unit q
	gravComp bool
}

type servo struct {
	name       string
	joint      int
	kp         float64
	forceLimit float64
}

type geomInfo struct {
	name     string
	friction [3]float64
}

// Model is the compiled demo scene: a fixed-topology vertical grasp
// scenario (damped z slider carrying two opposed fingers, one graspable
// box, static table). It is not a general rigid-body engine; Compile
// rejects scenes it does not understand.
type Model struct {
	dofs   []dof
	servos []servo
	geoms  []geomInfo

	jointIDs map[string]int
	actIDs   map[string]int
	geomIDs  map[string]int

	params Params

	// Scenario bindings.
	zJoint, lJoint, rJoint, boxJoint int
	carriageZ0                       float64
	padDrop, padSpread, padHalf      float64
	padHalfZ                         float64
	palmDrop, palmHalfZ              float64
	boxHalf                          [3]float64
	boxStartZ                        float64
	boxMass                          float64
	tableTop                         float64
	padMu                            float64

	boxGeom, tableGeom, leftPad, rightPad, palmGeom int
}

// Compile binds a scene graph to the scenario dynamics.
func Compile(w *scene.World, params Params) (*Model, error) {
	m := &Model{
		params:   params,
		jointIDs: make(map[string]int),
		actIDs:   make(map[string]int),
		geomIDs:  make(map[string]int),
		zJoint:   -1, lJoint: -1, rJoint: -1, boxJoint: -1,
		boxGeom: -1, tableGeom: -1, leftPad: -1, rightPad: -1, palmGeom: -1,
	}
	if params.Gravity == 0 {
		m.params.Gravity = DefaultParams().Gravity
	}

	comp := make(map[string]bool)
	for _, j := range w.GravityCompensated {
		comp[j] = true
	}

	for _, body := range w.Bodies {
		if err := m.compileBody(w, body, comp); err != nil {
			return nil, err
		}
	}

	if m.zJoint < 0 {
		return nil, fmt.Errorf("compile: no vertical carriage joint in scene")
	}
	if m.lJoint < 0 || m.rJoint < 0 {
		return nil, fmt.Errorf("compile: gripper needs two finger joints")
	}
	if m.boxJoint < 0 {
		return nil, fmt.Errorf("compile: no graspable box in scene")
	}

	for _, a := range w.Actuators {
		ji, ok := m.jointIDs[a.Joint]
		if !ok {
			return nil, fmt.Errorf("compile actuator %q: %w: %q",
				a.Name, engine.ErrUnknownJoint, a.Joint)
		}
		m.actIDs[a.Name] = len(m.servos)
		m.servos = append(m.servos, servo{
			name:       a.Name,
			joint:      ji,
			kp:         a.Kp,
			forceLimit: a.ForceLimit,
		})
	}

	return m, nil
}

// compileBody classifies one top-level body and registers its DOFs and
// geoms. The walk understands exactly the demo topology.
func (m *Model) compileBody(w *scene.World, body *scene.Body, comp map[string]bool) error {
	flipped := body.Quat == [4]float64{0, 0, 1, 0}

	switch {
	case len(body.Joints) == 1 && len(body.Children) > 0:
		// Carriage: vertical slider with the gripper hanging below.
		j := body.Joints[0]
		if j.Axis != [3]float64{0, 0, 1} {
			return fmt.Errorf("compile: carriage joint %q must slide on z", j.Name)
		}
		dzdq := 1.0
		if flipped {
			dzdq = -1
		}
		m.carriageZ0 = body.Pos[2]
		m.zJoint = m.addDOF(dof{
			name:     j.Name,
			damping:  j.Damping,
			mass:     subtreeMass(body),
			dzdq:     dzdq,
			gravComp: comp[j.Name],
		})
		m.addGeoms(body)

		for _, child := range descendants(body) {
			if len(child.Joints) == 0 {
				// Jointless sub-body riding the carriage; its collision
				// geom is the palm.
				for _, g := range child.Geoms {
					gid := m.addGeom(g)
					if !g.Visual {
						m.palmGeom = gid
						m.palmDrop = math.Abs(child.Pos[2] + g.Pos[2])
						m.palmHalfZ = g.Size[2]
					}
				}
				continue
			}
			fj := child.Joints[0]
			if fj.Axis != [3]float64{1, 0, 0} {
				return fmt.Errorf("compile: finger joint %q must slide on x", fj.Name)
			}
			// The 180-degree mount flips local x.
			dxdq := 1.0
			if flipped {
				dxdq = -1
			}
			id := m.addDOF(dof{
				name:     fj.Name,
				damping:  fj.Damping,
				mass:     subtreeMass(child),
				dxdq:     dxdq,
				gravComp: comp[fj.Name],
			})
			// The finger mounted on local -x ends up on world +x when
			// flipped; it closes in the -x direction.
			onPlusX := (child.Pos[0] < 0) == flipped
			if onPlusX {
				m.lJoint = id
			} else {
				m.rJoint = id
			}
			m.padDrop = math.Abs(child.Pos[2])
			m.padSpread = math.Abs(child.Pos[0])
			for _, g := range child.Geoms {
				gid := m.addGeom(g)
				m.padHalf = g.Size[0]
				m.padHalfZ = g.Size[2]
				if m.padMu == 0 || g.Friction[0] < m.padMu {
					m.padMu = g.Friction[0]
				}
				if onPlusX {
					m.leftPad = gid
				} else {
					m.rightPad = gid
				}
			}
		}

	case len(body.Joints) == 1:
		// Free-standing graspable object on a vertical slider.
		j := body.Joints[0]
		if j.Axis != [3]float64{0, 0, 1} {
			return fmt.Errorf("compile: object joint %q must slide on z", j.Name)
		}
		m.boxJoint = m.addDOF(dof{
			name:     j.Name,
			damping:  j.Damping,
			mass:     subtreeMass(body),
			dzdq:     1,
			gravComp: comp[j.Name],
		})
		m.boxStartZ = body.Pos[2]
		m.boxMass = subtreeMass(body)
		for _, g := range body.Geoms {
			gid := m.addGeom(g)
			if !g.Visual {
				m.boxGeom = gid
				m.boxHalf = g.Size
				if g.Friction[0] < m.padMu || m.padMu == 0 {
					m.padMu = g.Friction[0]
				}
			}
		}

	default:
		// Static scenery: floor, table, markers.
		for _, g := range body.Geoms {
			gid := m.addGeom(g)
			if g.Type == "box" && !g.Visual {
				top := body.Pos[2] + g.Size[2]
				if top > m.tableTop {
					m.tableTop = top
					m.tableGeom = gid
				}
			}
		}
	}

	return nil
}

func (m *Model) addDOF(d dof) int {
	id := len(m.dofs)
	m.jointIDs[d.name] = id
	m.dofs = append(m.dofs, d)
	return id
}

func (m *Model) addGeom(g scene.Geom) int {
	id := len(m.geoms)
	m.geomIDs[g.Name] = id
	m.geoms = append(m.geoms, geomInfo{name: g.Name, friction: g.Friction})
	return id
}

func (m *Model) addGeoms(b *scene.Body) {
	for _, g := range b.Geoms {
		m.addGeom(g)
	}
}

// descendants flattens a body's subtree, excluding the body itself.
func descendants(b *scene.Body) []*scene.Body {
	var out []*scene.Body
	for _, c := range b.Children {
		out = append(out, c)
		out = append(out, descendants(c)...)
	}
	return out
}

func subtreeMass(b *scene.Body) float64 {
	mass := b.Mass
	for _, g := range b.Geoms {
		if !g.Visual && b.Mass == 0 {
			mass += g.Density * 8 * g.Size[0] * g.Size[1] * g.Size[2]
		}
	}
	for _, c := range b.Children {
		mass += subtreeMass(c)
	}
	return mass
}

func (m *Model) StateDim() int   { return 2 * len(m.dofs) }
func (m *Model) ControlDim() int { return len(m.servos) }

// NQ is the number of positional DOFs.
func (m *Model) NQ() int { return len(m.dofs) }

// InitialState returns the home configuration at rest.
func (m *Model) InitialState() engine.State {
	return make(engine.State, m.StateDim())
}

// ActuatorID resolves an actuator name to its index in the control vector.
func (m *Model) ActuatorID(name string) (int, error) {
	id, ok := m.actIDs[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", engine.ErrUnknownActuator, name)
	}
	return id, nil
}

// JointVelAddr resolves a joint name to the index of its velocity entry in
// the state vector.
func (m *Model) JointVelAddr(name string) (int, error) {
	id, ok := m.jointIDs[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", engine.ErrUnknownJoint, name)
	}
	return len(m.dofs) + id, nil
}

// GeomName resolves a geom id back to its name.
func (m *Model) GeomName(id int) string {
	if id < 0 || id >= len(m.geoms) {
		return ""
	}
	return m.geoms[id].name
}

// GeomID resolves a geom name to its id.
func (m *Model) GeomID(name string) (int, error) {
	id, ok := m.geomIDs[name]
	if !ok {
		return 0, fmt.Errorf("unknown geom: %q", name)
	}
	return id, nil
}

// BoxHeight is the box center's world z.
func (m *Model) BoxHeight(x engine.State) float64 {
	return m.boxStartZ + x[m.boxJoint]
}

// GripperHeight is the pad center's world z.
func (m *Model) GripperHeight(x engine.State) float64 {
	return m.carriageZ0 + m.dofs[m.zJoint].dzdq*x[m.zJoint] - m.padDrop
}

// PalmHeight is the palm underside's world z.
func (m *Model) PalmHeight(x engine.State) float64 {
	return m.carriageZ0 + m.dofs[m.zJoint].dzdq*x[m.zJoint] - m.palmDrop - m.palmHalfZ
}

// PadPositions returns the world x of the two pad centers.
func (m *Model) PadPositions(x engine.State) (left, right float64) {
	left = m.padSpread + m.dofs[m.lJoint].dxdq*x[m.lJoint]
	right = -m.padSpread + m.dofs[m.rJoint].dxdq*x[m.rJoint]
	return
}

// TableTop is the support surface height.
func (m *Model) TableTop() float64 { return m.tableTop }

// BoxHalf is the half-extent vector of the graspable box.
func (m *Model) BoxHalf() [3]float64 { return m.boxHalf }
