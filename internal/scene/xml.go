package scene

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// MJCF-flavored XML export of the assembled graph. Export only: there is
// no parser on purpose.

type xmlDoc struct {
	XMLName   xml.Name      `xml:"mujoco"`
	Model     string        `xml:"model,attr"`
	Worldbody xmlWorldbody  `xml:"worldbody"`
	Actuator  []xmlActuator `xml:"actuator>position"`
}

type xmlWorldbody struct {
	Bodies []xmlBody `xml:"body"`
}

type xmlBody struct {
	Name   string     `xml:"name,attr"`
	Pos    string     `xml:"pos,attr,omitempty"`
	Quat   string     `xml:"quat,attr,omitempty"`
	Joints []xmlJoint `xml:"joint"`
	Geoms  []xmlGeom  `xml:"geom"`
	Bodies []xmlBody  `xml:"body"`
}

type xmlJoint struct {
	Name    string `xml:"name,attr"`
	Type    string `xml:"type,attr"`
	Axis    string `xml:"axis,attr"`
	Damping string `xml:"damping,attr,omitempty"`
}

type xmlGeom struct {
	Name     string `xml:"name,attr"`
	Type     string `xml:"type,attr"`
	Size     string `xml:"size,attr"`
	Pos      string `xml:"pos,attr,omitempty"`
	RGBA     string `xml:"rgba,attr,omitempty"`
	Friction string `xml:"friction,attr,omitempty"`
	Group    string `xml:"group,attr,omitempty"`
	Contype  string `xml:"contype,attr,omitempty"`
}

type xmlActuator struct {
	Name  string `xml:"name,attr"`
	Joint string `xml:"joint,attr"`
	Kp    string `xml:"kp,attr"`
}

// MarshalXML renders the world as an MJCF-style document.
func (w *World) MarshalXML(modelName string) ([]byte, error) {
	doc := xmlDoc{Model: modelName}
	for _, b := range w.Bodies {
		doc.Worldbody.Bodies = append(doc.Worldbody.Bodies, toXMLBody(b))
	}
	for _, a := range w.Actuators {
		doc.Actuator = append(doc.Actuator, xmlActuator{
			Name:  a.Name,
			Joint: a.Joint,
			Kp:    trimFloat(a.Kp),
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal world: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func toXMLBody(b *Body) xmlBody {
	xb := xmlBody{
		Name: b.Name,
		Pos:  vecAttr(b.Pos[:]),
		Quat: quatAttr(b.Quat),
	}
	for _, j := range b.Joints {
		xb.Joints = append(xb.Joints, xmlJoint{
			Name:    j.Name,
			Type:    j.Type,
			Axis:    vecAttr(j.Axis[:]),
			Damping: trimFloat(j.Damping),
		})
	}
	for _, g := range b.Geoms {
		xg := xmlGeom{
			Name: g.Name,
			Type: g.Type,
			Size: vecAttr(g.Size[:]),
			Pos:  vecAttr(g.Pos[:]),
			RGBA: vecAttr(g.RGBA[:]),
		}
		if g.Visual {
			xg.Group = "1"
			xg.Contype = "0"
		} else {
			xg.Friction = vecAttr(g.Friction[:])
		}
		xb.Geoms = append(xb.Geoms, xg)
	}
	for _, c := range b.Children {
		xb.Bodies = append(xb.Bodies, toXMLBody(c))
	}
	return xb
}

// vecAttr renders a vector attribute. The all-zero vector is omitted
// entirely; otherwise every component is written, zeros included.
func vecAttr(v []float64) string {
	all := true
	for _, x := range v {
		if x != 0 {
			all = false
			break
		}
	}
	if all {
		return ""
	}
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%g", x)
	}
	return strings.Join(parts, " ")
}

func quatAttr(q [4]float64) string {
	if q == [4]float64{} || q == [4]float64{1, 0, 0, 0} {
		return ""
	}
	return vecAttr(q[:])
}

// trimFloat renders a scalar attribute, omitted when zero.
func trimFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return fmt.Sprintf("%g", f)
}
