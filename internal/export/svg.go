// Package export renders scene snapshots and trajectories as SVG.
package export

import (
	"fmt"
	"strings"

	"grasplab/internal/engine"
	"grasplab/internal/physics"
	"grasplab/internal/scene"
)

// Side view window in world coordinates, matching the live view.
const (
	svgXMin = -0.25
	svgXMax = 0.25
	svgZMin = 0.0
	svgZMax = 0.45
)

// SceneSVG renders the x-z side view of the model at state x. Scale is
// pixels per meter.
func SceneSVG(mdl *physics.Model, x engine.State, scale float64) string {
	width := (svgXMax - svgXMin) * scale
	height := (svgZMax - svgZMin) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	rect := func(x0, z0, x1, z1 float64, fill string) {
		px := (x0 - svgXMin) * scale
		py := (svgZMax - z1) * scale
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, px, py, (x1-x0)*scale, (z1-z0)*scale, fill))
	}

	// Table slab under its top surface.
	top := mdl.TableTop()
	rect(-0.2, top-0.05, 0.2, top, "#8b7355")

	// Box.
	half := mdl.BoxHalf()
	h := mdl.BoxHeight(x)
	rect(-half[0], h-half[2], half[0], h+half[2], "#ff3030")

	// Gripper: palm bar and the two fingers.
	padL, padR := mdl.PadPositions(x)
	palm := mdl.PalmHeight(x)
	pad := mdl.GripperHeight(x)
	rect(padL-0.01, palm-0.005, padR+0.01, palm+0.005, "#c0c0c0")
	rect(padL-scene.GripperPadHalfWidth, pad-0.02, padL+scene.GripperPadHalfWidth, palm, "#c0c0c0")
	rect(padR-scene.GripperPadHalfWidth, pad-0.02, padR+scene.GripperPadHalfWidth, palm, "#c0c0c0")

	// x_ref marker on the table edge.
	rect(0.19, top, 0.21, top+0.01, "#30ff30")

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG plots a 2D trajectory, autoscaled with 10% padding.
func TrajectoryToSVG(points []struct{ X, Y float64 }, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		px := (p.X - minX) / rangeX * float64(width)
		py := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
