package scene

// Default table arena dimensions, matching the gripper demo.
var (
	DefaultTableSize   = [3]float64{0.4, 0.4, 0.05}
	DefaultTableOffset = [3]float64{0, 0, 0.1}
)

// NewTableArena builds a floor plane and a table whose top surface sits at
// offset.Z. fullSize is (x, y, z) full extents of the table top.
func NewTableArena(fullSize, offset [3]float64, hasLegs bool) *World {
	w := NewWorld()

	floor := &Body{Name: "floor"}
	floor.Geoms = append(floor.Geoms, Geom{
		Name:     "floor",
		Type:     "plane",
		Size:     [3]float64{1, 1, 0.01},
		RGBA:     [4]float64{0.5, 0.5, 0.5, 1},
		Friction: [3]float64{1, 0.005, 0.0001},
	})
	w.Append(floor)

	half := [3]float64{fullSize[0] / 2, fullSize[1] / 2, fullSize[2] / 2}
	table := &Body{
		Name: "table",
		// Body origin so the top surface lands exactly at offset.Z.
		Pos:  [3]float64{offset[0], offset[1], offset[2] - half[2]},
		Quat: [4]float64{1, 0, 0, 0},
	}
	table.Geoms = append(table.Geoms, Geom{
		Name:     "table_collision",
		Type:     "box",
		Size:     half,
		RGBA:     [4]float64{0.6, 0.4, 0.2, 1},
		Friction: [3]float64{1, 0.005, 0.0001},
		Density:  800,
	})
	table.Geoms = append(table.Geoms, Geom{
		Name:   "table_visual",
		Type:   "box",
		Size:   half,
		RGBA:   [4]float64{0.6, 0.4, 0.2, 1},
		Visual: true,
	})

	if hasLegs {
		legHalf := [3]float64{0.02, 0.02, (offset[2] - fullSize[2]) / 2}
		for i, dx := range []float64{-1, 1} {
			for j, dy := range []float64{-1, 1} {
				table.Geoms = append(table.Geoms, Geom{
					Name: legName(i*2 + j),
					Type: "box",
					Size: legHalf,
					Pos: [3]float64{
						dx * (half[0] - 0.03),
						dy * (half[1] - 0.03),
						-half[2] - legHalf[2],
					},
					RGBA:    [4]float64{0.4, 0.4, 0.4, 1},
					Density: 800,
				})
			}
		}
	}

	w.Append(table)
	return w
}

func legName(i int) string {
	return "table_leg" + string(rune('0'+i))
}

// TableTop returns the world z of the arena's support surface.
func TableTop(offset [3]float64) float64 {
	return offset[2]
}
