package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("dot 1 = %x, want 2801", c.Grid[0][0])
	}
	c.Set(1, 3)
	if c.Grid[0][0] != 0x2801|0x80 {
		t.Errorf("dot 8 = %x", c.Grid[0][0])
	}

	// Out of bounds is ignored.
	c.Set(-1, 0)
	c.Set(0, 100)
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.FillRect(0, 0, 5, 11)
	c.Clear()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatalf("cell = %x after Clear", r)
			}
		}
	}
}

func TestCanvasFillRect(t *testing.T) {
	c := NewCanvas(2, 1)
	// Corners in reversed order still fill the full cell.
	c.FillRect(1, 3, 0, 0)
	if c.Grid[0][0] != 0x28FF {
		t.Errorf("cell = %x, want 28ff", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2800 {
		t.Errorf("neighbor = %x, want empty", c.Grid[0][1])
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	out := c.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 3 {
			t.Errorf("line width = %d, want 3", len([]rune(line)))
		}
	}
}

func TestToScreen(t *testing.T) {
	// Top-left world corner maps to the screen origin.
	sx, sy := toScreen(viewXMin, viewZMax)
	if sx != 0 || sy != 0 {
		t.Errorf("corner = (%d, %d), want (0, 0)", sx, sy)
	}
	// Higher z is smaller y.
	_, yTable := toScreen(0, 0.1)
	_, yCarriage := toScreen(0, 0.3)
	if yCarriage >= yTable {
		t.Errorf("carriage y %d not above table y %d", yCarriage, yTable)
	}
}
