package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected ⠁, got %q", c.Grid[0][0])
	}
	c.Set(3, 3)
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected ⢀, got %q", c.Grid[0][1])
	}
	if !c.IsSet(3, 3) || c.IsSet(2, 3) {
		t.Error("IsSet disagrees with Set")
	}

	c.Unset(0, 0)
	if !c.Empty(0, 0) {
		t.Errorf("expected empty cell, got %q", c.Grid[0][0])
	}

	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if !c.Empty(0, 0) {
		t.Error("out of range pixels should be ignored")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for x := 0; x < 8; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("pixel %d not set", x)
		}
	}

	c.Clear()
	c.DrawLine(-10, -10, -1, -1)
	if strings.Trim(c.String(), string(blank)+"\n") != "" {
		t.Error("off-canvas line should draw nothing")
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Set(1, 1)
	c.Resize(5, 4)
	if c.Width != 5 || c.Height != 4 || len(c.Grid) != 4 || len(c.Grid[0]) != 5 {
		t.Fatalf("unexpected size %dx%d", c.Width, c.Height)
	}
	if w, h := c.PixelSize(); w != 10 || h != 16 {
		t.Errorf("expected 10x16 pixels, got %dx%d", w, h)
	}
	if c.IsSet(1, 1) {
		t.Error("resize should clear")
	}
}
