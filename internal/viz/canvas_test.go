package viz

import "testing"

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(10, 5)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("expected dot set in first cell")
	}

	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Error("expected empty cell after clear")
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(10, 5)

	// Must not panic.
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(1000, 0)
	c.Set(0, 1000)
}

func TestFillCircleCoversCenter(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 3)

	if c.Grid[10/4][10/2] == 0x2800 {
		t.Error("expected center cell filled")
	}
}

func TestCanvasStringShape(t *testing.T) {
	c := NewCanvas(4, 2)
	s := c.String()

	// 2 rows of 4 runes plus newlines.
	want := 2 * (4 + 1)
	if got := len([]rune(s)); got != want {
		t.Errorf("expected %d runes, got %d", want, got)
	}
}
