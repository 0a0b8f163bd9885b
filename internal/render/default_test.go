package render

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
	"time"
)

func TestFill(t *testing.T) {
	var out bytes.Buffer
	r := DefaultRenderer{Out: &out}
	r.SetSize(80, 24)
	r.Fill(3, 10, "x")
	r.Fill(0, 10, "hidden")
	r.Fill(3, 81, "hidden")
	r.FillColor(4, 2, color.RGBA{R: 16, G: 185, B: 129}, "y")
	r.flush()

	expected := "\033[3;10Hx\033[4;2H\033[38;2;16;185;129my\033[0m"
	if out.String() != expected {
		t.Log("Output  ", strings.ReplaceAll(out.String(), "\033", "ESC"))
		t.Log("Expected", strings.ReplaceAll(expected, "\033", "ESC"))
		t.Fail()
	}
}

func TestDecorationsExpire(t *testing.T) {
	var out bytes.Buffer
	r := DefaultRenderer{Out: &out}
	r.SetSize(80, 24)
	r.AddDecoration(5, 5, "PERFECT", 2)

	for frame := 0; frame < 3; frame++ {
		r.tickDecorations()
		r.flush()
		drawn := strings.Contains(out.String(), "PERFECT")
		if drawn != (frame < 2) {
			t.Log("frame", frame, "drawn", drawn)
			t.Fail()
		}
		out.Reset()
	}
	if len(r.decorations) != 0 {
		t.Log("decorations left", len(r.decorations))
		t.Fail()
	}
}

func TestRenderLoop(t *testing.T) {
	var out bytes.Buffer
	r := DefaultRenderer{Out: &out}
	frames := 0
	var total time.Duration
	r.RenderLoop(time.Millisecond, func(dt time.Duration) bool {
		frames++
		total += dt
		r.Fill(1, 1, "frame")
		return frames < 5
	})
	if frames != 5 || total < 4*time.Millisecond {
		t.Log("frames", frames, "elapsed", total)
		t.Fail()
	}
	if strings.Count(out.String(), "frame") != 5 {
		t.Log("flushed frames", strings.Count(out.String(), "frame"))
		t.Fail()
	}
}

var cellTests = map[[2]float64][2]int{
	{0, 0}:      {1, 3},
	{1000, 600}: {80, 24},
	{500, 300}:  {41, 14},
}

func TestViewport(t *testing.T) {
	v := Viewport{Width: 1000, Height: 600, Columns: 80, Rows: 24, Top: 2}
	for pos, expected := range cellTests {
		col, row := v.Cell(pos[0], pos[1])
		if col != expected[0] || row != expected[1] {
			t.Log("Position", pos)
			t.Log("Cell    ", col, row)
			t.Log("Expected", expected)
			t.Fail()
		}
	}
	if v.Visible(1100, 300) || v.Visible(-50, 300) || !v.Visible(250, 300) {
		t.Log("visibility")
		t.Fail()
	}
}
