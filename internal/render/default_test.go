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
	r := &DefaultRenderer{Out: &out}
	r.Fill(3, 7, "x")
	r.FillColor(1, 2, color.RGBA{10, 20, 30, 255}, "y")
	r.flush()
	expected := "\033[3;7Hx\033[1;2H\033[38;2;10;20;30my\033[0m"
	if out.String() != expected {
		t.Logf("     out %q", out.String())
		t.Logf("expected %q", expected)
		t.Fail()
	}
	r.flush()
	if out.String() != expected {
		t.Error("buffer was not reset")
	}
}

func TestDecorations(t *testing.T) {
	var out bytes.Buffer
	r := &DefaultRenderer{Out: &out}
	r.AddDecoration(4, 2, "Perfect", 2)
	for i := 0; i < 3; i++ {
		r.tickDecorations()
	}
	r.flush()
	if strings.Count(out.String(), "\033[2;4HPerfect") != 2 || len(r.decorations) != 0 {
		t.Errorf("decorations drawn %q", out.String())
	}
}

func TestRenderLoopStops(t *testing.T) {
	var out bytes.Buffer
	r := &DefaultRenderer{Out: &out}
	frames := 0
	r.RenderLoop(0, func(dt time.Duration) bool {
		if dt < 0 {
			t.Errorf("negative frame time %v", dt)
		}
		frames++
		r.Fill(1, 1, "f")
		return frames < 3
	})
	if frames != 3 || strings.Count(out.String(), "f") != 3 {
		t.Errorf("%v frames, output %q", frames, out.String())
	}
}
