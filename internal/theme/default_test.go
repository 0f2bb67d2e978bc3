package theme

import (
	"image/color"
	"strings"
	"testing"

	"git.lost.host/meutraa/tapbeat/internal/game"
)

var noteColorTests = map[int]color.RGBA{
	1:  {236, 30, 0, 255},
	4:  {236, 195, 0, 255},
	5:  {255, 255, 255, 255},
	99: {255, 255, 255, 255},
}

func TestNoteColor(t *testing.T) {
	th := &DefaultTheme{}
	for weight, expected := range noteColorTests {
		if out := th.NoteColor(weight); out != expected {
			t.Log("  weight", weight)
			t.Log("     out", out)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

type noteTest struct {
	State    game.RenderState
	Expected string
}

var noteTests = []noteTest{
	{State: game.RenderState{State: game.FadingIn, Alpha: 0.5, Color: color.RGBA{100, 50, 0, 255}}, Expected: "\033[38;2;50;25;0m•\033[0m"},
	{State: game.RenderState{State: game.ScalingIn, Alpha: 1, Color: color.RGBA{1, 2, 3, 255}}, Expected: "\033[38;2;1;2;3m●\033[0m"},
	{State: game.RenderState{State: game.Active, Ready: true, Weight: 2, Alpha: 1}, Expected: "\033[38;2;0;118;236m⬤\033[0m"},
	{State: game.RenderState{State: game.Tapped, Ready: true, Weight: 1, Alpha: 0}, Expected: "\033[38;2;0;0;0m◎\033[0m"},
	{State: game.RenderState{State: game.Missed, Alpha: 2, Color: color.RGBA{10, 10, 10, 255}}, Expected: "\033[38;2;10;10;10m✕\033[0m"},
}

func TestRenderNote(t *testing.T) {
	th := &DefaultTheme{}
	for _, test := range noteTests {
		if out := th.RenderNote(test.State); out != test.Expected {
			t.Log("   state", test.State)
			t.Logf("     out %q", out)
			t.Logf("expected %q", test.Expected)
			t.Fail()
		}
	}
}

func TestRenderGrade(t *testing.T) {
	th := &DefaultTheme{}
	for _, g := range []game.Grade{game.Miss, game.Bad, game.Good, game.Perfect} {
		if out := th.RenderGrade(g); !strings.Contains(out, g.String()) || !strings.HasPrefix(out, "\033[38;2;") {
			t.Errorf("%v rendered as %q", g, out)
		}
	}
	if th.RenderGrade(game.None) != game.None.String() {
		t.Fail()
	}
}

func TestRenderBar(t *testing.T) {
	th := &DefaultTheme{}
	if strings.Count(th.RenderBar(12), barSym) != 12 || th.RenderBar(0) != "" {
		t.Fail()
	}
}
