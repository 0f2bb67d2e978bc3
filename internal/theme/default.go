package theme

import (
	"fmt"
	"image/color"
	"strings"

	"git.lost.host/meutraa/tapbeat/internal/game"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) NoteColor(weight int) color.RGBA {
	col, ok := noteColors[weight]
	if !ok {
		return noteColors[-1]
	}
	return col
}

// RenderNote picks a glyph by the note state and size. Notes are drawn in
// their ring color until ready, then in the color of their weight.
func (t *DefaultTheme) RenderNote(s game.RenderState) string {
	c := s.Color
	if s.Ready {
		c = t.NoteColor(s.Weight)
	}
	return paint(fade(c, s.Alpha), noteSym(s))
}

func (t *DefaultTheme) RenderGrade(g game.Grade) string {
	col, ok := gradeColors[g]
	if !ok {
		return g.String()
	}
	return paint(col, g.String())
}

func (t *DefaultTheme) RenderBar(width int) string {
	if width < 1 {
		return ""
	}
	return paint(barColor, strings.Repeat(barSym, width))
}

const (
	barSym     = "─"
	tappedSym  = "◎"
	missedSym  = "✕"
	readySym   = "⬤"
	growingSym = "●"
	spawnSym   = "•"
)

var (
	barColor   = color.RGBA{180, 180, 180, 255}
	noteColors = map[int]color.RGBA{
		1:  {236, 30, 0, 255},    // 1/4 red
		2:  {0, 118, 236, 255},   // 1/8 blue
		3:  {106, 0, 236, 255},   // 1/12 purple
		4:  {236, 195, 0, 255},   // 1/16 yellow
		6:  {236, 0, 106, 255},   // 1/24 pink
		8:  {236, 128, 0, 255},   // 1/32 orange
		12: {173, 236, 236, 255}, // 1/48 light blue
		16: {0, 236, 128, 255},   // 1/64 green
		48: {110, 147, 89, 255},  // 1/192 olive
		-1: {255, 255, 255, 255}, // other white
	}
	gradeColors = map[game.Grade]color.RGBA{
		game.Perfect: {255, 242, 0, 255},
		game.Good:    {41, 152, 0, 255},
		game.Bad:     {236, 128, 0, 255},
		game.Miss:    {236, 30, 0, 255},
	}
)

func noteSym(s game.RenderState) string {
	switch {
	case s.State == game.Tapped || s.InnerAlpha > 0:
		return tappedSym
	case s.State == game.Missed:
		return missedSym
	case s.Ready:
		return readySym
	case s.State == game.ScalingIn:
		return growingSym
	default:
		return spawnSym
	}
}

// fade darkens a color by alpha, the terminal has no transparency
func fade(c color.RGBA, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R)*alpha + 0.5),
		G: uint8(float64(c.G)*alpha + 0.5),
		B: uint8(float64(c.B)*alpha + 0.5),
		A: 255,
	}
}

func paint(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}
