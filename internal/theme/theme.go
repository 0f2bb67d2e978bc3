package theme

import (
	"image/color"

	"git.lost.host/meutraa/tapbeat/internal/game"
)

type Theme interface {
	NoteColor(weight int) color.RGBA
	RenderNote(s game.RenderState) string
	RenderGrade(g game.Grade) string
	RenderBar(width int) string
}
