package parser

import (
	"io"

	"git.lost.host/meutraa/tapbeat/internal/game"
)

type Parser interface {
	// Parse reads chart text, name identifies the chart in errors
	Parse(name string, r io.Reader) (*game.Chart, error)
	ParseFile(file string) (*game.Chart, error)
}
