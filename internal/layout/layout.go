package layout

import (
	"git.lost.host/meutraa/tapbeat/internal/game"
)

// Group is a beat group with its notes placed and ready to spawn
type Group struct {
	Weight int
	Notes  []*game.Note
}

// NewHandle resolves the display handle of a note once, when it is placed.
// A nil NewHandle places notes without display.
type NewHandle func(x, y float64, depth int) game.Handle

// Engine places notes on a zig-zag driven by group weights. The spawn area
// is centered on the world origin.
type Engine struct {
	Width, Height float64

	vertical float64
	up       bool
	depth    int
}

func New(width, height float64) *Engine {
	e := &Engine{Width: width, Height: height}
	e.Reset()
	return e
}

// Reset moves the accumulator back to the top of the spawn area
func (e *Engine) Reset() {
	e.vertical = e.Height / 2
	e.up = false
	e.depth = 0
}

// UnitWidth is the world width of one horizontal chart unit
func (e *Engine) UnitWidth() float64 {
	return e.Width / game.HorizontalUnits
}

// Vertical is the position the next group will be placed at
func (e *Engine) Vertical() float64 {
	return e.vertical
}

// advance steps the accumulator by one group of the given weight, reflecting
// off the spawn area edges.
func (e *Engine) advance(weight int) {
	sign := -1.0
	if e.up {
		sign = 1.0
	}
	e.vertical += sign * (e.Height / float64(weight))
	if abs(e.vertical) > e.Height/2 {
		e.vertical = sign*e.Height - e.vertical
		e.up = !e.up
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Place creates the notes of every beat group of the chart. Group weights are
// multiplied by the stage speed coefficient.
func (e *Engine) Place(chart *game.Chart, coefficient int, props *game.Properties, reporter game.Reporter, handle NewHandle) ([]*Group, error) {
	if coefficient < 1 {
		coefficient = 1
	}
	unit := e.UnitWidth()
	groups := make([]*Group, 0, len(chart.Groups))
	for _, bg := range chart.Groups {
		if nil != bg.Long {
			return nil, &game.UnsupportedFeatureError{Chart: chart.Name, Line: bg.Line, Feature: "long notes"}
		}
		weight := bg.Weight * coefficient
		g := &Group{Weight: weight}
		if nil != bg.Short {
			g.Notes = make([]*game.Note, 0, len(bg.Short))
			for _, offset := range bg.Short {
				x, y := float64(offset)*unit, e.vertical
				var h game.Handle
				if nil != handle {
					h = handle(x, y, e.depth)
				}
				g.Notes = append(g.Notes, game.NewNote(x, y, e.depth, weight, props, reporter, h))
				e.depth++
			}
		}
		e.advance(weight)
		groups = append(groups, g)
	}
	return groups, nil
}
