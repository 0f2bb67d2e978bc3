package render

import (
	"sort"

	"git.lost.host/meutraa/tapbeat/internal/game"
	"git.lost.host/meutraa/tapbeat/internal/theme"
)

// Sprites is the display side of every placed note
type Sprites struct {
	Viewport *Viewport
	Theme    theme.Theme

	sprites []*sprite
}

type sprite struct {
	col, row int
	depth    int
	state    game.RenderState
	drawn    bool
	released bool
}

func (s *sprite) Draw(r game.RenderState) {
	s.state = r
	s.drawn = true
}

func (s *sprite) Release() {
	s.released = true
}

// NewHandle places a sprite at the cell of a note. It matches layout.NewHandle.
func (s *Sprites) NewHandle(x, y float64, depth int) game.Handle {
	col, row := s.Viewport.Cell(x, y)
	sp := &sprite{col: col, row: row, depth: depth}
	s.sprites = append(s.sprites, sp)
	return sp
}

// Len is the number of sprites not yet released
func (s *Sprites) Len() int {
	count := 0
	for _, sp := range s.sprites {
		if !sp.released {
			count++
		}
	}
	return count
}

// Render fills the visible sprites, deeper notes on top, and forgets the
// released ones.
func (s *Sprites) Render(r Renderer) {
	live := s.sprites[:0]
	for _, sp := range s.sprites {
		if !sp.released {
			live = append(live, sp)
		}
	}
	for i := len(live); i < len(s.sprites); i++ {
		s.sprites[i] = nil
	}
	s.sprites = live

	visible := make([]*sprite, 0, len(live))
	for _, sp := range live {
		if sp.drawn && sp.state.Alpha > 0 && s.Viewport.Contains(sp.col, sp.row) {
			visible = append(visible, sp)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].depth < visible[j].depth
	})
	for _, sp := range visible {
		r.Fill(sp.row, sp.col, s.Theme.RenderNote(sp.state))
	}
}
