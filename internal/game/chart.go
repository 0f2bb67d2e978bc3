package game

import (
	"time"
)

// HorizontalUnits is the width of the chart grid. Chart files are authored
// against it, so it never changes.
const HorizontalUnits = 30

type Chart struct {
	Name   string  // Chart identity, used in errors and highscores
	Text   string  // Raw chart text
	Tempo  float64 // Beats per minute, > 0
	Audio  string  // Audio reference, empty for a silent chart
	Groups []BeatGroup
}

type BeatGroup struct {
	Line   int   // The source line, 0 based
	Weight int   // Subdivision count within one beat
	Short  []int // Short note horizontal offsets, nil when absent
	Long   []int // Long note horizontal offsets, nil when absent
}

// Silent reports whether the chart plays without audio
func (c *Chart) Silent() bool {
	return c.Audio == ""
}

// SecondsPerBeat returns the beat length once the tempo is divided by the
// stage speed coefficient.
func (c *Chart) SecondsPerBeat(coefficient int) time.Duration {
	if coefficient < 1 {
		coefficient = 1
	}
	return time.Duration(float64(time.Minute) * float64(coefficient) / c.Tempo)
}

// NoteCount is the number of short notes in the chart
func (c *Chart) NoteCount() int {
	count := 0
	for _, g := range c.Groups {
		count += len(g.Short)
	}
	return count
}
