package score

import (
	"git.lost.host/meutraa/tapbeat/internal/game"
)

// Store keeps the results of every played stage
type Store interface {
	Init() error
	Deinit()

	// Save the result of this performance
	Save(chart *game.Chart, result Result) error

	// Load previous results for the chart, best first
	Load(chart *game.Chart) ([]Result, error)
}

type Counts struct {
	Miss    int
	Bad     int
	Good    int
	Perfect int
}

func (c Counts) Total() int {
	return c.Miss + c.Bad + c.Good + c.Perfect
}

// Of returns the counter of a grade
func (c Counts) Of(g game.Grade) int {
	switch g {
	case game.Miss:
		return c.Miss
	case game.Bad:
		return c.Bad
	case game.Good:
		return c.Good
	case game.Perfect:
		return c.Perfect
	}
	return 0
}

type Result struct {
	Sum         string // Hash of the chart text
	Coefficient int    // Stage speed coefficient
	Counts      Counts
	Score       float64
}

// Record saves the result and reports whether it beats every earlier result
// for the same chart and speed coefficient.
func Record(s Store, chart *game.Chart, result Result) (bool, error) {
	previous, err := s.Load(chart)
	if nil != err {
		return false, err
	}
	best := true
	for _, r := range previous {
		if r.Coefficient == result.Coefficient && r.Score >= result.Score {
			best = false
			break
		}
	}
	if err := s.Save(chart, result); nil != err {
		return false, err
	}
	return best, nil
}
