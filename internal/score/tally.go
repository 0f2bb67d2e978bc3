package score

import (
	"git.lost.host/meutraa/tapbeat/internal/game"
)

const (
	DefaultMaxScore  = 1000
	DefaultGoodRatio = 0.8
	DefaultBadRatio  = 0.3
)

// Tally counts the grades of a stage. All notes of a stage report to the same
// tally from the simulation thread.
type Tally struct {
	MaxScore  float64
	GoodRatio float64 // Final score ratio when every note is good
	BadRatio  float64 // Final score ratio when every note is bad

	counts Counts
	final  float64
	scored bool
}

func NewTally(maxScore, goodRatio, badRatio float64) *Tally {
	return &Tally{
		MaxScore:  maxScore,
		GoodRatio: goodRatio,
		BadRatio:  badRatio,
	}
}

func (t *Tally) AddMiss()    { t.counts.Miss++ }
func (t *Tally) AddBad()     { t.counts.Bad++ }
func (t *Tally) AddGood()    { t.counts.Good++ }
func (t *Tally) AddPerfect() { t.counts.Perfect++ }

// Report implements game.Reporter
func (t *Tally) Report(g game.Grade) {
	switch g {
	case game.Miss:
		t.AddMiss()
	case game.Bad:
		t.AddBad()
	case game.Good:
		t.AddGood()
	case game.Perfect:
		t.AddPerfect()
	}
}

func (t *Tally) Counts() Counts {
	return t.counts
}

func (t *Tally) Count(g game.Grade) int {
	return t.counts.Of(g)
}

// FinalScore is computed on the first call and kept until Restart.
// A stage without any graded note scores 0.
func (t *Tally) FinalScore() float64 {
	if !t.scored {
		t.scored = true
		total := t.counts.Total()
		if total == 0 {
			t.final = 0
			return t.final
		}
		sum := float64(t.counts.Perfect) +
			t.GoodRatio*float64(t.counts.Good) +
			t.BadRatio*float64(t.counts.Bad)
		t.final = t.MaxScore * sum / float64(total)
	}
	return t.final
}

// Restart clears every counter and forgets the final score
func (t *Tally) Restart() {
	t.counts = Counts{}
	t.final = 0
	t.scored = false
}
