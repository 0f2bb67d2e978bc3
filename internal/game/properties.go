package game

import (
	"errors"
	"time"
)

// DefaultNoteSize is the full note scale in world units
const DefaultNoteSize = 0.57

// Portions of the life time of a note. Their sum may exceed 1.
type Portions struct {
	FadeIn      float64
	ScaleIn     float64
	MainLife    float64
	TappedScale float64
	FadeOut     float64
}

var DefaultPortions = Portions{
	FadeIn:      0.2,
	ScaleIn:     0.2,
	MainLife:    0.7,
	TappedScale: 0.1,
	FadeOut:     0.1,
}

func (p Portions) Validate() error {
	if p.FadeIn <= 0 || p.ScaleIn <= 0 || p.MainLife <= 0 || p.TappedScale <= 0 || p.FadeOut <= 0 {
		return errors.New("note life time portions must be positive")
	}
	return nil
}

// Properties are shared by every note of a stage
type Properties struct {
	NoteSize                  float64
	SpawnScaleMultiplier      float64
	ScaleMultiplierWhenTapped float64
	TappedInnerCircleGrowth   float64
	TappedInnerCircleAlpha    float64
	TappedAnimationScaleRate  float64 // Fraction of the growth per second

	TimeTillDestruction time.Duration
	FadeInTime          time.Duration
	ScaleInTime         time.Duration
	MainLifeTime        time.Duration
	TappedScaleTime     time.Duration
	FadeOutTime         time.Duration

	Window Window
}

func portion(d time.Duration, p float64) time.Duration {
	return time.Duration(float64(d) * p)
}

// NewProperties derives the note timings from the seconds per beat of a chart
func NewProperties(spb time.Duration, noteSize float64, portions Portions, window Window) *Properties {
	ttd := 2 * spb
	return &Properties{
		NoteSize:                  noteSize,
		SpawnScaleMultiplier:      0.5,
		ScaleMultiplierWhenTapped: 1.2,
		TappedInnerCircleGrowth:   0.66,
		TappedInnerCircleAlpha:    0.5,
		TappedAnimationScaleRate:  10,

		TimeTillDestruction: ttd,
		FadeInTime:          portion(ttd, portions.FadeIn),
		ScaleInTime:         portion(ttd, portions.ScaleIn),
		MainLifeTime:        portion(ttd, portions.MainLife),
		TappedScaleTime:     portion(ttd, portions.TappedScale),
		FadeOutTime:         portion(ttd, portions.FadeOut),

		Window: window,
	}
}

// TimeTillPerfect is the time from activation until a note is fully grown
func (p *Properties) TimeTillPerfect() time.Duration {
	return p.FadeInTime + p.ScaleInTime
}

func (p *Properties) SpawnScale() float64 {
	return p.NoteSize * p.SpawnScaleMultiplier
}
