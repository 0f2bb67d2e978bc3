package stage

import (
	"errors"
	"time"

	"git.lost.host/meutraa/tapbeat/internal/audio"
	"git.lost.host/meutraa/tapbeat/internal/game"
	"git.lost.host/meutraa/tapbeat/internal/layout"
	"git.lost.host/meutraa/tapbeat/internal/log"
	"git.lost.host/meutraa/tapbeat/internal/parser"
	"git.lost.host/meutraa/tapbeat/internal/score"
)

const (
	SpawnAreaWidthRatio  = 0.8
	SpawnAreaHeightRatio = 0.67

	// ExtraMusicTime is waited after the music ends before the stage ends
	ExtraMusicTime = time.Second
)

// Geometry is the visible world, centered on the origin
type Geometry struct {
	ScreenWidth  float64
	ScreenHeight float64
}

// SpawnArea is the part of the screen notes are placed in, shrunk so that
// no note is cut by the screen edges.
func (g Geometry) SpawnArea(noteSize float64) (width, height float64) {
	width = g.ScreenWidth*SpawnAreaWidthRatio - 2*noteSize
	height = g.ScreenHeight*SpawnAreaHeightRatio - 2*noteSize
	return width, height
}

// Context carries the configuration and collaborators of a stage. Optional
// collaborators may be nil: no Music plays every chart silently, no Store
// keeps no highscores, no Handles places notes without display.
type Context struct {
	ChartFile string
	AudioDir  string // Where audio references are resolved, defaults to the chart directory
	Parser    parser.Parser

	Coefficient           int           // Stage speed coefficient
	MusicDelay            time.Duration // Positive delays the music, negative the notes
	AdjustDelay           bool          // Loop the stage to calibrate the music delay
	NoteSize              float64
	SpawnScaleMultiplier  float64
	TappedScaleMultiplier float64
	Portions              game.Portions
	Window                game.Window

	MaxScore  float64
	GoodRatio float64
	BadRatio  float64

	Geometry Geometry
	Music    audio.Player
	Store    score.Store
	Handles  layout.NewHandle
	Log      *log.Logger

	// OnTap is called with every note a tap was accepted by
	OnTap func(n *game.Note)
}

// NewContext returns a context with the default tuning for a chart file
func NewContext(chartFile string, geometry Geometry) *Context {
	return &Context{
		ChartFile:             chartFile,
		Parser:                &parser.DefaultParser{},
		Coefficient:           1,
		NoteSize:              game.DefaultNoteSize,
		SpawnScaleMultiplier:  0.5,
		TappedScaleMultiplier: 1.2,
		Portions:              game.DefaultPortions,
		Window:                game.DefaultWindow,
		MaxScore:              score.DefaultMaxScore,
		GoodRatio:             score.DefaultGoodRatio,
		BadRatio:              score.DefaultBadRatio,
		Geometry:              geometry,
	}
}

func (c *Context) Validate() error {
	if c.Coefficient < 1 {
		return errors.New("stage speed coefficient must be at least 1")
	}
	if c.NoteSize <= 0 {
		return errors.New("note size must be positive")
	}
	if err := c.Window.Validate(); nil != err {
		return err
	}
	if err := c.Portions.Validate(); nil != err {
		return err
	}
	if c.MaxScore <= 0 {
		return errors.New("max score must be positive")
	}
	if c.GoodRatio <= 0 || c.GoodRatio >= 1 || c.BadRatio <= 0 || c.BadRatio >= 1 {
		return errors.New("grade ratios must be between 0 and 1")
	}
	if w, h := c.Geometry.SpawnArea(c.NoteSize); w <= 0 || h <= 0 {
		return errors.New("screen is too small for the note size")
	}
	return nil
}
