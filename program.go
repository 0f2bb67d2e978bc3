package main

import (
	"context"
	"fmt"
	"time"

	"git.lost.host/meutraa/tapbeat/internal/audio"
	"git.lost.host/meutraa/tapbeat/internal/config"
	"git.lost.host/meutraa/tapbeat/internal/game"
	"git.lost.host/meutraa/tapbeat/internal/input"
	"git.lost.host/meutraa/tapbeat/internal/log"
	"git.lost.host/meutraa/tapbeat/internal/render"
	"git.lost.host/meutraa/tapbeat/internal/score"
	"git.lost.host/meutraa/tapbeat/internal/stage"
	"git.lost.host/meutraa/tapbeat/internal/theme"
)

// The bar spans this much of the screen width
const barWidthRatio = 0.93

// Frames a grade stays beside a tapped note
const gradeFrames = 30

type Program struct {
	Config   *config.Config
	Log      *log.Logger
	Renderer render.Renderer
	Theme    theme.Theme
	Store    score.Store
	Player   audio.Player

	viewport *render.Viewport
	sprites  *render.Sprites
	stage    *stage.Stage
	events   chan *input.Event
	best     float64
	played   time.Duration
}

func (p *Program) Init(ctx context.Context) error {
	cols, rows, err := p.Renderer.Size()
	if nil != err {
		return err
	}
	p.viewport = render.NewViewport(cols, rows)
	p.sprites = &render.Sprites{Viewport: p.viewport, Theme: p.Theme}
	p.Log.Infof("terminal is %vx%v cells, world is %.2fx%.2f", cols, rows, p.viewport.Width, p.viewport.Height)

	if nil != p.Store {
		if err := p.Store.Init(); nil != err {
			return fmt.Errorf("unable to open highscores: %w", err)
		}
	}

	sc := p.stageContext()
	p.stage, err = stage.Load(ctx, sc)
	if nil != err {
		return err
	}
	p.loadBest()

	p.events = make(chan *input.Event, 128)
	mapping := input.DefaultMapping
	mapping.Tap = []rune(p.Config.Keys)
	return input.ReadInput(mapping, p.events, p.Log)
}

func (p *Program) stageContext() *stage.Context {
	c := p.Config
	sc := stage.NewContext(c.Chart, stage.Geometry{
		ScreenWidth:  p.viewport.Width,
		ScreenHeight: p.viewport.Height,
	})
	sc.AudioDir = c.AudioDir
	sc.Coefficient = int(c.Speed)
	sc.MusicDelay = c.MusicDelay
	sc.AdjustDelay = c.AdjustDelay
	sc.NoteSize = c.NoteSize
	sc.SpawnScaleMultiplier = c.SpawnScale
	sc.TappedScaleMultiplier = c.TappedScale
	sc.Portions = c.Portions
	sc.Window = c.Window
	sc.MaxScore = c.MaxScore
	sc.GoodRatio = c.GoodRatio
	sc.BadRatio = c.BadRatio
	sc.Music = p.Player
	sc.Store = p.Store
	sc.Handles = p.sprites.NewHandle
	sc.Log = p.Log
	sc.OnTap = p.decorateTap
	return sc
}

// loadBest finds the highscore of the chart at this speed
func (p *Program) loadBest() {
	p.best = 0
	if nil == p.Store {
		return
	}
	results, err := p.Store.Load(p.stage.Chart)
	if nil != err {
		p.Log.Warnf("unable to load highscores: %v", err)
		return
	}
	for _, r := range results {
		if r.Coefficient == int(p.Config.Speed) && r.Score > p.best {
			p.best = r.Score
		}
	}
}

func (p *Program) decorateTap(n *game.Note) {
	col, row := p.viewport.Cell(n.X, n.Y)
	p.Renderer.AddDecoration(col+2, row, p.Theme.RenderGrade(n.Grade()), gradeFrames)
}

// Update handles the pending input and advances the stage. It reports
// whether the program keeps running.
func (p *Program) Update(dt time.Duration) bool {
	for i := len(p.events); i > 0; i-- {
		ev := <-p.events
		switch ev.Action {
		case input.Tap:
			p.stage.TapNext()
		case input.Restart, input.HardRestart:
			if err := p.stage.Restart(ev.Action == input.HardRestart); nil != err {
				p.Log.Errorf("unable to restart: %v", err)
				return false
			}
			p.played = 0
			p.loadBest()
		case input.Quit:
			p.stage.Quit()
			return false
		}
	}
	p.stage.Update(dt)
	p.played += dt
	return !p.stage.Ended()
}

func (p *Program) Render() {
	r := p.Renderer
	r.Clear()

	b := p.stage.Bar
	width := p.viewport.Width * barWidthRatio
	col, row := p.viewport.Cell(-width/2, b.Y())
	r.Fill(row, col, p.Theme.RenderBar(p.viewport.Columns(width)))

	p.sprites.Render(r)

	render.HUD{
		Chart:     p.stage.Chart.Name,
		BPM:       p.stage.Chart.Tempo / float64(p.Config.Speed),
		Counts:    p.stage.Tally.Counts(),
		Remaining: p.stage.Remaining(),
		Best:      p.best,
	}.Render(r, 2, 2, p.Theme)
}

// Summary describes the finished stage, empty if it never ended
func (p *Program) Summary() string {
	if nil == p.stage || nil == p.stage.Result {
		return ""
	}
	return render.Summary(p.stage.Chart.Name, p.stage.Result, p.stage.Highscore, p.played)
}

func (p *Program) Deinit() {
	if nil != p.stage {
		p.stage.Close()
	}
	if nil != p.Store {
		p.Store.Deinit()
	}
	if err := input.Close(); nil != err {
		p.Log.Warnf("unable to close keyboard: %v", err)
	}
}
