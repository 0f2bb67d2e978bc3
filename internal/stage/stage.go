package stage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"git.lost.host/meutraa/tapbeat/internal/audio"
	"git.lost.host/meutraa/tapbeat/internal/bar"
	"git.lost.host/meutraa/tapbeat/internal/game"
	"git.lost.host/meutraa/tapbeat/internal/layout"
	"git.lost.host/meutraa/tapbeat/internal/score"
	"git.lost.host/meutraa/tapbeat/internal/spawn"
)

// Stage plays one chart. It is driven by Update once per frame and never
// blocks: the scheduler, the bar, every note and the music cue advance with
// the same step, in that order.
type Stage struct {
	Chart     *game.Chart
	Props     *game.Properties
	Tally     *score.Tally
	Layout    *layout.Engine
	Groups    []*layout.Group
	Scheduler *spawn.Scheduler
	Bar       *bar.Bar

	// Result is set once the stage ended
	Result    *score.Result
	Highscore bool

	sc     *Context
	ctx    context.Context
	spb    time.Duration
	now    time.Duration
	music  bool
	length time.Duration

	musicPlayDelay      time.Duration
	musicDelayStopwatch time.Duration
	musicTimer          time.Duration
	silentTimer         time.Duration

	stopped bool
	ended   bool
	quit    bool
}

// Load reads the chart and its music and starts the stage. Cancelling ctx
// stops spawning.
func Load(ctx context.Context, sc *Context) (*Stage, error) {
	if err := sc.Validate(); nil != err {
		return nil, fmt.Errorf("invalid stage context: %w", err)
	}
	s := &Stage{
		sc:    sc,
		ctx:   ctx,
		Tally: score.NewTally(sc.MaxScore, sc.GoodRatio, sc.BadRatio),
	}
	if err := s.loadStageFile(); nil != err {
		return nil, err
	}
	s.adjustMusicDelay()
	s.resetTrackers()
	if err := s.loadNotes(); nil != err {
		return nil, err
	}
	sc.Log.Infof("stage %v loaded: %v notes in %v groups", s.Chart.Name, s.Chart.NoteCount(), len(s.Groups))

	s.Scheduler = spawn.New(s.spb, sc.MusicDelay, s.Groups)
	s.Scheduler.Log = sc.Log
	s.Scheduler.Start(ctx, s.now)
	s.Bar = bar.New(s.spawnHeight(), s.spb, s.barFreeze())
	return s, nil
}

func (s *Stage) spawnHeight() float64 {
	_, h := s.sc.Geometry.SpawnArea(s.sc.NoteSize)
	return h
}

// loadStageFile parses the chart, derives the note timings from its tempo
// and loads its music.
func (s *Stage) loadStageFile() error {
	chart, err := s.sc.Parser.ParseFile(s.sc.ChartFile)
	if nil != err {
		return fmt.Errorf("unable to load chart: %w", err)
	}
	s.Chart = chart
	s.spb = chart.SecondsPerBeat(s.sc.Coefficient)
	s.Props = game.NewProperties(s.spb, s.sc.NoteSize, s.sc.Portions, s.sc.Window)
	s.Props.SpawnScaleMultiplier = s.sc.SpawnScaleMultiplier
	s.Props.ScaleMultiplierWhenTapped = s.sc.TappedScaleMultiplier
	s.sc.Log.Infof("chart %v loaded at %.2f BPM", chart.Name, chart.Tempo/float64(s.sc.Coefficient))

	s.music = false
	s.length = 0
	if chart.Silent() {
		s.sc.Log.Warnf("chart %v has no music", chart.Name)
		return nil
	}
	dir := s.sc.AudioDir
	if dir == "" {
		dir = filepath.Dir(s.sc.ChartFile)
	}
	file, err := audio.Resolve(dir, chart.Audio)
	if nil != err {
		return err
	}
	if nil == s.sc.Music {
		s.sc.Log.Warnf("no audio output, playing %v silently", chart.Name)
		return nil
	}
	if err := s.sc.Music.Load(file); nil != err {
		return fmt.Errorf("unable to load music: %w", err)
	}
	s.music = true
	s.length = s.sc.Music.Length()
	s.sc.Log.Infof("music %v loaded, %v long", file, s.length)
	return nil
}

func (s *Stage) adjustMusicDelay() {
	s.musicPlayDelay = s.spb/2 + s.Props.TimeTillPerfect()
	if s.sc.MusicDelay > 0 {
		s.musicPlayDelay += s.sc.MusicDelay
	}
}

func (s *Stage) barFreeze() time.Duration {
	freeze := s.Props.TimeTillPerfect()
	if s.sc.MusicDelay < 0 {
		freeze += -s.sc.MusicDelay
	}
	return freeze
}

func (s *Stage) resetTrackers() {
	w, h := s.sc.Geometry.SpawnArea(s.sc.NoteSize)
	if nil == s.Layout {
		s.Layout = layout.New(w, h)
	} else {
		s.Layout.Width, s.Layout.Height = w, h
		s.Layout.Reset()
	}
	s.musicTimer = s.length + ExtraMusicTime + abs(s.sc.MusicDelay)
	s.musicDelayStopwatch = 0
	s.silentTimer = 0
	s.stopped = false
}

func (s *Stage) loadNotes() error {
	groups, err := s.Layout.Place(s.Chart, s.sc.Coefficient, s.Props, s.Tally, s.sc.Handles)
	if nil != err {
		return err
	}
	s.Groups = groups
	return nil
}

func abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func (s *Stage) Now() time.Duration { return s.now }
func (s *Stage) SPB() time.Duration { return s.spb }
func (s *Stage) Stopped() bool      { return s.stopped }
func (s *Stage) Ended() bool        { return s.ended }
func (s *Stage) HasQuit() bool      { return s.quit }

// MusicStarted reports whether the music cue was reached
func (s *Stage) MusicStarted() bool {
	return s.musicDelayStopwatch >= s.musicPlayDelay
}

// Remaining is the time left until the stage ends, zero for a silent stage
func (s *Stage) Remaining() time.Duration {
	if !s.music {
		return 0
	}
	if !s.MusicStarted() {
		return s.musicTimer + s.musicPlayDelay - s.musicDelayStopwatch
	}
	if s.musicTimer < 0 {
		return 0
	}
	return s.musicTimer
}

// Notes calls f for every placed note in spawn order
func (s *Stage) Notes(f func(n *game.Note)) {
	for _, g := range s.Groups {
		for _, n := range g.Notes {
			f(n)
		}
	}
}

func (s *Stage) live() int {
	count := 0
	s.Notes(func(n *game.Note) {
		if n.Live() {
			count++
		}
	})
	return count
}

// Update advances the stage by one step
func (s *Stage) Update(dt time.Duration) {
	if s.stopped || dt < 0 {
		return
	}
	s.now += dt

	s.Scheduler.Update(s.now)
	s.Bar.Update(dt)
	s.Notes(func(n *game.Note) {
		n.Update(s.now)
	})

	if !s.music {
		s.updateSilent(dt)
		return
	}

	if s.musicDelayStopwatch < s.musicPlayDelay {
		s.musicDelayStopwatch += dt
		if s.musicDelayStopwatch >= s.musicPlayDelay {
			s.playMusic(s.musicDelayStopwatch - s.musicPlayDelay)
		}
		return
	}
	s.musicTimer -= dt
	if s.musicTimer <= 0 {
		s.timeUp()
	}
}

// A silent stage ends a moment after its last note is gone
func (s *Stage) updateSilent(dt time.Duration) {
	if !s.Scheduler.Done() || s.live() > 0 {
		return
	}
	s.silentTimer += dt
	if s.silentTimer >= ExtraMusicTime {
		s.timeUp()
	}
}

func (s *Stage) timeUp() {
	if s.sc.AdjustDelay {
		if err := s.Restart(false); nil != err {
			s.sc.Log.Errorf("unable to restart stage: %v", err)
		}
		return
	}
	s.End()
}

func (s *Stage) playMusic(offset time.Duration) {
	s.sc.Log.Infof("music starts at %v, %v into the track", s.now, offset)
	if err := s.sc.Music.Play(offset); nil != err && !errors.Is(err, io.EOF) {
		s.sc.Log.Errorf("unable to play music: %v", err)
	}
}

// Tap taps the topmost tappable note under a world point
func (s *Stage) Tap(x, y float64) (game.Grade, bool) {
	var hit *game.Note
	s.Notes(func(n *game.Note) {
		if n.Tappable() && n.Contains(x, y) && (nil == hit || n.Depth > hit.Depth) {
			hit = n
		}
	})
	return s.tap(hit)
}

// TapNext taps the tappable note closest to its perfect time
func (s *Stage) TapNext() (game.Grade, bool) {
	var next *game.Note
	s.Notes(func(n *game.Note) {
		if n.Tappable() && (nil == next || n.PerfectTime() < next.PerfectTime()) {
			next = n
		}
	})
	return s.tap(next)
}

func (s *Stage) tap(n *game.Note) (game.Grade, bool) {
	if s.stopped || nil == n || !n.Tap(s.now) {
		return game.None, false
	}
	s.sc.Log.Debugf("tapped note %v at %v, %v from perfect: %v", n.Depth, s.now, s.now-n.PerfectTime(), n.Grade())
	if nil != s.sc.OnTap {
		s.sc.OnTap(n)
	}
	return n.Grade(), true
}

func (s *Stage) stop() {
	s.stopped = true
	if s.music {
		s.sc.Music.Stop()
	}
	s.Scheduler.Stop()
	s.Bar.Stop()
	s.Notes(func(n *game.Note) {
		n.Teardown()
	})
}

// End stops the stage, grades what is left and records the result
func (s *Stage) End() {
	if s.ended {
		return
	}
	s.stop()
	s.ended = true

	counts := s.Tally.Counts()
	s.Result = &score.Result{
		Sum:         score.HashChart(s.Chart),
		Coefficient: s.sc.Coefficient,
		Counts:      counts,
		Score:       s.Tally.FinalScore(),
	}
	s.sc.Log.Infof("stage %v ended: %.2f (%+v)", s.Chart.Name, s.Result.Score, counts)

	if nil == s.sc.Store {
		return
	}
	best, err := score.Record(s.sc.Store, s.Chart, *s.Result)
	if nil != err {
		s.sc.Log.Errorf("unable to record score: %v", err)
		return
	}
	s.Highscore = best
	if best {
		s.sc.Log.Infof("new highscore for %v", s.Chart.Name)
	}
}

// Restart plays the stage again from the start. A hard restart reloads the
// chart and its music first.
func (s *Stage) Restart(hard bool) error {
	if !s.stopped {
		s.stop()
	}
	if hard {
		if err := s.loadStageFile(); nil != err {
			return err
		}
		s.adjustMusicDelay()
		s.Scheduler.SPB = s.spb
	}
	s.Scheduler.MusicDelay = s.sc.MusicDelay
	s.Tally.Restart()
	s.resetTrackers()
	if err := s.loadNotes(); nil != err {
		return err
	}
	s.Scheduler.Restart(s.ctx, s.now, s.Groups)
	s.Bar.Speed = s.spawnHeight() / s.spb.Seconds()
	s.Bar.Height = s.spawnHeight()
	s.Bar.Restart(s.barFreeze())
	s.ended = false
	s.Result = nil
	s.Highscore = false
	s.sc.Log.Infof("stage %v restarted", s.Chart.Name)
	return nil
}

// Quit stops the stage without recording anything
func (s *Stage) Quit() {
	if !s.stopped {
		s.stop()
	}
	s.sc.AdjustDelay = false
	s.quit = true
	s.sc.Log.Infof("quitting stage %v", s.Chart.Name)
}

// Close releases the music
func (s *Stage) Close() {
	if nil != s.sc.Music {
		s.sc.Music.Close()
	}
}
