package config

import (
	"errors"
	"fmt"
	"time"

	"git.lost.host/meutraa/tapbeat/internal/game"
	"git.lost.host/meutraa/tapbeat/internal/score"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.1.0"

type Config struct {
	Chart       string
	AudioDir    string
	Speed       uint
	MusicDelay  time.Duration
	AdjustDelay bool

	NoteSize    float64
	SpawnScale  float64
	TappedScale float64
	Window      game.Window
	Portions    game.Portions

	MaxScore  float64
	GoodRatio float64
	BadRatio  float64

	FPS      float64
	Keys     string
	DB       string
	NoScores bool
	Mute     bool
	LogFile  string
	LogLevel string
}

// FramePeriod is the time between two rendered frames
func (c *Config) FramePeriod() time.Duration {
	return time.Duration(float64(time.Second) / c.FPS)
}

func newApp(c *Config) *kingpin.Application {
	app := kingpin.New("tapbeat", "A tap rhythm game for the terminal")
	app.Version(Version)
	app.HelpFlag.Short('h')

	app.Arg("chart", "Chart file").Required().ExistingFileVar(&c.Chart)
	app.Flag("audio-dir", "Where audio references are resolved, defaults to the chart directory").StringVar(&c.AudioDir)
	app.Flag("speed", "Stage speed coefficient, slows the bar and keeps the note density").Default("1").Short('s').UintVar(&c.Speed)
	app.Flag("music-delay", "Delay of the music, negative delays the notes").Default("0ms").Short('d').DurationVar(&c.MusicDelay)
	app.Flag("adjust-delay", "Loop the stage to calibrate the music delay").BoolVar(&c.AdjustDelay)

	app.Flag("note-size", "Note size in world units").Default(fmt.Sprint(game.DefaultNoteSize)).Float64Var(&c.NoteSize)
	app.Flag("spawn-scale", "Note scale at spawn, relative to the note size").Default("0.5").Float64Var(&c.SpawnScale)
	app.Flag("tapped-scale", "Note scale after a tap, relative to the scale at the tap").Default("1.2").Float64Var(&c.TappedScale)
	app.Flag("perfect", "Perfect timing window").Default("50ms").DurationVar(&c.Window.Perfect)
	app.Flag("good", "Good timing window").Default("150ms").DurationVar(&c.Window.Good)

	app.Flag("fade-in", "Fade in portion of the note life").Default("0.2").Float64Var(&c.Portions.FadeIn)
	app.Flag("scale-in", "Scale in portion of the note life").Default("0.2").Float64Var(&c.Portions.ScaleIn)
	app.Flag("main-life", "Tappable portion of the note life").Default("0.7").Float64Var(&c.Portions.MainLife)
	app.Flag("tapped-scale-portion", "Tapped animation portion of the note life").Default("0.1").Float64Var(&c.Portions.TappedScale)
	app.Flag("fade-out", "Fade out portion of the note life").Default("0.1").Float64Var(&c.Portions.FadeOut)

	app.Flag("max-score", "Score of a perfect stage").Default(fmt.Sprint(score.DefaultMaxScore)).Float64Var(&c.MaxScore)
	app.Flag("good-ratio", "Score of a good tap relative to a perfect one").Default(fmt.Sprint(score.DefaultGoodRatio)).Float64Var(&c.GoodRatio)
	app.Flag("bad-ratio", "Score of a bad tap relative to a perfect one").Default(fmt.Sprint(score.DefaultBadRatio)).Float64Var(&c.BadRatio)

	app.Flag("fps", "Frame cap").Default("120").Short('f').Float64Var(&c.FPS)
	app.Flag("keys", "Tap keys").Default("fjdk").Short('k').StringVar(&c.Keys)
	app.Flag("db", "Highscore database").Default("./scores.db").StringVar(&c.DB)
	app.Flag("no-scores", "Do not keep highscores").BoolVar(&c.NoScores)
	app.Flag("mute", "Play without audio output").BoolVar(&c.Mute)
	app.Flag("log-file", "Log file, the terminal is taken by the stage").Default("tapbeat.log").StringVar(&c.LogFile)
	app.Flag("log-level", "Log level: debug, info, warn, error or none").Default("info").StringVar(&c.LogLevel)
	return app
}

// Parse reads the command line, without the program name
func Parse(args []string) (*Config, error) {
	c := &Config{}
	if _, err := newApp(c).Parse(args); nil != err {
		return nil, err
	}
	if err := c.Validate(); nil != err {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Speed < 1 {
		return errors.New("speed must be at least 1")
	}
	if c.NoteSize <= 0 || c.SpawnScale <= 0 || c.TappedScale <= 0 {
		return errors.New("note sizes must be positive")
	}
	if err := c.Window.Validate(); nil != err {
		return fmt.Errorf("invalid timing window: %w", err)
	}
	if err := c.Portions.Validate(); nil != err {
		return err
	}
	if c.MaxScore <= 0 {
		return errors.New("max score must be positive")
	}
	if !inUnit(c.GoodRatio) || !inUnit(c.BadRatio) {
		return errors.New("good and bad ratios must be between 0 and 1")
	}
	if c.FPS <= 0 {
		return errors.New("fps must be positive")
	}
	if c.Keys == "" {
		return errors.New("at least one tap key is required")
	}
	return nil
}

func inUnit(x float64) bool {
	return x > 0 && x < 1
}
