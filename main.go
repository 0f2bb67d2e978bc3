package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"git.lost.host/meutraa/tapbeat/internal/audio"
	"git.lost.host/meutraa/tapbeat/internal/config"
	"git.lost.host/meutraa/tapbeat/internal/log"
	"git.lost.host/meutraa/tapbeat/internal/render"
	"git.lost.host/meutraa/tapbeat/internal/score"
	"git.lost.host/meutraa/tapbeat/internal/theme"
)

func main() {
	if err := run(); nil != err {
		stdlog.Fatalln(err)
	}
}

func run() error {
	cfg, err := config.Parse(os.Args[1:])
	if nil != err {
		return err
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if nil != err {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	defer logFile.Close()
	l := log.New(logFile, log.LevelFromString(cfg.LogLevel))

	// Ensure our Default implementations are used as interfaces
	var r render.Renderer = &render.DefaultRenderer{}
	var th theme.Theme = &theme.DefaultTheme{}
	var store score.Store
	if !cfg.NoScores {
		store = &score.DefaultStore{Path: cfg.DB}
	}
	var player audio.Player
	if !cfg.Mute {
		player = &audio.DefaultPlayer{}
	}

	p := &Program{
		Config:   cfg,
		Log:      l,
		Renderer: r,
		Theme:    th,
		Store:    store,
		Player:   player,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = p.Init(ctx)
	defer p.Deinit()
	if nil != err {
		return err
	}

	// Clear the screen and hide the cursor
	if err := r.Init(); nil != err {
		return err
	}
	r.RenderLoop(cfg.FramePeriod(), func(dt time.Duration) bool {
		cont := p.Update(dt)
		p.Render()
		return cont
	})
	// Restore the terminal state
	if err := r.Deinit(); nil != err {
		l.Errorf("unable to restore terminal: %v", err)
	}

	fmt.Print(p.Summary())
	return nil
}
