package render

import (
	"fmt"
	"strings"
	"time"

	"git.lost.host/meutraa/tapbeat/internal/game"
	"git.lost.host/meutraa/tapbeat/internal/score"
	"git.lost.host/meutraa/tapbeat/internal/theme"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
)

// HUD is the text shown beside the stage
type HUD struct {
	Chart     string
	BPM       float64
	Counts    score.Counts
	Remaining time.Duration
	Best      float64
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return durafmt.Parse(d.Round(time.Second)).LimitFirstN(2).String()
}

// Lines formats the HUD, one entry per line
func (h HUD) Lines(th theme.Theme) []string {
	lines := []string{
		h.Chart,
		fmt.Sprintf("%v BPM", humanize.Ftoa(h.BPM)),
		fmt.Sprintf("Remaining: %v", formatDuration(h.Remaining)),
	}
	if h.Best > 0 {
		lines = append(lines, fmt.Sprintf("Best: %v", humanize.FormatFloat("#,###.##", h.Best)))
	}
	lines = append(lines, "")
	for _, g := range []game.Grade{game.Perfect, game.Good, game.Bad, game.Miss} {
		lines = append(lines, fmt.Sprintf("%v: %v", th.RenderGrade(g), humanize.Comma(int64(h.Counts.Of(g)))))
	}
	return lines
}

func (h HUD) Render(r Renderer, row, col int, th theme.Theme) {
	for i, line := range h.Lines(th) {
		r.Fill(row+i, col, line)
	}
}

// Summary describes a finished stage
func Summary(name string, result *score.Result, highscore bool, played time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v finished after %v\n", name, formatDuration(played))
	fmt.Fprintf(&b, "Score: %v", humanize.FormatFloat("#,###.##", result.Score))
	if highscore {
		b.WriteString(" (new highscore)")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Perfect %v  Good %v  Bad %v  Miss %v\n",
		humanize.Comma(int64(result.Counts.Perfect)),
		humanize.Comma(int64(result.Counts.Good)),
		humanize.Comma(int64(result.Counts.Bad)),
		humanize.Comma(int64(result.Counts.Miss)),
	)
	return b.String()
}
