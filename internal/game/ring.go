package game

import (
	"image/color"
	"time"
)

// RingColors are passed through over the life of a note, peaking at the
// perfect time.
var RingColors = [...]color.RGBA{
	{48, 48, 48, 242},
	{73, 58, 99, 242},
	{41, 152, 0, 242},
	{255, 242, 0, 255},
	{41, 152, 0, 242},
	{73, 58, 99, 242},
	{48, 48, 48, 242},
}

// ringDurations are the stopwatch marks at which the ring reaches each color
func ringDurations(p *Properties) [len(RingColors) - 1]time.Duration {
	tillPerfect := p.TimeTillPerfect()
	tillGood := tillPerfect - p.Window.Good
	return [len(RingColors) - 1]time.Duration{
		tillGood / 2,
		tillGood,
		tillPerfect,
		tillPerfect + p.Window.Perfect,
		tillPerfect + p.Window.Good,
		p.TimeTillDestruction,
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: lerp(a.R, b.R, t),
		G: lerp(a.G, b.G, t),
		B: lerp(a.B, b.B, t),
		A: lerp(a.A, b.A, t),
	}
}

// ringColor returns the color at the given stopwatch time, advancing index
// past any marks already reached.
func ringColor(marks [len(RingColors) - 1]time.Duration, index *int, stopwatch time.Duration) color.RGBA {
	for stopwatch > marks[*index] {
		if *index == len(marks)-1 {
			break
		}
		*index++
	}
	var last time.Duration
	if *index > 0 {
		last = marks[*index-1]
	}
	span := marks[*index] - last
	t := 1.0
	if span > 0 {
		t = float64(stopwatch-last) / float64(span)
	}
	return lerpColor(RingColors[*index], RingColors[*index+1], t)
}
