package bar

import (
	"time"
)

// Bar is the visual metronome. It sweeps the spawn area height once per
// beat, starting from the center and moving up.
type Bar struct {
	Height float64 // Spawn area height
	Speed  float64 // Units per second

	freeze  time.Duration
	y       float64
	up      bool
	stopped bool
	bounces int
}

// New creates a bar that moves once the freeze time has passed. A bar of
// speed height×BPS meets an edge on every beat.
func New(height float64, spb time.Duration, freeze time.Duration) *Bar {
	b := &Bar{Height: height, Speed: height / spb.Seconds()}
	b.Restart(freeze)
	return b
}

// Restart moves the bar back to the center and freezes it again
func (b *Bar) Restart(freeze time.Duration) {
	b.freeze = freeze
	b.y = 0
	b.up = true
	b.stopped = false
	b.bounces = 0
}

func (b *Bar) Stop() {
	b.stopped = true
}

func (b *Bar) Stopped() bool { return b.stopped }
func (b *Bar) Y() float64    { return b.y }
func (b *Bar) Up() bool      { return b.up }

// Frozen reports whether the bar is still waiting to move
func (b *Bar) Frozen() bool { return b.freeze > 0 }

// Bounces is the number of edges met since the last restart
func (b *Bar) Bounces() int { return b.bounces }

// Update moves the bar by dt. The time left over from the freeze in this
// step is applied as movement.
func (b *Bar) Update(dt time.Duration) {
	if b.freeze > 0 {
		b.freeze -= dt
		if b.freeze > 0 {
			return
		}
		dt = -b.freeze
		b.freeze = 0
	}
	if b.stopped || dt <= 0 {
		return
	}
	sign := -1.0
	if b.up {
		sign = 1.0
	}
	b.y += sign * b.Speed * dt.Seconds()
	if abs(b.y) >= b.Height/2 {
		b.y = sign*b.Height - b.y
		b.up = !b.up
		b.bounces++
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
