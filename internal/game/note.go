package game

import (
	"image/color"
	"time"
)

type State int

const (
	Inactive State = iota
	FadingIn
	ScalingIn
	Active
	Tapped
	Missed
	TornDown
	Destroyed
)

var stateNames = [...]string{"Inactive", "FadingIn", "ScalingIn", "Active", "Tapped", "Missed", "TornDown", "Destroyed"}

func (s State) String() string {
	if s < Inactive || s > Destroyed {
		return "Unknown"
	}
	return stateNames[s]
}

// Reporter receives exactly one grade per activated note
type Reporter interface {
	Report(grade Grade)
}

// Handle is the display side of a note. It is resolved once when the note is
// created and receives the render state after every step.
type Handle interface {
	Draw(r RenderState)
	Release()
}

type RenderState struct {
	X, Y       float64
	Depth      int
	Weight     int
	State      State
	Ready      bool // Fully grown, shown at full brightness
	Alpha      float64
	Scale      float64
	InnerAlpha float64 // The tapped inner circle
	InnerScale float64
	Color      color.RGBA
}

type Note struct {
	X, Y   float64 // World position
	Depth  int     // Draw order only
	Weight int     // Weight of the owning beat group

	props    *Properties
	reporter Reporter
	handle   Handle

	state State
	clock time.Duration // The time of the last step

	activationTime time.Duration
	perfectTime    time.Duration
	tapTime        time.Duration

	alpha, scale           float64
	innerAlpha, innerScale float64
	scaleWhenTapped        float64
	fadingOut, scalingOut  bool
	ready                  bool

	graded bool
	grade  Grade

	missedStopper    time.Duration
	timeBeforeMissed time.Duration
	fadeInTimer      time.Duration
	scaleInTimer     time.Duration
	tappedScaleTimer time.Duration
	fadeOutTimer     time.Duration

	ringStopwatch time.Duration
	ringIndex     int
	ringMarks     [len(RingColors) - 1]time.Duration
	color         color.RGBA
}

// NewNote creates an inactive note. A nil handle draws nothing.
func NewNote(x, y float64, depth, weight int, props *Properties, reporter Reporter, handle Handle) *Note {
	return &Note{
		X:        x,
		Y:        y,
		Depth:    depth,
		Weight:   weight,
		props:    props,
		reporter: reporter,
		handle:   handle,
		tapTime:  NotTapped,
		scale:    props.SpawnScale(),
		color:    RingColors[0],
	}
}

func (n *Note) State() State                  { return n.state }
func (n *Note) Grade() Grade                  { return n.grade }
func (n *Note) Graded() bool                  { return n.graded }
func (n *Note) ActivationTime() time.Duration { return n.activationTime }
func (n *Note) PerfectTime() time.Duration    { return n.perfectTime }
func (n *Note) TapTime() time.Duration        { return n.tapTime }

// Live reports whether the note was activated and not yet destroyed
func (n *Note) Live() bool {
	return n.state != Inactive && n.state != Destroyed
}

// Tappable reports whether a tap would be accepted
func (n *Note) Tappable() bool {
	return n.state == FadingIn || n.state == ScalingIn || n.state == Active
}

// Contains reports whether a world point lies within the note circle
func (n *Note) Contains(x, y float64) bool {
	r := n.scale / 2
	dx, dy := x-n.X, y-n.Y
	return dx*dx+dy*dy <= r*r
}

func (n *Note) Render() RenderState {
	return RenderState{
		X:          n.X,
		Y:          n.Y,
		Depth:      n.Depth,
		Weight:     n.Weight,
		State:      n.state,
		Ready:      n.ready,
		Alpha:      n.alpha,
		Scale:      n.scale,
		InnerAlpha: n.innerAlpha,
		InnerScale: n.innerScale,
		Color:      color.RGBA{R: n.color.R, G: n.color.G, B: n.color.B, A: uint8(n.alpha*255 + 0.5)},
	}
}

// Activate starts the note life at the given stage time
func (n *Note) Activate(now time.Duration) {
	if n.state != Inactive {
		return
	}
	p := n.props
	n.state = FadingIn
	n.activationTime = now
	n.clock = now

	n.fadeInTimer = p.FadeInTime
	n.scaleInTimer = p.ScaleInTime + p.FadeInTime
	n.tappedScaleTimer = p.TappedScaleTime
	n.fadeOutTimer = p.FadeOutTime
	n.timeBeforeMissed = p.MainLifeTime + p.FadeInTime + p.ScaleInTime
	n.perfectTime = now + p.TimeTillPerfect()
	n.ringMarks = ringDurations(p)
	n.draw()
}

// Tap grades the note at the given stage time. Only the first tap during the
// active life is accepted.
func (n *Note) Tap(now time.Duration) bool {
	if !n.Tappable() {
		return false
	}
	n.state = Tapped
	n.tapTime = now
	n.judge(now)

	n.innerAlpha = n.props.TappedInnerCircleAlpha
	n.fadeOutTimer = n.props.FadeOutTime
	n.scaleWhenTapped = n.scale
	n.scalingOut = true
	n.fadingOut = true
	n.draw()
	return true
}

// Update advances the note local clock to now
func (n *Note) Update(now time.Duration) {
	if n.state == Inactive || n.state == Destroyed {
		return
	}
	dt := now - n.clock
	if dt < 0 {
		dt = 0
	}
	n.clock = now

	if n.state == TornDown {
		n.destroy()
		return
	}

	n.fadeInTimer -= dt
	n.scaleInTimer -= dt

	if n.state != Tapped && n.state != Missed {
		if n.missedStopper >= n.timeBeforeMissed {
			n.state = Missed
		} else {
			n.missedStopper += dt
		}
	}

	switch n.state {
	case Tapped:
		n.tappedStep(dt)
		n.draw()
		return
	case Missed:
		n.fadeOutTimer -= dt
		var done bool
		n.alpha, done = approach(n.alpha, 0, n.fadeOutTimer, dt)
		if done {
			n.state = TornDown
		}
	default:
		if n.state == FadingIn {
			var done bool
			n.alpha, done = approach(n.alpha, 1, n.fadeInTimer, dt)
			if done {
				n.state = ScalingIn
			}
		}
		if n.state == ScalingIn {
			var done bool
			n.scale, done = approach(n.scale, n.props.NoteSize, n.scaleInTimer, dt)
			if done {
				n.state = Active
				n.ready = true
			}
		}
	}

	n.color = ringColor(n.ringMarks, &n.ringIndex, n.ringStopwatch)
	n.ringStopwatch += dt
	n.draw()
}

// Teardown destroys the note immediately. An activated note that was never
// graded counts as a miss; a note that never spawned is not graded.
func (n *Note) Teardown() {
	switch n.state {
	case Destroyed:
		return
	case Inactive:
		n.state = Destroyed
		n.release()
	default:
		n.destroy()
	}
}

func (n *Note) tappedStep(dt time.Duration) {
	maxScale := n.scaleWhenTapped * n.props.ScaleMultiplierWhenTapped
	if n.scalingOut {
		n.tappedScaleTimer -= dt
		var outer, inner bool
		n.scale, outer = approach(n.scale, maxScale, n.tappedScaleTimer, dt)
		n.innerScale, inner = grow(n.innerScale, n.props.TappedInnerCircleGrowth, n.props.TappedAnimationScaleRate, dt)
		n.scalingOut = !outer || !inner
	}
	if n.fadingOut {
		n.fadeOutTimer -= dt
		var done bool
		n.alpha, done = approach(n.alpha, 0, n.fadeOutTimer, dt)
		n.fadingOut = !done
	}
	if !n.scalingOut && !n.fadingOut {
		n.state = TornDown
	}
}

func (n *Note) judge(tapTime time.Duration) Grade {
	if n.graded {
		return None
	}
	n.graded = true
	n.grade = n.props.Window.Judge(tapTime, n.perfectTime)
	if nil != n.reporter {
		n.reporter.Report(n.grade)
	}
	return n.grade
}

func (n *Note) destroy() {
	n.judge(NotTapped)
	n.state = Destroyed
	n.release()
}

func (n *Note) draw() {
	if nil != n.handle {
		n.handle.Draw(n.Render())
	}
}

func (n *Note) release() {
	if nil != n.handle {
		n.handle.Release()
		n.handle = nil
	}
}
