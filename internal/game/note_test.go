package game

import (
	"math"
	"testing"
	"time"
)

type recorder struct {
	grades []Grade
}

func (r *recorder) Report(g Grade) {
	r.grades = append(r.grades, g)
}

type fakeHandle struct {
	draws    int
	released int
	last     RenderState
}

func (h *fakeHandle) Draw(r RenderState) {
	h.draws++
	h.last = r
}

func (h *fakeHandle) Release() {
	h.released++
}

// 120 BPM: 1s life, 200ms fade in, 200ms scale in, 700ms main life
func testProperties() *Properties {
	return NewProperties(500*time.Millisecond, DefaultNoteSize, DefaultPortions, DefaultWindow)
}

func newTestNote() (*Note, *recorder, *fakeHandle) {
	r := &recorder{}
	h := &fakeHandle{}
	return NewNote(1, 2, 0, 4, testProperties(), r, h), r, h
}

// step advances the note count times by dt, returning the stage time reached
func step(n *Note, now time.Duration, dt time.Duration, count int) time.Duration {
	for i := 0; i < count; i++ {
		now += dt
		n.Update(now)
	}
	return now
}

func TestPropertiesFromSPB(t *testing.T) {
	p := testProperties()
	if p.TimeTillDestruction != time.Second ||
		p.FadeInTime != ms(200) ||
		p.ScaleInTime != ms(200) ||
		p.MainLifeTime != ms(700) ||
		p.TappedScaleTime != ms(100) ||
		p.FadeOutTime != ms(100) {
		t.Logf("%+v", p)
		t.Fail()
	}
	if p.TimeTillPerfect() != ms(400) {
		t.Errorf("time till perfect %v", p.TimeTillPerfect())
	}
}

func TestInactiveNoteIgnoresUpdates(t *testing.T) {
	n, r, _ := newTestNote()
	step(n, 0, ms(10), 500)
	if n.State() != Inactive || len(r.grades) != 0 {
		t.Errorf("state %v grades %v", n.State(), r.grades)
	}
	if n.Tap(ms(100)) {
		t.Error("inactive note accepted a tap")
	}
}

func TestLifecyclePhases(t *testing.T) {
	n, r, h := newTestNote()
	start := ms(1000)
	n.Activate(start)
	if n.State() != FadingIn || n.PerfectTime() != ms(1400) {
		t.Fatalf("state %v perfect %v", n.State(), n.PerfectTime())
	}

	now := step(n, start, ms(10), 18)
	if n.State() != FadingIn {
		t.Errorf("after 180ms: %v", n.State())
	}
	now = step(n, now, ms(10), 2)
	if n.State() != ScalingIn || h.last.Alpha != 1 {
		t.Errorf("after 200ms: %v alpha %v", n.State(), h.last.Alpha)
	}
	now = step(n, now, ms(10), 10)
	if n.State() != ScalingIn || h.last.Ready {
		t.Errorf("after 300ms: %v", n.State())
	}
	now = step(n, now, ms(10), 10)
	if n.State() != Active || !h.last.Ready || h.last.Scale != DefaultNoteSize {
		t.Errorf("after 400ms: %v ready %v scale %v", n.State(), h.last.Ready, h.last.Scale)
	}
	// The ring color lags the stopwatch by one step
	now = step(n, now, ms(10), 1)
	if c := h.last.Color; c.R != RingColors[3].R || c.G != RingColors[3].G || c.B != RingColors[3].B {
		t.Errorf("ring color at perfect time %v", h.last.Color)
	}

	// Missed once the main life runs out, then fades and is graded on teardown
	now = step(n, now, ms(10), 70)
	if n.State() != Missed {
		t.Errorf("after 1110ms: %v", n.State())
	}
	if len(r.grades) != 0 {
		t.Errorf("graded before teardown: %v", r.grades)
	}
	step(n, now, ms(10), 20)
	if n.State() != Destroyed {
		t.Errorf("never destroyed: %v", n.State())
	}
	if len(r.grades) != 1 || r.grades[0] != Miss {
		t.Errorf("grades %v", r.grades)
	}
	if h.released != 1 {
		t.Errorf("released %v times", h.released)
	}
	if n.Tap(now + ms(500)) {
		t.Error("destroyed note accepted a tap")
	}
}

var tapTests = map[time.Duration]Grade{
	ms(440): Perfect,
	ms(360): Perfect,
	ms(500): Good,
	ms(300): Good,
	ms(100): Bad,
	ms(900): Bad,
}

func TestTapGrades(t *testing.T) {
	for offset, expected := range tapTests {
		n, r, h := newTestNote()
		n.Activate(0)
		now := step(n, 0, ms(10), int(offset/ms(10)))
		if !n.Tap(now) {
			t.Errorf("tap at %v rejected in %v", offset, n.State())
			continue
		}
		if n.Tap(now + ms(5)) {
			t.Errorf("second tap at %v accepted", offset)
		}
		step(n, now, ms(10), 100)
		if n.State() != Destroyed {
			t.Errorf("tapped note at %v ended in %v", offset, n.State())
		}
		if len(r.grades) != 1 || r.grades[0] != expected || n.Grade() != expected {
			t.Log("  offset", offset)
			t.Log("  grades", r.grades)
			t.Log("expected", expected)
			t.Fail()
		}
		if h.released != 1 {
			t.Errorf("released %v times", h.released)
		}
	}
}

func TestTappedAnimation(t *testing.T) {
	n, _, h := newTestNote()
	n.Activate(0)
	now := step(n, 0, ms(10), 40)
	n.Tap(now)
	if h.last.InnerAlpha != 0.5 || h.last.State != Tapped {
		t.Errorf("tap render state %+v", h.last)
	}
	now = step(n, now, ms(10), 5)
	if h.last.Scale <= DefaultNoteSize || h.last.Alpha >= 1 || h.last.InnerScale <= 0 {
		t.Errorf("not animating: %+v", h.last)
	}
	step(n, now, ms(10), 6)
	if n.State() != TornDown && n.State() != Destroyed {
		t.Errorf("after tapped scale time: %v", n.State())
	}
	if h.last.Alpha != 0 || math.Abs(h.last.Scale-DefaultNoteSize*1.2) > 1e-9 {
		t.Errorf("final animation state %+v", h.last)
	}
}

func TestTapAfterMissIsIgnored(t *testing.T) {
	n, r, _ := newTestNote()
	n.Activate(0)
	now := step(n, 0, ms(10), 112)
	if n.State() != Missed {
		t.Fatalf("state %v", n.State())
	}
	if n.Tap(now) {
		t.Error("missed note accepted a tap")
	}
	step(n, now, ms(10), 20)
	if len(r.grades) != 1 || r.grades[0] != Miss {
		t.Errorf("grades %v", r.grades)
	}
}

func TestTeardown(t *testing.T) {
	// Never spawned: excluded from the score
	n, r, h := newTestNote()
	n.Teardown()
	if n.State() != Destroyed || len(r.grades) != 0 || h.released != 1 {
		t.Errorf("inactive teardown: %v %v %v", n.State(), r.grades, h.released)
	}

	// Spawned but never graded: one miss
	n, r, h = newTestNote()
	n.Activate(0)
	step(n, 0, ms(10), 20)
	n.Teardown()
	n.Teardown()
	if n.State() != Destroyed || len(r.grades) != 1 || r.grades[0] != Miss || h.released != 1 {
		t.Errorf("active teardown: %v %v %v", n.State(), r.grades, h.released)
	}

	// Already graded: nothing more is reported
	n, r, _ = newTestNote()
	n.Activate(0)
	now := step(n, 0, ms(10), 40)
	n.Tap(now)
	n.Teardown()
	if len(r.grades) != 1 || r.grades[0] != Perfect {
		t.Errorf("tapped teardown: %v", r.grades)
	}
}

func TestJitteredFrames(t *testing.T) {
	n, r, _ := newTestNote()
	n.Activate(0)
	frames := []time.Duration{ms(7), ms(33), ms(16), ms(1), ms(50), ms(12)}
	now := time.Duration(0)
	for i := 0; n.State() != Destroyed; i++ {
		now += frames[i%len(frames)]
		n.Update(now)
		s := n.Render()
		if s.Alpha < 0 || s.Alpha > 1 || s.Scale <= 0 {
			t.Fatalf("render state out of range at %v: %+v", now, s)
		}
		if i > 1000 {
			t.Fatal("note never destroyed")
		}
	}
	if len(r.grades) != 1 {
		t.Errorf("grades %v", r.grades)
	}
}

func TestContains(t *testing.T) {
	n, _, _ := newTestNote()
	if !n.Contains(1, 2) || !n.Contains(1.1, 2.1) || n.Contains(1.5, 2) {
		t.Fail()
	}
}
