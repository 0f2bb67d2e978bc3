package spawn

import (
	"context"
	"testing"
	"time"

	"git.lost.host/meutraa/tapbeat/internal/game"
	"git.lost.host/meutraa/tapbeat/internal/layout"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

const spb = 500 * time.Millisecond

func newGroups(weights ...int) []*layout.Group {
	props := game.NewProperties(spb, game.DefaultNoteSize, game.DefaultPortions, game.DefaultWindow)
	groups := make([]*layout.Group, len(weights))
	for i, w := range weights {
		groups[i] = &layout.Group{
			Weight: w,
			Notes:  []*game.Note{game.NewNote(0, 0, i, w, props, nil, nil)},
		}
	}
	return groups
}

func active(groups []*layout.Group) int {
	count := 0
	for _, g := range groups {
		for _, n := range g.Notes {
			if n.State() != game.Inactive {
				count++
			}
		}
	}
	return count
}

type initialWaitTest struct {
	MusicDelay time.Duration
	Expected   time.Duration
}

var initialWaitTests = []initialWaitTest{
	{MusicDelay: 0, Expected: ms(250)},
	{MusicDelay: ms(100), Expected: ms(250)},
	{MusicDelay: ms(-100), Expected: ms(350)},
}

func TestInitialWait(t *testing.T) {
	for _, test := range initialWaitTests {
		s := New(spb, test.MusicDelay, newGroups(1))
		s.Start(context.Background(), ms(1000))
		if s.Wait() != test.Expected || s.Deadline() != ms(1000)+test.Expected {
			t.Log("   delay", test.MusicDelay)
			t.Log("    wait", s.Wait())
			t.Log("expected", test.Expected)
			t.Fail()
		}
	}
}

func TestPerfectClockAccumulatesNoDrift(t *testing.T) {
	groups := newGroups(1, 2, 4, 3, 1, 8)
	s := New(spb, 0, groups)
	s.Start(context.Background(), 0)
	for i := 0; !s.Done(); i++ {
		deadline := s.Deadline()
		s.Update(deadline - 1)
		if active(groups) != i {
			t.Fatalf("group %v activated early", i)
		}
		s.Update(deadline)
		if s.Cursor().BadDelay != 0 {
			t.Errorf("group %v: bad delay %v", i, s.Cursor().BadDelay)
		}
		if active(groups) != i+1 {
			t.Errorf("group %v not activated", i)
		}
		if !s.Done() && s.Wait() != spb/time.Duration(groups[i].Weight) {
			t.Errorf("group %v: wait %v", i, s.Wait())
		}
	}
}

func TestJitterShortensNextWait(t *testing.T) {
	for _, jitter := range []time.Duration{ms(1), ms(7), 13 * time.Microsecond, ms(40)} {
		groups := newGroups(1, 2, 4)
		s := New(spb, 0, groups)
		s.Start(context.Background(), 0)
		s.Update(s.Deadline())
		intended := s.Wait()

		s.Update(s.Deadline() + jitter)
		if s.Cursor().BadDelay != jitter {
			t.Errorf("bad delay %v, expected %v", s.Cursor().BadDelay, jitter)
		}
		if s.Wait() != spb/2-jitter {
			t.Log("  jitter", jitter)
			t.Log("    wait", s.Wait())
			t.Log("expected", spb/2-jitter)
			t.Fail()
		}
		// The late group keeps the schedule anchored to the beat grid
		s.Update(s.Deadline())
		if s.Cursor().LastTime != intended+spb/2+ms(250) || s.Cursor().BadDelay != 0 {
			t.Errorf("cursor %+v", s.Cursor())
		}
	}
}

func TestOverdueGroupsCatchUp(t *testing.T) {
	groups := newGroups(4, 4, 4, 4)
	s := New(spb, 0, groups)
	spawned := []int{}
	s.OnSpawn = func(index int, g *layout.Group, now time.Duration) {
		spawned = append(spawned, index)
	}
	s.Start(context.Background(), 0)
	s.Update(ms(250) + spb/4*2)
	if active(groups) != 3 || len(spawned) != 3 {
		t.Errorf("activated %v groups", active(groups))
	}
	for i, index := range spawned {
		if i != index {
			t.Errorf("spawn order %v", spawned)
		}
	}
}

func TestStopDiscardsPendingWait(t *testing.T) {
	groups := newGroups(1, 1, 1)
	s := New(spb, 0, groups)
	s.Start(context.Background(), 0)
	s.Update(ms(250))
	s.Stop()
	s.Stop()
	s.Update(ms(10000))
	if active(groups) != 1 || s.Running() {
		t.Errorf("activated %v groups after stop", active(groups))
	}
}

func TestContextCancellation(t *testing.T) {
	groups := newGroups(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	s := New(spb, 0, groups)
	s.Start(ctx, 0)
	cancel()
	s.Update(ms(10000))
	if active(groups) != 0 {
		t.Errorf("activated %v groups after cancel", active(groups))
	}
}

func TestRestart(t *testing.T) {
	s := New(spb, 0, newGroups(1, 1))
	s.Start(context.Background(), 0)
	s.Update(ms(250))
	s.Update(ms(780))

	groups := newGroups(2)
	s.Restart(context.Background(), ms(2000), groups)
	if s.Cursor() != (Cursor{LastTime: ms(2000)}) || s.Done() {
		t.Errorf("cursor not reset: %+v", s.Cursor())
	}
	s.Update(ms(2250))
	if active(groups) != 1 || !s.Done() {
		t.Errorf("restarted scheduler activated %v", active(groups))
	}
}

func TestUnstartedSchedulerIsIdle(t *testing.T) {
	groups := newGroups(1)
	s := New(spb, 0, groups)
	s.Update(ms(10000))
	s.Stop()
	if active(groups) != 0 {
		t.Fail()
	}
}

func BenchmarkUpdate(b *testing.B) {
	weights := make([]int, 1000)
	for i := range weights {
		weights[i] = 1 + i%8
	}
	for i := 0; i < b.N; i++ {
		groups := newGroups(weights...)
		s := New(spb, 0, groups)
		s.Start(context.Background(), 0)
		for now := time.Duration(0); !s.Done(); now += 8 * time.Millisecond {
			s.Update(now)
		}
	}
}
