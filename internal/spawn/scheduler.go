package spawn

import (
	"context"
	"time"

	"git.lost.host/meutraa/tapbeat/internal/layout"
	"git.lost.host/meutraa/tapbeat/internal/log"
)

// Cursor is the drift correction state of a scheduler
type Cursor struct {
	LastTime time.Duration // Stage time of the last resumption
	BadDelay time.Duration // How late the last resumption was
}

// Scheduler activates beat groups at tempo. It never sleeps: the stage
// polls it once per step with the current stage time and it activates every
// group whose deadline has passed.
type Scheduler struct {
	SPB        time.Duration
	MusicDelay time.Duration
	Log        *log.Logger

	// OnSpawn is called after a group was activated
	OnSpawn func(index int, g *layout.Group, now time.Duration)

	groups []*layout.Group
	next   int
	cursor Cursor
	wait   time.Duration
	ctx    context.Context
	cancel context.CancelFunc
}

func New(spb, musicDelay time.Duration, groups []*layout.Group) *Scheduler {
	return &Scheduler{
		SPB:        spb,
		MusicDelay: musicDelay,
		groups:     groups,
	}
}

// InitialWait is the half beat before the first group, extended by a
// negative music delay.
func (s *Scheduler) InitialWait() time.Duration {
	wait := s.SPB / 2
	if s.MusicDelay < 0 {
		wait += -s.MusicDelay
	}
	return wait
}

// Start begins the wait for the first group. Cancelling ctx or calling Stop
// discards the pending wait.
func (s *Scheduler) Start(ctx context.Context, now time.Duration) {
	if nil != s.cancel {
		s.cancel()
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.next = 0
	s.cursor = Cursor{LastTime: now}
	s.wait = s.InitialWait()
	s.Log.Debugf("spawning %v groups, first in %v", len(s.groups), s.wait)
}

// Restart replaces the groups and starts again
func (s *Scheduler) Restart(ctx context.Context, now time.Duration, groups []*layout.Group) {
	s.Stop()
	s.groups = groups
	s.Start(ctx, now)
}

// Stop cancels the pending wait. Remaining groups are never activated.
func (s *Scheduler) Stop() {
	if nil != s.cancel {
		s.cancel()
		s.cancel = nil
	}
}

// Running reports whether a wait is pending
func (s *Scheduler) Running() bool {
	return nil != s.ctx && nil == s.ctx.Err() && !s.Done()
}

// Done reports whether every group was activated
func (s *Scheduler) Done() bool {
	return s.next >= len(s.groups)
}

func (s *Scheduler) Cursor() Cursor {
	return s.cursor
}

// Wait is the duration of the pending wait
func (s *Scheduler) Wait() time.Duration {
	return s.wait
}

// Deadline is the stage time the pending wait ends at
func (s *Scheduler) Deadline() time.Duration {
	return s.cursor.LastTime + s.wait
}

// Update resumes every wait that ended by now. Overdue groups are activated
// in order within the same step.
func (s *Scheduler) Update(now time.Duration) {
	for s.Running() && now >= s.Deadline() {
		s.cursor.BadDelay = now - s.cursor.LastTime - s.wait
		s.cursor.LastTime = now

		g := s.groups[s.next]
		for _, n := range g.Notes {
			n.Activate(now)
		}
		if nil != s.OnSpawn {
			s.OnSpawn(s.next, g, now)
		}
		s.next++

		weight := g.Weight
		if weight < 1 {
			weight = 1
		}
		s.wait = s.SPB/time.Duration(weight) - s.cursor.BadDelay
		if s.cursor.BadDelay != 0 {
			s.Log.Debugf("group %v late by %v, next wait %v", s.next-1, s.cursor.BadDelay, s.wait)
		}
	}
}
