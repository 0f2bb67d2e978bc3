package game

import (
	"errors"
	"fmt"
	"time"
)

type Grade int

const (
	None Grade = iota // No grade was computed
	Miss
	Bad
	Good
	Perfect
)

// NotTapped is the tap time sentinel for a note that was never tapped
const NotTapped time.Duration = -1

var gradeNames = [...]string{"None", "Miss", "Bad", "Good", "Perfect"}

func (g Grade) String() string {
	if g < None || g > Perfect {
		return "Unknown"
	}
	return gradeNames[g]
}

// Window holds the timing thresholds, Perfect < Good
type Window struct {
	Perfect time.Duration
	Good    time.Duration
}

var DefaultWindow = Window{
	Perfect: 50 * time.Millisecond,
	Good:    150 * time.Millisecond,
}

func (w Window) Validate() error {
	if w.Perfect < 0 || w.Good < 0 {
		return errors.New("timing thresholds must not be negative")
	}
	if w.Perfect >= w.Good {
		return fmt.Errorf("perfect threshold %v must be less than good threshold %v", w.Perfect, w.Good)
	}
	return nil
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

// Judge grades a tap against the time the note was perfect.
// A negative tap time means the note was never tapped.
func Judge(tapTime, perfectTime, perfect, good time.Duration) Grade {
	if tapTime < 0 {
		return Miss
	}
	d := abs(tapTime - perfectTime)
	if d <= perfect {
		return Perfect
	}
	if d <= good {
		return Good
	}
	return Bad
}

func (w Window) Judge(tapTime, perfectTime time.Duration) Grade {
	return Judge(tapTime, perfectTime, w.Perfect, w.Good)
}
