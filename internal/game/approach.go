package game

import "time"

// approach moves current toward target at the rate that makes it arrive
// exactly when timeLeft runs out. The rate is recomputed from the remaining
// time on every step. Once no time is left it moves by a whole unit, which
// completes any alpha or scale transition on that step.
func approach(current, target float64, timeLeft, dt time.Duration) (float64, bool) {
	increasing := current < target
	var step float64
	if timeLeft <= 0 {
		step = -1
		if increasing {
			step = 1
		}
	} else {
		step = (target - current) / timeLeft.Seconds() * dt.Seconds()
	}
	next := current + step
	if increasing {
		if next >= target {
			return target, true
		}
	} else if next <= target {
		return target, true
	}
	return next, false
}

// grow adds a fixed fraction of target per second, stopping at target
func grow(current, target, rate float64, dt time.Duration) (float64, bool) {
	next := current + target*rate*dt.Seconds()
	if next >= target {
		return target, true
	}
	return next, false
}
