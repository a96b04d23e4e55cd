package ecs

import "time"

// DefaultTimestep is the fixed simulation step used when none is configured (64 Hz).
const DefaultTimestep = time.Second / 64

// FixedTime is the clock driving the fixed-step schedules. The Scheduler keeps it as a
// singleton, so systems can read it through a Singleton[FixedTime] field.
type FixedTime struct {
	// Timestep is the simulated duration of one fixed step.
	Timestep time.Duration
	// MaxDelta caps the real time accumulated per frame. Zero means 8 timesteps.
	MaxDelta time.Duration

	overstep time.Duration
	elapsed  time.Duration
	steps    uint64
}

// NewFixedTime returns a clock stepping every timestep.
func NewFixedTime(timestep time.Duration) FixedTime {
	if timestep <= 0 {
		timestep = DefaultTimestep
	}
	return FixedTime{Timestep: timestep}
}

func (f *FixedTime) maxDelta() time.Duration {
	if f.MaxDelta > 0 {
		return f.MaxDelta
	}
	return 8 * f.Timestep
}

// Accumulate adds real elapsed time to the overstep budget.
func (f *FixedTime) Accumulate(delta time.Duration) {
	if delta < 0 {
		return
	}
	delta = min(delta, f.maxDelta())
	f.overstep += delta
}

// Expend consumes one timestep from the budget. It returns false once less than a
// full step remains.
func (f *FixedTime) Expend() bool {
	if f.Timestep <= 0 || f.overstep < f.Timestep {
		return false
	}
	f.overstep -= f.Timestep
	f.elapsed += f.Timestep
	f.steps++
	return true
}

// OverstepFraction is the leftover budget as a fraction of a timestep, in [0, 1).
func (f *FixedTime) OverstepFraction() float64 {
	if f.Timestep <= 0 {
		return 0
	}
	return f.overstep.Seconds() / f.Timestep.Seconds()
}

// Overstep returns the accumulated time not yet consumed by a step.
func (f *FixedTime) Overstep() time.Duration { return f.overstep }

// Elapsed returns the total simulated time.
func (f *FixedTime) Elapsed() time.Duration { return f.elapsed }

// Steps returns the number of fixed steps run so far.
func (f *FixedTime) Steps() uint64 { return f.steps }

// DeltaSeconds returns the timestep in seconds.
func (f *FixedTime) DeltaSeconds() float64 { return f.Timestep.Seconds() }

// SetOverstep forces the leftover budget, clamped to [0, Timestep). Useful for hosts
// that run their own clock and for deterministic tests.
func (f *FixedTime) SetOverstep(d time.Duration) {
	f.overstep = max(0, min(d, f.Timestep-1))
}
