package ecs_test

import (
	"testing"
	"time"

	"github.com/plus3/glide/ecs"
	"github.com/stretchr/testify/assert"
)

func TestFixedTime(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clock := ecs.NewFixedTime(0)
		assert.Equal(t, ecs.DefaultTimestep, clock.Timestep)
		assert.False(t, clock.Expend())
		assert.Zero(t, clock.OverstepFraction())
	})

	t.Run("accumulate and expend", func(t *testing.T) {
		clock := ecs.NewFixedTime(10 * time.Millisecond)
		clock.Accumulate(25 * time.Millisecond)

		steps := 0
		for clock.Expend() {
			steps++
		}
		assert.Equal(t, 2, steps)
		assert.Equal(t, uint64(2), clock.Steps())
		assert.Equal(t, 20*time.Millisecond, clock.Elapsed())
		assert.Equal(t, 5*time.Millisecond, clock.Overstep())
		assert.InDelta(t, 0.5, clock.OverstepFraction(), 1e-9)
	})

	t.Run("max delta clamps long frames", func(t *testing.T) {
		clock := ecs.NewFixedTime(10 * time.Millisecond)
		clock.Accumulate(time.Second)
		assert.Equal(t, 80*time.Millisecond, clock.Overstep())

		clock = ecs.NewFixedTime(10 * time.Millisecond)
		clock.MaxDelta = 30 * time.Millisecond
		clock.Accumulate(time.Second)
		assert.Equal(t, 30*time.Millisecond, clock.Overstep())
	})

	t.Run("negative delta ignored", func(t *testing.T) {
		clock := ecs.NewFixedTime(10 * time.Millisecond)
		clock.Accumulate(-time.Second)
		assert.Zero(t, clock.Overstep())
	})

	t.Run("set overstep stays below one step", func(t *testing.T) {
		clock := ecs.NewFixedTime(10 * time.Millisecond)
		clock.SetOverstep(time.Second)
		assert.Less(t, clock.OverstepFraction(), 1.0)
		clock.SetOverstep(-time.Second)
		assert.Zero(t, clock.Overstep())
		clock.SetOverstep(5 * time.Millisecond)
		assert.InDelta(t, 0.5, clock.OverstepFraction(), 1e-9)
	})
}
