package demo

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/plus3/glide/easing"
	"github.com/plus3/glide/ecs"
	"github.com/plus3/glide/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	cfg.Timestep = 50 * time.Millisecond
	cfg.Demo.Bodies = 4
	cfg.Demo.Movers = 2
	return cfg
}

func newTestWorld(t *testing.T, cfg config.Config) *World {
	t.Helper()
	w, err := Build(cfg, zerolog.New(zerolog.NewTestWriter(t)), Options{
		Seed:  7,
		Meter: noop.NewMeterProvider().Meter("test"),
	})
	require.NoError(t, err)
	return w
}

type sprite struct {
	*easing.Transform
	*easing.DisplayTransform
	*Sprite
	Reference *Reference `ecs:"optional"`
	Body      *Body      `ecs:"optional"`
}

func sprites(w *World) []sprite {
	q := ecs.NewQuery[sprite](w.Storage)
	q.Execute()
	_, items := q.Items()
	return items
}

func TestBuildSpawnsEntities(t *testing.T) {
	w := newTestWorld(t, testConfig(t))
	w.Scheduler.Once(0)

	all := sprites(w)
	require.Len(t, all, 4+2+1)

	references := 0
	for _, s := range all {
		if s.Reference != nil {
			references++
		}
	}
	assert.Equal(t, 1, references)
	assert.Equal(t, 50*time.Millisecond, w.Scheduler.Time().Timestep)
	assert.Equal(t, 8*50*time.Millisecond, w.Scheduler.Time().MaxDelta)
}

func TestDisplayTrailsSimulation(t *testing.T) {
	w := newTestWorld(t, testConfig(t))
	for range 10 {
		w.Scheduler.Once(0.075)
	}

	lagging := 0
	for _, s := range sprites(w) {
		if s.Reference != nil {
			assert.Equal(t, *s.Transform, s.DisplayTransform.Transform(), "the reference is never eased")
			continue
		}
		if s.DisplayTransform.Translation != s.Transform.Translation {
			lagging++
		}
	}
	assert.Positive(t, lagging)
	assert.Positive(t, w.Controller.Stats().Windows)
	assert.Positive(t, w.Controller.Stats().Blended)
}

func TestPhysicsCopiesVelocities(t *testing.T) {
	w := newTestWorld(t, testConfig(t))
	w.Scheduler.Once(0.05)

	q := ecs.NewQuery[struct {
		*Body
		*easing.Transform
		*easing.LinearVelocity
	}](w.Storage)
	q.Execute()

	n := 0
	for item := range q.Values() {
		pos := item.Body.Body.Position()
		vel := item.Body.Body.Velocity()
		assert.Equal(t, mgl64.Vec3{pos.X, pos.Y, 0}, item.Transform.Translation)
		assert.Equal(t, easing.LinearVelocity{vel.X, vel.Y, 0}, *item.LinearVelocity)
		n++
	}
	assert.Equal(t, 4, n)
}

func TestTeleportSnapsDisplay(t *testing.T) {
	w := newTestWorld(t, testConfig(t))
	for range 4 {
		w.Scheduler.Once(0.075)
	}

	before := map[*cp.Body]float64{}
	for _, s := range sprites(w) {
		if s.Body != nil {
			before[s.Body.Body] = s.Transform.Translation.X()
		}
	}

	w.Teleport()
	w.Scheduler.Once(0.01)

	assert.Positive(t, w.Controller.Stats().Invalidations)
	for _, s := range sprites(w) {
		if s.Reference != nil {
			continue
		}
		assert.Equal(t, s.Transform.Translation, s.DisplayTransform.Translation,
			"a teleport shows the new position immediately")
	}
	width := float64(testConfig(t).Demo.Width)
	for _, s := range sprites(w) {
		if s.Body == nil {
			continue
		}
		if x, ok := before[s.Body.Body]; ok {
			assert.InDelta(t, width-x, s.Transform.Translation.X(), 1e-9)
		}
	}
}

func TestCycleMode(t *testing.T) {
	w := newTestWorld(t, testConfig(t))
	assert.Equal(t, easing.ModeInterpolate, w.Controller.Defaults().Translation.Mode)

	w.CycleMode()
	w.Scheduler.Once(0)
	assert.Equal(t, easing.ModeExtrapolate, w.Controller.Defaults().Translation.Mode)
	assert.Equal(t, easing.ModeExtrapolate, w.Controller.Defaults().Scale.Mode)

	w.CycleMode()
	w.Scheduler.Once(0)
	assert.Equal(t, easing.ModeDisabled, w.Controller.Defaults().Rotation.Mode)

	w.Scheduler.Once(0.075)
	for _, s := range sprites(w) {
		assert.Equal(t, *s.Transform, s.DisplayTransform.Transform())
	}

	w.CycleMode()
	w.Scheduler.Once(0)
	assert.Equal(t, easing.ModeInterpolate, w.Controller.Defaults().Translation.Mode)
}

func TestMoverPingPongs(t *testing.T) {
	m := NewMover(mgl64.Vec3{}, mgl64.Vec3{10, 0, 0}, 1, 0, 0)

	assert.InDelta(t, 0.5, m.advance(0.5), 1e-6)
	assert.InDelta(t, 1, m.advance(0.5), 1e-6)
	assert.True(t, m.returning)
	assert.InDelta(t, 0.5, m.advance(0.5), 1e-6)
	assert.InDelta(t, 0, m.advance(0.5), 1e-6)
	assert.False(t, m.returning)
}

func TestApplyRejectsBadEasing(t *testing.T) {
	w := newTestWorld(t, testConfig(t))
	cfg := testConfig(t)
	cfg.Easing.Rotation.Mode = "sideways"
	assert.Error(t, w.Apply(cfg))

	cfg = testConfig(t)
	cfg.Timestep = 10 * time.Millisecond
	require.NoError(t, w.Apply(cfg))
	assert.Equal(t, 10*time.Millisecond, w.Scheduler.Time().Timestep)
}
