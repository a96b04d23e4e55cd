package easing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

const testStep = 0.1

func newTestController(t *testing.T, defaults Config) *Controller {
	t.Helper()
	c, err := NewController(defaults, zerolog.Nop(), noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	return c
}

// step runs one fixed step, calling simulate between the captures.
func step(c *Controller, e Entity, simulate func(*Transform)) {
	c.DetectChanges(e)
	c.OpenWindow(e)
	if simulate != nil {
		simulate(e.Transform)
	}
	c.CloseWindow(e, testStep)
}

func newEntity(tr Transform) Entity {
	return Entity{ID: 1, Transform: &tr, Easing: &Easing{}}
}

func moveBy(d mgl64.Vec3) func(*Transform) {
	return func(tr *Transform) { tr.Translation = tr.Translation.Add(d) }
}

func TestCaptureProtocolYieldsPair(t *testing.T) {
	c := newTestController(t, Interpolate())
	e := newEntity(IdentityTransform())

	step(c, e, moveBy(mgl64.Vec3{1, 0, 0}))

	start, end, ok := e.Easing.Translation.Pair()
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, start)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, end)
	assert.True(t, e.Easing.Rotation.Active())
	assert.True(t, e.Easing.Scale.Active())

	out := c.Blend(e, 0.5, testStep)
	assert.Equal(t, mgl64.Vec3{0.5, 0, 0}, out.Translation)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, e.Transform.Translation, "the authoritative transform is left alone")

	assert.Equal(t, mgl64.Vec3{0, 0, 0}, c.Blend(e, 0, testStep).Translation)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, c.Blend(e, 1, testStep).Translation)
}

func TestBlendIsRepeatable(t *testing.T) {
	c := newTestController(t, Interpolate().WithBackend(BackendHermite))
	e := newEntity(IdentityTransform())
	step(c, e, moveBy(mgl64.Vec3{1, 2, 0}))
	step(c, e, moveBy(mgl64.Vec3{2, 1, 0}))

	first := c.Blend(e, 0.3, testStep)
	snapshot := *e.Easing
	for range 5 {
		assert.Equal(t, first, c.Blend(e, 0.3, testStep))
	}
	assert.Equal(t, snapshot, *e.Easing)
}

func TestExtrapolationPredictsOneStep(t *testing.T) {
	c := newTestController(t, Extrapolate(ChannelTranslation))
	e := newEntity(IdentityTransform())
	vel := LinearVelocity{1, 0, 0}
	e.LinearVelocity = &vel

	step(c, e, nil)

	start, end, ok := e.Easing.Translation.Pair()
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, start)
	assert.Equal(t, mgl64.Vec3{0.1, 0, 0}, end)
	assert.Equal(t, mgl64.Vec3{0.05, 0, 0}, c.Blend(e, 0.5, testStep).Translation)
}

func TestExtrapolationEstimatesVelocity(t *testing.T) {
	c := newTestController(t, Extrapolate(ChannelTranslation))
	e := newEntity(IdentityTransform())

	step(c, e, moveBy(mgl64.Vec3{0.5, 0, 0}))
	assert.False(t, e.Easing.Translation.Active(), "a single sample gives no velocity")
	assert.Equal(t, mgl64.Vec3{0.5, 0, 0}, c.Blend(e, 0.5, testStep).Translation)

	step(c, e, moveBy(mgl64.Vec3{0.5, 0, 0}))
	start, end, ok := e.Easing.Translation.Pair()
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, start)
	assert.True(t, end.ApproxEqualThreshold(mgl64.Vec3{1.5, 0, 0}, 1e-12))
}

func TestExtrapolatedRotation(t *testing.T) {
	c := newTestController(t, Extrapolate(ChannelRotation))
	e := newEntity(IdentityTransform())
	spin := AngularVelocity{0, 0, 2}
	e.AngularVelocity = &spin

	step(c, e, nil)

	_, end, ok := e.Easing.Rotation.Pair()
	require.True(t, ok)
	assert.True(t, end.OrientationEqualThreshold(mgl64.QuatRotate(0.2, mgl64.Vec3{0, 0, 1}), 1e-12))

	mid := c.Blend(e, 0.5, testStep).Rotation
	assert.True(t, mid.OrientationEqualThreshold(mgl64.QuatRotate(0.1, mgl64.Vec3{0, 0, 1}), 1e-9))
}

func TestExternalChangeOutsideWindowPassesThrough(t *testing.T) {
	c := newTestController(t, Interpolate())
	e := newEntity(IdentityTransform())
	step(c, e, moveBy(mgl64.Vec3{1, 0, 0}))

	// Teleport from gameplay code between fixed steps.
	e.Transform.Translation = mgl64.Vec3{100, 0, 0}
	assert.Equal(t, 1, c.DetectChanges(e))

	assert.False(t, e.Easing.Translation.Active())
	assert.True(t, e.Easing.Rotation.Active(), "untouched channels keep blending")
	assert.Equal(t, mgl64.Vec3{100, 0, 0}, c.Blend(e, 0.5, testStep).Translation)
	assert.Equal(t, uint64(1), c.Stats().Invalidations)

	// The next window starts from the new position with no stale history.
	step(c, e, moveBy(mgl64.Vec3{1, 0, 0}))
	start, end, ok := e.Easing.Translation.Pair()
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{100, 0, 0}, start)
	assert.Equal(t, mgl64.Vec3{101, 0, 0}, end)
	assert.Equal(t, uint64(1), c.Stats().Invalidations)
}

func TestWriteInsideWindowIsNotAChange(t *testing.T) {
	c := newTestController(t, Interpolate())
	e := newEntity(IdentityTransform())

	c.OpenWindow(e)
	e.Transform.Translation = mgl64.Vec3{50, 0, 0}
	c.CloseWindow(e, testStep)

	assert.Zero(t, c.DetectChanges(e))
	assert.Equal(t, mgl64.Vec3{25, 0, 0}, c.Blend(e, 0.5, testStep).Translation)
}

func TestRotationOnlyEntity(t *testing.T) {
	c := newTestController(t, Config{})
	e := newEntity(IdentityTransform())
	cfg := Interpolate(ChannelRotation)
	e.Config = &cfg

	for i := range 4 {
		step(c, e, func(tr *Transform) {
			tr.Translation = tr.Translation.Add(mgl64.Vec3{1, 0, 0})
			tr.Scale = tr.Scale.Mul(2)
			tr.Rotation = mgl64.QuatRotate(0.1, mgl64.Vec3{0, 0, 1}).Mul(tr.Rotation)
		})

		out := c.Blend(e, 0.5, testStep)
		assert.Equal(t, e.Transform.Translation, out.Translation, "window %d", i)
		assert.Equal(t, e.Transform.Scale, out.Scale, "window %d", i)
		assert.False(t, e.Easing.Translation.Active())
		assert.False(t, e.Easing.Scale.Active())
		assert.True(t, out.Rotation.OrientationEqualThreshold(
			mgl64.QuatRotate(0.1*float64(i)+0.05, mgl64.Vec3{0, 0, 1}), 1e-9))
	}
}

func TestSecondWindowReplacesFirst(t *testing.T) {
	c := newTestController(t, Interpolate(ChannelTranslation))
	e := newEntity(IdentityTransform())

	step(c, e, moveBy(mgl64.Vec3{1, 0, 0}))
	step(c, e, moveBy(mgl64.Vec3{1, 0, 0}))

	start, end, ok := e.Easing.Translation.Pair()
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, start)
	assert.Equal(t, mgl64.Vec3{2, 0, 0}, end)
	assert.Equal(t, mgl64.Vec3{1.5, 0, 0}, c.Blend(e, 0.5, testStep).Translation)
}

func TestHermiteTangents(t *testing.T) {
	t.Run("external velocity", func(t *testing.T) {
		c := newTestController(t, Interpolate(ChannelTranslation).WithBackend(BackendHermite))
		e := newEntity(IdentityTransform())
		vel := LinearVelocity{10, 0, 0}
		e.LinearVelocity = &vel

		step(c, e, func(tr *Transform) {
			tr.Translation = mgl64.Vec3{1, 0, 0}
			vel = LinearVelocity{0, 0, 0}
		})

		v0, v1, ok := e.Easing.Translation.Tangents()
		require.True(t, ok)
		assert.Equal(t, mgl64.Vec3{10, 0, 0}, v0)
		assert.Equal(t, mgl64.Vec3{0, 0, 0}, v1)

		// Decelerating to a stop covers more than half the distance by the midpoint.
		mid := c.Blend(e, 0.5, testStep).Translation
		assert.InDelta(t, 0.625, mid.X(), 1e-12)
	})

	t.Run("estimated velocity", func(t *testing.T) {
		c := newTestController(t, Interpolate(ChannelTranslation).WithBackend(BackendHermite))
		e := newEntity(IdentityTransform())

		step(c, e, moveBy(mgl64.Vec3{1, 0, 0}))
		v0, v1, ok := e.Easing.Translation.Tangents()
		require.True(t, ok)
		assert.True(t, v0.ApproxEqualThreshold(mgl64.Vec3{10, 0, 0}, 1e-9))
		assert.Equal(t, v0, v1)
		assert.InDelta(t, 0.5, c.Blend(e, 0.5, testStep).Translation.X(), 1e-12, "chord tangents blend linearly")

		step(c, e, moveBy(mgl64.Vec3{3, 0, 0}))
		v0, v1, ok = e.Easing.Translation.Tangents()
		require.True(t, ok)
		assert.True(t, v0.ApproxEqualThreshold(mgl64.Vec3{10, 0, 0}, 1e-9), "start tangent comes from the previous window")
		assert.True(t, v1.ApproxEqualThreshold(mgl64.Vec3{30, 0, 0}, 1e-9))
	})
}

func TestDisabledChannelShortCircuits(t *testing.T) {
	c := newTestController(t, Interpolate())
	e := newEntity(IdentityTransform())
	step(c, e, moveBy(mgl64.Vec3{1, 0, 0}))
	require.True(t, e.Easing.Translation.Active())

	cfg := Disabled()
	e.Config = &cfg
	step(c, e, moveBy(mgl64.Vec3{1, 0, 0}))

	for _, ch := range Channels {
		assert.False(t, e.Easing.Active(ch))
	}
	_, observed := e.Easing.Translation.LastObserved()
	assert.False(t, observed)

	e.Transform.Translation = mgl64.Vec3{-9, 0, 0}
	assert.Zero(t, c.DetectChanges(e))
	assert.Equal(t, *e.Transform, c.Blend(e, 0.5, testStep))
}

func TestWantsAndStats(t *testing.T) {
	c := newTestController(t, Config{})
	assert.False(t, c.Wants(nil))

	cfg := Interpolate(ChannelScale)
	assert.True(t, c.Wants(&cfg))

	c = newTestController(t, Extrapolate(ChannelTranslation))
	assert.True(t, c.Wants(nil))
	assert.Equal(t, Extrapolate(ChannelTranslation), c.Defaults())

	tr := IdentityTransform()
	e := Entity{ID: 1, Transform: &tr, Easing: &Easing{}}
	for range 3 {
		step(c, e, nil)
	}
	c.CountBlended(2)
	assert.Equal(t, Stats{Windows: 3, Blended: 2}, c.Stats())

	disabled := Disabled()
	e.Config = &disabled
	assert.False(t, c.CloseWindow(e, testStep))
	assert.Equal(t, uint64(3), c.Stats().Windows)
}

func TestSetDefaultsTakesEffectNextWindow(t *testing.T) {
	c := newTestController(t, Disabled())
	e := newEntity(IdentityTransform())

	step(c, e, moveBy(mgl64.Vec3{1, 0, 0}))
	assert.False(t, e.Easing.Translation.Active())
	assert.Equal(t, *e.Transform, c.Blend(e, 0.5, testStep))

	c.SetDefaults(Interpolate(ChannelTranslation))
	assert.Zero(t, c.DetectChanges(e), "enabling a channel is not a teleport")

	step(c, e, moveBy(mgl64.Vec3{1, 0, 0}))
	assert.Equal(t, mgl64.Vec3{1.5, 0, 0}, c.Blend(e, 0.5, testStep).Translation)
	assert.Equal(t, uint64(1), c.Stats().Windows)
}
