package donburihost

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/glide/easing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"go.opentelemetry.io/otel/metric/noop"
)

const testTimestep = 100 * time.Millisecond

func move(world donburi.World, dt float64) {
	donburi.NewQuery(filter.Contains(Transform, LinearVelocity)).Each(world, func(entry *donburi.Entry) {
		tr := Transform.Get(entry)
		v := mgl64.Vec3(*LinearVelocity.Get(entry))
		tr.Translation = tr.Translation.Add(v.Mul(dt))
	})
}

func newTestHost(t *testing.T, defaults easing.Config) *Host {
	t.Helper()
	controller, err := easing.NewController(defaults, zerolog.Nop(), noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return New(donburi.NewWorld(), controller, testTimestep, logger)
}

func displayOf(h *Host, entity donburi.Entity) easing.Transform {
	return Display.Get(h.World().Entry(entity)).Transform()
}

func TestHostInterpolatesSpawnedEntity(t *testing.T) {
	h := newTestHost(t, easing.Interpolate())
	entity := h.Spawn(easing.IdentityTransform(), nil)
	donburi.Add(h.World().Entry(entity), LinearVelocity, &easing.LinearVelocity{10, 0, 0})

	steps := h.Frame(150*time.Millisecond, move)
	assert.Equal(t, 1, steps)

	tr := Transform.Get(h.World().Entry(entity))
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, tr.Translation)
	assert.InDelta(t, 0.5, displayOf(h, entity).Translation.X(), 1e-9)

	steps = h.Frame(150*time.Millisecond, move)
	assert.Equal(t, 2, steps)
	assert.InDelta(t, 2, displayOf(h, entity).Translation.X(), 1e-9)
	assert.Equal(t, uint64(3), h.Clock().Steps())
}

func TestHostAttachesByConfig(t *testing.T) {
	h := newTestHost(t, easing.Config{})
	world := h.World()

	plain := world.Create(Transform)
	Transform.SetValue(world.Entry(plain), easing.IdentityTransform())

	opted := world.Create(Transform, Config, LinearVelocity)
	entry := world.Entry(opted)
	Transform.SetValue(entry, easing.IdentityTransform())
	Config.SetValue(entry, easing.Interpolate(easing.ChannelTranslation))
	LinearVelocity.SetValue(entry, easing.LinearVelocity{0, 4, 0})

	h.Frame(150*time.Millisecond, move)

	assert.False(t, world.Entry(plain).HasComponent(Easing))
	assert.False(t, world.Entry(plain).HasComponent(Display))
	require.True(t, world.Entry(opted).HasComponent(Easing))
	assert.InDelta(t, 0.2, displayOf(h, opted).Translation.Y(), 1e-9)
}

func TestHostCopiesEntitiesWithoutEasing(t *testing.T) {
	h := newTestHost(t, easing.Config{})
	world := h.World()

	entity := world.Create(Transform, Display)
	Transform.SetValue(world.Entry(entity), easing.FromTranslation(mgl64.Vec3{3, 2, 1}))

	h.Frame(10*time.Millisecond, nil)
	assert.Equal(t, easing.FromTranslation(mgl64.Vec3{3, 2, 1}), displayOf(h, entity))
}

func TestHostTeleportBetweenFrames(t *testing.T) {
	h := newTestHost(t, easing.Interpolate())
	entity := h.Spawn(easing.IdentityTransform(), nil)
	donburi.Add(h.World().Entry(entity), LinearVelocity, &easing.LinearVelocity{10, 0, 0})
	h.Frame(150*time.Millisecond, move)

	Transform.Get(h.World().Entry(entity)).Translation = mgl64.Vec3{0, 30, 0}
	h.Frame(10*time.Millisecond, move)
	assert.Equal(t, mgl64.Vec3{0, 30, 0}, displayOf(h, entity).Translation)

	h.Frame(90*time.Millisecond, move)
	got := displayOf(h, entity).Translation
	assert.InDelta(t, 0.5, got.X(), 1e-9)
	assert.InDelta(t, 30, got.Y(), 1e-9)
}

func TestHostExtrapolatesFromVelocity(t *testing.T) {
	h := newTestHost(t, easing.Config{})
	cfg := easing.Extrapolate(easing.ChannelRotation)
	entity := h.Spawn(easing.IdentityTransform(), &cfg)
	donburi.Add(h.World().Entry(entity), AngularVelocity, &easing.AngularVelocity{0, 0, 1})

	h.Frame(150*time.Millisecond, nil)

	want := mgl64.QuatRotate(0.05, mgl64.Vec3{0, 0, 1})
	assert.True(t, displayOf(h, entity).Rotation.OrientationEqualThreshold(want, 1e-9))
	assert.Equal(t, mgl64.Vec3{}, displayOf(h, entity).Translation)
}
