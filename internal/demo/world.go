package demo

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/glide/easing"
	"github.com/plus3/glide/ecs"
	"github.com/plus3/glide/internal/config"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

const gravity = 400

var (
	bodyColor      = color.RGBA{R: 120, G: 190, B: 255, A: 255}
	moverColor     = color.RGBA{R: 255, G: 200, B: 120, A: 255}
	referenceColor = color.RGBA{R: 255, G: 110, B: 110, A: 255}
)

// bodyConfig eases bodies along Hermite curves using the physics velocities; the
// mode follows the controller defaults.
var bodyConfig = easing.Config{}.
	WithBackend(easing.BackendHermite, easing.ChannelTranslation, easing.ChannelRotation)

// World is the demo simulation wired into a scheduler.
type World struct {
	Storage    *ecs.Storage
	Scheduler  *ecs.Scheduler
	Controller *easing.Controller
	Physics    *PhysicsSystem

	actions *ecs.Singleton[Actions]
	logger  zerolog.Logger
}

// Options tune Build beyond the shared configuration.
type Options struct {
	Seed  uint64
	Meter metric.Meter
	// Register adds extra component types, such as debug UI components, before the
	// storage is created.
	Register func(*ecs.ComponentRegistry)
}

// Build creates the storage, installs easing and spawns the demo entities.
func Build(cfg config.Config, logger zerolog.Logger, opts Options) (*World, error) {
	defaults, err := cfg.Easing.Defaults()
	if err != nil {
		return nil, err
	}

	registry := ecs.NewComponentRegistry()
	plugin := &easing.Plugin{
		Defaults: defaults,
		Workers:  cfg.Workers,
		Logger:   &logger,
		Meter:    opts.Meter,
	}
	plugin.Register(registry)
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Mover](registry)
	ecs.RegisterComponent[Reference](registry)
	ecs.RegisterComponent[Actions](registry)
	if opts.Register != nil {
		opts.Register(registry)
	}

	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)

	controller, err := plugin.Build(scheduler)
	if err != nil {
		return nil, fmt.Errorf("installing easing: %w", err)
	}

	width, height := float64(cfg.Demo.Width), float64(cfg.Demo.Height)
	physics := NewPhysicsSystem(gravity)
	physics.AddWalls(width, height)

	scheduler.Add(ecs.FixedUpdate, physics, &MoverSystem{})
	scheduler.Add(ecs.Update, &ActionSystem{controller: controller, width: width, logger: logger})

	w := &World{
		Storage:    storage,
		Scheduler:  scheduler,
		Controller: controller,
		Physics:    physics,
		actions:    ecs.NewSingleton[Actions](storage),
		logger:     logger,
	}
	if err := w.Apply(cfg); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	w.spawnBodies(rng, cfg.Demo.Bodies, width, height)
	w.spawnMovers(cfg.Demo.Movers, width)

	logger.Info().
		Int("bodies", cfg.Demo.Bodies).
		Int("movers", cfg.Demo.Movers).
		Dur("timestep", cfg.Timestep).
		Msg("demo world built")

	return w, nil
}

// Apply updates the fixed clock and the easing defaults from cfg. Call it between
// frames.
func (w *World) Apply(cfg config.Config) error {
	defaults, err := cfg.Easing.Defaults()
	if err != nil {
		return err
	}
	clock := cfg.Clock()
	w.Scheduler.SetTimestep(clock.Timestep)
	w.Scheduler.Time().MaxDelta = clock.MaxDelta
	w.Controller.SetDefaults(defaults)
	return nil
}

// Teleport mirrors every body across the box and shifts every mover down at the
// start of the next frame.
func (w *World) Teleport() {
	w.actions.Get().Teleport = true
}

// CycleMode switches the default easing mode between interpolate, extrapolate and
// disabled at the start of the next frame.
func (w *World) CycleMode() {
	w.actions.Get().CycleMode = true
}

func (w *World) spawnBodies(rng *rand.Rand, n int, width, height float64) {
	for range n {
		radius := 8 + rng.Float64()*12
		pos := mgl64.Vec3{
			radius + rng.Float64()*(width-2*radius),
			radius + rng.Float64()*(height/2),
			0,
		}
		vel := mgl64.Vec3{rng.Float64()*400 - 200, rng.Float64()*200 - 100, 0}
		body := w.Physics.AddBall(pos, vel, radius, radius*radius/50)

		w.Storage.Spawn(
			easing.FromTranslation(pos),
			bodyConfig,
			easing.LinearVelocity(vel),
			easing.AngularVelocity{},
			Body{Body: body},
			Sprite{Radius: radius, Color: bodyColor},
		)
	}
}

func (w *World) spawnMovers(n int, width float64) {
	if n == 0 {
		return
	}
	spacing := 40.0
	span := mgl64.Vec3{width * 0.6, 0, 0}
	for i := range n {
		origin := mgl64.Vec3{width * 0.2, 40 + float64(i)*spacing, 0}
		period := 1.5 + 0.25*float64(i)
		w.Storage.Spawn(
			easing.FromTranslation(origin),
			NewMover(origin, span, period, 2, 0.5),
			Sprite{Radius: 12, Color: moverColor},
		)
	}

	// The reference repeats the first mover one row below the last, unsmoothed.
	origin := mgl64.Vec3{width * 0.2, 40 + float64(n)*spacing, 0}
	w.Storage.Spawn(
		easing.FromTranslation(origin),
		easing.DisplayTransform(easing.FromTranslation(origin)),
		easing.Disabled(),
		NewMover(origin, span, 1.5, 2, 0.5),
		Reference{},
		Sprite{Radius: 12, Color: referenceColor},
	)
}
