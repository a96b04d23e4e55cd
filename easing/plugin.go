package easing

import (
	"fmt"

	"github.com/plus3/glide/ecs"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// Plugin installs transform easing into an ecs.Scheduler.
type Plugin struct {
	// Defaults applies to every channel an entity leaves at ModeDefault. The zero
	// value disables easing unless entities carry their own Config.
	Defaults Config
	// Workers is the number of goroutines EaseSystem may use. Zero or one blends on
	// the scheduler goroutine.
	Workers int
	// Logger receives debug events. Nil disables logging.
	Logger *zerolog.Logger
	// Meter creates the easing counters. Nil uses the global otel meter provider.
	Meter metric.Meter
}

// Register adds the easing component types to registry.
func (p *Plugin) Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[DisplayTransform](registry)
	ecs.RegisterComponent[Easing](registry)
	ecs.RegisterComponent[Config](registry)
	ecs.RegisterComponent[LinearVelocity](registry)
	ecs.RegisterComponent[AngularVelocity](registry)
}

// Build adds the easing systems to scheduler and returns the Controller they share.
// Simulation systems that move transforms belong in ecs.FixedPreUpdate,
// ecs.FixedUpdate or ecs.FixedPostUpdate. Writes from any other schedule are treated
// as teleports.
func (p *Plugin) Build(scheduler *ecs.Scheduler) (*Controller, error) {
	logger := zerolog.Nop()
	if p.Logger != nil {
		logger = *p.Logger
	}

	controller, err := NewController(p.Defaults, logger, p.Meter)
	if err != nil {
		return nil, fmt.Errorf("building easing controller: %w", err)
	}

	scheduler.Add(ecs.First, &AttachSystem{controller: controller})
	scheduler.Add(ecs.FixedFirst, &OpenWindowSystem{controller: controller})
	scheduler.Add(ecs.FixedLast, &CloseWindowSystem{controller: controller})
	scheduler.Add(ecs.PostUpdate,
		&DetectChangesSystem{controller: controller},
		&EaseSystem{controller: controller, workers: p.Workers},
	)

	logger.Debug().
		Stringer("translation", p.Defaults.Translation.Mode).
		Stringer("rotation", p.Defaults.Rotation.Mode).
		Stringer("scale", p.Defaults.Scale.Mode).
		Int("workers", p.Workers).
		Msg("easing plugin installed")

	return controller, nil
}
