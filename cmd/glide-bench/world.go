package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/glide/easing"
	"github.com/plus3/glide/ecs"
	"github.com/plus3/glide/internal/scenario"
	"github.com/rs/zerolog"
)

// world is a scenario spawned into a scheduler with easing installed.
type world struct {
	storage    *ecs.Storage
	scheduler  *ecs.Scheduler
	controller *easing.Controller
	teleports  *TeleportSystem
}

func buildWorld(s *scenario.Scenario, defaults easing.Config, workers int, logger zerolog.Logger) (*world, error) {
	registry := ecs.NewComponentRegistry()
	plugin := &easing.Plugin{
		Defaults: defaults,
		Workers:  workers,
		Logger:   &logger,
	}
	plugin.Register(registry)
	ecs.RegisterComponent[benchGroup](registry)
	ecs.RegisterComponent[Growth](registry)

	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	scheduler.SetTimestep(s.Timestep)

	teleports := &TeleportSystem{}
	scheduler.Add(ecs.FixedUpdate, &IntegrateSystem{})
	scheduler.Add(ecs.Update, teleports)

	controller, err := plugin.Build(scheduler)
	if err != nil {
		return nil, err
	}

	for i := range s.Groups {
		if err := spawnGroup(storage, i, &s.Groups[i]); err != nil {
			return nil, err
		}
	}

	return &world{
		storage:    storage,
		scheduler:  scheduler,
		controller: controller,
		teleports:  teleports,
	}, nil
}

func spawnGroup(storage *ecs.Storage, index int, g *scenario.Group) error {
	cfg, err := g.Config()
	if err != nil {
		return fmt.Errorf("group %q: %w", g.Name, err)
	}

	for n := range g.Count {
		// Spread the group along a line so entities do not share a position.
		start := easing.FromTranslation(mgl64.Vec3{float64(n), float64(index) * 10, 0})
		components := []any{
			start,
			benchGroup{Index: index, TeleportEvery: g.TeleportEvery},
		}
		if cfg != (easing.Config{}) {
			components = append(components, cfg)
		}
		if g.Velocity != ([3]float64{}) {
			components = append(components, easing.LinearVelocity(g.Velocity))
		}
		if g.Spin != ([3]float64{}) {
			components = append(components, easing.AngularVelocity(g.Spin))
		}
		if g.Growth != 0 {
			components = append(components, Growth{Rate: g.Growth})
		}
		storage.Spawn(components...)
	}
	return nil
}
