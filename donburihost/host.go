// Package donburihost runs transform easing over a donburi world, for games that use
// donburi instead of the ecs package as their entity store.
package donburihost

import (
	"time"

	"github.com/plus3/glide/easing"
	"github.com/plus3/glide/ecs"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// SimulateFunc advances the simulation of world by one fixed step of dt seconds.
type SimulateFunc func(world donburi.World, dt float64)

// Host owns the fixed-step clock of a donburi world and runs the easing phases
// around the caller's simulation.
type Host struct {
	world      donburi.World
	controller *easing.Controller
	clock      ecs.FixedTime
	logger     zerolog.Logger

	candidates *donburi.Query
	eased      *donburi.Query
	displayed  *donburi.Query
}

// New creates a Host stepping world every timestep.
func New(world donburi.World, controller *easing.Controller, timestep time.Duration, logger zerolog.Logger) *Host {
	return &Host{
		world:      world,
		controller: controller,
		clock:      ecs.NewFixedTime(timestep),
		logger:     logger,
		candidates: donburi.NewQuery(filter.And(
			filter.Contains(Transform),
			filter.Not(filter.Contains(Easing)),
		)),
		eased:     donburi.NewQuery(filter.Contains(Transform, Easing)),
		displayed: donburi.NewQuery(filter.Contains(Transform, Display)),
	}
}

// World returns the donburi world the host drives.
func (h *Host) World() donburi.World {
	return h.world
}

// Clock returns the fixed-step clock. Hosts may adjust Timestep and MaxDelta between
// frames.
func (h *Host) Clock() *ecs.FixedTime {
	return &h.clock
}

// Spawn creates an entity at tr with easing state attached. A nil cfg uses the
// controller defaults.
func (h *Host) Spawn(tr easing.Transform, cfg *easing.Config) donburi.Entity {
	components := []donburi.IComponentType{Transform, Easing, Display}
	if cfg != nil {
		components = append(components, Config)
	}

	entity := h.world.Create(components...)
	entry := h.world.Entry(entity)
	Transform.SetValue(entry, tr)
	Display.SetValue(entry, easing.DisplayTransform(tr))
	if cfg != nil {
		Config.SetValue(entry, *cfg)
	}
	return entity
}

// Frame advances real time by dt. It runs simulate once per whole timestep with the
// easing windows around it, then writes Display for every entity that has one.
// Returns the number of fixed steps run.
func (h *Host) Frame(dt time.Duration, simulate SimulateFunc) int {
	h.attach()

	h.clock.Accumulate(dt)
	step := h.clock.DeltaSeconds()

	steps := 0
	for h.clock.Expend() {
		h.eased.Each(h.world, func(entry *donburi.Entry) {
			e := entityOf(entry)
			h.controller.DetectChanges(e)
			h.controller.OpenWindow(e)
		})

		if simulate != nil {
			simulate(h.world, step)
		}

		h.eased.Each(h.world, func(entry *donburi.Entry) {
			h.controller.CloseWindow(entityOf(entry), step)
		})
		steps++
	}

	overstep := h.clock.OverstepFraction()
	blended := 0
	h.displayed.Each(h.world, func(entry *donburi.Entry) {
		display := Display.Get(entry)
		if !entry.HasComponent(Easing) {
			*display = easing.DisplayTransform(*Transform.Get(entry))
			return
		}

		e := entityOf(entry)
		h.controller.DetectChanges(e)
		*display = easing.DisplayTransform(h.controller.Blend(e, overstep, step))
		blended++
	})
	h.controller.CountBlended(blended)

	return steps
}

// attach adds Easing and Display to entities whose configuration asks for easing.
// Components are added after the query finishes so the archetypes it walks stay put.
func (h *Host) attach() {
	var pending []donburi.Entity
	h.candidates.Each(h.world, func(entry *donburi.Entry) {
		var cfg *easing.Config
		if entry.HasComponent(Config) {
			cfg = Config.Get(entry)
		}
		if h.controller.Wants(cfg) {
			pending = append(pending, entry.Entity())
		}
	})

	for _, entity := range pending {
		entry := h.world.Entry(entity)
		donburi.Add(entry, Easing, &easing.Easing{})
		if !entry.HasComponent(Display) {
			display := easing.DisplayTransform(*Transform.Get(entry))
			donburi.Add(entry, Display, &display)
		}
	}

	if len(pending) > 0 {
		h.logger.Debug().Int("entities", len(pending)).Msg("attached easing state")
	}
}
