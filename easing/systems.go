package easing

import (
	"github.com/plus3/glide/ecs"
	"golang.org/x/sync/errgroup"
)

type easedEntity struct {
	*Transform
	*Easing
	Config          *Config          `ecs:"optional"`
	LinearVelocity  *LinearVelocity  `ecs:"optional"`
	AngularVelocity *AngularVelocity `ecs:"optional"`
}

func (item easedEntity) entity(id ecs.EntityId) Entity {
	return Entity{
		ID:              uint64(id),
		Transform:       item.Transform,
		Easing:          item.Easing,
		Config:          item.Config,
		LinearVelocity:  item.LinearVelocity,
		AngularVelocity: item.AngularVelocity,
	}
}

// AttachSystem gives every Transform entity that needs easing an Easing and a
// DisplayTransform component. Runs in ecs.First.
type AttachSystem struct {
	Candidates ecs.Query[struct {
		*Transform
		Easing  *Easing           `ecs:"optional"`
		Display *DisplayTransform `ecs:"optional"`
		Config  *Config           `ecs:"optional"`
	}]
	controller *Controller
}

func (s *AttachSystem) Execute(frame *ecs.UpdateFrame) {
	for id, item := range s.Candidates.Iter() {
		if item.Easing != nil && item.Display != nil {
			continue
		}
		if !s.controller.Wants(item.Config) {
			continue
		}
		if item.Easing == nil {
			frame.Commands.AddComponent(id, Easing{})
		}
		if item.Display == nil {
			frame.Commands.AddComponent(id, DisplayTransform(*item.Transform))
		}
	}
}

// OpenWindowSystem checks for outside writes, then resets and captures the start
// snapshots. Runs first in ecs.FixedFirst.
type OpenWindowSystem struct {
	Entities   ecs.Query[easedEntity]
	controller *Controller
}

func (s *OpenWindowSystem) Execute(frame *ecs.UpdateFrame) {
	for id, item := range s.Entities.Iter() {
		e := item.entity(id)
		s.controller.DetectChanges(e)
		s.controller.OpenWindow(e)
	}
}

// CloseWindowSystem captures or predicts the end snapshots. Runs in ecs.FixedLast.
type CloseWindowSystem struct {
	Entities   ecs.Query[easedEntity]
	controller *Controller
}

func (s *CloseWindowSystem) Execute(frame *ecs.UpdateFrame) {
	for id, item := range s.Entities.Iter() {
		s.controller.CloseWindow(item.entity(id), frame.DeltaTime)
	}
}

// DetectChangesSystem invalidates channels written outside the fixed step since the
// last capture. Runs in ecs.PostUpdate before EaseSystem.
type DetectChangesSystem struct {
	Entities   ecs.Query[easedEntity]
	controller *Controller
}

func (s *DetectChangesSystem) Execute(frame *ecs.UpdateFrame) {
	for id, item := range s.Entities.Iter() {
		s.controller.DetectChanges(item.entity(id))
	}
}

type displayedEntity struct {
	*Transform
	*DisplayTransform
	Easing          *Easing          `ecs:"optional"`
	Config          *Config          `ecs:"optional"`
	LinearVelocity  *LinearVelocity  `ecs:"optional"`
	AngularVelocity *AngularVelocity `ecs:"optional"`
}

// parallelThreshold is the entity count below which EaseSystem stays on one goroutine.
const parallelThreshold = 1024

// EaseSystem writes the DisplayTransform of every entity. Entities without easing
// state get a copy of their Transform. Runs last in ecs.PostUpdate.
type EaseSystem struct {
	Entities   ecs.Query[displayedEntity]
	controller *Controller
	workers    int
}

func (s *EaseSystem) Execute(frame *ecs.UpdateFrame) {
	overstep := frame.Time.OverstepFraction()
	dt := frame.Time.DeltaSeconds()
	ids, items := s.Entities.Items()

	if s.workers <= 1 || len(items) < parallelThreshold {
		s.controller.CountBlended(s.blendRange(ids, items, overstep, dt))
		return
	}

	chunk := (len(items) + s.workers - 1) / s.workers
	counts := make([]int, s.workers)

	var g errgroup.Group
	g.SetLimit(s.workers)
	for w := range s.workers {
		lo := w * chunk
		if lo >= len(items) {
			break
		}
		hi := min(lo+chunk, len(items))
		g.Go(func() error {
			counts[w] = s.blendRange(ids[lo:hi], items[lo:hi], overstep, dt)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, n := range counts {
		total += n
	}
	s.controller.CountBlended(total)
}

// blendRange writes display transforms and returns how many entities had easing
// state. It only touches the components of its own entities.
func (s *EaseSystem) blendRange(ids []ecs.EntityId, items []displayedEntity, overstep, dt float64) int {
	n := 0
	for i := range items {
		item := &items[i]
		if item.Easing == nil {
			*item.DisplayTransform = DisplayTransform(*item.Transform)
			continue
		}
		e := Entity{
			ID:              uint64(ids[i]),
			Transform:       item.Transform,
			Easing:          item.Easing,
			Config:          item.Config,
			LinearVelocity:  item.LinearVelocity,
			AngularVelocity: item.AngularVelocity,
		}
		*item.DisplayTransform = DisplayTransform(s.controller.Blend(e, overstep, dt))
		n++
	}
	return n
}
