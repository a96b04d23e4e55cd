package main

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/glide/easing"
	"github.com/plus3/glide/ecs"
)

// benchGroup records which scenario group spawned an entity.
type benchGroup struct {
	Index         int
	TeleportEvery int
}

// Growth scales an entity by Rate per second.
type Growth struct {
	Rate float64
}

// IntegrateSystem moves, spins and grows bodies once per fixed step.
type IntegrateSystem struct {
	Bodies ecs.Query[struct {
		*easing.Transform
		Linear  *easing.LinearVelocity  `ecs:"optional"`
		Angular *easing.AngularVelocity `ecs:"optional"`
		Growth  *Growth                 `ecs:"optional"`
	}]
}

func (s *IntegrateSystem) Execute(frame *ecs.UpdateFrame) {
	dt := frame.DeltaTime
	for body := range s.Bodies.Values() {
		if body.Linear != nil {
			body.Translation = body.Translation.Add(mgl64.Vec3(*body.Linear).Mul(dt))
		}
		if body.Angular != nil {
			w := mgl64.Vec3(*body.Angular)
			if speed := w.Len(); speed > 0 {
				spin := mgl64.QuatRotate(speed*dt, w.Mul(1/speed))
				body.Rotation = spin.Mul(body.Rotation).Normalize()
			}
		}
		if body.Growth != nil {
			body.Scale = body.Scale.Mul(1 + body.Growth.Rate*dt)
		}
	}
}

// TeleportSystem mirrors the position of entities in blinking groups from the Update
// schedule, which the easing systems see as a write outside the fixed step.
type TeleportSystem struct {
	Bodies ecs.Query[struct {
		*easing.Transform
		*benchGroup
	}]
	frames    int
	Teleports int
}

func (s *TeleportSystem) Execute(frame *ecs.UpdateFrame) {
	s.frames++
	for body := range s.Bodies.Values() {
		if body.TeleportEvery == 0 || s.frames%body.TeleportEvery != 0 {
			continue
		}
		body.Translation = body.Translation.Mul(-1)
		s.Teleports++
	}
}
