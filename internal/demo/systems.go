package demo

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/plus3/glide/easing"
	"github.com/plus3/glide/ecs"
	"github.com/rs/zerolog"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

var zAxis = mgl64.Vec3{0, 0, 1}

// PhysicsSystem owns the chipmunk space. It steps the space once per fixed step and
// copies every body's pose and velocities into its components.
type PhysicsSystem struct {
	Bodies ecs.Query[struct {
		*Body
		*easing.Transform
		Linear  *easing.LinearVelocity  `ecs:"optional"`
		Angular *easing.AngularVelocity `ecs:"optional"`
	}]

	space *cp.Space
}

func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &PhysicsSystem{space: space}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	return ps.space
}

// AddWalls closes the box [0,width]x[0,height] with static segments.
func (ps *PhysicsSystem) AddWalls(width, height float64) {
	corners := []cp.Vector{{X: 0, Y: 0}, {X: width, Y: 0}, {X: width, Y: height}, {X: 0, Y: height}}
	for i := range corners {
		shape := cp.NewSegment(ps.space.StaticBody, corners[i], corners[(i+1)%len(corners)], 2)
		shape.SetElasticity(0.9)
		shape.SetFriction(0.4)
		ps.space.AddShape(shape)
	}
}

// AddBall creates a dynamic circle body and returns it.
func (ps *PhysicsSystem) AddBall(pos, vel mgl64.Vec3, radius, mass float64) *cp.Body {
	body := ps.space.AddBody(cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{})))
	body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Y()})
	body.SetVelocityVector(cp.Vector{X: vel.X(), Y: vel.Y()})

	shape := ps.space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
	shape.SetElasticity(0.9)
	shape.SetFriction(0.4)
	return body
}

func (ps *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	ps.space.Step(frame.DeltaTime)

	for item := range ps.Bodies.Values() {
		pos := item.Body.Body.Position()
		item.Transform.Translation = mgl64.Vec3{pos.X, pos.Y, 0}
		item.Transform.Rotation = mgl64.QuatRotate(item.Body.Body.Angle(), zAxis)

		if item.Linear != nil {
			vel := item.Body.Body.Velocity()
			*item.Linear = easing.LinearVelocity{vel.X, vel.Y, 0}
		}
		if item.Angular != nil {
			*item.Angular = easing.AngularVelocity(zAxis.Mul(item.Body.Body.AngularVelocity()))
		}
	}
}

// NewMover returns a mover taking period seconds for each leg of its trip.
func NewMover(origin, span mgl64.Vec3, period, spin, grow float64) Mover {
	return Mover{
		Origin: origin,
		Span:   span,
		Spin:   spin,
		Grow:   grow,
		out:    gween.New(0, 1, float32(period), ease.InOutQuad),
		back:   gween.New(1, 0, float32(period), ease.InOutQuad),
	}
}

// advance moves the tween dt seconds along and returns the trip progress in [0,1].
func (m *Mover) advance(dt float64) float64 {
	tween := m.out
	if m.returning {
		tween = m.back
	}
	progress, finished := tween.Update(float32(dt))
	if finished {
		tween.Reset()
		m.returning = !m.returning
	}
	return float64(progress)
}

// MoverSystem advances every Mover by one fixed step.
type MoverSystem struct {
	Movers ecs.Query[struct {
		*Mover
		*easing.Transform
	}]
}

func (s *MoverSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Movers.Values() {
		p := item.Mover.advance(frame.DeltaTime)
		item.Transform.Translation = item.Mover.Origin.Add(item.Mover.Span.Mul(p))
		item.Transform.Scale = mgl64.Vec3{1, 1, 1}.Mul(1 + item.Mover.Grow*p)
		if item.Mover.Spin != 0 {
			spin := mgl64.QuatRotate(item.Mover.Spin*frame.DeltaTime, zAxis)
			item.Transform.Rotation = spin.Mul(item.Transform.Rotation).Normalize()
		}
	}
}

// modeCycle is the order CycleMode walks through.
var modeCycle = []easing.Mode{easing.ModeInterpolate, easing.ModeExtrapolate, easing.ModeDisabled}

func nextMode(m easing.Mode) easing.Mode {
	for i, mode := range modeCycle {
		if mode == m {
			return modeCycle[(i+1)%len(modeCycle)]
		}
	}
	return modeCycle[0]
}

// ActionSystem applies the requests in the Actions singleton. It runs in ecs.Update,
// so teleports land outside the fixed step and eased entities snap to them.
type ActionSystem struct {
	Actions ecs.Singleton[Actions]
	Bodies  ecs.Query[struct {
		*Body
		*easing.Transform
	}]
	Movers ecs.Query[struct {
		*Mover
		*easing.Transform
	}]

	controller *easing.Controller
	width      float64
	logger     zerolog.Logger
}

func (s *ActionSystem) Execute(frame *ecs.UpdateFrame) {
	actions := s.Actions.Get()
	if actions == nil {
		return
	}

	if actions.Teleport {
		n := 0
		for item := range s.Bodies.Values() {
			pos := item.Body.Body.Position()
			mirrored := cp.Vector{X: s.width - pos.X, Y: pos.Y}
			item.Body.Body.SetPosition(mirrored)
			item.Transform.Translation = mgl64.Vec3{mirrored.X, mirrored.Y, 0}
			n++
		}
		for item := range s.Movers.Values() {
			item.Transform.Translation[1] += 40
			item.Mover.Origin[1] += 40
			n++
		}
		s.logger.Info().Int("entities", n).Msg("teleported")
	}

	if actions.CycleMode {
		defaults := s.controller.Defaults()
		mode := nextMode(defaults.Translation.Mode)
		s.controller.SetDefaults(defaults.WithMode(mode))
		s.logger.Info().Stringer("mode", mode).Msg("easing mode changed")
	}

	*actions = Actions{}
}
