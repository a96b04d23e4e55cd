package easing

import "github.com/go-gl/mathgl/mgl64"

// LinearVelocity is an optional component giving the translation velocity in units
// per second. When present it replaces the velocity estimated from snapshots.
type LinearVelocity mgl64.Vec3

// AngularVelocity is an optional component giving the rotation velocity as a scaled
// axis in radians per second, in world space.
type AngularVelocity mgl64.Vec3

// channelOps adapts the snapshot logic to the value type of a channel.
type channelOps[V comparable] interface {
	// velocity estimates the rate of change taking from to to over dt seconds.
	velocity(from, to V, dt float64) mgl64.Vec3
	// advance predicts the value dt seconds after from at the given velocity.
	advance(from V, vel mgl64.Vec3, dt float64) V
}

type vectorOps struct{}

func (vectorOps) velocity(from, to mgl64.Vec3, dt float64) mgl64.Vec3 {
	return to.Sub(from).Mul(1 / dt)
}

func (vectorOps) advance(from mgl64.Vec3, vel mgl64.Vec3, dt float64) mgl64.Vec3 {
	return from.Add(vel.Mul(dt))
}

type rotationOps struct{}

func (rotationOps) velocity(from, to mgl64.Quat, dt float64) mgl64.Vec3 {
	return quatToScaledAxis(shortestArc(from, to)).Mul(1 / dt)
}

func (rotationOps) advance(from mgl64.Quat, vel mgl64.Vec3, dt float64) mgl64.Quat {
	return quatFromScaledAxis(vel.Mul(dt)).Mul(from).Normalize()
}

func vecPtr[T ~[3]float64](v *T) *mgl64.Vec3 {
	if v == nil {
		return nil
	}
	out := mgl64.Vec3(*v)
	return &out
}
