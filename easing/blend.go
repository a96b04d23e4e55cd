package easing

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Blender combines two snapshots at progress t. Implementations clamp t to [0, 1] and
// return start at 0 and end at 1.
type Blender[V any] interface {
	Blend(start, end V, t float64) V
}

func clamp01(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Lerp blends two vectors linearly. The weighted form keeps both endpoints exact.
func Lerp(start, end mgl64.Vec3, t float64) mgl64.Vec3 {
	t = clamp01(t)
	s := 1 - t
	return mgl64.Vec3{
		start[0]*s + end[0]*t,
		start[1]*s + end[1]*t,
		start[2]*s + end[2]*t,
	}
}

// Slerp blends two rotations along the shortest arc and returns a unit quaternion.
// Rotations exactly half a turn apart have no unique shortest arc; the direction
// picked then depends on the sign of the inputs.
func Slerp(start, end mgl64.Quat, t float64) mgl64.Quat {
	t = clamp01(t)
	start, end = start.Normalize(), end.Normalize()
	if start.Dot(end) < 0 {
		end = end.Scale(-1)
	}
	// QuatSlerp falls back to a normalized lerp when the inputs are nearly equal,
	// which keeps the sin(theta) denominator away from zero.
	return mgl64.QuatSlerp(start, end, t).Normalize()
}

// LinearBlend is the Lerp backend for translation and scale.
type LinearBlend struct{}

func (LinearBlend) Blend(start, end mgl64.Vec3, t float64) mgl64.Vec3 {
	return Lerp(start, end, t)
}

// SphericalBlend is the Slerp backend for rotation.
type SphericalBlend struct{}

func (SphericalBlend) Blend(start, end mgl64.Quat, t float64) mgl64.Quat {
	return Slerp(start, end, t)
}

// vectorBlender picks the backend for a vector channel. Hermite needs tangents at
// both snapshots and falls back to linear without them.
func vectorBlender(s *EasingState[mgl64.Vec3], backend Backend, dt float64) Blender[mgl64.Vec3] {
	if backend == BackendHermite {
		if v0, v1, ok := s.Tangents(); ok {
			return HermiteBlend{StartVelocity: v0, EndVelocity: v1, Delta: dt}
		}
	}
	return LinearBlend{}
}

func rotationBlender(s *EasingState[mgl64.Quat], backend Backend, dt float64) Blender[mgl64.Quat] {
	if backend == BackendHermite {
		if w0, w1, ok := s.Tangents(); ok {
			return HermiteRotationBlend{StartVelocity: w0, EndVelocity: w1, Delta: dt}
		}
	}
	return SphericalBlend{}
}
