package easing

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	tau = 2 * math.Pi
	// below this angle a scaled axis is treated as no rotation
	angleEpsilon = 1e-12
)

// HermiteVec3 evaluates the cubic Hermite curve from p0 to p1 with tangents v0 and v1
// (already scaled to the curve's parameter range) at t.
func HermiteVec3(p0, p1, v0, v1 mgl64.Vec3, t float64) mgl64.Vec3 {
	t2 := t * t
	t3 := t2 * t

	b0 := 2*t3 - 3*t2 + 1
	b1 := 3*t2 - 2*t3
	b2 := t3 - 2*t2 + t
	b3 := t3 - t2

	return p0.Mul(b0).Add(p1.Mul(b1)).Add(v0.Mul(b2)).Add(v1.Mul(b3))
}

// HermiteQuat evaluates a cumulative cubic Hermite curve between two rotations with
// angular velocities w0 and w1 (scaled axes, already scaled to the parameter range).
// With unwrap set, the middle control rotation is shifted by whole turns towards the
// average velocity so spins faster than half a turn per step are kept.
func HermiteQuat(q0, q1 mgl64.Quat, w0, w1 mgl64.Vec3, t float64, unwrap bool) mgl64.Quat {
	t2 := t * t
	t3 := t2 * t

	b1 := 1 - math.Pow(1-t, 3)
	b2 := 3*t2 - 2*t3
	b3 := t3

	w0Third := w0.Mul(1.0 / 3)
	w1Third := w1.Mul(1.0 / 3)

	c1 := quatFromScaledAxis(w0Third).Mul(q0)
	c2 := quatFromScaledAxis(w1Third.Mul(-1)).Mul(q1)

	wMid := quatToScaledAxis(c2.Mul(c1.Inverse()))
	if unwrap {
		average := w0Third.Add(w1Third).Mul(0.5)
		if dir, ok := normalizeVec3(wMid); ok {
			extra := dir.Dot(average.Sub(wMid))
			wMid = wMid.Add(dir.Mul(math.Round(extra/tau) * tau))
		}
	}

	return quatFromScaledAxis(w1Third.Mul(b3)).
		Mul(quatFromScaledAxis(wMid.Mul(b2))).
		Mul(quatFromScaledAxis(w0Third.Mul(b1))).
		Mul(q0).
		Normalize()
}

// HermiteBlend is the cubic backend for vectors. Velocities are per second and are
// scaled by Delta, the window length in seconds.
type HermiteBlend struct {
	StartVelocity mgl64.Vec3
	EndVelocity   mgl64.Vec3
	Delta         float64
}

func (h HermiteBlend) Blend(start, end mgl64.Vec3, t float64) mgl64.Vec3 {
	t = clamp01(t)
	switch t {
	case 0:
		return start
	case 1:
		return end
	}
	return HermiteVec3(start, end, h.StartVelocity.Mul(h.Delta), h.EndVelocity.Mul(h.Delta), t)
}

// HermiteRotationBlend is the cubic backend for rotations.
type HermiteRotationBlend struct {
	StartVelocity mgl64.Vec3
	EndVelocity   mgl64.Vec3
	Delta         float64
}

func (h HermiteRotationBlend) Blend(start, end mgl64.Quat, t float64) mgl64.Quat {
	t = clamp01(t)
	start, end = start.Normalize(), end.Normalize()
	switch t {
	case 0:
		return start
	case 1:
		return end
	}
	return HermiteQuat(start, end, h.StartVelocity.Mul(h.Delta), h.EndVelocity.Mul(h.Delta), t, true)
}

func normalizeVec3(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l < angleEpsilon {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// quatFromScaledAxis converts a rotation vector (axis times angle) to a quaternion.
func quatFromScaledAxis(v mgl64.Vec3) mgl64.Quat {
	axis, ok := normalizeVec3(v)
	if !ok {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(v.Len(), axis)
}

// quatToScaledAxis converts a quaternion to a rotation vector with an angle in
// [0, 2*pi). The sign of q is kept, so q and -q give complementary angles.
func quatToScaledAxis(q mgl64.Quat) mgl64.Vec3 {
	q = q.Normalize()
	sinHalf := q.V.Len()
	if sinHalf < angleEpsilon {
		return mgl64.Vec3{}
	}
	angle := 2 * math.Atan2(sinHalf, q.W)
	return q.V.Mul(angle / sinHalf)
}

// shortestArc returns the rotation taking from to to, with the sign chosen so the
// angle is at most half a turn.
func shortestArc(from, to mgl64.Quat) mgl64.Quat {
	delta := to.Mul(from.Inverse()).Normalize()
	if delta.W < 0 {
		delta = delta.Scale(-1)
	}
	return delta
}
