package easing

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestLerpEndpointsAreExact(t *testing.T) {
	cases := []struct {
		name       string
		start, end mgl64.Vec3
	}{
		{"simple", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 2, 3}},
		{"awkward floats", mgl64.Vec3{0.1, 0.2, 0.3}, mgl64.Vec3{1e9 + 0.7, -3.3, 1.0 / 3}},
		{"negative", mgl64.Vec3{-5, -0.25, 12}, mgl64.Vec3{-1e-7, 42, -12}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.start, Lerp(tc.start, tc.end, 0))
			assert.Equal(t, tc.end, Lerp(tc.start, tc.end, 1))
		})
	}
}

func TestLerpClampsProgress(t *testing.T) {
	start, end := mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 0, 0}

	assert.Equal(t, start, Lerp(start, end, -0.5))
	assert.Equal(t, end, Lerp(start, end, 1.5))
	assert.Equal(t, start, Lerp(start, end, math.NaN()))
	assert.Equal(t, mgl64.Vec3{2.5, 0, 0}, Lerp(start, end, 0.25))
}

func TestSlerpIsUnitLength(t *testing.T) {
	pairs := [][2]mgl64.Quat{
		{mgl64.QuatIdent(), mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})},
		{mgl64.QuatRotate(0.3, mgl64.Vec3{1, 0, 0}), mgl64.QuatRotate(2.9, mgl64.Vec3{0, 1, 0})},
		{mgl64.QuatRotate(1, mgl64.Vec3{0, 0, 1}), mgl64.QuatRotate(1+1e-9, mgl64.Vec3{0, 0, 1})},
		{mgl64.QuatRotate(1, mgl64.Vec3{1, 1, 0}.Normalize()), mgl64.QuatRotate(1, mgl64.Vec3{1, 1, 0}.Normalize())},
	}

	for _, pair := range pairs {
		for _, progress := range []float64{0, 0.1, 0.5, 0.9, 1} {
			q := Slerp(pair[0], pair[1], progress)
			assert.InDelta(t, 1.0, q.Len(), 1e-12)
			assert.False(t, math.IsNaN(q.W))
		}
	}
}

func TestSlerpTakesShortestArc(t *testing.T) {
	axis := mgl64.Vec3{0, 0, 1}
	start := mgl64.QuatRotate(0.1, axis)
	end := mgl64.QuatRotate(-0.1, axis)

	// The same rotation with the opposite sign must not send the blend the long way.
	flipped := Slerp(start, end.Scale(-1), 0.5)
	assert.True(t, flipped.OrientationEqualThreshold(mgl64.QuatIdent(), 1e-9))

	quarter := Slerp(mgl64.QuatIdent(), mgl64.QuatRotate(math.Pi/2, axis), 0.5)
	assert.True(t, quarter.OrientationEqualThreshold(mgl64.QuatRotate(math.Pi/4, axis), 1e-9))
}

func TestSlerpEndpoints(t *testing.T) {
	start := mgl64.QuatRotate(0.4, mgl64.Vec3{0, 1, 0})
	end := mgl64.QuatRotate(1.4, mgl64.Vec3{0, 1, 0})

	assert.True(t, Slerp(start, end, 0).ApproxEqualThreshold(start, 1e-12))
	assert.True(t, Slerp(start, end, 1).OrientationEqualThreshold(end, 1e-12))
}

func TestBlendIsIdempotent(t *testing.T) {
	start, end := mgl64.Vec3{1, 2, 3}, mgl64.Vec3{4, -5, 6}
	q0 := mgl64.QuatRotate(0.2, mgl64.Vec3{0, 0, 1})
	q1 := mgl64.QuatRotate(1.7, mgl64.Vec3{0, 0, 1})
	hermite := HermiteBlend{StartVelocity: mgl64.Vec3{1, 0, 0}, EndVelocity: mgl64.Vec3{0, 1, 0}, Delta: 0.1}
	hermiteRot := HermiteRotationBlend{StartVelocity: mgl64.Vec3{0, 0, 3}, EndVelocity: mgl64.Vec3{0, 0, 1}, Delta: 0.1}

	for range 3 {
		assert.Equal(t, Lerp(start, end, 0.37), LinearBlend{}.Blend(start, end, 0.37))
		assert.Equal(t, Slerp(q0, q1, 0.37), SphericalBlend{}.Blend(q0, q1, 0.37))
		assert.Equal(t, hermite.Blend(start, end, 0.37), hermite.Blend(start, end, 0.37))
		assert.Equal(t, hermiteRot.Blend(q0, q1, 0.37), hermiteRot.Blend(q0, q1, 0.37))
	}
}

func TestBlenderSelection(t *testing.T) {
	var vec EasingState[mgl64.Vec3]
	assert.IsType(t, LinearBlend{}, vectorBlender(&vec, BackendLinear, 0.1))
	assert.IsType(t, LinearBlend{}, vectorBlender(&vec, BackendHermite, 0.1), "no tangents falls back to linear")

	vec.StartVelocity, vec.HasStartVelocity = mgl64.Vec3{1, 0, 0}, true
	vec.EndVelocity, vec.HasEndVelocity = mgl64.Vec3{2, 0, 0}, true
	assert.Equal(t, HermiteBlend{StartVelocity: mgl64.Vec3{1, 0, 0}, EndVelocity: mgl64.Vec3{2, 0, 0}, Delta: 0.1},
		vectorBlender(&vec, BackendHermite, 0.1))

	var rot EasingState[mgl64.Quat]
	assert.IsType(t, SphericalBlend{}, rotationBlender(&rot, BackendHermite, 0.1))
	rot.HasStartVelocity, rot.HasEndVelocity = true, true
	assert.IsType(t, HermiteRotationBlend{}, rotationBlender(&rot, BackendHermite, 0.1))
}
