// Package demo builds the simulation shown by glide-demo: chipmunk bodies bouncing
// in a box, tweened movers and an uneased reference, all stepped on the fixed clock
// and drawn from their eased display transforms.
package demo

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/tanema/gween"
)

// Body links an entity to its chipmunk body.
type Body struct {
	Body *cp.Body
}

// Sprite is how the renderer draws an entity.
type Sprite struct {
	Radius float64
	Color  color.RGBA
}

// Mover ping-pongs an entity between Origin and Origin+Span, scaling it up at the
// far end and spinning it around the z axis.
type Mover struct {
	Origin mgl64.Vec3
	Span   mgl64.Vec3
	Spin   float64
	Grow   float64

	out, back *gween.Tween
	returning bool
}

// Reference marks the entity that copies the first mover with easing disabled.
type Reference struct{}

// Actions is a singleton of requests from the input layer, consumed once per frame.
type Actions struct {
	Teleport  bool
	CycleMode bool
}
