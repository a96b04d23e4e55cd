package easing

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is the authoritative placement of an entity, written by simulation code.
type Transform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
	Scale       mgl64.Vec3
}

// IdentityTransform returns a transform at the origin with no rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// FromTranslation returns an identity transform moved to translation.
func FromTranslation(translation mgl64.Vec3) Transform {
	t := IdentityTransform()
	t.Translation = translation
	return t
}

func (t Transform) WithRotation(rotation mgl64.Quat) Transform {
	t.Rotation = rotation
	return t
}

func (t Transform) WithScale(scale mgl64.Vec3) Transform {
	t.Scale = scale
	return t
}

// DisplayTransform is the eased placement renderers should draw. It is rewritten every
// frame from the Transform and the entity's easing snapshots.
type DisplayTransform Transform

// Transform returns the display value as a plain Transform.
func (d DisplayTransform) Transform() Transform {
	return Transform(d)
}

// Channel selects one field of a Transform.
type Channel uint8

const (
	ChannelTranslation Channel = iota
	ChannelRotation
	ChannelScale
)

// Channels lists every channel in composition order.
var Channels = [...]Channel{ChannelTranslation, ChannelRotation, ChannelScale}

func (c Channel) String() string {
	switch c {
	case ChannelTranslation:
		return "translation"
	case ChannelRotation:
		return "rotation"
	case ChannelScale:
		return "scale"
	}
	return "unknown"
}

// ParseChannel converts a configuration string into a Channel.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "translation", "position":
		return ChannelTranslation, nil
	case "rotation":
		return ChannelRotation, nil
	case "scale":
		return ChannelScale, nil
	}
	return 0, fmt.Errorf("unknown transform channel %q", s)
}
