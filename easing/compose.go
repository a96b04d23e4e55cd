package easing

// Compose returns the display value for one entity at progress t through the current
// window. cfg must already be resolved. Channels that are disabled or lack a snapshot
// pair take the authoritative value, so the result is a passthrough when nothing
// blends. Compose does not modify e and gives the same result for the same inputs.
func Compose(authoritative Transform, e *Easing, cfg Config, t, dt float64) Transform {
	out := authoritative
	if e == nil {
		return out
	}

	if cfg.Translation.Active() && e.Translation.Active() {
		s := &e.Translation
		out.Translation = vectorBlender(s, cfg.Translation.Backend, dt).Blend(s.Start, s.End, t)
	}
	if cfg.Rotation.Active() && e.Rotation.Active() {
		s := &e.Rotation
		out.Rotation = rotationBlender(s, cfg.Rotation.Backend, dt).Blend(s.Start, s.End, t)
	}
	if cfg.Scale.Active() && e.Scale.Active() {
		s := &e.Scale
		out.Scale = vectorBlender(s, cfg.Scale.Backend, dt).Blend(s.Start, s.End, t)
	}

	return out
}
