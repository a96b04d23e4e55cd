package easing

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// Entity bundles the components of one entity that the phases read and write.
// Transform and Easing are required; the rest may be nil.
type Entity struct {
	ID              uint64
	Transform       *Transform
	Easing          *Easing
	Config          *Config
	LinearVelocity  *LinearVelocity
	AngularVelocity *AngularVelocity
}

// Stats counts phase activity since the Controller was created.
type Stats struct {
	Windows       uint64
	Invalidations uint64
	Blended       uint64
}

// Controller runs the easing phases for single entities. The ecs systems built by
// Plugin drive it, and hosts with their own loop can call it directly in this order
// for every fixed step:
//
//	DetectChanges, OpenWindow, <simulation>, CloseWindow
//
// and once per rendered frame DetectChanges followed by Blend.
type Controller struct {
	defaults Config
	logger   zerolog.Logger
	metrics  *instruments
	stats    Stats
}

// NewController builds a Controller applying defaults to every channel left at
// ModeDefault or BackendDefault. A nil meter uses the global otel meter provider.
func NewController(defaults Config, logger zerolog.Logger, meter metric.Meter) (*Controller, error) {
	metrics, err := newInstruments(meter)
	if err != nil {
		return nil, err
	}
	return &Controller{
		defaults: defaults,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

// Defaults returns the configuration applied to ModeDefault channels.
func (c *Controller) Defaults() Config {
	return c.defaults
}

// SetDefaults replaces the defaults. Entities pick them up on their next phase call,
// so it must not race with running systems.
func (c *Controller) SetDefaults(defaults Config) {
	c.defaults = defaults
	c.logger.Debug().
		Stringer("translation", defaults.Translation.Mode).
		Stringer("rotation", defaults.Rotation.Mode).
		Stringer("scale", defaults.Scale.Mode).
		Msg("easing defaults replaced")
}

// Stats returns a copy of the activity counters.
func (c *Controller) Stats() Stats {
	return c.stats
}

// Resolve returns the concrete configuration of an entity.
func (c *Controller) Resolve(cfg *Config) Config {
	if cfg == nil {
		return Config{}.Resolve(c.defaults)
	}
	return cfg.Resolve(c.defaults)
}

// Wants reports whether an entity with the given configuration needs easing state.
func (c *Controller) Wants(cfg *Config) bool {
	return c.Resolve(cfg).Active()
}

// DetectChanges compares every active channel against the value its last capture
// saw. Channels written since then lose their snapshots and pass the new value
// through. Returns the number of channels invalidated.
func (c *Controller) DetectChanges(e Entity) int {
	cfg := c.Resolve(e.Config)
	tr, es := e.Transform, e.Easing
	n := 0

	if cfg.Translation.Active() && detectChannel(&es.Translation, tr.Translation) {
		c.invalidated(e.ID, ChannelTranslation)
		n++
	}
	if cfg.Rotation.Active() && detectChannel(&es.Rotation, tr.Rotation) {
		c.invalidated(e.ID, ChannelRotation)
		n++
	}
	if cfg.Scale.Active() && detectChannel(&es.Scale, tr.Scale) {
		c.invalidated(e.ID, ChannelScale)
		n++
	}
	return n
}

// OpenWindow resets every channel and captures the start snapshot of interpolated
// channels. Disabled channels are cleared.
func (c *Controller) OpenWindow(e Entity) {
	cfg := c.Resolve(e.Config)
	tr, es := e.Transform, e.Easing

	openChannel(&es.Translation, tr.Translation, cfg.Translation.Mode, vecPtr(e.LinearVelocity))
	openChannel(&es.Rotation, tr.Rotation, cfg.Rotation.Mode, vecPtr(e.AngularVelocity))
	openChannel(&es.Scale, tr.Scale, cfg.Scale.Mode, nil)
}

// CloseWindow captures the end snapshot of interpolated channels and predicts one
// for extrapolated channels. dt is the fixed step in seconds. Returns whether any
// channel of the entity is active.
func (c *Controller) CloseWindow(e Entity, dt float64) bool {
	cfg := c.Resolve(e.Config)
	tr, es := e.Transform, e.Easing

	closeChannel(&es.Translation, vectorOps{}, tr.Translation, cfg.Translation.Mode, vecPtr(e.LinearVelocity), dt)
	closeChannel(&es.Rotation, rotationOps{}, tr.Rotation, cfg.Rotation.Mode, vecPtr(e.AngularVelocity), dt)
	closeChannel(&es.Scale, vectorOps{}, tr.Scale, cfg.Scale.Mode, nil, dt)

	if !cfg.Active() {
		return false
	}
	c.stats.Windows++
	c.metrics.addWindows(1)
	return true
}

// Blend returns the display transform of the entity at overstep progress through
// the current window of dt seconds. Blend only reads shared state, so it may be called
// for different entities from several goroutines. Hosts report the number of blends
// they wrote with CountBlended once the frame is done.
func (c *Controller) Blend(e Entity, overstep, dt float64) Transform {
	return Compose(*e.Transform, e.Easing, c.Resolve(e.Config), overstep, dt)
}

func (c *Controller) invalidated(id uint64, ch Channel) {
	c.stats.Invalidations++
	c.metrics.addInvalidation(ch)
	c.logger.Debug().
		Uint64("entity", id).
		Stringer("channel", ch).
		Msg("transform changed outside the fixed step, easing reset")
}

// CountBlended records n display transforms written in one frame.
func (c *Controller) CountBlended(n int) {
	c.stats.Blended += uint64(n)
	c.metrics.addBlended(n)
}

func detectChannel[V comparable](s *EasingState[V], current V) bool {
	if !s.changed(current) {
		return false
	}
	s.invalidate(current)
	return true
}

func openChannel[V comparable](s *EasingState[V], current V, mode Mode, external *mgl64.Vec3) {
	s.Reset()

	switch mode {
	case ModeInterpolate:
		s.SetStart(current)
		s.observe(current)
		switch {
		case external != nil:
			s.StartVelocity, s.HasStartVelocity = *external, true
		case s.hasLastVelocity:
			s.StartVelocity, s.HasStartVelocity = s.lastVelocity, true
		}
	case ModeExtrapolate:
	default:
		s.forget()
		s.observed = false
	}
}

func closeChannel[V comparable](s *EasingState[V], ops channelOps[V], current V, mode Mode, external *mgl64.Vec3, dt float64) {
	if dt <= 0 || (mode != ModeInterpolate && mode != ModeExtrapolate) {
		return
	}

	switch mode {
	case ModeInterpolate:
		// Enabled after this window opened; wait for the next one.
		if !s.HasStart {
			break
		}
		s.SetEnd(current)

		measured := ops.velocity(s.Start, current, dt)
		if external != nil {
			s.EndVelocity = *external
		} else {
			s.EndVelocity = measured
		}
		s.HasEndVelocity = true
		if !s.HasStartVelocity {
			s.StartVelocity, s.HasStartVelocity = measured, true
		}
		s.lastVelocity, s.hasLastVelocity = s.EndVelocity, true

	case ModeExtrapolate:
		var vel mgl64.Vec3
		known := true
		switch {
		case external != nil:
			vel = *external
		case s.hasPrev:
			vel = ops.velocity(s.prev, current, dt)
		default:
			known = false
		}

		s.Reset()
		if known {
			s.SetStart(current)
			s.SetEnd(ops.advance(current, vel, dt))
			s.StartVelocity, s.HasStartVelocity = vel, true
			s.EndVelocity, s.HasEndVelocity = vel, true
			s.lastVelocity, s.hasLastVelocity = vel, true
		}
	}

	s.observe(current)
	s.prev, s.hasPrev = current, true
}
