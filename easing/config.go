package easing

import (
	"fmt"
	"strings"
)

// Mode selects how a channel is eased.
type Mode uint8

const (
	// ModeDefault defers to the defaults the Controller was built with.
	ModeDefault Mode = iota
	// ModeDisabled renders the authoritative value as is.
	ModeDisabled
	// ModeInterpolate blends between the values observed when a window opens and closes.
	ModeInterpolate
	// ModeExtrapolate blends from the value at window close towards a value predicted
	// one step ahead from the channel velocity.
	ModeExtrapolate
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeDisabled:
		return "disabled"
	case ModeInterpolate:
		return "interpolate"
	case ModeExtrapolate:
		return "extrapolate"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return ModeDefault, nil
	case "disabled", "off", "none":
		return ModeDisabled, nil
	case "interpolate", "interpolation":
		return ModeInterpolate, nil
	case "extrapolate", "extrapolation":
		return ModeExtrapolate, nil
	}
	return ModeDefault, fmt.Errorf("unknown easing mode %q", s)
}

// Backend selects the blend curve of a channel.
type Backend uint8

const (
	// BackendDefault defers to the Controller defaults, which fall back to BackendLinear.
	BackendDefault Backend = iota
	// BackendLinear blends vectors linearly and rotations along the shortest arc.
	BackendLinear
	// BackendHermite follows a cubic curve shaped by the velocity at both snapshots.
	BackendHermite
)

func (b Backend) String() string {
	switch b {
	case BackendDefault:
		return "default"
	case BackendLinear:
		return "linear"
	case BackendHermite:
		return "hermite"
	}
	return fmt.Sprintf("Backend(%d)", uint8(b))
}

// ParseBackend converts a configuration string into a Backend.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return BackendDefault, nil
	case "linear", "lerp", "slerp":
		return BackendLinear, nil
	case "hermite", "cubic":
		return BackendHermite, nil
	}
	return BackendDefault, fmt.Errorf("unknown easing backend %q", s)
}

// ChannelConfig is the easing setup of a single channel.
type ChannelConfig struct {
	Mode    Mode
	Backend Backend
}

// Active reports whether the channel takes part in easing.
func (c ChannelConfig) Active() bool {
	return c.Mode == ModeInterpolate || c.Mode == ModeExtrapolate
}

func (c ChannelConfig) resolve(defaults ChannelConfig) ChannelConfig {
	if c.Mode == ModeDefault {
		c.Mode = defaults.Mode
	}
	if c.Mode == ModeDefault {
		c.Mode = ModeDisabled
	}
	if c.Backend == BackendDefault {
		c.Backend = defaults.Backend
	}
	if c.Backend == BackendDefault {
		c.Backend = BackendLinear
	}
	return c
}

// Config is the per-entity easing setup. It is also used as the component carrying it.
// The zero value defers every channel to the Controller defaults.
type Config struct {
	Translation ChannelConfig
	Rotation    ChannelConfig
	Scale       ChannelConfig
}

// Channel returns the setup of one channel.
func (c Config) Channel(ch Channel) ChannelConfig {
	switch ch {
	case ChannelTranslation:
		return c.Translation
	case ChannelRotation:
		return c.Rotation
	case ChannelScale:
		return c.Scale
	}
	return ChannelConfig{Mode: ModeDisabled}
}

func (c *Config) channel(ch Channel) *ChannelConfig {
	switch ch {
	case ChannelTranslation:
		return &c.Translation
	case ChannelRotation:
		return &c.Rotation
	case ChannelScale:
		return &c.Scale
	}
	return nil
}

// Resolve replaces every default mode and backend with the matching defaults entry.
// Modes left at ModeDefault after that become ModeDisabled and backends become
// BackendLinear, so the result only holds concrete values.
func (c Config) Resolve(defaults Config) Config {
	return Config{
		Translation: c.Translation.resolve(defaults.Translation),
		Rotation:    c.Rotation.resolve(defaults.Rotation),
		Scale:       c.Scale.resolve(defaults.Scale),
	}
}

// Active reports whether any channel takes part in easing.
func (c Config) Active() bool {
	return c.Translation.Active() || c.Rotation.Active() || c.Scale.Active()
}

// WithMode returns a copy with mode set on the given channels, or on all of them
// when none are named.
func (c Config) WithMode(mode Mode, channels ...Channel) Config {
	if len(channels) == 0 {
		channels = Channels[:]
	}
	for _, ch := range channels {
		if cc := c.channel(ch); cc != nil {
			cc.Mode = mode
		}
	}
	return c
}

// WithBackend returns a copy with backend set on the given channels, or on all of
// them when none are named.
func (c Config) WithBackend(backend Backend, channels ...Channel) Config {
	if len(channels) == 0 {
		channels = Channels[:]
	}
	for _, ch := range channels {
		if cc := c.channel(ch); cc != nil {
			cc.Backend = backend
		}
	}
	return c
}

// Interpolate returns a Config interpolating the given channels, or every channel
// when none are named. Other channels keep ModeDefault.
func Interpolate(channels ...Channel) Config {
	return Config{}.WithMode(ModeInterpolate, channels...)
}

// Extrapolate returns a Config extrapolating the given channels, or every channel
// when none are named.
func Extrapolate(channels ...Channel) Config {
	return Config{}.WithMode(ModeExtrapolate, channels...)
}

// Disabled returns a Config that opts every channel out, regardless of defaults.
func Disabled() Config {
	return Config{}.WithMode(ModeDisabled)
}
