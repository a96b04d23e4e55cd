// Package config loads the settings shared by the glide binaries from defaults, an
// optional file and GLIDE_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/plus3/glide/easing"
	"github.com/plus3/glide/ecs"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GLIDE_WORKERS=4 or
// GLIDE_EASING_ROTATION_BACKEND=hermite.
const EnvPrefix = "GLIDE"

// ChannelConfig is the textual easing setup of one channel.
type ChannelConfig struct {
	Mode    string `mapstructure:"mode"`
	Backend string `mapstructure:"backend"`
}

// EasingConfig holds the easing defaults applied to every entity.
type EasingConfig struct {
	Translation ChannelConfig `mapstructure:"translation"`
	Rotation    ChannelConfig `mapstructure:"rotation"`
	Scale       ChannelConfig `mapstructure:"scale"`
}

// DemoConfig holds settings only the demo window reads.
type DemoConfig struct {
	Width  int  `mapstructure:"width"`
	Height int  `mapstructure:"height"`
	Bodies int  `mapstructure:"bodies"`
	Movers int  `mapstructure:"movers"`
	Debug  bool `mapstructure:"debug"`
}

// Config is the decoded configuration.
type Config struct {
	LogLevel  string        `mapstructure:"logLevel"`
	LogFormat string        `mapstructure:"logFormat"`
	Timestep  time.Duration `mapstructure:"timestep"`
	MaxSteps  int           `mapstructure:"maxSteps"`
	Workers   int           `mapstructure:"workers"`
	Easing    EasingConfig  `mapstructure:"easing"`
	Demo      DemoConfig    `mapstructure:"demo"`
}

// New returns a viper instance with every default set and environment overrides
// enabled.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("logLevel", "info")
	v.SetDefault("logFormat", "console")
	v.SetDefault("timestep", ecs.DefaultTimestep)
	v.SetDefault("maxSteps", 8)
	v.SetDefault("workers", 0)

	v.SetDefault("easing.translation.mode", "interpolate")
	v.SetDefault("easing.translation.backend", "linear")
	v.SetDefault("easing.rotation.mode", "interpolate")
	v.SetDefault("easing.rotation.backend", "linear")
	v.SetDefault("easing.scale.mode", "interpolate")
	v.SetDefault("easing.scale.backend", "linear")

	v.SetDefault("demo.width", 960)
	v.SetDefault("demo.height", 540)
	v.SetDefault("demo.bodies", 24)
	v.SetDefault("demo.movers", 6)
	v.SetDefault("demo.debug", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads path into v when it is not empty and decodes the result.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// Watch calls onChange with the decoded configuration every time the file loaded into
// v is written. Decoding errors are passed along instead of the new value.
func Watch(v *viper.Viper, onChange func(Config, error)) {
	v.OnConfigChange(func(event fsnotify.Event) {
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			return
		}
		onChange(decode(v))
	})
	v.WatchConfig()
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Timestep <= 0 {
		return Config{}, fmt.Errorf("timestep must be positive, got %s", cfg.Timestep)
	}
	if cfg.MaxSteps < 1 {
		return Config{}, fmt.Errorf("maxSteps must be at least 1, got %d", cfg.MaxSteps)
	}
	if _, err := cfg.Easing.Defaults(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Clock returns a fixed clock stepping every Timestep and accepting at most MaxSteps
// steps of real time per frame.
func (c Config) Clock() ecs.FixedTime {
	clock := ecs.NewFixedTime(c.Timestep)
	clock.MaxDelta = time.Duration(c.MaxSteps) * clock.Timestep
	return clock
}

// Defaults converts the textual setup into easing defaults.
func (c EasingConfig) Defaults() (easing.Config, error) {
	var out easing.Config
	for _, ch := range easing.Channels {
		in := c.channel(ch)

		mode, err := easing.ParseMode(in.Mode)
		if err != nil {
			return easing.Config{}, fmt.Errorf("easing.%s.mode: %w", ch, err)
		}
		backend, err := easing.ParseBackend(in.Backend)
		if err != nil {
			return easing.Config{}, fmt.Errorf("easing.%s.backend: %w", ch, err)
		}

		out = out.WithMode(mode, ch).WithBackend(backend, ch)
	}
	return out, nil
}

func (c EasingConfig) channel(ch easing.Channel) ChannelConfig {
	switch ch {
	case easing.ChannelRotation:
		return c.Rotation
	case easing.ChannelScale:
		return c.Scale
	default:
		return c.Translation
	}
}
