// Package scenario decodes the YAML files describing benchmark workloads: groups of
// entities with an easing setup and the motion the simulation applies to them.
package scenario

import (
	"fmt"
	"os"
	"time"

	"github.com/plus3/glide/easing"
	"gopkg.in/yaml.v3"
)

// Scenario is one benchmark workload.
type Scenario struct {
	Name     string        `yaml:"name"`
	Duration time.Duration `yaml:"duration"`
	Timestep time.Duration `yaml:"timestep"`
	Workers  int           `yaml:"workers"`
	Frame    FrameSpec     `yaml:"frame"`
	Groups   []Group       `yaml:"groups"`
}

// FrameSpec describes the render frame times fed to the scheduler. Every frame lasts
// Mean plus a uniform offset in [-Jitter, Jitter].
type FrameSpec struct {
	Mean   time.Duration `yaml:"mean"`
	Jitter time.Duration `yaml:"jitter"`
}

// Group is a set of identical entities.
type Group struct {
	Name     string     `yaml:"name"`
	Count    int        `yaml:"count"`
	Mode     string     `yaml:"mode"`
	Backend  string     `yaml:"backend"`
	Channels []string   `yaml:"channels"`
	Velocity [3]float64 `yaml:"velocity"`
	Spin     [3]float64 `yaml:"spin"`
	Growth   float64    `yaml:"growth"`
	// TeleportEvery moves every entity of the group outside the fixed step once per
	// that many frames. Zero never teleports.
	TeleportEvery int `yaml:"teleport_every"`
}

// Load reads and validates the scenario in filename.
func Load(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", filename, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", filename, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario document, filling in defaults for the
// frame and step durations.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	if s.Timestep <= 0 {
		s.Timestep = time.Second / 64
	}
	if s.Frame.Mean <= 0 {
		s.Frame.Mean = time.Second / 60
	}
	if s.Duration <= 0 {
		s.Duration = 10 * time.Second
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every group can be spawned.
func (s *Scenario) Validate() error {
	if len(s.Groups) == 0 {
		return fmt.Errorf("scenario %q has no groups", s.Name)
	}
	if s.Frame.Jitter < 0 || s.Frame.Jitter >= s.Frame.Mean {
		return fmt.Errorf("frame jitter %s must be in [0, %s)", s.Frame.Jitter, s.Frame.Mean)
	}
	for i := range s.Groups {
		g := &s.Groups[i]
		if g.Count <= 0 {
			return fmt.Errorf("group %q: count must be positive", g.Name)
		}
		if g.TeleportEvery < 0 {
			return fmt.Errorf("group %q: teleport_every must not be negative", g.Name)
		}
		if _, err := g.Config(); err != nil {
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
	}
	return nil
}

// Entities returns the total entity count over all groups.
func (s *Scenario) Entities() int {
	n := 0
	for _, g := range s.Groups {
		n += g.Count
	}
	return n
}

// Config returns the easing setup of the group's entities. An empty channel list
// applies the mode to every channel.
func (g *Group) Config() (easing.Config, error) {
	mode, err := easing.ParseMode(g.Mode)
	if err != nil {
		return easing.Config{}, err
	}
	backend, err := easing.ParseBackend(g.Backend)
	if err != nil {
		return easing.Config{}, err
	}

	channels := make([]easing.Channel, 0, len(g.Channels))
	for _, name := range g.Channels {
		ch, err := easing.ParseChannel(name)
		if err != nil {
			return easing.Config{}, err
		}
		channels = append(channels, ch)
	}

	cfg := easing.Config{}.WithMode(mode, channels...).WithBackend(backend, channels...)
	if len(channels) > 0 && mode != easing.ModeDefault {
		// Unlisted channels are opted out rather than left to the defaults.
		for _, ch := range easing.Channels {
			if cfg.Channel(ch).Mode == easing.ModeDefault {
				cfg = cfg.WithMode(easing.ModeDisabled, ch)
			}
		}
	}
	return cfg, nil
}
