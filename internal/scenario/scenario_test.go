package scenario

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/glide/easing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const crowd = `
name: crowd
duration: 2s
timestep: 20ms
workers: 4
frame:
  mean: 16ms
  jitter: 5ms
groups:
  - name: walkers
    count: 1000
    mode: interpolate
    channels: [translation]
    velocity: [1.5, 0, 0]
  - name: spinners
    count: 200
    mode: extrapolate
    backend: hermite
    channels: [rotation, scale]
    spin: [0, 0, 3]
    growth: 0.1
  - name: blinkers
    count: 10
    teleport_every: 30
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(crowd))
	require.NoError(t, err)

	assert.Equal(t, "crowd", s.Name)
	assert.Equal(t, 2*time.Second, s.Duration)
	assert.Equal(t, 20*time.Millisecond, s.Timestep)
	assert.Equal(t, FrameSpec{Mean: 16 * time.Millisecond, Jitter: 5 * time.Millisecond}, s.Frame)
	assert.Equal(t, 4, s.Workers)
	require.Len(t, s.Groups, 3)
	assert.Equal(t, 1210, s.Entities())

	walkers := s.Groups[0]
	assert.Equal(t, [3]float64{1.5, 0, 0}, walkers.Velocity)
	cfg, err := walkers.Config()
	require.NoError(t, err)
	assert.Equal(t, easing.ModeInterpolate, cfg.Translation.Mode)
	assert.Equal(t, easing.ModeDisabled, cfg.Rotation.Mode)
	assert.Equal(t, easing.ModeDisabled, cfg.Scale.Mode)

	cfg, err = s.Groups[1].Config()
	require.NoError(t, err)
	assert.Equal(t, easing.ChannelConfig{Mode: easing.ModeExtrapolate, Backend: easing.BackendHermite}, cfg.Rotation)
	assert.Equal(t, easing.ChannelConfig{Mode: easing.ModeExtrapolate, Backend: easing.BackendHermite}, cfg.Scale)
	assert.Equal(t, easing.ModeDisabled, cfg.Translation.Mode)

	cfg, err = s.Groups[2].Config()
	require.NoError(t, err)
	assert.Equal(t, easing.Config{}, cfg, "no mode defers to the plugin defaults")
	assert.Equal(t, 30, s.Groups[2].TeleportEvery)
}

func TestParseDefaults(t *testing.T) {
	s, err := Parse([]byte("groups:\n  - name: a\n    count: 1\n"))
	require.NoError(t, err)

	assert.Equal(t, time.Second/64, s.Timestep)
	assert.Equal(t, time.Second/60, s.Frame.Mean)
	assert.Equal(t, 10*time.Second, s.Duration)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"no groups":      "name: empty\n",
		"zero count":     "groups:\n  - name: a\n    count: 0\n",
		"bad mode":       "groups:\n  - name: a\n    count: 1\n    mode: sideways\n",
		"bad channel":    "groups:\n  - name: a\n    count: 1\n    channels: [skew]\n",
		"large jitter":   "frame: {mean: 10ms, jitter: 10ms}\ngroups:\n  - name: a\n    count: 1\n",
		"bad duration":   "duration: soon\ngroups:\n  - name: a\n    count: 1\n",
		"negative blink": "groups:\n  - name: a\n    count: 1\n    teleport_every: -1\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crowd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(crowd), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "crowd", s.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "missing.yaml")
}
