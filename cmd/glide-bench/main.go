package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/glide/internal/config"
	"github.com/plus3/glide/internal/logging"
	"github.com/plus3/glide/internal/scenario"
)

//go:embed default.yaml
var defaultScenario []byte

func main() {
	scenarioPath := flag.String("scenario", "", "Scenario YAML file. The built-in mixed crowd is used when empty.")
	configPath := flag.String("config", "", "Optional glide config file for logging and easing defaults.")
	duration := flag.Duration("duration", 0, "Override the scenario run duration.")
	workers := flag.Int("workers", -1, "Override the number of blend workers.")
	seed := flag.Uint64("seed", 1, "Seed for the frame time jitter.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(config.New(), *configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	s, err := loadScenario(*scenarioPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load scenario")
	}
	if *duration > 0 {
		s.Duration = *duration
	}
	if *workers >= 0 {
		s.Workers = *workers
	}

	defaults, err := cfg.Easing.Defaults()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid easing defaults")
	}

	logger.Info().
		Str("scenario", s.Name).
		Int("entities", s.Entities()).
		Dur("timestep", s.Timestep).
		Int("workers", s.Workers).
		Msg("Populating storage")

	w, err := buildWorld(s, defaults, s.Workers, logging.Sampled(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build world")
	}

	report := &Report{
		Scenario:       s,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info().Dur("duration", s.Duration).Msg("Running simulation")
	ctx, cancel := context.WithTimeout(context.Background(), s.Duration)
	defer cancel()

	run(ctx, w, s.Frame, rand.New(rand.NewPCG(*seed, *seed)), report)

	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Collect(w)
	logger.Info().Int64("frames", report.Frames).Msg("Simulation finished")

	fmt.Println("\n\n--- Easing Benchmark Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("Failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}

func loadScenario(path string) (*scenario.Scenario, error) {
	if path == "" {
		return scenario.Parse(defaultScenario)
	}
	return scenario.Load(path)
}

// run feeds jittered frame times to the scheduler until ctx is done and records how
// long every frame took to compute.
func run(ctx context.Context, w *world, frame scenario.FrameSpec, rng *rand.Rand, report *Report) {
	start := time.Now()
	for ctx.Err() == nil {
		dt := frame.Mean
		if frame.Jitter > 0 {
			dt += time.Duration((2*rng.Float64() - 1) * float64(frame.Jitter))
		}

		updateStart := time.Now()
		w.scheduler.Once(dt.Seconds())
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		report.Frames++
		report.SimulatedTime += dt
	}
	report.TotalTime = time.Since(start)
}
