package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	FixedSteps      uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Schedule       Schedule
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type executable interface {
	Execute()
}

type registeredSystem struct {
	system   System
	schedule Schedule
	queries  []executable
	stats    *systemStatsInternal
}

// Scheduler runs systems grouped into schedules. A frame runs First and PreUpdate,
// then the fixed loop (FixedFirst through FixedLast, repeated once per elapsed
// timestep), then Update, PostUpdate and Last. Commands queued by a schedule are
// flushed when that schedule finishes.
type Scheduler struct {
	storage   *Storage
	schedules [scheduleCount][]*registeredSystem
	systems   []*registeredSystem
	clock     *Singleton[FixedTime]
	frames    int64
}

// NewScheduler creates a new scheduler for the given storage. The storage gains a
// FixedTime singleton stepping at DefaultTimestep unless one is already present.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
		clock:   NewSingleton(storage, NewFixedTime(DefaultTimestep)),
	}
}

// Register adds a system to the Update schedule.
func (s *Scheduler) Register(system System) {
	s.Add(Update, system)
}

// Add appends systems to a schedule and initializes their Query and Singleton fields.
func (s *Scheduler) Add(schedule Schedule, systems ...System) {
	if schedule < 0 || schedule >= scheduleCount {
		panic("unknown schedule " + schedule.String())
	}

	for _, system := range systems {
		systemType := reflect.TypeOf(system)
		if systemType.Kind() == reflect.Ptr {
			systemType = systemType.Elem()
		}

		rs := &registeredSystem{
			system:   system,
			schedule: schedule,
			queries:  s.initializeFields(system),
			stats: &systemStatsInternal{
				name:        systemType.Name(),
				minDuration: time.Duration(1<<63 - 1),
			},
		}
		s.schedules[schedule] = append(s.schedules[schedule], rs)
		s.systems = append(s.systems, rs)
	}
}

func (s *Scheduler) initializeFields(system System) []executable {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	systemType := systemValue.Type()
	var queries []executable

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		isQuery := strings.HasPrefix(typeName, "Query[")
		if !isQuery && !strings.HasPrefix(typeName, "Singleton[") {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("Init method not found on field: " + fieldType.Name)
		}
		initMethod.Call([]reflect.Value{reflect.ValueOf(s.storage)})

		if isQuery {
			if q, ok := field.Addr().Interface().(executable); ok {
				queries = append(queries, q)
			}
		}
	}

	return queries
}

// Time returns the fixed clock.
func (s *Scheduler) Time() *FixedTime {
	return s.clock.Get()
}

// SetTimestep changes the fixed step duration.
func (s *Scheduler) SetTimestep(timestep time.Duration) {
	if timestep <= 0 {
		timestep = DefaultTimestep
	}
	s.clock.Get().Timestep = timestep
}

// Once runs one full frame with the given real delta time in seconds.
func (s *Scheduler) Once(dt float64) {
	s.RunSchedule(First, dt)
	s.RunSchedule(PreUpdate, dt)
	s.RunFixed(dt)
	s.RunSchedule(Update, dt)
	s.RunSchedule(PostUpdate, dt)
	s.RunSchedule(Last, dt)
	s.frames++
}

// RunFixed accumulates dt seconds on the fixed clock and runs the fixed schedules
// once per whole timestep available. It returns the number of steps run.
func (s *Scheduler) RunFixed(dt float64) int {
	clock := s.clock.Get()
	clock.Accumulate(time.Duration(dt * float64(time.Second)))

	steps := 0
	for clock.Expend() {
		for schedule := FixedFirst; schedule <= FixedLast; schedule++ {
			s.RunSchedule(schedule, clock.DeltaSeconds())
		}
		steps++
	}
	return steps
}

// RunSchedule runs every system of a single schedule and flushes its commands.
func (s *Scheduler) RunSchedule(schedule Schedule, dt float64) {
	systems := s.schedules[schedule]
	if len(systems) == 0 {
		return
	}

	frame := newUpdateFrame(dt, s.storage, schedule, s.clock.Get())

	for _, rs := range systems {
		start := time.Now()
		for _, q := range rs.queries {
			q.Execute()
		}
		rs.system.Execute(frame)
		duration := time.Since(start)

		stats := rs.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.Commands.Flush(s.storage)
}

// Run executes frames repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution, in registration order.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		FixedSteps:  s.clock.Get().Steps(),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	var totalExecs int64
	for i, rs := range s.systems {
		internal := rs.stats
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			Schedule:       rs.schedule,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
