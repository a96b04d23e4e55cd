package ecs

// UpdateFrame is handed to every system run.
type UpdateFrame struct {
	// DeltaTime is the real frame time in seconds, or the fixed timestep inside
	// fixed schedules.
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
	Schedule  Schedule
	// Time is the scheduler's fixed clock.
	Time *FixedTime
}

func newUpdateFrame(dt float64, storage *Storage, schedule Schedule, clock *FixedTime) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
		Schedule:  schedule,
		Time:      clock,
	}
}
