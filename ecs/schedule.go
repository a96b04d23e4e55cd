package ecs

// Schedule names a slot in the frame. Systems registered to the same schedule run in
// registration order.
type Schedule int

const (
	First Schedule = iota
	PreUpdate
	FixedFirst
	FixedPreUpdate
	FixedUpdate
	FixedPostUpdate
	FixedLast
	Update
	PostUpdate
	Last

	scheduleCount
)

var scheduleNames = [scheduleCount]string{
	"First",
	"PreUpdate",
	"FixedFirst",
	"FixedPreUpdate",
	"FixedUpdate",
	"FixedPostUpdate",
	"FixedLast",
	"Update",
	"PostUpdate",
	"Last",
}

func (s Schedule) String() string {
	if s < 0 || s >= scheduleCount {
		return "Unknown"
	}
	return scheduleNames[s]
}

// IsFixed reports whether the schedule belongs to the fixed-step loop.
func (s Schedule) IsFixed() bool {
	return s >= FixedFirst && s <= FixedLast
}

// Schedules lists every schedule in execution order.
func Schedules() []Schedule {
	out := make([]Schedule, scheduleCount)
	for i := range out {
		out[i] = Schedule(i)
	}
	return out
}
