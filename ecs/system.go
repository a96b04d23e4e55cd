package ecs

// System represents a behavior that operates on entities with specific components.
// Exported Query and Singleton fields are initialized when the system is added to a
// Scheduler, and queries are re-executed right before every run.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) { f(frame) }
