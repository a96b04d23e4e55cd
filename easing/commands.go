package easing

import "github.com/plus3/glide/ecs"

// ResetEasing queues a full reset of the entity's easing state on the frame's
// command buffer. The entity renders its Transform until the next window closes.
func ResetEasing(frame *ecs.UpdateFrame, id ecs.EntityId) {
	storage := frame.Storage
	frame.Commands.Defer(func() {
		if e := ecs.ReadComponent[Easing](storage, id); e != nil {
			e.ResetAll()
		}
	})
}
