// Package ecs is a small archetype-based entity component system with a scheduler
// that runs systems in ordered schedules around a fixed-timestep simulation loop.
//
// Entities keep a stable EntityId for their whole lifetime. Components are plain Go
// values registered on a ComponentRegistry and stored densely per archetype. Systems
// declare Query and Singleton fields that the Scheduler wires up on registration.
package ecs
