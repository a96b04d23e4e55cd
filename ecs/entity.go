package ecs

// EntityId identifies an entity for its whole lifetime. Ids are never reused by a Storage
// and stay valid across component additions and removals. Zero is never a live entity.
type EntityId uint64

// entityLocation is the current row of an entity inside its archetype.
type entityLocation struct {
	archetype *Archetype
	row       int
}
