package ecs

import (
	"reflect"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage is the main ECS storage interface
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry
	locations  *intmap.Map[EntityId, entityLocation]
	singletons map[reflect.Type]*singletonEntry
	nextId     EntityId
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		locations:  intmap.New[EntityId, entityLocation](256),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	archetypeId := hashTypesToUint32(types)
	return s.archetypes[archetypeId]
}

// GetArchetypeByTypes returns an archetype storage (if one exists) based on reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := append([]reflect.Type(nil), types...)
	sort.Sort(byTypeName(sorted))
	return s.archetypes[hashTypesToUint32(sorted)]
}

// GetArchetypeById returns the archetype with the given id, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// Archetypes returns every archetype ordered by id, including empty ones.
func (s *Storage) Archetypes() []*Archetype {
	archetypes := make([]*Archetype, 0, len(s.archetypes))
	for _, archetype := range s.archetypes {
		archetypes = append(archetypes, archetype)
	}
	sort.Slice(archetypes, func(i, j int) bool { return archetypes[i].id < archetypes[j].id })
	return archetypes
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	archetypeId := hashTypesToUint32(types)
	archetype, exists := s.archetypes[archetypeId]
	if !exists {
		archetype = NewArchetype(archetypeId, types, s.registry)
		s.archetypes[archetypeId] = archetype
	}
	return archetype
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))

	s.nextId++
	id := s.nextId
	row := archetype.spawn(id, components)
	s.locations.Put(id, entityLocation{archetype: archetype, row: row})
	return id
}

// Alive reports whether id refers to an entity that has not been deleted.
func (s *Storage) Alive(id EntityId) bool {
	_, ok := s.locations.Get(id)
	return ok
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	return s.locations.Len()
}

// Delete removes all data related to the entity ID
func (s *Storage) Delete(id EntityId) {
	loc, ok := s.locations.Get(id)
	if !ok {
		return
	}
	s.removeRow(loc)
	s.locations.Del(id)
}

func (s *Storage) removeRow(loc entityLocation) {
	if moved, ok := loc.archetype.remove(loc.row); ok {
		s.locations.Put(moved, loc)
	}
}

// AddComponent attaches component to the entity, moving it to the matching archetype.
// If the entity already has a component of that type, the value is overwritten in place.
func (s *Storage) AddComponent(id EntityId, component any) {
	loc, ok := s.locations.Get(id)
	if !ok {
		return
	}
	oldArchetype := loc.archetype

	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	if idx := oldArchetype.column(compType); idx != -1 {
		oldArchetype.storages[idx].Set(loc.row, component)
		return
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, oldArchetype.GetComponent(loc.row, typ))
		}
	}

	s.move(id, loc, s.archetypeFor(newTypes), components)
}

// RemoveComponent detaches a component type from the entity. An entity left without
// components is deleted.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) {
	loc, ok := s.locations.Get(id)
	if !ok {
		return
	}
	oldArchetype := loc.archetype
	if !oldArchetype.HasComponent(compType) {
		return
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		s.Delete(id)
		return
	}

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		components = append(components, oldArchetype.GetComponent(loc.row, typ))
	}

	s.move(id, loc, s.archetypeFor(newTypes), components)
}

// move copies components into a new row of dst before releasing the old row, since
// the component pointers alias the old columns.
func (s *Storage) move(id EntityId, from entityLocation, dst *Archetype, components []any) {
	row := dst.spawn(id, components)
	s.removeRow(from)
	s.locations.Put(id, entityLocation{archetype: dst, row: row})
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	loc, ok := s.locations.Get(id)
	if !ok {
		return nil
	}
	return loc.archetype.GetComponent(loc.row, compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	loc, ok := s.locations.Get(id)
	if !ok {
		return false
	}
	return loc.archetype.HasComponent(compType)
}

// ArchetypeOf returns the archetype currently holding the entity.
func (s *Storage) ArchetypeOf(id EntityId) *Archetype {
	loc, ok := s.locations.Get(id)
	if !ok {
		return nil
	}
	return loc.archetype
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)

		// If it's a pointer, get the underlying type
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		// Components can be structs or primitives (int, string, etc.)
		// But not pointers, maps, channels, or functions (those aren't value types)
		if compType.Kind() == reflect.Ptr || compType.Kind() == reflect.Map ||
			compType.Kind() == reflect.Chan || compType.Kind() == reflect.Func {
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		// Use the type's pointer as a unique identifier
		ptr := (*iface)(unsafe.Pointer(&t)).data
		val := uint32(uintptr(ptr))

		// Mix in all 4 bytes if on 64-bit system
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uintptr(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a pointer to the entity's T component, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	component, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return component
}
