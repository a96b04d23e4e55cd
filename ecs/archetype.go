package ecs

import (
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype represents a unique combination of component types.
// Rows are dense: row i of every column belongs to entities[i].
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	entities []EntityId
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

func (a *Archetype) column(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// spawn appends a row for id holding the given components and returns the row.
func (a *Archetype) spawn(id EntityId, components []any) int {
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		if idx := a.column(compType); idx != -1 {
			a.storages[idx].Append(comp)
		}
	}

	a.entities = append(a.entities, id)
	return len(a.entities) - 1
}

// remove deletes a row by swapping the last row into its place. It returns the
// entity that now occupies row, if any moved.
func (a *Archetype) remove(row int) (EntityId, bool) {
	last := len(a.entities) - 1
	if row < 0 || row > last {
		return 0, false
	}

	for _, storage := range a.storages {
		storage.SwapRemove(row)
	}

	moved := a.entities[last]
	a.entities[row] = moved
	a.entities = a.entities[:last]
	if row == last {
		return 0, false
	}
	return moved, true
}

// GetComponent returns a pointer to the component of the given type stored at row.
func (a *Archetype) GetComponent(row int, compType reflect.Type) any {
	idx := a.column(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(row)
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of entities stored in the archetype.
func (a *Archetype) Len() int {
	return len(a.entities)
}

// Iter returns an iterator over the entities of this archetype in row order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		for _, id := range a.entities {
			if !yield(id) {
				return
			}
		}
	}
}
