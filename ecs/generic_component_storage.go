package ecs

import (
	"reflect"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS systems to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be used.
// Registering the same type twice is a no-op.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if _, ok := r.factories[t]; ok {
		return
	}
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// IsRegistered reports whether T has been registered.
func IsRegistered[T any](r *ComponentRegistry) bool {
	_, ok := r.factories[reflect.TypeFor[T]()]
	return ok
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const (
	genericBlockSize = 64
)

// genericComponentStorage stores components of type T densely in fixed-size blocks.
// Blocks are heap allocated individually so component pointers survive growth;
// only SwapRemove relocates a value.
type genericComponentStorage[T any] struct {
	blocks []*[genericBlockSize]T
	length int
}

func (cs *genericComponentStorage[T]) slot(index int) *T {
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

func unwrap[T any](item any) (T, bool) {
	if ptr, ok := item.(*T); ok {
		return *ptr, true
	}
	val, ok := item.(T)
	return val, ok
}

// Append adds a component to the end of the column and returns its index.
func (cs *genericComponentStorage[T]) Append(item any) int {
	value, ok := unwrap[T](item)
	if !ok {
		return -1
	}

	index := cs.length
	if index/genericBlockSize >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, new([genericBlockSize]T))
	}
	*cs.slot(index) = value
	cs.length++
	return index
}

// Set overwrites the component at index.
func (cs *genericComponentStorage[T]) Set(index int, item any) bool {
	if index < 0 || index >= cs.length {
		return false
	}
	value, ok := unwrap[T](item)
	if !ok {
		return false
	}
	*cs.slot(index) = value
	return true
}

// Get returns a pointer to the component at the given index.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if index < 0 || index >= cs.length {
		return nil
	}
	return cs.slot(index)
}

// SwapRemove moves the last component into index and shrinks the column by one.
func (cs *genericComponentStorage[T]) SwapRemove(index int) {
	if index < 0 || index >= cs.length {
		return
	}

	last := cs.length - 1
	if index != last {
		*cs.slot(index) = *cs.slot(last)
	}
	var zero T
	*cs.slot(last) = zero
	cs.length--
}

func (cs *genericComponentStorage[T]) Len() int {
	return cs.length
}
