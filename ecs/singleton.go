package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton provides typed access to a single value that is not attached to any
// entity, such as clocks, input state or plugin settings.
type Singleton[T any] struct {
	storage      *Storage
	componentPtr unsafe.Pointer
}

// NewSingleton returns an accessor for the T singleton, creating it from the optional
// initializer (or the zero value) when the storage does not hold one yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	typ := reflect.TypeFor[T]()

	entry := storage.getSingletonEntry(typ)
	if entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(&value)
		entry = storage.getSingletonEntry(typ)
	}

	return &Singleton[T]{
		storage:      storage,
		componentPtr: entry.dataPtr,
	}
}

// Init binds the accessor to storage. The Scheduler calls it for Singleton fields of
// registered systems.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentPtr = nil
	s.resolve()
}

func (s *Singleton[T]) resolve() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.componentPtr = entry.dataPtr
	}
}

// Get returns the singleton, or nil if it has not been added to storage.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.resolve()
	}
	return (*T)(s.componentPtr)
}

// Exists reports whether the singleton has been added to storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
