package ecs

import (
	"reflect"
	"unsafe"
)

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// AddSingleton stores value as the singleton of its type, replacing any previous one.
// Pointers to an existing singleton stay valid; the value is copied into it.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	v := reflect.ValueOf(value)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
		v = v.Elem()
	}

	if entry, ok := s.singletons[typ]; ok {
		entry.value.Elem().Set(v)
		return
	}

	ptr := reflect.New(typ)
	ptr.Elem().Set(v)
	s.singletons[typ] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton points *out at the stored singleton of type T, where out is a **T.
// Returns false if no singleton of that type exists.
func (s *Storage) ReadSingleton(out any) bool {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Ptr || target.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	entry := s.getSingletonEntry(target.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	target.Elem().Set(entry.value)
	return true
}

// RemoveSingleton deletes the singleton of the given type.
func (s *Storage) RemoveSingleton(typ reflect.Type) {
	delete(s.singletons, typ)
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}
