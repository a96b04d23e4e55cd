package debugui

import (
	"reflect"
	"sync"
)

type fieldInfo struct {
	Name  string
	Index int
}

// fieldCache remembers the exported fields of struct types drawn by the inspector.
type fieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]fieldInfo
}

func newFieldCache() *fieldCache {
	return &fieldCache{fields: make(map[reflect.Type][]fieldInfo)}
}

func (c *fieldCache) get(t reflect.Type) []fieldInfo {
	c.mu.RLock()
	cached, ok := c.fields[t]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.fields[t]; ok {
		return cached
	}

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			if f := t.Field(i); f.IsExported() {
				fields = append(fields, fieldInfo{Name: f.Name, Index: i})
			}
		}
	}
	c.fields[t] = fields
	return fields
}

// setNumber stores f into an int, uint or float value, truncating toward zero for
// integers. Negative values are rejected for unsigned kinds.
func setNumber(v reflect.Value, f float64) bool {
	if !v.CanSet() {
		return false
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		v.SetFloat(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(int64(f))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if f < 0 {
			return false
		}
		v.SetUint(uint64(f))
	default:
		return false
	}
	return true
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
