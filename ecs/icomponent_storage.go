package ecs

// iComponentStorage is a type-erased dense column of components.
type iComponentStorage interface {
	Append(item any) int
	Set(index int, item any) bool
	SwapRemove(index int)
	Get(index int) any
	Len() int
}
