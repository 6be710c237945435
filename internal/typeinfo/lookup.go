package typeinfo

import (
	"golang.org/x/tools/go/types/typeutil"
)

// Lookup indexes values by a receiver type and a field name. The generator
// uses it to share one implicit segment lens between every dotted path that
// traverses the same field. Receiver types are compared structurally through
// [typeutil.Map], so identical types from different positions collide as they
// should.
type Lookup[T any] struct {
	byRecv *typeutil.Map // types.Type -> map[string]T
	hasher typeutil.Hasher
}

// NewLookup creates a new [Lookup].
func NewLookup[T any]() *Lookup[T] {
	hasher := typeutil.MakeHasher()
	byRecv := new(typeutil.Map)
	byRecv.SetHasher(hasher)
	return &Lookup[T]{byRecv, hasher}
}

// Put registers a value for the receiver type and field name. If one is
// already registered, it returns the old value and false.
func (l *Lookup[T]) Put(recv Type, field string, v T) (T, bool) {
	byField, ok := l.byRecv.At(recv.Type()).(map[string]T)
	if !ok {
		byField = make(map[string]T)
		l.byRecv.Set(recv.Type(), byField)
	}

	if old, ok := byField[field]; ok {
		return old, false
	}

	byField[field] = v
	return *new(T), true
}

// Get finds the value registered for the receiver type and field name.
func (l *Lookup[T]) Get(recv Type, field string) (T, bool) {
	if l == nil {
		return *new(T), false
	}

	byField, ok := l.byRecv.At(recv.Type()).(map[string]T)
	if !ok {
		return *new(T), false
	}

	v, ok := byField[field]
	return v, ok
}
