package typeinfo

import (
	"fmt"
	"go/token"
	"go/types"
)

// Type describes a type information. It holds the parts of [types.Type] that
// matter from the lens generator's perspective: whether the type is a struct,
// which fields it has, and how to refer to it in diagnostics.
type Type struct {
	T types.Type

	Basic     *types.Basic
	Array     *types.Array
	Slice     *types.Slice
	Map       *types.Map
	Struct    *types.Struct
	Interface *types.Interface
	Pointer   *types.Pointer
	Chan      *types.Chan
	Named     *types.Named

	Elem *Type
}

func (t Type) Type() types.Type { return t.T }
func (t Type) String() string   { return t.T.String() }

func (t Type) IsStruct() bool  { return t.Struct != nil }
func (t Type) IsPointer() bool { return t.Pointer != nil }
func (t Type) IsNamed() bool   { return t.Named != nil }

func (t Type) Identical(u Type) bool { return types.Identical(t.T, u.T) }

// TypeOf inspects the given type and returns a new [Type].
func TypeOf(t types.Type) Type {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return Type{T: t, Basic: tt}
	case *types.Array:
		elem := TypeOf(tt.Elem())
		return Type{T: t, Array: tt, Elem: &elem}
	case *types.Slice:
		elem := TypeOf(tt.Elem())
		return Type{T: t, Slice: tt, Elem: &elem}
	case *types.Map:
		return Type{T: t, Map: tt}
	case *types.Struct:
		return Type{T: t, Struct: tt}
	case *types.Interface:
		return Type{T: t, Interface: tt}
	case *types.Pointer:
		elem := TypeOf(tt.Elem())
		return Type{T: t, Pointer: tt, Elem: &elem}
	case *types.Chan:
		return Type{T: t, Chan: tt}
	case *types.Named:
		info := TypeOf(tt.Underlying())
		info.T = t
		info.Named = tt
		return info
	case *types.Signature:
		return Type{T: t}
	case *types.Tuple:
		if tt.Len() == 0 {
			return Type{T: t}
		}
	}
	panic(fmt.Errorf("unknown type: %T", t))
}

// Pkg returns the package where the type is defined. It returns nil if the type
// is not a named type.
func (t Type) Pkg() *types.Package {
	if !t.IsNamed() {
		return nil
	}
	return t.Named.Obj().Pkg()
}

// Pos returns the position where the type is defined. It returns token.NoPos if
// the type is not a named type.
func (t Type) Pos() token.Pos {
	if t.IsNamed() {
		return t.Named.Obj().Pos()
	}
	if t.IsPointer() {
		return t.Elem.Pos()
	}
	return token.NoPos
}

// Name returns the declared name of the type, or "" if the type is not named.
func (t Type) Name() string {
	if !t.IsNamed() {
		return ""
	}
	return t.Named.Obj().Name()
}

// StructField returns the struct field with the given name. If the type is not
// a struct or the field does not exist, it returns nil and false.
func (t Type) StructField(name string) (*types.Var, bool) {
	if !t.IsStruct() {
		return nil, false
	}

	for field := range t.Struct.Fields() {
		if field.Name() == name {
			return field, true
		}
	}

	return nil, false
}

// FieldNames returns the names of all fields of the struct type, in
// declaration order. It returns nil if the type is not a struct.
func (t Type) FieldNames() []string {
	if !t.IsStruct() {
		return nil
	}

	var names []string
	for field := range t.Struct.Fields() {
		names = append(names, field.Name())
	}
	return names
}
