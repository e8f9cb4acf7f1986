package engine

import (
	"fmt"
	"reflect"
)

// Nil is the empty sequence. Lists are pairs terminated by Nil.
var Nil = Atom{value: emptyList{}}

type emptyList struct{}

// Atom is an opaque value.
type Atom struct {
	value interface{}
}

// NewAtom returns an atom of the given value.
func NewAtom(v interface{}) Atom {
	return Atom{value: v}
}

// Value returns the underlying value of the atom.
func (a Atom) Value() interface{} {
	return a.value
}

func (Atom) term() {}

func (a Atom) String() string {
	switch v := a.value.(type) {
	case emptyList:
		return "[]"
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func isNil(t Term) bool {
	a, ok := t.(Atom)
	if !ok {
		return false
	}
	_, ok = a.value.(emptyList)
	return ok
}

// Equaler is implemented by atom values which define their own equality.
type Equaler interface {
	Equal(other interface{}) bool
}

// DefaultEqual compares atom values.
// If either value is an Equaler, it decides. Otherwise, comparable values of the same type are compared with ==
// and the rest with reflect.DeepEqual.
func DefaultEqual(a, b interface{}) bool {
	if e, ok := a.(Equaler); ok {
		return e.Equal(b)
	}
	if e, ok := b.(Equaler); ok {
		return e.Equal(a)
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta != nil && ta.Comparable() && ta.Kind() != reflect.Interface && ta.Kind() != reflect.Struct && ta.Kind() != reflect.Array {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
