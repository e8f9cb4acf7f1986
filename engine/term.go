package engine

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/cockroachdb/apd"
)

// Term is an atom, a variable, or a pair.
type Term interface {
	fmt.Stringer
	term()
}

// ValueOf converts a Go value into a term.
// Terms are returned as they are. Slices and arrays become lists. Go numbers and *apd.Decimal become Decimal atoms,
// so they unify with the numbers ParseAtom and fact files produce. NaN and infinities are rejected.
// Other values become atoms unless they are nil, maps, functions, or channels.
func ValueOf(v interface{}) (Term, error) {
	switch v := v.(type) {
	case nil:
		return nil, &TypeError{Type: ValidTypeTerm, Culprit: v}
	case *Pair:
		if v == nil {
			return nil, &TypeError{Type: ValidTypeTerm, Culprit: v}
		}
		return v, nil
	case Term:
		return v, nil
	case *apd.Decimal:
		if v == nil {
			return nil, &TypeError{Type: ValidTypeTerm, Culprit: v}
		}
		return DecimalOf(v), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		ts := make([]Term, rv.Len())
		for i := range ts {
			t, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			ts[i] = t
		}
		return List(ts...), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return DecimalOf(apd.New(rv.Int(), 0)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		d, _, err := apd.NewFromString(strconv.FormatUint(rv.Uint(), 10))
		if err != nil {
			return nil, err
		}
		return DecimalOf(d), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &TypeError{Type: ValidTypeTerm, Culprit: v}
		}
		d, _, err := apd.NewFromString(strconv.FormatFloat(f, 'g', -1, rv.Type().Bits()))
		if err != nil {
			return nil, err
		}
		return DecimalOf(d), nil
	case reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil, &TypeError{Type: ValidTypeTerm, Culprit: v}
	default:
		return NewAtom(v), nil
	}
}

// checkTerm reports a malformed term: nil, or a pair with a nil component.
func checkTerm(t Term) error {
	for stack := []Term{t}; len(stack) > 0; {
		t, stack = stack[len(stack)-1], stack[:len(stack)-1]
		switch t := t.(type) {
		case nil:
			return &TypeError{Type: ValidTypeTerm, Culprit: nil}
		case *Pair:
			if t == nil {
				return &TypeError{Type: ValidTypeTerm, Culprit: t}
			}
			stack = append(stack, t.Rest, t.First)
		}
	}
	return nil
}
