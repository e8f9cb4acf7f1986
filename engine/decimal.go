package engine

import (
	"fmt"

	"github.com/cockroachdb/apd"
)

// Decimal is an arbitrary-precision number as an atom value.
// Two decimals are equal if they are numerically equal, e.g. 1.0 and 1.00.
type Decimal struct {
	d *apd.Decimal
}

// NewDecimal parses s into a Decimal atom.
func NewDecimal(s string) (Atom, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Atom{}, fmt.Errorf("decimal %q: %w", s, err)
	}
	return DecimalOf(d), nil
}

// DecimalOf returns a Decimal atom of d.
func DecimalOf(d *apd.Decimal) Atom {
	return NewAtom(Decimal{d: d})
}

// Int returns a Decimal atom of n.
func Int(n int64) Atom {
	return DecimalOf(apd.New(n, 0))
}

// ParseAtom returns a Decimal atom if s is a number. Otherwise, it returns an atom of the string s.
func ParseAtom(s string) Atom {
	if a, err := NewDecimal(s); err == nil && isNumeric(s) {
		return a
	}
	return NewAtom(s)
}

// isNumeric excludes the special values apd accepts, such as NaN and Infinity.
func isNumeric(s string) bool {
	digit := false
	for _, r := range s {
		switch {
		case '0' <= r && r <= '9':
			digit = true
		case r == '-', r == '+', r == '.', r == 'e', r == 'E':
		default:
			return false
		}
	}
	return digit
}

// Apd returns the underlying decimal.
func (d Decimal) Apd() *apd.Decimal {
	return d.d
}

// Equal checks if other is a numerically equal Decimal.
func (d Decimal) Equal(other interface{}) bool {
	o, ok := other.(Decimal)
	if !ok || d.d == nil || o.d == nil {
		return ok && d.d == o.d
	}
	return d.d.Cmp(o.d) == 0
}

func (d Decimal) String() string {
	if d.d == nil {
		return "0"
	}
	return d.d.String()
}
