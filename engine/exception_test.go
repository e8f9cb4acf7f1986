package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeError_Error(t *testing.T) {
	for _, tt := range []struct {
		err error
		msg string
	}{
		{err: &TypeError{Type: ValidTypeTerm}, msg: "type error: expected term, got nil"},
		{err: &TypeError{Type: ValidTypeList, Culprit: NewAtom("foo")}, msg: "type error: expected list, got foo (engine.Atom)"},
		{err: &TypeError{Type: ValidTypeList, Culprit: ListRest(NewAtom("b"), NewAtom("a"))}, msg: "type error: expected list, got [a|b]"},
		{err: &TypeError{Type: ValidTypeGoal, Culprit: Goal(nil)}, msg: "type error: expected goal, got nil goal"},
		{err: &TypeError{Type: ValidTypeTerm, Culprit: (*Pair)(nil)}, msg: "type error: expected term, got nil pair"},
	} {
		t.Run(tt.msg, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.msg)
		})
	}
}

func TestDomainError_Error(t *testing.T) {
	assert.EqualError(t, &DomainError{Domain: ValidDomainNotLessThanZero, Culprit: -1}, "domain error: expected not_less_than_zero, got -1 (int)")
}
