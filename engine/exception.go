package engine

import (
	"errors"
	"fmt"
)

// ErrInstantiation reports a free variable where a bound term is required.
var ErrInstantiation = errors.New("instantiation error")

// ValidType is the correct type for an argument or one of its components.
type ValidType uint8

// ValidType is one of these values.
const (
	ValidTypeTerm ValidType = iota
	ValidTypeList
	ValidTypeGoal
)

func (t ValidType) String() string {
	return [...]string{
		ValidTypeTerm: "term",
		ValidTypeList: "list",
		ValidTypeGoal: "goal",
	}[t]
}

// TypeError reports a value of a wrong shape.
type TypeError struct {
	Type    ValidType
	Culprit interface{}
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error: expected %s, got %s", e.Type, culprit(e.Culprit))
}

// ValidDomain is the domain which the operation defines.
type ValidDomain uint8

// ValidDomain is one of these values.
const (
	ValidDomainNotLessThanZero ValidDomain = iota
)

func (d ValidDomain) String() string {
	return [...]string{
		ValidDomainNotLessThanZero: "not_less_than_zero",
	}[d]
}

// DomainError reports a value of a right type but out of the domain.
type DomainError struct {
	Domain  ValidDomain
	Culprit interface{}
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: expected %s, got %s", e.Domain, culprit(e.Culprit))
}

func culprit(c interface{}) string {
	switch c := c.(type) {
	case nil:
		return "nil"
	case Goal:
		if c == nil {
			return "nil goal"
		}
		return "goal"
	case func() Goal:
		if c == nil {
			return "nil goal"
		}
		return "goal"
	case func(...Variable) Goal:
		if c == nil {
			return "nil goal"
		}
		return "goal"
	case *Pair:
		if c == nil {
			return "nil pair"
		}
		return c.String()
	default:
		return fmt.Sprintf("%v (%T)", c, c)
	}
}
