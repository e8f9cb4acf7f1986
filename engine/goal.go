package engine

// State is what a goal receives: a substitution, the next unused variable, and the unifier of the query.
type State struct {
	Env *Env

	next    Variable
	unifier *Unifier
}

func (s State) unify(a, b Term) (*Env, bool) {
	if s.unifier == nil {
		return Unify(a, b, s.Env)
	}
	return s.unifier.Unify(a, b, s.Env)
}

// Goal maps a state to a stream of states, every way to extend the state that satisfies a relation.
type Goal func(State) *Stream

func (g Goal) call(s State) *Stream {
	if g == nil {
		return Error(&TypeError{Type: ValidTypeGoal, Culprit: g})
	}
	if str := g(s); str != nil {
		return str
	}
	return Empty()
}

// Succeed is a goal that succeeds once without extending the state.
func Succeed(s State) *Stream {
	return Unit(s)
}

// Fail is a goal that never succeeds.
func Fail(State) *Stream {
	return Empty()
}

// Throw returns a goal that terminates the search with err.
func Throw(err error) Goal {
	return func(State) *Stream {
		return Error(err)
	}
}

// Eq returns a goal that succeeds if a and b unify.
func Eq(a, b Term) Goal {
	if err := checkTerm(a); err != nil {
		return Throw(err)
	}
	if err := checkTerm(b); err != nil {
		return Throw(err)
	}
	return func(s State) *Stream {
		env, ok := s.unify(a, b)
		if !ok {
			return Empty()
		}
		s.Env = env
		return Unit(s)
	}
}

// Fresh returns a goal that introduces n new variables and runs the goal build returns for them.
func Fresh(n int, build func(vs ...Variable) Goal) Goal {
	switch {
	case n < 0:
		return Throw(&DomainError{Domain: ValidDomainNotLessThanZero, Culprit: n})
	case build == nil:
		return Throw(&TypeError{Type: ValidTypeGoal, Culprit: build})
	}
	return func(s State) *Stream {
		vs := make([]Variable, n)
		for i := range vs {
			vs[i] = s.next
			s.next++
		}
		return build(vs...).call(s)
	}
}

// Fresh1 introduces a single variable.
func Fresh1(build func(x Variable) Goal) Goal {
	return Fresh(1, func(vs ...Variable) Goal {
		return build(vs[0])
	})
}

// Fresh2 introduces two variables.
func Fresh2(build func(x, y Variable) Goal) Goal {
	return Fresh(2, func(vs ...Variable) Goal {
		return build(vs[0], vs[1])
	})
}

// Fresh3 introduces three variables.
func Fresh3(build func(x, y, z Variable) Goal) Goal {
	return Fresh(3, func(vs ...Variable) Goal {
		return build(vs[0], vs[1], vs[2])
	})
}

// Delay defers the construction of a goal until it runs. Recursive relations use it to stay finite.
func Delay(k func() Goal) Goal {
	if k == nil {
		return Throw(&TypeError{Type: ValidTypeGoal, Culprit: k})
	}
	return func(s State) *Stream {
		return Suspend(func() *Stream {
			return k().call(s)
		})
	}
}

// Conj returns a goal that succeeds if all the goals succeed.
// For every state of the first goal, the rest of the goals run and their streams are interleaved.
func Conj(goals ...Goal) Goal {
	if err := checkGoals(goals); err != nil {
		return Throw(err)
	}
	return conj(goals)
}

func conj(goals []Goal) Goal {
	switch len(goals) {
	case 0:
		return Succeed
	case 1:
		return goals[0]
	}
	g1, g2 := goals[0], conj(goals[1:])
	return func(s State) *Stream {
		return bind(g1.call(s), g2)
	}
}

// Disj returns a goal that succeeds if any of the goals succeeds.
// Results from the goals are interleaved so that an infinite goal doesn't starve the others.
func Disj(goals ...Goal) Goal {
	if err := checkGoals(goals); err != nil {
		return Throw(err)
	}
	return disj(goals)
}

func disj(goals []Goal) Goal {
	switch len(goals) {
	case 0:
		return Fail
	case 1:
		return goals[0]
	}
	g1, g2 := goals[0], disj(goals[1:])
	return func(s State) *Stream {
		return merge(Suspend(func() *Stream {
			return g1.call(s)
		}), Suspend(func() *Stream {
			return g2.call(s)
		}))
	}
}

func checkGoals(goals []Goal) error {
	for _, g := range goals {
		if g == nil {
			return &TypeError{Type: ValidTypeGoal, Culprit: g}
		}
	}
	return nil
}

// Member returns a goal that succeeds once for every element of ts which unifies with t, in order.
func Member(t Term, ts ...Term) Goal {
	if len(ts) == 0 {
		return Fail
	}
	return Disj(Eq(t, ts[0]), Delay(func() Goal {
		return Member(t, ts[1:]...)
	}))
}

// MemberOf is Member for a list term.
// If the list turns out to be an improper list, the search terminates with a type error.
// If the list ends with a free variable, it terminates with ErrInstantiation.
func MemberOf(t, list Term) Goal {
	if err := checkTerm(list); err != nil {
		return Throw(err)
	}
	if a, ok := list.(Atom); ok && !isNil(a) {
		return Throw(&TypeError{Type: ValidTypeList, Culprit: list})
	}
	return func(s State) *Stream {
		switch l := s.Env.Resolve(list).(type) {
		case Variable:
			return Error(ErrInstantiation)
		case *Pair:
			return Disj(Eq(t, l.First), Delay(func() Goal {
				return MemberOf(t, l.Rest)
			})).call(s)
		default:
			if isNil(l) {
				return Empty()
			}
			return Error(&TypeError{Type: ValidTypeList, Culprit: l})
		}
	}
}
