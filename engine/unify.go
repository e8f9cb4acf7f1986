package engine

// Unifier computes the extension of a substitution that makes two terms structurally equal.
// The zero value is a unifier without occurs check which compares atoms with DefaultEqual.
type Unifier struct {
	// OccursCheck refuses to bind a variable to a term containing the variable.
	OccursCheck bool

	// Equal compares atom values. If nil, DefaultEqual is used.
	Equal func(a, b interface{}) bool
}

// Unify unifies a and b under env with the zero Unifier.
func Unify(a, b Term, env *Env) (*Env, bool) {
	var u Unifier
	return u.Unify(a, b, env)
}

// Unify returns env extended with the bindings that make a and b equal.
// If there's no such extension, it returns nil and false. env itself is never modified.
func (u *Unifier) Unify(a, b Term, env *Env) (*Env, bool) {
	equal := u.Equal
	if equal == nil {
		equal = DefaultEqual
	}

	// pending pairs of terms. The pair on top is unified first.
	stack := []Term{a, b}
	for len(stack) > 0 {
		n := len(stack)
		x, y := env.Resolve(stack[n-2]), env.Resolve(stack[n-1])
		stack, stack[n-2], stack[n-1] = stack[:n-2], nil, nil

		if v, ok := y.(Variable); ok {
			if w, ok := x.(Variable); ok {
				switch {
				case v == w:
				case v > w:
					env = env.Bind(v, w)
				default:
					env = env.Bind(w, v)
				}
				continue
			}
			x, y = y, x
		}

		switch x := x.(type) {
		case Variable:
			if u.OccursCheck && env.Contains(y, x) {
				return nil, false
			}
			env = env.Bind(x, y)
		case Atom:
			y, ok := y.(Atom)
			if !ok || !equal(x.value, y.value) {
				return nil, false
			}
		case *Pair:
			y, ok := y.(*Pair)
			if !ok {
				return nil, false
			}
			stack = append(stack, x.Rest, y.Rest, x.First, y.First)
		default:
			return nil, false
		}
	}
	return env, true
}
