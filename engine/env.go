package engine

type color int8

const (
	red color = iota
	black
)

// Env is a substitution, a persistent mapping from variables to terms.
// The nil *Env is the empty substitution.
// This implementation is based on red-black tree from Purely Functional Data Structures by Okasaki.
// Bind never modifies an existing Env, so Envs derived from a common ancestor share its nodes.
type Env struct {
	color       color
	left, right *Env
	binding
}

type binding struct {
	variable Variable
	value    Term
}

// NewEnv returns the empty substitution.
func NewEnv() *Env {
	return nil
}

// Lookup returns a term that the given variable is bound to.
func (e *Env) Lookup(v Variable) (Term, bool) {
	node := e
	for node != nil {
		switch {
		case v < node.variable:
			node = node.left
		case v > node.variable:
			node = node.right
		default:
			return node.value, true
		}
	}
	return nil, false
}

// Bind returns a new Env in which v is bound to t.
func (e *Env) Bind(v Variable, t Term) *Env {
	ret := e.insert(v, t)
	ret.color = black
	return ret
}

// insert returns a fresh node. The caller may modify it.
func (e *Env) insert(v Variable, t Term) *Env {
	if e == nil {
		return &Env{color: red, binding: binding{variable: v, value: t}}
	}
	ret := *e
	switch {
	case v < e.variable:
		ret.left = e.left.insert(v, t)
		ret.balance()
	case v > e.variable:
		ret.right = e.right.insert(v, t)
		ret.balance()
	default:
		ret.value = t
	}
	return &ret
}

func (e *Env) balance() {
	if e.color != black {
		return
	}
	var (
		a, b, c, d *Env
		x, y, z    binding
	)
	switch {
	case e.left.isRed() && e.left.left.isRed():
		l := e.left
		a, b, c, d = l.left.left, l.left.right, l.right, e.right
		x, y, z = l.left.binding, l.binding, e.binding
	case e.left.isRed() && e.left.right.isRed():
		l := e.left
		a, b, c, d = l.left, l.right.left, l.right.right, e.right
		x, y, z = l.binding, l.right.binding, e.binding
	case e.right.isRed() && e.right.left.isRed():
		r := e.right
		a, b, c, d = e.left, r.left.left, r.left.right, r.right
		x, y, z = e.binding, r.left.binding, r.binding
	case e.right.isRed() && e.right.right.isRed():
		r := e.right
		a, b, c, d = e.left, r.left, r.right.left, r.right.right
		x, y, z = e.binding, r.binding, r.right.binding
	default:
		return
	}
	*e = Env{
		color:   red,
		left:    &Env{color: black, left: a, right: b, binding: x},
		right:   &Env{color: black, left: c, right: d, binding: z},
		binding: y,
	}
}

func (e *Env) isRed() bool {
	return e != nil && e.color == red
}

// Len returns the number of bindings.
func (e *Env) Len() int {
	n := 0
	for stack := []*Env{e}; len(stack) > 0; {
		e, stack = stack[len(stack)-1], stack[:len(stack)-1]
		if e == nil {
			continue
		}
		n++
		stack = append(stack, e.left, e.right)
	}
	return n
}

// Resolve follows the variable chain and returns the first non-variable term or the last free variable.
func (e *Env) Resolve(t Term) Term {
	for {
		v, ok := t.(Variable)
		if !ok {
			return t
		}
		ref, ok := e.Lookup(v)
		if !ok {
			return v
		}
		t = ref
	}
}

// Simplify resolves every variable in t, including the ones nested in pairs.
func (e *Env) Simplify(t Term) Term {
	return e.walk(t, func(v Variable) Term {
		return v
	})
}

// walk rebuilds t with every variable resolved. Free variables are replaced by free(v).
// Pairs are visited first-before-rest so free is called in the order of appearance.
func (e *Env) walk(t Term, free func(Variable) Term) Term {
	type task struct {
		term  Term
		build bool
	}
	var (
		tasks  = []task{{term: t}}
		values []Term
	)
	for len(tasks) > 0 {
		var k task
		k, tasks = tasks[len(tasks)-1], tasks[:len(tasks)-1]
		if k.build {
			n := len(values)
			values = append(values[:n-2], Cons(values[n-2], values[n-1]))
			continue
		}
		switch t := e.Resolve(k.term).(type) {
		case Variable:
			values = append(values, free(t))
		case *Pair:
			tasks = append(tasks, task{build: true}, task{term: t.Rest}, task{term: t.First})
		default:
			values = append(values, t)
		}
	}
	return values[0]
}

// freeVariables extracts variables in the given terms in the order of appearance.
func (e *Env) freeVariables(ts ...Term) []Variable {
	var (
		fvs  []Variable
		seen = map[Variable]struct{}{}
	)
	for _, t := range ts {
		e.walk(t, func(v Variable) Term {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				fvs = append(fvs, v)
			}
			return v
		})
	}
	return fvs
}

// Contains checks if t contains v once resolved.
func (e *Env) Contains(t Term, v Variable) bool {
	for stack := []Term{t}; len(stack) > 0; {
		t, stack = stack[len(stack)-1], stack[:len(stack)-1]
		switch t := e.Resolve(t).(type) {
		case Variable:
			if t == v {
				return true
			}
		case *Pair:
			stack = append(stack, t.Rest, t.First)
		}
	}
	return false
}

// Unify unifies t and u under e with the default unifier.
func (e *Env) Unify(t, u Term) (*Env, bool) {
	return Unify(t, u, e)
}
