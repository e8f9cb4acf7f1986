package engine

// Reify returns the canonical representation of vars under env.
// A single variable reifies to its term and multiple variables reify to a list of their terms.
// Variables left free are replaced with Placeholder atoms numbered in the order of appearance,
// so the result doesn't depend on the internal variable ids.
// env must be free of cycles: without the occurs check, unification may bind a variable to a term
// containing it, and reifying such a variable never returns. Use WithOccursCheck to rule that out.
func Reify(env *Env, vars ...Variable) Term {
	var t Term
	switch len(vars) {
	case 1:
		t = vars[0]
	default:
		ts := make([]Term, len(vars))
		for i, v := range vars {
			ts[i] = v
		}
		t = List(ts...)
	}

	names := map[Variable]Placeholder{}
	return env.walk(t, func(v Variable) Term {
		p, ok := names[v]
		if !ok {
			p = Placeholder(len(names))
			names[v] = p
		}
		return NewAtom(p)
	})
}
