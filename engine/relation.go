package engine

// Conso succeeds if p is a pair of first and rest.
func Conso(first, rest, p Term) Goal {
	return Eq(Cons(first, rest), p)
}

// Firsto succeeds if first is the first element of p.
func Firsto(p, first Term) Goal {
	return Fresh1(func(rest Variable) Goal {
		return Conso(first, rest, p)
	})
}

// Resto succeeds if rest is p without its first element.
func Resto(p, rest Term) Goal {
	return Fresh1(func(first Variable) Goal {
		return Conso(first, rest, p)
	})
}

// Nullo succeeds if t is the empty list.
func Nullo(t Term) Goal {
	return Eq(t, Nil)
}

// Pairo succeeds if p is a pair.
func Pairo(p Term) Goal {
	return Fresh2(func(first, rest Variable) Goal {
		return Conso(first, rest, p)
	})
}

// Appendo succeeds if out is the concatenation of l and s.
func Appendo(l, s, out Term) Goal {
	return Disj(
		Conj(Nullo(l), Eq(s, out)),
		Fresh3(func(first, rest, res Variable) Goal {
			return Conj(
				Conso(first, rest, l),
				Conso(first, res, out),
				Appendo(rest, s, res),
			)
		}),
	)
}

// Alwayso succeeds infinitely many times.
func Alwayso() Goal {
	return Disj(Succeed, Delay(Alwayso))
}

// Nevero never succeeds nor terminates.
func Nevero() Goal {
	return Delay(Nevero)
}
