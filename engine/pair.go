package engine

import (
	"strings"
)

// Pair is a composite of two terms. Sequences are nested pairs terminated by Nil.
type Pair struct {
	First, Rest Term
}

func (*Pair) term() {}

// Cons returns a pair of first and rest.
func Cons(first, rest Term) *Pair {
	return &Pair{First: first, Rest: rest}
}

// List returns a list of ts.
func List(ts ...Term) Term {
	return ListRest(Nil, ts...)
}

// ListRest returns a list of ts followed by rest.
func ListRest(rest Term, ts ...Term) Term {
	l := rest
	for i := len(ts) - 1; i >= 0; i-- {
		l = Cons(ts[i], l)
	}
	return l
}

func (p *Pair) String() string {
	var sb strings.Builder
	_ = sb.WriteByte('[')
	var t Term = p
	for i := 0; ; i++ {
		q, ok := t.(*Pair)
		if !ok {
			break
		}
		if i > 0 {
			_, _ = sb.WriteString(", ")
		}
		_, _ = sb.WriteString(q.First.String())
		t = q.Rest
	}
	if !isNil(t) {
		_ = sb.WriteByte('|')
		_, _ = sb.WriteString(t.String())
	}
	_ = sb.WriteByte(']')
	return sb.String()
}
