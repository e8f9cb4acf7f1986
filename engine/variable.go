package engine

import (
	"fmt"
)

// Variable is a logic variable. Its identity is its id, which is unique within a query.
type Variable int64

func (Variable) term() {}

func (v Variable) String() string {
	return fmt.Sprintf("_G%d", int64(v))
}

// Generator allocates variables for a query.
// A Generator belongs to a single query and is not safe for concurrent use.
type Generator struct {
	next Variable
}

// Fresh allocates n new variables.
func (g *Generator) Fresh(n int) []Variable {
	if n <= 0 {
		return nil
	}
	vs := make([]Variable, n)
	for i := range vs {
		vs[i] = g.next
		g.next++
	}
	return vs
}

// Placeholder is the canonical name reification gives to a variable left unbound.
type Placeholder int

func (p Placeholder) String() string {
	return fmt.Sprintf("_%d", int(p))
}
