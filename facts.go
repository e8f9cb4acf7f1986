package kanren

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ichiban/kanren/engine"
)

type relation struct {
	arity  int
	tuples []engine.Term
}

// AddFact adds a tuple of args to the relation name.
// The args are converted by engine.ValueOf. All the tuples of a relation have the same arity.
func (e *Engine) AddFact(name string, args ...interface{}) error {
	ts := make([]engine.Term, len(args))
	for i, a := range args {
		t, err := engine.ValueOf(a)
		if err != nil {
			return fmt.Errorf("%s/%d: argument %d: %w", name, len(args), i, err)
		}
		ts[i] = t
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addFact(name, ts)
}

func (e *Engine) addFact(name string, args []engine.Term) error {
	r, ok := e.relations[name]
	if !ok {
		r = &relation{arity: len(args)}
		e.relations[name] = r
	}
	if r.arity != len(args) {
		return fmt.Errorf("%s/%d: arity mismatch: expected %d", name, len(args), r.arity)
	}
	r.tuples = append(r.tuples, engine.List(args...))
	return nil
}

// LoadFacts reads a YAML document of relations and adds them to the fact base.
// The document is a mapping from relation names to sequences of tuples, e.g.
//
//	parent:
//	  - [alice, bob]
//	  - [bob, carol]
//
// Integers and floats become decimals, nested sequences become lists, and other scalars become atoms of their values.
// Either all the facts in the document are added or none of them.
func (e *Engine) LoadFacts(r io.Reader) error {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("load facts: %w", err)
	}

	facts, err := parseFacts(&doc)
	if err != nil {
		return fmt.Errorf("load facts: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Validate before touching the fact base.
	arities := map[string]int{}
	for _, f := range facts {
		a, ok := arities[f.name]
		if !ok {
			if r, ok := e.relations[f.name]; ok {
				a = r.arity
			} else {
				a = len(f.args)
			}
			arities[f.name] = a
		}
		if a != len(f.args) {
			return fmt.Errorf("load facts: line %d: %s/%d: arity mismatch: expected %d", f.line, f.name, len(f.args), a)
		}
	}

	counts := map[string]int{}
	for _, f := range facts {
		if err := e.addFact(f.name, f.args); err != nil {
			return fmt.Errorf("load facts: line %d: %w", f.line, err)
		}
		counts[f.name]++
	}
	for n, c := range counts {
		e.logger.Debug("facts loaded", zap.String("relation", n), zap.Int("tuples", c))
	}
	return nil
}

type fact struct {
	name string
	args []engine.Term
	line int
}

func parseFacts(doc *yaml.Node) ([]fact, error) {
	n := doc
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, nil
		}
		n = n.Content[0]
	}
	n = deref(n)
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of relations", n.Line)
	}

	var ret []fact
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := deref(n.Content[i]), deref(n.Content[i+1])
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: expected a relation name", k.Line)
		}
		if v.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("line %d: %s: expected a sequence of tuples", v.Line, k.Value)
		}
		for _, c := range v.Content {
			c = deref(c)
			if c.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: %s: expected a tuple", c.Line, k.Value)
			}
			args := make([]engine.Term, len(c.Content))
			for j, a := range c.Content {
				t, err := nodeTerm(a)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", k.Value, err)
				}
				args[j] = t
			}
			ret = append(ret, fact{name: k.Value, args: args, line: c.Line})
		}
	}
	return ret, nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// nodeTerm converts a YAML node into a term.
func nodeTerm(n *yaml.Node) (engine.Term, error) {
	n = deref(n)
	switch n.Kind {
	case yaml.SequenceNode:
		ts := make([]engine.Term, len(n.Content))
		for i, c := range n.Content {
			t, err := nodeTerm(c)
			if err != nil {
				return nil, err
			}
			ts[i] = t
		}
		return engine.List(ts...), nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int":
			var i int64
			if err := n.Decode(&i); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return engine.Int(i), nil
		case "!!float":
			d, err := engine.NewDecimal(n.Value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return d, nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return engine.NewAtom(b), nil
		case "!!null":
			return nil, fmt.Errorf("line %d: %w", n.Line, &engine.TypeError{Type: engine.ValidTypeTerm})
		default:
			return engine.NewAtom(n.Value), nil
		}
	default:
		return nil, fmt.Errorf("line %d: %w", n.Line, &engine.TypeError{Type: engine.ValidTypeTerm, Culprit: n.Tag})
	}
}

// Fact returns a goal that succeeds once for every tuple of the relation name which unifies with args.
// The goal sees the tuples of the relation at the time it runs. Unknown relations and arity mismatches just fail.
func (e *Engine) Fact(name string, args ...engine.Term) engine.Goal {
	goal := engine.List(args...)
	return func(s engine.State) *engine.Stream {
		e.mu.RLock()
		r, ok := e.relations[name]
		var tuples []engine.Term
		if ok && r.arity == len(args) {
			tuples = r.tuples[:len(r.tuples):len(r.tuples)]
		}
		e.mu.RUnlock()
		return engine.Member(goal, tuples...)(s)
	}
}

// Relations returns the names and arities of the relations in the fact base, e.g. parent/2, sorted.
func (e *Engine) Relations() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ret := make([]string, 0, len(e.relations))
	for n, r := range e.relations {
		ret = append(ret, fmt.Sprintf("%s/%d", n, r.arity))
	}
	sort.Strings(ret)
	return ret
}
