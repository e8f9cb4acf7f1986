package engine

import (
	"context"
)

// Query is the scope of a top-level invocation. It owns the generator of variables,
// so independent queries never share variable identities.
type Query struct {
	gen     Generator
	unifier Unifier
}

// QueryOption configures a Query.
type QueryOption func(*Query)

// WithOccursCheck sets if unification performs the occurs check.
func WithOccursCheck(b bool) QueryOption {
	return func(q *Query) {
		q.unifier.OccursCheck = b
	}
}

// WithEquality sets the comparator of atom values.
func WithEquality(equal func(a, b interface{}) bool) QueryOption {
	return func(q *Query) {
		q.unifier.Equal = equal
	}
}

// NewQuery creates a new query.
func NewQuery(opts ...QueryOption) *Query {
	var q Query
	for _, o := range opts {
		o(&q)
	}
	return &q
}

// Fresh allocates n query variables.
func (q *Query) Fresh(n int) []Variable {
	return q.gen.Fresh(n)
}

// State returns the initial state of a search: the empty substitution.
func (q *Query) State() State {
	return State{
		next:    q.gen.next,
		unifier: &q.unifier,
	}
}

// RunAll starts the search of goal and returns the lazy sequence of its answers reified for vars.
// No search happens until Solutions.Next is called.
// Variables allocated by q.Fresh after RunAll may collide with the ones the search introduces.
func (q *Query) RunAll(ctx context.Context, goal Goal, vars ...Variable) *Solutions {
	if ctx == nil {
		ctx = context.Background()
	}
	s := q.State()
	return &Solutions{
		ctx:  ctx,
		vars: vars,
		stream: Suspend(func() *Stream {
			return goal.call(s)
		}),
	}
}

// Run returns at most n answers of goal reified for vars.
// It stops the search as soon as it finds n answers. If n is not positive, it doesn't search at all.
func (q *Query) Run(ctx context.Context, n int, goal Goal, vars ...Variable) ([]Term, error) {
	ret := []Term{}
	if n <= 0 {
		return ret, nil
	}
	sols := q.RunAll(ctx, goal, vars...)
	defer sols.Close()
	for len(ret) < n && sols.Next() {
		ret = append(ret, sols.Current())
	}
	return ret, sols.Err()
}

// Run runs the goal build returns for a fresh query variable and returns at most n answers.
func Run(ctx context.Context, n int, build func(q Variable) Goal, opts ...QueryOption) ([]Term, error) {
	if build == nil {
		return nil, &TypeError{Type: ValidTypeGoal, Culprit: build}
	}
	q := NewQuery(opts...)
	v := q.Fresh(1)[0]
	return q.Run(ctx, n, build(v), v)
}

// RunAll runs the goal build returns for a fresh query variable and returns the lazy sequence of its answers.
func RunAll(ctx context.Context, build func(q Variable) Goal, opts ...QueryOption) *Solutions {
	if build == nil {
		return &Solutions{err: &TypeError{Type: ValidTypeGoal, Culprit: build}}
	}
	q := NewQuery(opts...)
	v := q.Fresh(1)[0]
	return q.RunAll(ctx, build(v), v)
}

// Solutions is the lazy sequence of answers of a query. Every time the Next method is called, it searches for the
// next answer. The Current method returns the reified answer.
type Solutions struct {
	ctx    context.Context
	vars   []Variable
	stream *Stream

	// the node of the current answer. its tail is forced on the next call of Next.
	last    *Stream
	current Term
	err     error
	closed  bool
}

// Next searches for the next answer. It returns false if there's no further answers, if there's an error, or if
// the Solutions is closed.
func (s *Solutions) Next() bool {
	if s.closed || s.err != nil {
		return false
	}
	if s.last != nil {
		s.stream, s.last = s.last.force(), nil
	}
	n, err := s.stream.realize(s.ctx)
	if err != nil {
		s.err = err
		return false
	}
	switch n.kind {
	case streamCons:
		s.last = n
		s.current = Reify(n.head.Env, s.vars...)
		return true
	case streamError:
		s.err = n.err
		return false
	default:
		_ = s.Close()
		return false
	}
}

// Current returns the current answer.
func (s *Solutions) Current() Term {
	return s.current
}

// Env returns the substitution of the current answer.
func (s *Solutions) Env() *Env {
	if s.last == nil {
		return nil
	}
	return s.last.head.Env
}

// Err returns the error if exists.
func (s *Solutions) Err() error {
	return s.err
}

// Collect exhausts the search and returns all the remaining answers.
// It never returns if there are infinitely many answers.
func (s *Solutions) Collect() ([]Term, error) {
	ret := []Term{}
	for s.Next() {
		ret = append(ret, s.Current())
	}
	return ret, s.Err()
}

// Close terminates the search. The remaining work is discarded.
func (s *Solutions) Close() error {
	s.closed = true
	s.stream, s.last = nil, nil
	return nil
}
