package kanren

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ichiban/kanren/engine"
)

// Engine is a relational query engine with a base of facts.
// The zero value is not usable. Use New instead.
type Engine struct {
	logger    *zap.Logger
	queryOpts []engine.QueryOption

	mu        sync.RWMutex
	relations map[string]*relation
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. By default, the engine doesn't log anything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithOccursCheck enables the occurs check in every query of the engine.
func WithOccursCheck(b bool) Option {
	return func(e *Engine) {
		e.queryOpts = append(e.queryOpts, engine.WithOccursCheck(b))
	}
}

// WithEquality sets the comparator of atom values for every query of the engine.
func WithEquality(equal func(a, b interface{}) bool) Option {
	return func(e *Engine) {
		e.queryOpts = append(e.queryOpts, engine.WithEquality(equal))
	}
}

// New creates a new engine without any facts.
func New(opts ...Option) *Engine {
	e := Engine{
		logger:    zap.NewNop(),
		relations: map[string]*relation{},
	}
	for _, o := range opts {
		o(&e)
	}
	return &e
}

// Run returns at most n answers of the goal build returns for a query variable.
func (e *Engine) Run(ctx context.Context, n int, build func(q engine.Variable) engine.Goal) ([]engine.Term, error) {
	if build == nil {
		return nil, &engine.TypeError{Type: engine.ValidTypeGoal, Culprit: build}
	}
	return e.RunN(ctx, n, 1, func(qs ...engine.Variable) engine.Goal {
		return build(qs[0])
	})
}

// RunN returns at most n answers of the goal build returns for k query variables.
// Answers of a query with more than one variable are lists of the variables' terms.
func (e *Engine) RunN(ctx context.Context, n, k int, build func(qs ...engine.Variable) engine.Goal) ([]engine.Term, error) {
	if build == nil {
		return nil, &engine.TypeError{Type: engine.ValidTypeGoal, Culprit: build}
	}

	q := engine.NewQuery(e.queryOpts...)
	vs := q.Fresh(k)

	id := uuid.New()
	logger := e.logger.With(zap.Stringer("query", id))
	logger.Debug("query started", zap.Int("limit", n), zap.Int("vars", len(vs)))
	start := time.Now()

	ret, err := q.Run(ctx, n, build(vs...), vs...)
	if err != nil {
		logger.Warn("query failed", zap.Int("answers", len(ret)), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return ret, err
	}
	logger.Debug("query finished", zap.Int("answers", len(ret)), zap.Duration("elapsed", time.Since(start)))
	return ret, nil
}

// RunAll returns the lazy sequence of answers of the goal build returns for a query variable named "q".
func (e *Engine) RunAll(ctx context.Context, build func(q engine.Variable) engine.Goal) *Solutions {
	if build == nil {
		return e.Query(ctx, []string{"q"}, nil)
	}
	return e.Query(ctx, []string{"q"}, func(vs ...engine.Variable) engine.Goal {
		return build(vs[0])
	})
}

// Query returns the lazy sequence of answers of the goal build returns for query variables named names.
func (e *Engine) Query(ctx context.Context, names []string, build func(vs ...engine.Variable) engine.Goal) *Solutions {
	id := uuid.New()
	s := Solutions{
		id:     id,
		names:  names,
		logger: e.logger.With(zap.Stringer("query", id)),
		start:  time.Now(),
	}
	if build == nil {
		s.err = &engine.TypeError{Type: engine.ValidTypeGoal, Culprit: build}
		return &s
	}

	q := engine.NewQuery(e.queryOpts...)
	vs := q.Fresh(len(names))
	s.logger.Debug("query started", zap.Strings("vars", names))
	s.sols = q.RunAll(ctx, build(vs...), vs...)
	return &s
}
