package kanren

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ichiban/kanren/engine"
)

// Request is a query in a batch.
type Request struct {
	// Name identifies the request in the results and the logs.
	Name string

	// Limit is the maximum number of answers. If it's not positive, all the answers are collected.
	Limit int

	// Vars is the number of query variables. Answers of a request with more than one variable are lists.
	Vars int

	// Goal builds the goal for the query variables.
	Goal func(vs ...engine.Variable) engine.Goal
}

// Result is the answers to a Request.
type Result struct {
	Name    string
	ID      uuid.UUID
	Answers []engine.Term
}

// Batch runs independent queries concurrently, at most limit of them at the same time.
// If limit is not positive, there's no limit. Results are in the same order as reqs.
// If any of the queries fails, the rest is canceled and the first error is returned.
func (e *Engine) Batch(ctx context.Context, limit int, reqs []Request) ([]Result, error) {
	for _, r := range reqs {
		if r.Goal == nil {
			return nil, fmt.Errorf("%s: %w", r.Name, &engine.TypeError{Type: engine.ValidTypeGoal, Culprit: r.Goal})
		}
	}

	results := make([]Result, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, r := range reqs {
		i, r := i, r
		g.Go(func() error {
			answers, id, err := e.run(ctx, r)
			results[i] = Result{Name: r.Name, ID: id, Answers: answers}
			if err != nil {
				return fmt.Errorf("%s: %w", r.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) run(ctx context.Context, r Request) ([]engine.Term, uuid.UUID, error) {
	q := engine.NewQuery(e.queryOpts...)
	vs := q.Fresh(r.Vars)

	id := uuid.New()
	logger := e.logger.With(zap.Stringer("query", id), zap.String("name", r.Name))
	logger.Debug("query started", zap.Int("limit", r.Limit), zap.Int("vars", len(vs)))

	var (
		answers []engine.Term
		err     error
	)
	if r.Limit > 0 {
		answers, err = q.Run(ctx, r.Limit, r.Goal(vs...), vs...)
	} else {
		sols := q.RunAll(ctx, r.Goal(vs...), vs...)
		answers, err = sols.Collect()
		_ = sols.Close()
	}
	if err != nil {
		logger.Warn("query failed", zap.Error(err))
		return nil, id, err
	}
	logger.Debug("query finished", zap.Int("answers", len(answers)))
	return answers, id, nil
}
