package kanren

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ichiban/kanren/engine"
)

const family = `
parent:
  - [alice, bob]
  - [bob, carol]
  - [bob, dave]
age:
  - [alice, 62]
  - [bob, 35.5]
tags:
  - [carol, [red, green]]
  - [dave, []]
flag:
  - [carol, true]
`

func TestEngine_LoadFacts(t *testing.T) {
	e := New()
	require.NoError(t, e.LoadFacts(strings.NewReader(family)))
	assert.Equal(t, []string{"age/2", "flag/2", "parent/2", "tags/2"}, e.Relations())

	ctx := context.Background()

	t.Run("atoms", func(t *testing.T) {
		res, err := e.Run(ctx, 10, func(q engine.Variable) engine.Goal {
			return e.Fact("parent", engine.NewAtom("bob"), q)
		})
		assert.NoError(t, err)
		assert.Equal(t, []engine.Term{engine.NewAtom("carol"), engine.NewAtom("dave")}, res)
	})

	t.Run("decimals", func(t *testing.T) {
		res, err := e.Run(ctx, 10, func(q engine.Variable) engine.Goal {
			return e.Fact("age", q, engine.Int(62))
		})
		assert.NoError(t, err)
		assert.Equal(t, []engine.Term{engine.NewAtom("alice")}, res)

		res, err = e.Run(ctx, 10, func(q engine.Variable) engine.Goal {
			return e.Fact("age", q, engine.ParseAtom("35.50"))
		})
		assert.NoError(t, err)
		assert.Equal(t, []engine.Term{engine.NewAtom("bob")}, res)
	})

	t.Run("lists", func(t *testing.T) {
		res, err := e.Run(ctx, 10, func(q engine.Variable) engine.Goal {
			return e.Fact("tags", engine.NewAtom("carol"), q)
		})
		assert.NoError(t, err)
		assert.Equal(t, []engine.Term{engine.List(engine.NewAtom("red"), engine.NewAtom("green"))}, res)

		res, err = e.Run(ctx, 10, func(q engine.Variable) engine.Goal {
			return e.Fact("tags", q, engine.Nil)
		})
		assert.NoError(t, err)
		assert.Equal(t, []engine.Term{engine.NewAtom("dave")}, res)
	})

	t.Run("bool", func(t *testing.T) {
		res, err := e.Run(ctx, 10, func(q engine.Variable) engine.Goal {
			return e.Fact("flag", q, engine.NewAtom(true))
		})
		assert.NoError(t, err)
		assert.Equal(t, []engine.Term{engine.NewAtom("carol")}, res)
	})

	t.Run("merge", func(t *testing.T) {
		require.NoError(t, e.LoadFacts(strings.NewReader(`parent: [[dave, erin]]`)))
		res, err := e.Run(ctx, 10, func(q engine.Variable) engine.Goal {
			return e.Fact("parent", engine.NewAtom("dave"), q)
		})
		assert.NoError(t, err)
		assert.Equal(t, []engine.Term{engine.NewAtom("erin")}, res)
	})

	t.Run("aliases", func(t *testing.T) {
		e := New()
		require.NoError(t, e.LoadFacts(strings.NewReader(`
colors: &c [[red, blue]]
palette:
  - [warm, *c]
`)))
		assert.Equal(t, []string{"colors/2", "palette/2"}, e.Relations())
	})

	t.Run("empty", func(t *testing.T) {
		e := New()
		assert.NoError(t, e.LoadFacts(strings.NewReader("")))
		assert.Empty(t, e.Relations())
	})

	t.Run("errors", func(t *testing.T) {
		for _, tt := range []struct {
			title string
			doc   string
		}{
			{title: "not a mapping", doc: `[a, b]`},
			{title: "not a sequence", doc: `parent: alice`},
			{title: "not a tuple", doc: `parent: [alice]`},
			{title: "null", doc: `parent: [[alice, ~]]`},
			{title: "mapping argument", doc: `parent: [[alice, {a: b}]]`},
			{title: "mixed arity", doc: `parent: [[a, b], [c]]`},
			{title: "arity mismatch with existing facts", doc: `parent: [[a, b, c]]`},
			{title: "malformed", doc: `parent: [[a, b]`},
		} {
			t.Run(tt.title, func(t *testing.T) {
				before := e.Relations()
				assert.Error(t, e.LoadFacts(strings.NewReader(tt.doc)))
				assert.Equal(t, before, e.Relations())
			})
		}

		t.Run("nothing is added on error", func(t *testing.T) {
			e := New()
			assert.Error(t, e.LoadFacts(strings.NewReader(`
a: [[x]]
b: [[y], [y, z]]
`)))
			assert.Empty(t, e.Relations())
		})
	})
}

func TestEngine_AddFact(t *testing.T) {
	e := New()
	require.NoError(t, e.AddFact("edge", "a", "b"))
	require.NoError(t, e.AddFact("edge", "b", []string{"c", "d"}))
	assert.Error(t, e.AddFact("edge", "a"))
	assert.Error(t, e.AddFact("bad", map[string]int{}))
	assert.Equal(t, []string{"edge/2"}, e.Relations())

	res, err := e.Run(context.Background(), 10, func(q engine.Variable) engine.Goal {
		return e.Fact("edge", engine.NewAtom("b"), q)
	})
	assert.NoError(t, err)
	assert.Equal(t, []engine.Term{engine.List(engine.NewAtom("c"), engine.NewAtom("d"))}, res)
}

func TestEngine_AddFact_numbers(t *testing.T) {
	e := New()
	require.NoError(t, e.AddFact("age", "bob", 35))
	require.NoError(t, e.LoadFacts(strings.NewReader(`age: [[carol, 35], [dave, 2.5]]`)))
	require.NoError(t, e.AddFact("age", "erin", 2.50))
	ctx := context.Background()

	t.Run("parsed", func(t *testing.T) {
		res, err := e.Run(ctx, 10, func(q engine.Variable) engine.Goal {
			return e.Fact("age", q, engine.ParseAtom("35"))
		})
		assert.NoError(t, err)
		assert.Equal(t, []engine.Term{engine.NewAtom("bob"), engine.NewAtom("carol")}, res)

		res, err = e.Run(ctx, 10, func(q engine.Variable) engine.Goal {
			return e.Fact("age", q, engine.ParseAtom("2.5"))
		})
		assert.NoError(t, err)
		assert.Equal(t, []engine.Term{engine.NewAtom("dave"), engine.NewAtom("erin")}, res)
	})

	t.Run("join", func(t *testing.T) {
		res, err := e.Run(ctx, 10, func(q engine.Variable) engine.Goal {
			return engine.Conj(e.Fact("age", engine.NewAtom("bob"), q), e.Fact("age", engine.NewAtom("carol"), q))
		})
		assert.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "35", res[0].String())
	})

	t.Run("scanned values added back", func(t *testing.T) {
		sols := e.Query(ctx, []string{"Age"}, func(vs ...engine.Variable) engine.Goal {
			return e.Fact("age", engine.NewAtom("bob"), vs[0])
		})
		require.True(t, sols.Next())
		var s struct {
			Age int
		}
		require.NoError(t, sols.Scan(&s))
		require.NoError(t, sols.Close())
		require.NoError(t, e.AddFact("age", "frank", s.Age))

		res, err := e.Run(ctx, 10, func(q engine.Variable) engine.Goal {
			return e.Fact("age", q, engine.Int(35))
		})
		assert.NoError(t, err)
		assert.Equal(t, []engine.Term{engine.NewAtom("bob"), engine.NewAtom("carol"), engine.NewAtom("frank")}, res)
	})
}

func TestEngine_Fact(t *testing.T) {
	e := New()
	require.NoError(t, e.AddFact("edge", "a", "b"))
	ctx := context.Background()

	t.Run("unknown relation", func(t *testing.T) {
		res, err := e.Run(ctx, 10, func(q engine.Variable) engine.Goal {
			return e.Fact("node", q)
		})
		assert.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("arity mismatch", func(t *testing.T) {
		res, err := e.Run(ctx, 10, func(q engine.Variable) engine.Goal {
			return e.Fact("edge", q)
		})
		assert.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("facts added later", func(t *testing.T) {
		g := e.Fact("edge", engine.NewAtom("x"), engine.NewAtom("y"))
		require.NoError(t, e.AddFact("edge", "x", "y"))
		res, err := e.Run(ctx, 10, func(engine.Variable) engine.Goal {
			return g
		})
		assert.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("nil term", func(t *testing.T) {
		_, err := e.Run(ctx, 10, func(q engine.Variable) engine.Goal {
			return e.Fact("edge", q, nil)
		})
		var te *engine.TypeError
		assert.ErrorAs(t, err, &te)
	})
}
