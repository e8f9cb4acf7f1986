package engine

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestUnify(t *testing.T) {
	var g Generator
	vs := g.Fresh(3)
	x, y, z := vs[0], vs[1], vs[2]

	t.Run("atom", func(t *testing.T) {
		t.Run("equal", func(t *testing.T) {
			env, ok := Unify(NewAtom("foo"), NewAtom("foo"), nil)
			assert.True(t, ok)
			assert.Nil(t, env)
		})

		t.Run("different", func(t *testing.T) {
			env, ok := Unify(NewAtom("foo"), NewAtom("bar"), nil)
			assert.False(t, ok)
			assert.Nil(t, env)
		})

		t.Run("different types", func(t *testing.T) {
			_, ok := Unify(NewAtom(1), NewAtom(int64(1)), nil)
			assert.False(t, ok)
		})

		t.Run("pair", func(t *testing.T) {
			_, ok := Unify(NewAtom("foo"), Cons(NewAtom("foo"), Nil), nil)
			assert.False(t, ok)
		})
	})

	t.Run("variable", func(t *testing.T) {
		t.Run("same", func(t *testing.T) {
			env, ok := Unify(x, x, nil)
			assert.True(t, ok)
			assert.Nil(t, env)
		})

		t.Run("free", func(t *testing.T) {
			env, ok := Unify(x, NewAtom("foo"), nil)
			assert.True(t, ok)
			assert.Equal(t, NewAtom("foo"), env.Resolve(x))
		})

		t.Run("free on the right", func(t *testing.T) {
			env, ok := Unify(List(NewAtom(1)), x, nil)
			assert.True(t, ok)
			assert.Equal(t, List(NewAtom(1)), env.Resolve(x))
		})

		t.Run("two free variables", func(t *testing.T) {
			for _, tt := range []struct {
				title string
				a, b  Term
			}{
				{title: "smaller first", a: x, b: z},
				{title: "larger first", a: z, b: x},
			} {
				t.Run(tt.title, func(t *testing.T) {
					env, ok := Unify(tt.a, tt.b, nil)
					assert.True(t, ok)
					ref, ok := env.Lookup(z)
					assert.True(t, ok)
					assert.Equal(t, x, ref)
					_, ok = env.Lookup(x)
					assert.False(t, ok)
				})
			}
		})

		t.Run("bound to the same value", func(t *testing.T) {
			env := NewEnv().Bind(x, NewAtom("foo"))
			ret, ok := Unify(x, NewAtom("foo"), env)
			assert.True(t, ok)
			assert.Equal(t, env, ret)
		})

		t.Run("bound to a different value", func(t *testing.T) {
			env := NewEnv().Bind(x, NewAtom("foo"))
			ret, ok := Unify(x, NewAtom("bar"), env)
			assert.False(t, ok)
			assert.Nil(t, ret)
			assert.Equal(t, NewAtom("foo"), env.Resolve(x))
		})
	})

	t.Run("pair", func(t *testing.T) {
		t.Run("list", func(t *testing.T) {
			env, ok := Unify(List(NewAtom(1), NewAtom(2), x), List(NewAtom(1), NewAtom(2), NewAtom(3)), nil)
			assert.True(t, ok)
			assert.Equal(t, NewAtom(3), env.Resolve(x))
		})

		t.Run("different lengths", func(t *testing.T) {
			_, ok := Unify(List(NewAtom(1), x), List(NewAtom(1)), nil)
			assert.False(t, ok)
		})

		t.Run("first binds before rest", func(t *testing.T) {
			_, ok := Unify(List(x, x), List(NewAtom(1), NewAtom(2)), nil)
			assert.False(t, ok)

			env, ok := Unify(List(x, y), List(y, NewAtom(2)), nil)
			assert.True(t, ok)
			assert.Equal(t, NewAtom(2), env.Resolve(x))
			assert.Equal(t, NewAtom(2), env.Resolve(y))
		})

		t.Run("partial bindings don't leak", func(t *testing.T) {
			env := NewEnv().Bind(z, NewAtom("z"))
			ret, ok := Unify(List(x, NewAtom(1)), List(NewAtom(0), NewAtom(2)), env)
			assert.False(t, ok)
			assert.Nil(t, ret)
			_, ok = env.Lookup(x)
			assert.False(t, ok)
		})

		t.Run("long", func(t *testing.T) {
			const n = 100000
			var (
				ts = make([]Term, n)
				as = make([]Term, n)
			)
			for i, v := range g.Fresh(n) {
				ts[i] = v
				as[i] = NewAtom(i)
			}
			env, ok := Unify(List(ts...), List(as...), nil)
			assert.True(t, ok)
			assert.Equal(t, n, env.Len())
			assert.Equal(t, NewAtom(n-1), env.Resolve(ts[n-1]))
		})
	})
}

func TestUnify_symmetry(t *testing.T) {
	var g Generator
	vs := g.Fresh(4)
	w, x, y, z := vs[0], vs[1], vs[2], vs[3]

	base := NewEnv().Bind(w, List(NewAtom(1), y))

	for _, tt := range []struct {
		title string
		a, b  Term
	}{
		{title: "atoms", a: NewAtom("a"), b: NewAtom("a")},
		{title: "different atoms", a: NewAtom("a"), b: NewAtom("b")},
		{title: "variable and atom", a: x, b: NewAtom("a")},
		{title: "variables", a: x, b: z},
		{title: "bound variable", a: w, b: List(x, NewAtom(2))},
		{title: "bound variable mismatch", a: w, b: List(NewAtom(2), x)},
		{title: "nested", a: List(x, List(y, z)), b: List(List(z), List(NewAtom(1), NewAtom(3)))},
		{title: "shape mismatch", a: Cons(x, y), b: NewAtom("a")},
	} {
		t.Run(tt.title, func(t *testing.T) {
			e1, ok1 := Unify(tt.a, tt.b, base)
			e2, ok2 := Unify(tt.b, tt.a, base)
			assert.Equal(t, ok1, ok2)
			if !ok1 {
				return
			}
			r1, r2 := Reify(e1, w, x, y, z), Reify(e2, w, x, y, z)
			if diff := cmp.Diff(r1.String(), r2.String()); diff != "" {
				t.Errorf("asymmetric result (-ab +ba):\n%s", diff)
			}
		})
	}
}

func TestUnifier_Unify(t *testing.T) {
	var g Generator
	x := g.Fresh(1)[0]

	t.Run("occurs check", func(t *testing.T) {
		u := Unifier{OccursCheck: true}
		_, ok := u.Unify(x, Cons(NewAtom(1), x), nil)
		assert.False(t, ok)

		_, ok = u.Unify(Cons(NewAtom(1), x), x, nil)
		assert.False(t, ok)

		env, ok := u.Unify(x, Cons(NewAtom(1), Nil), nil)
		assert.True(t, ok)
		assert.Equal(t, List(NewAtom(1)), env.Resolve(x))
	})

	t.Run("without occurs check", func(t *testing.T) {
		var u Unifier
		env, ok := u.Unify(x, Cons(NewAtom(1), x), nil)
		assert.True(t, ok)
		_, ok = env.Lookup(x)
		assert.True(t, ok)
	})

	t.Run("equality", func(t *testing.T) {
		u := Unifier{Equal: func(a, b interface{}) bool {
			s, ok := a.(string)
			if !ok {
				return DefaultEqual(a, b)
			}
			t, ok := b.(string)
			return ok && strings.EqualFold(s, t)
		}}
		_, ok := u.Unify(NewAtom("Foo"), NewAtom("fOO"), nil)
		assert.True(t, ok)

		_, ok = u.Unify(NewAtom("foo"), NewAtom("bar"), nil)
		assert.False(t, ok)
	})

	t.Run("decimal", func(t *testing.T) {
		a, err := NewDecimal("1.0")
		assert.NoError(t, err)
		b, err := NewDecimal("1.00")
		assert.NoError(t, err)

		_, ok := Unify(a, b, nil)
		assert.True(t, ok)

		_, ok = Unify(a, Int(1), nil)
		assert.True(t, ok)

		_, ok = Unify(a, Int(2), nil)
		assert.False(t, ok)

		_, ok = Unify(a, NewAtom(1), nil)
		assert.False(t, ok)
	})
}
