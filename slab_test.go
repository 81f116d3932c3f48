package evaler

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlabPush(t *testing.T) {
	s := NewSlab()
	a := s.PushValue(Value{Kind: ValueConst, Num: 1})
	b := s.PushValue(Value{Kind: ValueVar, Name: "x"})
	assert.Equal(t, ValueIndex(0), a)
	assert.Equal(t, ValueIndex(1), b)
	e := s.PushExpr(Expression{First: a, Pairs: []ExprPair{{Op: OpAdd, Value: b}}})
	i := s.PushInstr(Instruction{Kind: InstrConst, Num: 2})

	assert.Equal(t, "x", s.Value(b).Name)
	assert.Equal(t, "1 + x", s.ExprString(e))
	assert.Equal(t, 2.0, s.Instr(i).Num)
	vals, exprs, instrs := s.Len()
	assert.Equal(t, [3]int{2, 1, 1}, [3]int{vals, exprs, instrs})
}

func TestSlabOutOfRange(t *testing.T) {
	s := NewSlab()
	assert.PanicsWithValue(t, "evaler: value index 0 out of range", func() { s.Value(0) })
	assert.Panics(t, func() { s.Expr(3) })
	assert.Panics(t, func() { s.Instr(-1) })
}

func TestSlabClone(t *testing.T) {
	s := NewSlab()
	e, err := ParseString("x + 1", s)
	require.NoError(t, err)
	c := s.Clone()
	f, err := ParseString("y * 2", c)
	require.NoError(t, err)

	assert.Equal(t, "x + 1", c.ExprString(e), "clone lost original nodes")
	assert.Equal(t, "y * 2", c.ExprString(f))
	_, n, _ := s.Len()
	assert.Equal(t, 1, n, "pushing to the clone changed the original")
	assert.Panics(t, func() { s.Expr(f) })
}

func TestSlabConcurrentEval(t *testing.T) {
	s := NewSlab()
	e, err := ParseString("eval(x * k + eval(k, k=x), k=2)", s)
	require.NoError(t, err)
	c, err := Compile(s, e)
	require.NoError(t, err)

	const n = 16
	got := make([][2]float64, n)
	var wg sync.WaitGroup
	for k := 0; k < n; k++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			x := float64(k)
			tree, err := EvalExpr(s, e, NewScopes(SetVar("x", x)))
			if err != nil {
				tree = -1
			}
			instr, err := EvalInstr(s, c, NewScopes(SetVar("x", x)))
			if err != nil {
				instr = -1
			}
			got[k] = [2]float64{tree, instr}
		}(k)
	}
	wg.Wait()
	for k, r := range got {
		want := float64(3 * k)
		assert.Equal(t, [2]float64{want, want}, r, "x = %d", k)
	}
}
