package evaler_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/evaler"
)

func TestFuncs(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"int", "int(-2.5)", -2},
		{"ceil", "ceil(1.2)", 2},
		{"floor", "floor(-1.2)", -2},
		{"abs", "abs(-3)", 3},
		{"sign", "sign(-2)", -1},
		{"sign-pos", "sign(2)", 1},
		{"sign-zero", "sign(0)", 1},
		{"log", "log(1000)", 3},
		{"log2", "log(2, 1024)", 10},
		{"log10", "log(10, 0.001)", -3},
		{"log-e", "log(e, e)", 1},
		{"log-int", "log(3, 81)", 4},
		{"round", "round(2.4)", 2},
		{"round-half", "round(2.5)", 3},
		{"round-neg-half", "round(-2.5)", -3},
		{"round-mod", "round(17, 5)", 15},
		{"round-frac", "round(2.4, 0.5)", 2.5},
		{"min1", "min(5)", 5},
		{"min", "min(3, 1, 2)", 1},
		{"max", "max(3, 1, 2)", 3},
		{"e", "e", math.E},
		{"pi", "pi", math.Pi},
		{"sin", "sin(1)", math.Sin(1)},
		{"cos", "cos(1)", math.Cos(1)},
		{"tan", "tan(1)", math.Tan(1)},
		{"asin", "asin(0.5)", math.Asin(0.5)},
		{"acos", "acos(0.5)", math.Acos(0.5)},
		{"atan", "atan(1)", math.Atan(1)},
		{"sinh", "sinh(1)", math.Sinh(1)},
		{"cosh", "cosh(1)", math.Cosh(1)},
		{"tanh", "tanh(1)", math.Tanh(1)},
		{"asinh", "asinh(1)", math.Asinh(1)},
		{"acosh", "acosh(2)", math.Acosh(2)},
		{"atanh", "atanh(0.5)", math.Atanh(0.5)},
	}
	// Check that we cover every function.
	covered := make(map[evaler.FuncKind]bool)
	for _, c := range cases {
		covered[evaler.LookupFunc(c.name)] = true
	}
	for f := evaler.FuncInt; f <= evaler.FuncAtanh; f++ {
		assert.True(t, covered[f], "no test case for %v", f)
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, m := range modes {
				r, err := m.eval(c.src, nil)
				require.NoError(t, err, m.name)
				assert.Equal(t, c.r, r, m.name)
			}
		})
	}
}

// prec is the precision of oracle results.
const prec = 256

func bf(x float64) *big.Float {
	return new(big.Float).SetPrec(prec).SetFloat64(x)
}

func TestFuncsOracle(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		oracle func() *big.Float
	}{
		{"pi", "pi", func() *big.Float { return bigfloat.Pi(new(big.Float).SetPrec(prec)) }},
		{"e", "e", func() *big.Float { return bigfloat.Exp(new(big.Float).SetPrec(prec), bf(1)) }},
		{"pow", "2^0.5", func() *big.Float { return bigfloat.Pow(new(big.Float).SetPrec(prec), bf(2), bf(0.5)) }},
		{"pow-frac", "1.5^2.5", func() *big.Float { return bigfloat.Pow(new(big.Float).SetPrec(prec), bf(1.5), bf(2.5)) }},
		{"log-base", "log(3, 7)", func() *big.Float {
			n := bigfloat.Log(new(big.Float).SetPrec(prec), bf(7))
			d := bigfloat.Log(new(big.Float).SetPrec(prec), bf(3))
			return n.Quo(n, d)
		}},
		{"log10", "log(7)", func() *big.Float {
			n := bigfloat.Log(new(big.Float).SetPrec(prec), bf(7))
			d := bigfloat.Log(new(big.Float).SetPrec(prec), bf(10))
			return n.Quo(n, d)
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			want, _ := c.oracle().Float64()
			for _, m := range modes {
				r, err := m.eval(c.src, nil)
				require.NoError(t, err, m.name)
				assert.InEpsilon(t, want, r, 1e-15, "%s: want %v, got %v", m.name, want, r)
			}
		})
	}
}

func TestMinMaxNaN(t *testing.T) {
	// A NaN argument does not win a comparison, so it only survives when no
	// later argument replaces it.
	cases := []struct {
		src   string
		isnan bool
	}{
		{"min(NaN, 1)", false},
		{"min(1, NaN)", true},
		{"max(NaN, 1)", false},
		{"max(1, NaN)", true},
		{"min(1, NaN, 2)", false},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			for _, m := range modes {
				r, err := m.eval(c.src, nil)
				require.NoError(t, err, m.name)
				assert.Equal(t, c.isnan, math.IsNaN(r), "%s gave %v", m.name, r)
			}
		})
	}
}

func TestCanCall(t *testing.T) {
	cases := []struct {
		fn   evaler.FuncKind
		good []int
		bad  []int
	}{
		{evaler.FuncNone, nil, []int{0, 1, 2}},
		{evaler.FuncE, []int{0}, []int{1, 2}},
		{evaler.FuncPi, []int{0}, []int{1}},
		{evaler.FuncLog, []int{1, 2}, []int{0, 3}},
		{evaler.FuncRound, []int{1, 2}, []int{0, 3}},
		{evaler.FuncMin, []int{1, 2, 10}, []int{0}},
		{evaler.FuncMax, []int{1, 5}, []int{0}},
		{evaler.FuncSin, []int{1}, []int{0, 2}},
		{evaler.FuncAbs, []int{1}, []int{0, 2}},
	}
	for _, c := range cases {
		t.Run(c.fn.String(), func(t *testing.T) {
			for _, n := range c.good {
				assert.True(t, c.fn.CanCall(n), "%v with %d args", c.fn, n)
			}
			for _, n := range c.bad {
				assert.False(t, c.fn.CanCall(n), "%v with %d args", c.fn, n)
			}
		})
	}
}

func TestLookupFunc(t *testing.T) {
	for f := evaler.FuncInt; f <= evaler.FuncAtanh; f++ {
		assert.Equal(t, f, evaler.LookupFunc(f.String()))
	}
	assert.Equal(t, evaler.FuncNone, evaler.LookupFunc("print"))
	assert.Equal(t, evaler.FuncNone, evaler.LookupFunc("eval"))
	assert.Equal(t, evaler.FuncNone, evaler.LookupFunc("sqrt"))
	assert.Equal(t, "FuncKind(100)", evaler.FuncKind(100).String())
}
