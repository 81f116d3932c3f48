package evaler

import (
	"math"
	"strconv"
)

// reducePass is one level of the precedence table.
type reducePass struct {
	// rtl means the pass collapses operators from right to left.
	rtl bool
	ops []BinaryOp
}

// reducePasses is the precedence table, most binding first. Exponentiation
// is right-associative, so 2^3^4 is 2^(3^4). Subtraction, division, and
// modulo must go left to right. Multiplication and addition are associative,
// so their direction doesn't matter. Comparisons are not chained: a<b<c is
// (a<b)<c.
var reducePasses = [...]reducePass{
	{true, []BinaryOp{OpExp}},
	{false, []BinaryOp{OpMod}},
	{false, []BinaryOp{OpDiv}},
	{true, []BinaryOp{OpMul}},
	{false, []BinaryOp{OpSub}},
	{true, []BinaryOp{OpAdd}},
	{false, []BinaryOp{OpLT, OpGT, OpLTE, OpGTE}},
	{false, []BinaryOp{OpEQ, OpNE}},
	{false, []BinaryOp{OpAnd}},
	{false, []BinaryOp{OpOr}},
}

func (p *reducePass) has(op BinaryOp) bool {
	for _, o := range p.ops {
		if o == op {
			return true
		}
	}
	return false
}

// reduce collapses an operand chain vals[0] ops[0] vals[1] ... into a single
// operand. vals and ops are modified. The evaluator reduces float64 operands
// directly; the compiler reduces instruction indices so that lowered code has
// the same shape.
func reduce[T any](vals []T, ops []BinaryOp, apply func(op BinaryOp, l, r T) T) (T, error) {
	collapse := func(i int) {
		vals[i] = apply(ops[i], vals[i], vals[i+1])
		vals = append(vals[:i+1], vals[i+2:]...)
		ops = append(ops[:i], ops[i+1:]...)
	}
	for k := range reducePasses {
		p := &reducePasses[k]
		if p.rtl {
			for i := len(ops) - 1; i >= 0; i-- {
				if p.has(ops[i]) {
					collapse(i)
				}
			}
			continue
		}
		for i := 0; i < len(ops); {
			if p.has(ops[i]) {
				collapse(i)
				// Removing from the left shifts everything after, so restart.
				i = 0
				continue
			}
			i++
		}
	}
	var zero T
	if len(ops) != 0 {
		return zero, &StructureError{Msg: strconv.Itoa(len(ops)) + " unhandled operators, first " + ops[0].String()}
	}
	if len(vals) != 1 {
		return zero, &StructureError{Msg: strconv.Itoa(len(vals)) + " values after reduction"}
	}
	return vals[0], nil
}

// Apply computes l op r.
func (op BinaryOp) Apply(l, r float64) float64 {
	switch op {
	case OpAdd:
		return l + r
	case OpSub:
		return l - r
	case OpMul:
		return l * r
	case OpDiv:
		return l / r
	case OpMod:
		return math.Mod(l, r)
	case OpExp:
		return math.Pow(l, r)
	case OpLT:
		return truth(l < r)
	case OpLTE:
		return truth(l <= r)
	case OpEQ:
		return truth(l == r)
	case OpNE:
		return truth(l != r)
	case OpGTE:
		return truth(l >= r)
	case OpGT:
		return truth(l > r)
	case OpOr:
		if l != 0 {
			return l
		}
		return r
	case OpAnd:
		if l == 0 {
			return l
		}
		return r
	default:
		panic("evaler: invalid binary operator " + op.String())
	}
}

// truth converts a bool to 1 or 0.
func truth(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
