package evaler

import (
	"math"
	"strconv"
	"strings"
)

// ValueIndex, ExprIndex, and InstrIndex address the three arenas of a Slab.
type (
	ValueIndex int
	ExprIndex  int
	InstrIndex int
)

// Value is a single operand in an expression: a constant, a variable, a unary
// operation on another operand, or a call.
type Value struct {
	Kind ValueKind

	// Num is the value of a ValueConst.
	Num float64
	// Name is the name of a ValueVar.
	Name string
	// Arg is the operand of a unary operation. For ValuePos, ValueNeg, and
	// ValueNot, it is a ValueIndex; for ValueParens, it is an ExprIndex.
	Arg int

	Func  *FuncCall
	Print []PrintItem
	Eval  *EvalCall
}

// ValueKind is the kind of a Value.
type ValueKind int8

const (
	ValueNone ValueKind = iota

	ValueConst  // Num
	ValueVar    // lookup(Name)
	ValuePos    // +Arg
	ValueNeg    // -Arg
	ValueNot    // !Arg
	ValueParens // (Arg), Arg is an expression
	ValueFunc   // builtin call
	ValuePrint  // print(...)
	ValueEval   // eval(...)
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=ValueKind -trimprefix=Value
//go:generate go mod tidy

// Expression is a chain of binary operations. Precedence is resolved when the
// expression is evaluated, not when it is parsed.
type Expression struct {
	First ValueIndex
	Pairs []ExprPair
}

// ExprPair is an operator and its right-hand operand.
type ExprPair struct {
	Op    BinaryOp
	Value ValueIndex
}

// BinaryOp is a binary operator.
type BinaryOp int8

const (
	OpNone BinaryOp = iota

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpExp
	OpLT
	OpLTE
	OpEQ
	OpNE
	OpGTE
	OpGT
	OpOr
	OpAnd
)

var binaryOpText = [...]string{
	OpNone: "?",
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDiv:  "/",
	OpMod:  "%",
	OpExp:  "^",
	OpLT:   "<",
	OpLTE:  "<=",
	OpEQ:   "==",
	OpNE:   "!=",
	OpGTE:  ">=",
	OpGT:   ">",
	OpOr:   "||",
	OpAnd:  "&&",
}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryOpText) {
		return "BinaryOp(" + strconv.Itoa(int(op)) + ")"
	}
	return binaryOpText[op]
}

// FuncCall is a call to a builtin function. The argument order is:
//
//	log(x) or log(base, x)
//	round(x) or round(x, modulus)
//	min(first, rest...) and max(first, rest...)
//	e() and pi() with no arguments
//	f(x) for every other function
type FuncCall struct {
	Fn   FuncKind
	Args []ExprIndex
}

// PrintItem is an argument to print: either a string or an expression.
type PrintItem struct {
	Str   string
	IsStr bool
	Expr  ExprIndex
}

// EvalCall evaluates Expr with each of Kwargs bound as a local variable.
type EvalCall struct {
	Expr   ExprIndex
	Kwargs []Kwarg
}

// Kwarg is a keyword argument to eval.
type Kwarg struct {
	Name string
	Expr ExprIndex
}

// ExprString formats the expression at i. Parenthesized subexpressions use
// alternating round and square brackets.
func (s *Slab) ExprString(i ExprIndex) string {
	var b strings.Builder
	s.fmtExpr(&b, i, false)
	return b.String()
}

func (s *Slab) fmtExpr(b *strings.Builder, i ExprIndex, square bool) {
	e := s.Expr(i)
	s.fmtValue(b, e.First, square)
	for _, p := range e.Pairs {
		b.WriteByte(' ')
		b.WriteString(p.Op.String())
		b.WriteByte(' ')
		s.fmtValue(b, p.Value, square)
	}
}

func (s *Slab) fmtValue(b *strings.Builder, i ValueIndex, square bool) {
	v := s.Value(i)
	switch v.Kind {
	case ValueConst:
		b.WriteString(formatNum(v.Num))
	case ValueVar:
		b.WriteString(v.Name)
	case ValuePos:
		b.WriteByte('+')
		s.fmtValue(b, ValueIndex(v.Arg), square)
	case ValueNeg:
		b.WriteByte('-')
		s.fmtValue(b, ValueIndex(v.Arg), square)
	case ValueNot:
		b.WriteByte('!')
		s.fmtValue(b, ValueIndex(v.Arg), square)
	case ValueParens:
		var l, r byte = '(', ')'
		if square {
			l, r = '[', ']'
		}
		b.WriteByte(l)
		s.fmtExpr(b, ExprIndex(v.Arg), !square)
		b.WriteByte(r)
	case ValueFunc:
		b.WriteString(v.Func.Fn.String())
		b.WriteByte('(')
		for k, a := range v.Func.Args {
			if k > 0 {
				b.WriteString(", ")
			}
			s.fmtExpr(b, a, square)
		}
		b.WriteByte(')')
	case ValuePrint:
		b.WriteString("print(")
		for k, it := range v.Print {
			if k > 0 {
				b.WriteString(", ")
			}
			if it.IsStr {
				b.WriteByte('"')
				b.WriteString(it.Str)
				b.WriteByte('"')
				continue
			}
			s.fmtExpr(b, it.Expr, square)
		}
		b.WriteByte(')')
	case ValueEval:
		b.WriteString("eval(")
		s.fmtExpr(b, v.Eval.Expr, square)
		for _, kw := range v.Eval.Kwargs {
			b.WriteString(", ")
			b.WriteString(kw.Name)
			b.WriteByte('=')
			s.fmtExpr(b, kw.Expr, square)
		}
		b.WriteByte(')')
	default:
		panic("evaler: invalid value kind " + v.Kind.String() + " after writing " + b.String())
	}
}

// formatNum gives the default text of a number: the shortest decimal that
// parses back to x, without an exponent. Infinities are inf and -inf.
func formatNum(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
