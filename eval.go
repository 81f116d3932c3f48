package evaler

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// DefaultMaxDepth is the default limit on evaluation nesting depth.
const DefaultMaxDepth = 4096

// EvalOption is an option used when evaluating.
type EvalOption interface {
	evalOption(*evaluator)
}

type (
	outopt   struct{ w io.Writer }
	depthopt int
)

func (o outopt) evalOption(ev *evaluator)   { ev.out = o.w }
func (o depthopt) evalOption(ev *evaluator) { ev.max = int(o) }

// Output sets the writer that print writes to. The default is os.Stderr.
func Output(w io.Writer) EvalOption {
	return outopt{w}
}

// MaxDepth sets the limit on nesting depth. Evaluating an expression nested
// more deeply fails with a *DepthError. The default is DefaultMaxDepth.
func MaxDepth(n int) EvalOption {
	return depthopt(n)
}

// evaluator holds the state of one evaluation. Tree and instruction
// evaluation share it.
type evaluator struct {
	slab  *Slab
	ns    Namespace
	out   io.Writer
	depth int
	max   int
}

func newEvaluator(s *Slab, ns Namespace, opts []EvalOption) *evaluator {
	if ns == nil {
		ns = NewScopes()
	}
	ev := &evaluator{slab: s, ns: ns, out: os.Stderr, max: DefaultMaxDepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.evalOption(ev)
	}
	return ev
}

// enter increases the nesting depth. Callers must call leave iff enter
// succeeds.
func (ev *evaluator) enter() error {
	if ev.depth >= ev.max {
		return &DepthError{Max: ev.max}
	}
	ev.depth++
	return nil
}

func (ev *evaluator) leave() {
	ev.depth--
}

// EvalExpr evaluates the expression at i in s. If ns is nil, no variables
// are defined.
func EvalExpr(s *Slab, i ExprIndex, ns Namespace, opts ...EvalOption) (float64, error) {
	return newEvaluator(s, ns, opts).evalExpr(i)
}

// EvalValue evaluates the value node at i in s. If ns is nil, no variables
// are defined.
func EvalValue(s *Slab, i ValueIndex, ns Namespace, opts ...EvalOption) (float64, error) {
	return newEvaluator(s, ns, opts).evalValue(i)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, ns Namespace, opts ...EvalOption) (float64, error) {
	s := NewSlab()
	e, err := ParseString(src, s)
	if err != nil {
		return 0, err
	}
	return EvalExpr(s, e, ns, opts...)
}

func (ev *evaluator) evalExpr(i ExprIndex) (float64, error) {
	if err := ev.enter(); err != nil {
		return 0, err
	}
	defer ev.leave()
	e := ev.slab.Expr(i)
	if len(e.Pairs) == 0 {
		return ev.evalValue(e.First)
	}
	// || and && bind least tightly, so the operands between them can be
	// reduced separately. Evaluating those groups lazily lets a || b skip b
	// when a is nonzero and a && b skip b when a is zero, with the same
	// result as reducing the whole chain.
	last := len(e.Pairs)
	for k := 0; ; {
		j := nextOp(e.Pairs, k, OpOr)
		r, err := ev.evalAnd(&e, k, j)
		if err != nil || j == last || r != 0 {
			return r, err
		}
		k = j + 1
	}
}

// evalAnd evaluates operands k through j of e, which contain no ||.
func (ev *evaluator) evalAnd(e *Expression, k, j int) (float64, error) {
	for {
		m := nextOp(e.Pairs[:j], k, OpAnd)
		r, err := ev.evalChain(e, k, m)
		if err != nil || m == j || r == 0 {
			return r, err
		}
		k = m + 1
	}
}

// evalChain evaluates operands k through j of e, which contain no || or &&.
func (ev *evaluator) evalChain(e *Expression, k, j int) (float64, error) {
	vals := make([]float64, 0, j-k+1)
	ops := make([]BinaryOp, 0, j-k)
	for m := k; m <= j; m++ {
		vi := e.First
		if m > 0 {
			vi = e.Pairs[m-1].Value
		}
		if m > k {
			ops = append(ops, e.Pairs[m-1].Op)
		}
		v, err := ev.evalValue(vi)
		if err != nil {
			return 0, err
		}
		vals = append(vals, v)
	}
	return reduce(vals, ops, BinaryOp.Apply)
}

// nextOp finds the index of the first operand following k which is preceded
// by op, or len(pairs) if there is none. Operand 0 is e.First and operand
// m > 0 is pairs[m-1].Value.
func nextOp(pairs []ExprPair, k int, op BinaryOp) int {
	for m := k; m < len(pairs); m++ {
		if pairs[m].Op == op {
			return m
		}
	}
	return len(pairs)
}

func (ev *evaluator) evalValue(i ValueIndex) (float64, error) {
	if err := ev.enter(); err != nil {
		return 0, err
	}
	defer ev.leave()
	v := ev.slab.Value(i)
	switch v.Kind {
	case ValueConst:
		return v.Num, nil
	case ValueVar:
		return ev.lookup(v.Name)
	case ValuePos:
		return ev.evalValue(ValueIndex(v.Arg))
	case ValueNeg:
		x, err := ev.evalValue(ValueIndex(v.Arg))
		return -x, err
	case ValueNot:
		x, err := ev.evalValue(ValueIndex(v.Arg))
		return truth(x == 0), err
	case ValueParens:
		return ev.evalExpr(ExprIndex(v.Arg))
	case ValueFunc:
		r, err := ev.evalFunc(v.Func)
		if err != nil {
			return 0, errors.WithMessage(err, v.Func.Fn.String())
		}
		return r, nil
	case ValuePrint:
		r, err := ev.print(
			len(v.Print),
			func(k int) (string, bool) { return v.Print[k].Str, v.Print[k].IsStr },
			func(k int) (float64, error) { return ev.evalExpr(v.Print[k].Expr) },
		)
		if err != nil {
			return 0, errors.WithMessage(err, "print")
		}
		return r, nil
	case ValueEval:
		r, err := ev.reeval(
			len(v.Eval.Kwargs),
			func(k int) string { return v.Eval.Kwargs[k].Name },
			func(k int) (float64, error) { return ev.evalExpr(v.Eval.Kwargs[k].Expr) },
			func() (float64, error) { return ev.evalExpr(v.Eval.Expr) },
		)
		if err != nil {
			return 0, errors.WithMessage(err, "eval")
		}
		return r, nil
	default:
		panic("evaler: invalid value kind " + v.Kind.String())
	}
}

func (ev *evaluator) lookup(name string) (float64, error) {
	x, ok := ev.ns.Lookup(name)
	if !ok {
		return 0, &NameError{Name: name}
	}
	return x, nil
}

func (ev *evaluator) evalFunc(f *FuncCall) (float64, error) {
	args := f.Args
	if !f.Fn.CanCall(len(args)) {
		return 0, callError(f.Fn, len(args))
	}
	switch f.Fn {
	case FuncE, FuncPi:
		return niladic(f.Fn), nil
	case FuncLog:
		base := 10.0
		if len(args) == 2 {
			b, err := ev.evalExpr(args[0])
			if err != nil {
				return 0, err
			}
			base, args = b, args[1:]
		}
		x, err := ev.evalExpr(args[0])
		if err != nil {
			return 0, err
		}
		return logBase(base, x), nil
	case FuncRound:
		x, err := ev.evalExpr(args[0])
		if err != nil {
			return 0, err
		}
		modulus := 1.0
		if len(args) == 2 {
			modulus, err = ev.evalExpr(args[1])
			if err != nil {
				return 0, err
			}
		}
		return roundTo(x, modulus), nil
	case FuncMin, FuncMax:
		fold := fmin
		if f.Fn == FuncMax {
			fold = fmax
		}
		r, err := ev.evalExpr(args[0])
		if err != nil {
			return 0, err
		}
		for _, a := range args[1:] {
			x, err := ev.evalExpr(a)
			if err != nil {
				return 0, err
			}
			r = fold(r, x)
		}
		return r, nil
	default:
		x, err := ev.evalExpr(args[0])
		if err != nil {
			return 0, err
		}
		return monadic(f.Fn, x), nil
	}
}

// printEscapes replaces the escape sequences recognized in print strings.
var printEscapes = strings.NewReplacer(`\n`, "\n", `\t`, "\t")

// print evaluates n print items and writes them as one line. str gives the
// string of item k, if it is one; eval evaluates item k otherwise. The result
// is the value of the last evaluated item, or 0 if there is none.
func (ev *evaluator) print(n int, str func(k int) (string, bool), eval func(k int) (float64, error)) (float64, error) {
	if n > 0 {
		if s, ok := str(0); ok && strings.Contains(s, "%") {
			return 0, &UnsupportedError{Feature: "formatted print"}
		}
	}
	var b strings.Builder
	var val float64
	for k := 0; k < n; k++ {
		if k > 0 {
			b.WriteByte(' ')
		}
		if s, ok := str(k); ok {
			b.WriteString(printEscapes.Replace(s))
			continue
		}
		x, err := eval(k)
		if err != nil {
			return 0, err
		}
		val = x
		b.WriteString(formatNum(x))
	}
	if _, err := fmt.Fprintln(ev.out, b.String()); err != nil {
		return 0, errors.Wrap(err, "writing output")
	}
	return val, nil
}

// reeval evaluates the body of an eval call with n keyword arguments bound in
// a new scope. Each argument is evaluated before any is bound, so they cannot
// see each other. The scope is popped and re-evaluation mode is left on every
// path out, including panics.
func (ev *evaluator) reeval(n int, name func(k int) string, arg func(k int) (float64, error), body func() (float64, error)) (float64, error) {
	ns := ev.ns
	ns.PushScope()
	defer ns.PopScope()
	vals := make([]float64, n)
	for k := range vals {
		x, err := arg(k)
		if err != nil {
			return 0, errors.WithMessagef(err, "argument %s", name(k))
		}
		vals[k] = x
	}
	for k, x := range vals {
		if err := ns.Bind(name(k), x); err != nil {
			return 0, err
		}
	}
	ns.EnterReeval()
	defer ns.ExitReeval()
	return body()
}

// VarNames returns the sorted names of the variables that evaluating the
// expression at i reads. Every variable is taken to be 0, so names that are
// only read in an operand skipped by || or && are not found; e.g. the names
// of "x && y" are only x. Output from print is discarded.
//
// If evaluation fails, the result is the names found so far and the error.
func VarNames(s *Slab, i ExprIndex) ([]string, error) {
	seen := make(map[string]bool)
	ns := NewScopes(Resolver(func(name string) (float64, bool) {
		seen[name] = true
		return 0, true
	}))
	_, err := EvalExpr(s, i, ns, Output(io.Discard))
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sortstrs(names)
	return names, err
}
