package evaler

import "github.com/pkg/errors"

// Compile lowers the expression at i into instructions in s and returns the
// index of the root instruction. Evaluating the result with EvalInstr gives
// the same result as evaluating the expression with EvalExpr.
//
// Operations on constants are folded. Variables, print, and eval are never
// folded, so their effects happen each time the result is evaluated.
func Compile(s *Slab, i ExprIndex) (InstrIndex, error) {
	c := compiler{slab: s}
	return c.expr(i)
}

type compiler struct {
	slab *Slab
}

func (c *compiler) expr(i ExprIndex) (InstrIndex, error) {
	e := c.slab.Expr(i)
	vals := make([]InstrIndex, 0, len(e.Pairs)+1)
	ops := make([]BinaryOp, 0, len(e.Pairs))
	v, err := c.value(e.First)
	if err != nil {
		return 0, err
	}
	vals = append(vals, v)
	for _, p := range e.Pairs {
		v, err := c.value(p.Value)
		if err != nil {
			return 0, err
		}
		ops = append(ops, p.Op)
		vals = append(vals, v)
	}
	return reduce(vals, ops, c.binary)
}

// binary emits the instruction for l op r.
func (c *compiler) binary(op BinaryOp, l, r InstrIndex) InstrIndex {
	switch op {
	case OpSub:
		// l - r is exactly l + -r.
		return c.push(Instruction{Kind: InstrAdd, L: l, R: c.push(Instruction{Kind: InstrNeg, L: r})})
	case OpDiv:
		if in := c.slab.Instr(l); in.Kind == InstrConst && in.Num == 1 {
			return c.push(Instruction{Kind: InstrInv, L: r})
		}
	}
	k, ok := binaryInstrs[op]
	if !ok {
		panic("evaler: invalid binary operator " + op.String())
	}
	return c.push(Instruction{Kind: k, L: l, R: r})
}

func (c *compiler) value(i ValueIndex) (InstrIndex, error) {
	v := c.slab.Value(i)
	switch v.Kind {
	case ValueConst:
		return c.push(Instruction{Kind: InstrConst, Num: v.Num}), nil
	case ValueVar:
		return c.push(Instruction{Kind: InstrVar, Name: v.Name}), nil
	case ValuePos:
		return c.value(ValueIndex(v.Arg))
	case ValueNeg, ValueNot:
		x, err := c.value(ValueIndex(v.Arg))
		if err != nil {
			return 0, err
		}
		k := InstrNeg
		if v.Kind == ValueNot {
			k = InstrNot
		}
		return c.push(Instruction{Kind: k, L: x}), nil
	case ValueParens:
		return c.expr(ExprIndex(v.Arg))
	case ValueFunc:
		r, err := c.call(v.Func)
		if err != nil {
			return 0, errors.WithMessage(err, v.Func.Fn.String())
		}
		return r, nil
	case ValuePrint:
		items := make([]InstrPrintItem, len(v.Print))
		for k, it := range v.Print {
			if it.IsStr {
				items[k] = InstrPrintItem{Str: it.Str, IsStr: true}
				continue
			}
			x, err := c.expr(it.Expr)
			if err != nil {
				return 0, errors.WithMessage(err, "print")
			}
			items[k] = InstrPrintItem{Instr: x}
		}
		return c.push(Instruction{Kind: InstrPrint, Print: items}), nil
	case ValueEval:
		call := &InstrEvalCall{Kwargs: make([]InstrKwarg, len(v.Eval.Kwargs))}
		for k, kw := range v.Eval.Kwargs {
			x, err := c.expr(kw.Expr)
			if err != nil {
				return 0, errors.WithMessage(err, "eval")
			}
			call.Kwargs[k] = InstrKwarg{Name: kw.Name, Instr: x}
		}
		x, err := c.expr(v.Eval.Expr)
		if err != nil {
			return 0, errors.WithMessage(err, "eval")
		}
		call.Instr = x
		return c.push(Instruction{Kind: InstrEval, Eval: call}), nil
	default:
		panic("evaler: invalid value kind " + v.Kind.String())
	}
}

func (c *compiler) call(f *FuncCall) (InstrIndex, error) {
	if !f.Fn.CanCall(len(f.Args)) {
		return 0, callError(f.Fn, len(f.Args))
	}
	args := make([]InstrIndex, len(f.Args))
	for k, a := range f.Args {
		x, err := c.expr(a)
		if err != nil {
			return 0, err
		}
		args[k] = x
	}
	switch f.Fn {
	case FuncE, FuncPi:
		return c.push(Instruction{Kind: InstrConst, Num: niladic(f.Fn)}), nil
	case FuncLog:
		if len(args) == 1 {
			base := c.push(Instruction{Kind: InstrConst, Num: 10})
			return c.push(Instruction{Kind: InstrFunc, Fn: FuncLog, L: base, R: args[0]}), nil
		}
		return c.push(Instruction{Kind: InstrFunc, Fn: FuncLog, L: args[0], R: args[1]}), nil
	case FuncRound:
		if len(args) == 1 {
			modulus := c.push(Instruction{Kind: InstrConst, Num: 1})
			return c.push(Instruction{Kind: InstrFunc, Fn: FuncRound, L: args[0], R: modulus}), nil
		}
		return c.push(Instruction{Kind: InstrFunc, Fn: FuncRound, L: args[0], R: args[1]}), nil
	case FuncMin, FuncMax:
		r := args[0]
		for _, a := range args[1:] {
			r = c.push(Instruction{Kind: InstrFunc, Fn: f.Fn, L: r, R: a})
		}
		return r, nil
	default:
		return c.push(Instruction{Kind: InstrFunc, Fn: f.Fn, L: args[0]}), nil
	}
}

// push adds an instruction to the slab, first folding it to a constant if
// it is pure and all its operands are constants.
func (c *compiler) push(in Instruction) InstrIndex {
	if x, ok := c.fold(in); ok {
		in = Instruction{Kind: InstrConst, Num: x}
	}
	return c.slab.PushInstr(in)
}

func (c *compiler) fold(in Instruction) (float64, bool) {
	konst := func(i InstrIndex) (float64, bool) {
		x := c.slab.Instr(i)
		return x.Num, x.Kind == InstrConst
	}
	switch in.Kind {
	case InstrNeg, InstrNot, InstrInv:
		x, ok := konst(in.L)
		if !ok {
			return 0, false
		}
		switch in.Kind {
		case InstrNeg:
			return -x, true
		case InstrNot:
			return truth(x == 0), true
		default:
			return 1 / x, true
		}
	case InstrFunc:
		switch in.Fn {
		case FuncE, FuncPi:
			return niladic(in.Fn), true
		case FuncLog, FuncRound, FuncMin, FuncMax:
			l, ok := konst(in.L)
			if !ok {
				return 0, false
			}
			r, ok := konst(in.R)
			if !ok {
				return 0, false
			}
			return dyadic(in.Fn, l, r), true
		default:
			x, ok := konst(in.L)
			if !ok {
				return 0, false
			}
			return monadic(in.Fn, x), true
		}
	}
	op, ok := binaryOps[in.Kind]
	if !ok {
		return 0, false
	}
	l, ok := konst(in.L)
	if !ok {
		return 0, false
	}
	r, ok := konst(in.R)
	if !ok {
		return 0, false
	}
	return op.Apply(l, r), true
}
