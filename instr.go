package evaler

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Instruction is a node of compiled code. Operands are other instructions,
// addressed by index.
type Instruction struct {
	Kind InstrKind

	// Num is the value of an InstrConst.
	Num float64
	// Name is the name of an InstrVar.
	Name string
	// Fn is the function an InstrFunc calls.
	Fn FuncKind
	// L and R are operands. Unary instructions use only L. For InstrFunc, log
	// has L as the base and R as the argument, round has L as the argument and
	// R as the modulus, min and max use both, and other functions use only L.
	L, R InstrIndex

	Print []InstrPrintItem
	Eval  *InstrEvalCall
}

// InstrKind is the kind of an Instruction.
type InstrKind int8

const (
	InstrNone InstrKind = iota

	InstrConst // Num
	InstrVar   // lookup(Name)

	InstrNeg // -L
	InstrNot // !L
	InstrInv // 1/L

	InstrAdd // L + R
	InstrSub // L - R
	InstrMul // L * R
	InstrDiv // L / R
	InstrMod // L % R
	InstrExp // L ^ R
	InstrLT  // L < R
	InstrLTE // L <= R
	InstrEQ  // L == R
	InstrNE  // L != R
	InstrGTE // L >= R
	InstrGT  // L > R
	InstrAnd // L && R, R evaluated only if L is nonzero
	InstrOr  // L || R, R evaluated only if L is zero

	InstrFunc  // Fn(L[, R])
	InstrPrint // print(...)
	InstrEval  // eval(...)
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=InstrKind -trimprefix=Instr
//go:generate go mod tidy

// InstrPrintItem is a print argument in compiled code.
type InstrPrintItem struct {
	Str   string
	IsStr bool
	Instr InstrIndex
}

// InstrEvalCall is an eval call in compiled code.
type InstrEvalCall struct {
	Instr  InstrIndex
	Kwargs []InstrKwarg
}

// InstrKwarg is a keyword argument to eval in compiled code.
type InstrKwarg struct {
	Name  string
	Instr InstrIndex
}

// binaryInstrs maps binary operators to instructions that apply them.
var binaryInstrs = map[BinaryOp]InstrKind{
	OpAdd: InstrAdd,
	OpSub: InstrSub,
	OpMul: InstrMul,
	OpDiv: InstrDiv,
	OpMod: InstrMod,
	OpExp: InstrExp,
	OpLT:  InstrLT,
	OpLTE: InstrLTE,
	OpEQ:  InstrEQ,
	OpNE:  InstrNE,
	OpGTE: InstrGTE,
	OpGT:  InstrGT,
	OpAnd: InstrAnd,
	OpOr:  InstrOr,
}

// binaryOps is the inverse of binaryInstrs.
var binaryOps = func() map[InstrKind]BinaryOp {
	m := make(map[InstrKind]BinaryOp, len(binaryInstrs))
	for op, k := range binaryInstrs {
		m[k] = op
	}
	return m
}()

// EvalInstr evaluates the instruction at i in s. If ns is nil, no variables
// are defined.
func EvalInstr(s *Slab, i InstrIndex, ns Namespace, opts ...EvalOption) (float64, error) {
	return newEvaluator(s, ns, opts).evalInstr(i)
}

func (ev *evaluator) evalInstr(i InstrIndex) (float64, error) {
	if err := ev.enter(); err != nil {
		return 0, err
	}
	defer ev.leave()
	in := ev.slab.Instr(i)
	switch in.Kind {
	case InstrConst:
		return in.Num, nil
	case InstrVar:
		return ev.lookup(in.Name)
	case InstrNeg:
		x, err := ev.evalInstr(in.L)
		return -x, err
	case InstrNot:
		x, err := ev.evalInstr(in.L)
		return truth(x == 0), err
	case InstrInv:
		x, err := ev.evalInstr(in.L)
		return 1 / x, err
	case InstrAnd:
		l, err := ev.evalInstr(in.L)
		if err != nil || l == 0 {
			return l, err
		}
		return ev.evalInstr(in.R)
	case InstrOr:
		l, err := ev.evalInstr(in.L)
		if err != nil || l != 0 {
			return l, err
		}
		return ev.evalInstr(in.R)
	case InstrAdd, InstrSub, InstrMul, InstrDiv, InstrMod, InstrExp,
		InstrLT, InstrLTE, InstrEQ, InstrNE, InstrGTE, InstrGT:
		l, err := ev.evalInstr(in.L)
		if err != nil {
			return 0, err
		}
		r, err := ev.evalInstr(in.R)
		if err != nil {
			return 0, err
		}
		return binaryOps[in.Kind].Apply(l, r), nil
	case InstrFunc:
		r, err := ev.evalInstrFunc(&in)
		if err != nil {
			return 0, errors.WithMessage(err, in.Fn.String())
		}
		return r, nil
	case InstrPrint:
		r, err := ev.print(
			len(in.Print),
			func(k int) (string, bool) { return in.Print[k].Str, in.Print[k].IsStr },
			func(k int) (float64, error) { return ev.evalInstr(in.Print[k].Instr) },
		)
		if err != nil {
			return 0, errors.WithMessage(err, "print")
		}
		return r, nil
	case InstrEval:
		r, err := ev.reeval(
			len(in.Eval.Kwargs),
			func(k int) string { return in.Eval.Kwargs[k].Name },
			func(k int) (float64, error) { return ev.evalInstr(in.Eval.Kwargs[k].Instr) },
			func() (float64, error) { return ev.evalInstr(in.Eval.Instr) },
		)
		if err != nil {
			return 0, errors.WithMessage(err, "eval")
		}
		return r, nil
	default:
		panic("evaler: invalid instruction kind " + in.Kind.String())
	}
}

func (ev *evaluator) evalInstrFunc(in *Instruction) (float64, error) {
	switch in.Fn {
	case FuncE, FuncPi:
		return niladic(in.Fn), nil
	case FuncLog, FuncRound, FuncMin, FuncMax:
		l, err := ev.evalInstr(in.L)
		if err != nil {
			return 0, err
		}
		r, err := ev.evalInstr(in.R)
		if err != nil {
			return 0, err
		}
		return dyadic(in.Fn, l, r), nil
	case FuncNone:
		return 0, callError(in.Fn, 0)
	default:
		x, err := ev.evalInstr(in.L)
		if err != nil {
			return 0, err
		}
		return monadic(in.Fn, x), nil
	}
}

// dyadic applies a function of two instruction operands.
func dyadic(f FuncKind, l, r float64) float64 {
	switch f {
	case FuncLog:
		return logBase(l, r)
	case FuncRound:
		return roundTo(l, r)
	case FuncMin:
		return fmin(l, r)
	case FuncMax:
		return fmax(l, r)
	default:
		panic("evaler: " + f.String() + " is not dyadic")
	}
}

// InstrString formats the instructions reachable from i, one per line, in
// the order they were pushed.
func (s *Slab) InstrString(i InstrIndex) string {
	seen := make(map[InstrIndex]bool)
	var walk func(i InstrIndex)
	walk = func(i InstrIndex) {
		if seen[i] {
			return
		}
		seen[i] = true
		in := s.Instr(i)
		switch in.Kind {
		case InstrConst, InstrVar:
		case InstrNeg, InstrNot, InstrInv:
			walk(in.L)
		case InstrFunc:
			switch in.Fn {
			case FuncE, FuncPi:
			case FuncLog, FuncRound, FuncMin, FuncMax:
				walk(in.L)
				walk(in.R)
			default:
				walk(in.L)
			}
		case InstrPrint:
			for _, it := range in.Print {
				if !it.IsStr {
					walk(it.Instr)
				}
			}
		case InstrEval:
			for _, kw := range in.Eval.Kwargs {
				walk(kw.Instr)
			}
			walk(in.Eval.Instr)
		default:
			walk(in.L)
			walk(in.R)
		}
	}
	walk(i)
	idx := make([]int, 0, len(seen))
	for k := range seen {
		idx = append(idx, int(k))
	}
	sortints(idx)
	var b strings.Builder
	for _, k := range idx {
		b.WriteString(strconv.Itoa(k))
		b.WriteString(": ")
		b.WriteString(s.Instr(InstrIndex(k)).String())
		b.WriteByte('\n')
	}
	return b.String()
}

// String formats a single instruction with its operand indices.
func (in Instruction) String() string {
	ref := func(i InstrIndex) string { return "@" + strconv.Itoa(int(i)) }
	switch in.Kind {
	case InstrConst:
		return "Const " + formatNum(in.Num)
	case InstrVar:
		return "Var " + in.Name
	case InstrNeg, InstrNot, InstrInv:
		return in.Kind.String() + " " + ref(in.L)
	case InstrFunc:
		switch in.Fn {
		case FuncE, FuncPi:
			return "Func " + in.Fn.String()
		case FuncLog, FuncRound, FuncMin, FuncMax:
			return "Func " + in.Fn.String() + " " + ref(in.L) + " " + ref(in.R)
		}
		return "Func " + in.Fn.String() + " " + ref(in.L)
	case InstrPrint:
		parts := make([]string, len(in.Print))
		for k, it := range in.Print {
			if it.IsStr {
				parts[k] = `"` + it.Str + `"`
			} else {
				parts[k] = ref(it.Instr)
			}
		}
		return "Print " + strings.Join(parts, " ")
	case InstrEval:
		var b strings.Builder
		b.WriteString("Eval ")
		b.WriteString(ref(in.Eval.Instr))
		for _, kw := range in.Eval.Kwargs {
			b.WriteString(" " + kw.Name + "=" + ref(kw.Instr))
		}
		return b.String()
	default:
		return in.Kind.String() + " " + ref(in.L) + " " + ref(in.R)
	}
}
