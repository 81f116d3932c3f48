package evaler

import (
	"math"
	"strconv"
)

// FuncKind identifies a builtin function.
type FuncKind int8

const (
	FuncNone FuncKind = iota

	FuncInt
	FuncCeil
	FuncFloor
	FuncAbs
	FuncSign
	FuncLog
	FuncRound
	FuncMin
	FuncMax
	FuncE
	FuncPi
	FuncSin
	FuncCos
	FuncTan
	FuncAsin
	FuncAcos
	FuncAtan
	FuncSinh
	FuncCosh
	FuncTanh
	FuncAsinh
	FuncAcosh
	FuncAtanh
)

var funcNames = [...]string{
	FuncNone:  "none",
	FuncInt:   "int",
	FuncCeil:  "ceil",
	FuncFloor: "floor",
	FuncAbs:   "abs",
	FuncSign:  "sign",
	FuncLog:   "log",
	FuncRound: "round",
	FuncMin:   "min",
	FuncMax:   "max",
	FuncE:     "e",
	FuncPi:    "pi",
	FuncSin:   "sin",
	FuncCos:   "cos",
	FuncTan:   "tan",
	FuncAsin:  "asin",
	FuncAcos:  "acos",
	FuncAtan:  "atan",
	FuncSinh:  "sinh",
	FuncCosh:  "cosh",
	FuncTanh:  "tanh",
	FuncAsinh: "asinh",
	FuncAcosh: "acosh",
	FuncAtanh: "atanh",
}

func (f FuncKind) String() string {
	if f < 0 || int(f) >= len(funcNames) {
		return "FuncKind(" + strconv.Itoa(int(f)) + ")"
	}
	return funcNames[f]
}

// globalfuncs maps function names to builtins.
var globalfuncs = func() map[string]FuncKind {
	m := make(map[string]FuncKind, len(funcNames)-1)
	for k, name := range funcNames {
		if FuncKind(k) != FuncNone {
			m[name] = FuncKind(k)
		}
	}
	return m
}()

// LookupFunc returns the builtin function with the given name, or FuncNone.
func LookupFunc(name string) FuncKind {
	return globalfuncs[name]
}

// CanCall returns whether the function can be called with n arguments.
func (f FuncKind) CanCall(n int) bool {
	switch f {
	case FuncNone:
		return false
	case FuncE, FuncPi:
		return n == 0
	case FuncLog, FuncRound:
		return n == 1 || n == 2
	case FuncMin, FuncMax:
		return n >= 1
	default:
		return n == 1
	}
}

// monadic applies a function of one argument.
func monadic(f FuncKind, x float64) float64 {
	switch f {
	case FuncInt:
		return math.Trunc(x)
	case FuncCeil:
		return math.Ceil(x)
	case FuncFloor:
		return math.Floor(x)
	case FuncAbs:
		return math.Abs(x)
	case FuncSign:
		return sign(x)
	case FuncSin:
		return math.Sin(x)
	case FuncCos:
		return math.Cos(x)
	case FuncTan:
		return math.Tan(x)
	case FuncAsin:
		return math.Asin(x)
	case FuncAcos:
		return math.Acos(x)
	case FuncAtan:
		return math.Atan(x)
	case FuncSinh:
		return math.Sinh(x)
	case FuncCosh:
		return math.Cosh(x)
	case FuncTanh:
		return math.Tanh(x)
	case FuncAsinh:
		return math.Asinh(x)
	case FuncAcosh:
		return math.Acosh(x)
	case FuncAtanh:
		return math.Atanh(x)
	default:
		panic("evaler: " + f.String() + " is not monadic")
	}
}

// niladic gives the value of a constant function.
func niladic(f FuncKind) float64 {
	switch f {
	case FuncE:
		return math.E
	case FuncPi:
		return math.Pi
	default:
		panic("evaler: " + f.String() + " is not niladic")
	}
}

// sign is 1 for positive numbers and +0, -1 for negative numbers and -0, and
// NaN for NaN.
func sign(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	return math.Copysign(1, x)
}

// logBase computes the logarithm of x in the given base. Exact integer powers
// of the base give exact results, e.g. log(10, 1000) is 3 rather than
// 2.9999999999999996.
func logBase(base, x float64) float64 {
	var r float64
	switch base {
	case 2:
		return math.Log2(x)
	case 10:
		r = math.Log10(x)
	default:
		r = math.Log(x) / math.Log(base)
	}
	if p := math.Round(r); p != r && math.Pow(base, p) == x {
		return p
	}
	return r
}

// roundTo rounds x to the nearest multiple of modulus, with halves rounded
// away from zero.
func roundTo(x, modulus float64) float64 {
	return math.Round(x/modulus) * modulus
}

// fmin and fmax use plain comparisons. A NaN argument wins only when it is on
// the right.
func fmin(l, r float64) float64 {
	if l < r {
		return l
	}
	return r
}

func fmax(l, r float64) float64 {
	if l > r {
		return l
	}
	return r
}

// callError creates an error for a call with the wrong number of arguments.
func callError(f FuncKind, n int) error {
	return &StructureError{Msg: "cannot call " + f.String() + " with " + strconv.Itoa(n) + " arguments"}
}
