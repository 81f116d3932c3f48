package evaler

import (
	"strconv"
	"unicode"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(*parsectx)
}

type (
	funcopt struct {
		name string
		fn   FuncKind
	}
	funcsopt map[string]FuncKind
	eofopt   struct {
		c  bool
		ws string
	}
)

// parsectx holds general data for parsing.
type parsectx struct {
	slab *Slab
	// funcs is the set of names parsed as calls to builtins.
	funcs map[string]FuncKind
	// wseof is a string containing the whitespace characters that trigger an
	// EOF token from the lexer outside brackets.
	wseof string
	// ceof indicates whether a comma is allowed at the end of an expression.
	ceof bool
	// depth is the number of brackets enclosing the current position.
	depth int
}

// ws returns the whitespace that ends the expression at the current
// position. Whitespace never ends an expression inside brackets.
func (p *parsectx) ws() string {
	if p.depth > 0 {
		return ""
	}
	return p.wseof
}

// own makes sure the function set can be modified without changing the
// defaults.
func (p *parsectx) own() {
	if p.funcs != nil {
		return
	}
	p.funcs = make(map[string]FuncKind, len(globalfuncs))
	for k, v := range globalfuncs {
		p.funcs[k] = v
	}
}

// ParseFunc sets the builtin that a name calls. To parse a name as a variable
// instead, pass FuncNone.
func ParseFunc(name string, fn FuncKind) ParseOption {
	return &funcopt{name, fn}
}

func (o *funcopt) parseOption(p *parsectx) {
	p.own()
	p.funcs[o.name] = o.fn
}

// ParseFuncs sets the builtins called by a group of names.
func ParseFuncs(fns map[string]FuncKind) ParseOption {
	return funcsopt(fns)
}

func (o funcsopt) parseOption(p *parsectx) {
	p.own()
	for k, v := range o {
		p.funcs[k] = v
	}
}

// DisableDefaultFuncs disables all default functions during parsing. Their
// names will be parsed as variables instead. print and eval are not affected.
func DisableDefaultFuncs() ParseOption {
	return disablefns
}

var disablefns = func() funcsopt {
	m := make(funcsopt, len(globalfuncs))
	for k := range globalfuncs {
		m[k] = FuncNone
	}
	return m
}()

// StopOn tells the parser to treat a list of characters as ending the
// expression. Each rune must be a comma or whitespace codepoint. Whitespace
// does not end an expression where a term is expected, e.g. at the beginning
// of an expression or following an operator, nor inside brackets. Commas do
// not end expressions inside bracketed argument lists.
//
// StopOn overrides the effect of any previous StopOn in the parsing options.
// With no arguments, StopOn produces the default termination behavior, which
// is to parse to EOF.
func StopOn(chars ...rune) ParseOption {
	var o eofopt
	v := make([]rune, 0, len(chars))
	have := func(r rune) bool {
		for _, c := range v {
			if r == c {
				return true
			}
		}
		return false
	}
	for _, r := range chars {
		switch {
		case r == ',':
			o.c = true
		case unicode.IsSpace(r):
			if have(r) {
				continue
			}
			v = append(v, r)
		default:
			panic("evaler: cannot stop on " + strconv.QuoteRune(r))
		}
	}
	o.ws = string(v)
	return &o
}

func (o *eofopt) parseOption(p *parsectx) {
	p.ceof = o.c
	p.wseof = o.ws
}
