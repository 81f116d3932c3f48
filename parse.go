package evaler

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Expr = Value { BinOp Value }
// Value = num | name | Call | Print | Eval | UnOp Value | '(' Expr ')' | '[' Expr ']' | '{' Expr '}'
// Call = funcname | funcname '(' [ Expr { ',' Expr } ] ')'
// Print = 'print' '(' [ Item { ',' Item } ] ')'
// Item = string | Expr
// Eval = 'eval' '(' Expr { ',' name '=' Expr } ')'
// UnOp = '+' | '-' | '!'
// BinOp = '+' | '-' | '*' | '/' | '%' | '^' | '<' | '<=' | '==' | '!=' | '>=' | '>' | '&&' | '||' | '×' | '÷'
//
// Any bracket pair may be used wherever '(' ')' appears. Precedence is not
// applied by the parser; operators are kept in order in the expression.

// Parse parses an expression into s and returns the index of its root. The
// given options are applied in order.
func Parse(src io.RuneScanner, s *Slab, opts ...ParseOption) (ExprIndex, error) {
	scan := lex(src)
	p := parsectx{slab: s}
	for _, opt := range opts {
		opt.parseOption(&p)
	}
	e, err := parseexpr(scan, &p)
	if err != nil {
		return 0, err
	}
	switch tok := scan.must(); tok.kind {
	case tokenEOF:
	case tokenSep:
		if !p.ceof {
			return 0, itShouldNotHaveEndedThisWay(tok, -1)
		}
	default:
		return 0, itShouldNotHaveEndedThisWay(tok, -1)
	}
	return e, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, s *Slab, opts ...ParseOption) (ExprIndex, error) {
	return Parse(strings.NewReader(src), s, opts...)
}

// fn returns the builtin that name calls, or FuncNone.
func (p *parsectx) fn(name string) FuncKind {
	if p.funcs == nil {
		return globalfuncs[name]
	}
	return p.funcs[name]
}

// parseexpr parses an operator chain. If there is no error, then parseexpr
// pushes the token that ended the expression, which is a close bracket,
// separator, or EOF.
func parseexpr(scan *lexer, p *parsectx) (ExprIndex, error) {
	first, err := parsevalue(scan, p)
	if err != nil {
		return 0, err
	}
	e := Expression{First: first}
	for {
		tok, err := scan.next(p.ws())
		if err != nil {
			return 0, err
		}
		switch tok.kind {
		case tokenOp:
			op := binop(tok.text)
			if op == OpNone {
				return 0, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			v, err := parsevalue(scan, p)
			if err != nil {
				return 0, err
			}
			e.Pairs = append(e.Pairs, ExprPair{Op: op, Value: v})
		case tokenClose, tokenSep, tokenEOF:
			scan.push(tok)
			return p.slab.PushExpr(e), nil
		case tokenNum, tokenIdent, tokenOpen, tokenStr:
			return 0, &TokenError{Col: tok.pos, Text: tok.text}
		default:
			panic("evaler: unknown token: " + tok.String())
		}
	}
}

// parsevalue parses a single operand. Whitespace normally lexed as EOF is
// ignored before it.
func parsevalue(scan *lexer, p *parsectx) (ValueIndex, error) {
	tok, err := scan.next("")
	if err != nil {
		return 0, err
	}
	switch tok.kind {
	case tokenNum:
		return p.slab.PushValue(Value{Kind: ValueConst, Num: parsenum(tok.text)}), nil
	case tokenIdent:
		switch tok.text {
		case "print":
			return parseprint(scan, p, tok)
		case "eval":
			return parseeval(scan, p, tok)
		}
		fn := p.fn(tok.text)
		if fn == FuncNone {
			return p.slab.PushValue(Value{Kind: ValueVar, Name: tok.text}), nil
		}
		return parsecall(scan, p, tok, fn)
	case tokenOp:
		var k ValueKind
		switch tok.text {
		case "+":
			k = ValuePos
		case "-":
			k = ValueNeg
		case "!":
			k = ValueNot
		default:
			return 0, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		v, err := parsevalue(scan, p)
		if err != nil {
			return 0, err
		}
		return p.slab.PushValue(Value{Kind: k, Arg: int(v)}), nil
	case tokenOpen:
		e, err := parsebracketed(scan, p, tok)
		if err != nil {
			return 0, err
		}
		return p.slab.PushValue(Value{Kind: ValueParens, Arg: int(e)}), nil
	case tokenClose:
		return 0, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenSep:
		if p.ceof && p.depth == 0 {
			return 0, &EmptyExpressionError{Col: tok.pos, End: tok.text}
		}
		return 0, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return 0, &EmptyExpressionError{Col: tok.pos, End: ""}
	case tokenStr:
		return 0, &TokenError{Col: tok.pos, Text: tok.text}
	default:
		panic("evaler: unknown token: " + tok.String())
	}
}

// parsebracketed parses an expression following the open bracket open, and
// the matching close bracket.
func parsebracketed(scan *lexer, p *parsectx, open lexToken) (ExprIndex, error) {
	match := rightbracket(open.text)
	p.depth++
	e, err := parseexpr(scan, p)
	p.depth--
	if err != nil {
		return 0, err
	}
	end := scan.must()
	if end.kind != tokenClose || end.text != closebrackets[match] {
		return 0, itShouldNotHaveEndedThisWay(end, match)
	}
	return e, nil
}

// parsecall parses the arguments to a builtin. Niladic functions may be
// written without brackets.
func parsecall(scan *lexer, p *parsectx, name lexToken, fn FuncKind) (ValueIndex, error) {
	tok, err := scan.next(p.ws())
	if err != nil {
		return 0, err
	}
	if tok.kind != tokenOpen {
		if !fn.CanCall(0) {
			return 0, &CallError{Col: tok.pos, Func: name.text}
		}
		scan.push(tok)
		return p.slab.PushValue(Value{Kind: ValueFunc, Func: &FuncCall{Fn: fn}}), nil
	}
	args, err := parsearglist(scan, p, tok)
	if err != nil {
		return 0, err
	}
	if !fn.CanCall(len(args)) {
		return 0, &CallError{Col: tok.pos, Func: name.text, Len: len(args)}
	}
	return p.slab.PushValue(Value{Kind: ValueFunc, Func: &FuncCall{Fn: fn, Args: args}}), nil
}

// parsearglist parses a bracketed list of zero or more expressions following
// the open bracket open.
func parsearglist(scan *lexer, p *parsectx, open lexToken) ([]ExprIndex, error) {
	match := rightbracket(open.text)
	p.depth++
	defer func() { p.depth-- }()
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenClose {
		if tok.text != closebrackets[match] {
			return nil, &BracketError{Col: tok.pos, Left: open.text, Right: tok.text}
		}
		return nil, nil
	}
	scan.push(tok)
	var args []ExprIndex
	for {
		e, err := parseexpr(scan, p)
		if err != nil {
			// As a special case, reporting mismatched brackets is more helpful
			// than empty expression, if that's what we'd do here.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: open.text}
			}
			return nil, err
		}
		args = append(args, e)
		if done, err := endarg(scan, open, match); done || err != nil {
			return args, err
		}
	}
}

// endarg consumes the token following an argument. The result is true if it
// is the close bracket matching open, false if it is a separator, and an
// error otherwise.
func endarg(scan *lexer, open lexToken, match int) (bool, error) {
	end := scan.must()
	switch end.kind {
	case tokenClose:
		if end.text != closebrackets[match] {
			return false, &BracketError{Col: end.pos, Left: open.text, Right: end.text}
		}
		return true, nil
	case tokenSep:
		return false, nil
	case tokenEOF:
		return false, &BracketError{Col: end.pos, Left: open.text, Right: ""}
	default:
		panic("evaler: argument ended on non-end token " + end.String())
	}
}

// parseprint parses the arguments to print.
func parseprint(scan *lexer, p *parsectx, name lexToken) (ValueIndex, error) {
	open, err := scan.next(p.ws())
	if err != nil {
		return 0, err
	}
	if open.kind != tokenOpen {
		return 0, &CallError{Col: open.pos, Func: name.text}
	}
	match := rightbracket(open.text)
	p.depth++
	defer func() { p.depth-- }()
	var items []PrintItem
	for {
		tok, err := scan.next("")
		if err != nil {
			return 0, err
		}
		switch {
		case tok.kind == tokenClose && len(items) == 0:
			scan.push(tok)
		case tok.kind == tokenStr:
			items = append(items, PrintItem{Str: tok.text, IsStr: true})
			// endarg needs the following token pushed.
			next, err := scan.next("")
			if err != nil {
				return 0, err
			}
			switch next.kind {
			case tokenClose, tokenSep, tokenEOF:
				scan.push(next)
			default:
				return 0, &TokenError{Col: next.pos, Text: next.text}
			}
		default:
			scan.push(tok)
			e, err := parseexpr(scan, p)
			if err != nil {
				return 0, err
			}
			items = append(items, PrintItem{Expr: e})
		}
		done, err := endarg(scan, open, match)
		if err != nil {
			return 0, err
		}
		if done {
			return p.slab.PushValue(Value{Kind: ValuePrint, Print: items}), nil
		}
	}
}

// parseeval parses the arguments to eval.
func parseeval(scan *lexer, p *parsectx, name lexToken) (ValueIndex, error) {
	open, err := scan.next(p.ws())
	if err != nil {
		return 0, err
	}
	if open.kind != tokenOpen {
		return 0, &CallError{Col: open.pos, Func: name.text}
	}
	match := rightbracket(open.text)
	p.depth++
	defer func() { p.depth-- }()
	e, err := parseexpr(scan, p)
	if err != nil {
		return 0, err
	}
	call := &EvalCall{Expr: e}
	for {
		done, err := endarg(scan, open, match)
		if err != nil {
			return 0, err
		}
		if done {
			return p.slab.PushValue(Value{Kind: ValueEval, Eval: call}), nil
		}
		kw, err := scan.next("")
		if err != nil {
			return 0, err
		}
		if kw.kind != tokenIdent {
			return 0, &KeywordError{Col: kw.pos, Text: kw.text}
		}
		eq, err := scan.next("")
		if err != nil {
			return 0, err
		}
		if eq.kind != tokenOp || eq.text != "=" {
			return 0, &KeywordError{Col: eq.pos, Text: eq.text}
		}
		x, err := parseexpr(scan, p)
		if err != nil {
			return 0, err
		}
		call.Kwargs = append(call.Kwargs, Kwarg{Name: kw.text, Expr: x})
	}
}

// parsenum converts a number token. The lexer only produces valid numbers;
// those too large for float64 become infinite.
func parsenum(s string) float64 {
	if s == "∞" {
		return math.Inf(1)
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		panic("evaler: invalid number: " + s + " (" + err.Error() + ")")
	}
	return x
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// sortints is sortstrs for ints.
func sortints(v []int) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j] < v[j-1]; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}

// rightbracket gets the closing bracket index for an opening bracket.
func rightbracket(left string) int {
	r, sz := utf8.DecodeRuneInString(left)
	k := strings.IndexRune(OpenBrackets, r)
	if k < 0 || sz != len(left) {
		panic("evaler: invalid bracket " + strconv.Quote(left))
	}
	return k
}

// leftbracket gets the opening bracket matching right. If right is no bracket,
// then the result is the empty string.
func leftbracket(right int) string {
	if right == -1 {
		return ""
	}
	return openbrackets[right]
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. match is the bracket rune index that
// the expression should have matched, or -1 if none.
func itShouldNotHaveEndedThisWay(tok lexToken, match int) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: ""}
	case tokenClose:
		// A bracket could be the wrong bracket for the opening brace or any
		// bracket at the end of an input.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("evaler: it really should not have ended this way: " + tok.String())
	}
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result is OpNone.
func binop(text string) BinaryOp {
	switch text {
	case "+":
		return OpAdd
	case "-":
		return OpSub
	case "*", "×":
		return OpMul
	case "/", "÷":
		return OpDiv
	case "%":
		return OpMod
	case "^":
		return OpExp
	case "<":
		return OpLT
	case "<=":
		return OpLTE
	case "==":
		return OpEQ
	case "!=":
		return OpNE
	case ">=":
		return OpGTE
	case ">":
		return OpGT
	case "&&":
		return OpAnd
	case "||":
		return OpOr
	default:
		return OpNone
	}
}
