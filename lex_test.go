package evaler

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// lexAll scans every token from src, not including the final EOF. Tokens
// which produced errors are included with their errors counted.
func lexAll(src, wseof string) (toks []lexToken, errs int) {
	scan := lex(strings.NewReader(src))
	// Every scan consumes at least one rune, so this bounds the loop.
	for range src + " " {
		tok, err := scan.next(wseof)
		if err != nil {
			errs++
			toks = append(toks, tok)
			continue
		}
		if tok.kind == tokenEOF {
			return toks, errs
		}
		toks = append(toks, tok)
	}
	panic("lexing " + strconv.Quote(src) + " did not end")
}

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		errs   int
	}{
		// spaces
		{"", nil, 0},
		{" \t \r\n ", nil, 0},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}}, 0},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}}, 0},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"1.0", []lexToken{{text: "1.0", kind: tokenNum, pos: 1}}, 0},
		{"-1", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}}, 0},
		{"1e1", []lexToken{{text: "1e1", kind: tokenNum, pos: 1}}, 0},
		{"1e", []lexToken{{pos: 1}}, 1},
		{"1e+1", []lexToken{{text: "1e+1", kind: tokenNum, pos: 1}}, 0},
		{"1e-1", []lexToken{{text: "1e-1", kind: tokenNum, pos: 1}}, 0},
		{"1.1.1", []lexToken{{pos: 1}, {text: "1", kind: tokenNum, pos: 5}}, 1},
		{"1.0e1", []lexToken{{text: "1.0e1", kind: tokenNum, pos: 1}}, 0},
		{".", []lexToken{{pos: 1}}, 1},
		{".1", []lexToken{{text: ".1", kind: tokenNum, pos: 1}}, 0},
		{".1e1", []lexToken{{text: ".1e1", kind: tokenNum, pos: 1}}, 0},
		{"1+0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"(1)", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {text: ")", kind: tokenClose, pos: 3}}, 0},
		{"1a", []lexToken{{pos: 1}}, 1},
		{"inf", []lexToken{{text: "inf", kind: tokenNum, pos: 1}}, 0},
		{"NaN", []lexToken{{text: "NaN", kind: tokenNum, pos: 1}}, 0},
		{"∞", []lexToken{{text: "∞", kind: tokenNum, pos: 1}}, 0},
		// identifiers
		{"e", []lexToken{{text: "e", kind: tokenIdent, pos: 1}}, 0},
		{"e1", []lexToken{{text: "e1", kind: tokenIdent, pos: 1}}, 0},
		{"π", []lexToken{{text: "π", kind: tokenIdent, pos: 1}}, 0},
		{"_1234_", []lexToken{{text: "_1234_", kind: tokenIdent, pos: 1}}, 0},
		{"e(", []lexToken{{text: "e", kind: tokenIdent, pos: 1}, {text: "(", kind: tokenOpen, pos: 2}}, 0},
		{"a.b", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {pos: 2}}, 1},
		// operators
		{"++", []lexToken{{text: "+", kind: tokenOp, pos: 1}, {text: "+", kind: tokenOp, pos: 2}}, 0},
		{"a--b", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {text: "-", kind: tokenOp, pos: 2}, {text: "-", kind: tokenOp, pos: 3}, {text: "b", kind: tokenIdent, pos: 4}}, 0},
		{"<=>=", []lexToken{{text: "<=", kind: tokenOp, pos: 1}, {text: ">=", kind: tokenOp, pos: 3}}, 0},
		{"a&&b||c", []lexToken{
			{text: "a", kind: tokenIdent, pos: 1},
			{text: "&&", kind: tokenOp, pos: 2},
			{text: "b", kind: tokenIdent, pos: 4},
			{text: "||", kind: tokenOp, pos: 5},
			{text: "c", kind: tokenIdent, pos: 7},
		}, 0},
		{"y=-1", []lexToken{{text: "y", kind: tokenIdent, pos: 1}, {text: "=", kind: tokenOp, pos: 2}, {text: "-", kind: tokenOp, pos: 3}, {text: "1", kind: tokenNum, pos: 4}}, 0},
		{"!=!", []lexToken{{text: "!=", kind: tokenOp, pos: 1}, {text: "!", kind: tokenOp, pos: 3}}, 0},
		{"2×3÷4", []lexToken{
			{text: "2", kind: tokenNum, pos: 1},
			{text: "×", kind: tokenOp, pos: 2},
			{text: "3", kind: tokenNum, pos: 3},
			{text: "÷", kind: tokenOp, pos: 4},
			{text: "4", kind: tokenNum, pos: 5},
		}, 0},
		// brackets and separators
		{"[]", []lexToken{{text: "[", kind: tokenOpen, pos: 1}, {text: "]", kind: tokenClose, pos: 2}}, 0},
		{"{}", []lexToken{{text: "{", kind: tokenOpen, pos: 1}, {text: "}", kind: tokenClose, pos: 2}}, 0},
		{"1,2", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: ",", kind: tokenSep, pos: 2}, {text: "2", kind: tokenNum, pos: 3}}, 0},
		// strings
		{`"a b"`, []lexToken{{text: "a b", kind: tokenStr, pos: 1}}, 0},
		{`"\n"`, []lexToken{{text: `\n`, kind: tokenStr, pos: 1}}, 0},
		{`1"x"`, []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "x", kind: tokenStr, pos: 2}}, 0},
		{`"abc`, []lexToken{{pos: 1}}, 1},
		// erroneous symbols
		{"$", []lexToken{{pos: 1}}, 1},
		{"a$", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {pos: 2}}, 1},
		{"$a", []lexToken{{pos: 1}, {text: "a", kind: tokenIdent, pos: 2}}, 1},
		{"0$", []lexToken{{pos: 1}}, 1},
		{"$0", []lexToken{{pos: 1}, {text: "0", kind: tokenNum, pos: 2}}, 1},
		{"$$", []lexToken{{pos: 1}, {pos: 2}}, 2},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks, errs := lexAll(c.src, "")
			assert.Equal(t, c.tokens, toks)
			assert.Equal(t, c.errs, errs)
		})
	}
}

func TestLexStopOn(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		wseof  string
		tokens []lexToken
	}{
		{"none", "1 2", "", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "2", kind: tokenNum, pos: 3}}},
		{"space", "1 2", " ", []lexToken{{text: "1", kind: tokenNum, pos: 1}}},
		{"newline", "1 2\n3", "\n", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "2", kind: tokenNum, pos: 3}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, errs := lexAll(c.src, c.wseof)
			assert.Equal(t, c.tokens, toks)
			assert.Zero(t, errs)
		})
	}
}

func TestLexError(t *testing.T) {
	_, err := lex(strings.NewReader(`"abc`)).next("")
	var lerr *LexError
	if assert.ErrorAs(t, err, &lerr) {
		assert.Equal(t, "string", lerr.Kind)
		assert.Equal(t, "abc", lerr.Text)
		assert.Contains(t, lerr.Error(), "invalid string token")
	}
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "EOF", tokenEOF.String())
	assert.Equal(t, "Str", tokenStr.String())
	assert.Equal(t, "tokenKind(42)", tokenKind(42).String())
	assert.Equal(t, "Parens", ValueParens.String())
	assert.Equal(t, "Eval", ValueEval.String())
	assert.Equal(t, "ValueKind(-1)", ValueKind(-1).String())
}
