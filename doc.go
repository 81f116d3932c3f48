// Package evaler implements a float64 expression evaluator.
//
// Expressions are parsed into a Slab, an append-only store of AST nodes
// addressed by index. A parsed expression can be evaluated directly as a tree,
// or lowered by Compile into a flat arena of instructions and evaluated from
// there; both forms give identical results.
//
// Booleans are 0 and 1. "a || b" is a if a is nonzero, else b; "a && b" is a
// if a is zero, else b. "x^y^z" is "x^(y^z)", and "-x^2" is "(-x)^2".
//
// Variables are resolved through a Namespace at evaluation time. The eval
// pseudo-function evaluates an expression with extra local variables, e.g.
// "eval(x+y, y=2)", without changing the caller's variables.
package evaler
