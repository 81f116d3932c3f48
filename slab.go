package evaler

import (
	"strconv"

	"src.elv.sh/pkg/persistent/vector"
)

// Slab holds the nodes of parsed and compiled expressions. Nodes refer to
// each other only by index, and nodes are never modified once pushed, so a
// Slab may be read concurrently by any number of evaluations.
//
// Pushing is not safe for concurrent use. Clone is cheap; pushing to a clone
// does not affect the original.
type Slab struct {
	vals   vector.Vector
	exprs  vector.Vector
	instrs vector.Vector
}

// NewSlab creates an empty slab.
func NewSlab() *Slab {
	return &Slab{
		vals:   vector.Empty,
		exprs:  vector.Empty,
		instrs: vector.Empty,
	}
}

// Clone returns a copy of the slab which shares all existing nodes.
func (s *Slab) Clone() *Slab {
	c := *s
	return &c
}

// PushValue adds a value node and returns its index.
func (s *Slab) PushValue(v Value) ValueIndex {
	s.vals = s.vals.Conj(v)
	return ValueIndex(s.vals.Len() - 1)
}

// PushExpr adds an expression node and returns its index.
func (s *Slab) PushExpr(e Expression) ExprIndex {
	s.exprs = s.exprs.Conj(e)
	return ExprIndex(s.exprs.Len() - 1)
}

// PushInstr adds an instruction and returns its index.
func (s *Slab) PushInstr(in Instruction) InstrIndex {
	s.instrs = s.instrs.Conj(in)
	return InstrIndex(s.instrs.Len() - 1)
}

// Value returns the value node at i. Panics if there is no such node.
func (s *Slab) Value(i ValueIndex) Value {
	v, ok := s.vals.Index(int(i))
	if !ok {
		panic("evaler: value index " + strconv.Itoa(int(i)) + " out of range")
	}
	return v.(Value)
}

// Expr returns the expression node at i. Panics if there is no such node.
func (s *Slab) Expr(i ExprIndex) Expression {
	e, ok := s.exprs.Index(int(i))
	if !ok {
		panic("evaler: expression index " + strconv.Itoa(int(i)) + " out of range")
	}
	return e.(Expression)
}

// Instr returns the instruction at i. Panics if there is no such instruction.
func (s *Slab) Instr(i InstrIndex) Instruction {
	in, ok := s.instrs.Index(int(i))
	if !ok {
		panic("evaler: instruction index " + strconv.Itoa(int(i)) + " out of range")
	}
	return in.(Instruction)
}

// Len returns the number of value, expression, and instruction nodes.
func (s *Slab) Len() (vals, exprs, instrs int) {
	return s.vals.Len(), s.exprs.Len(), s.instrs.Len()
}
