package evaler

import "strconv"

// NameError is an error from a lookup for a variable that is not bound in
// any scope of the namespace.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// BindError is an error binding a name that is already bound in the
// innermost scope, e.g. eval(x, a=1, a=2).
type BindError struct {
	// Name is the name that was bound twice.
	Name string
}

func (err *BindError) Error() string {
	return "duplicate binding of " + strconv.Quote(err.Name)
}

// UnsupportedError is an error indicating a recognized feature that is not
// implemented.
type UnsupportedError struct {
	// Feature describes the feature.
	Feature string
}

func (err *UnsupportedError) Error() string {
	return "unsupported: " + err.Feature
}

// StructureError indicates a malformed node in a slab, such as an operator
// chain that does not reduce to one value or a call with the wrong number of
// arguments. Parse and Compile never produce such nodes.
type StructureError struct {
	// Msg describes the problem.
	Msg string
}

func (err *StructureError) Error() string {
	return "malformed expression: " + err.Msg
}

// DepthError is an error indicating that evaluation exceeded its maximum
// nesting depth.
type DepthError struct {
	// Max is the depth limit that was exceeded.
	Max int
}

func (err *DepthError) Error() string {
	return "evaluation exceeded maximum depth " + strconv.Itoa(err.Max)
}
