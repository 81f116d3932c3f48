package evaler

// Namespace resolves variable names during evaluation. Evaluation only
// changes a namespace through PushScope, Bind, PopScope, EnterReeval, and
// ExitReeval, always in balanced pairs, when it evaluates an eval call.
type Namespace interface {
	// Lookup returns the value bound to name in the innermost scope that
	// binds it.
	Lookup(name string) (float64, bool)
	// Bind binds name in the innermost scope.
	Bind(name string, val float64) error
	// PushScope begins a new innermost scope.
	PushScope()
	// PopScope discards the innermost scope and its bindings.
	PopScope()
	// EnterReeval and ExitReeval bracket the evaluation of the body of an
	// eval call.
	EnterReeval()
	ExitReeval()
}

// Scopes is a Namespace made of a stack of scopes. Lookups check the
// innermost scope first, then each enclosing scope outward, then the
// resolver, if there is one. It is not safe to use a Scopes concurrently.
type Scopes struct {
	stack   []map[string]float64
	resolve func(name string) (float64, bool)
	reeval  int
}

// ScopeOption is an option used when creating a Scopes.
type ScopeOption interface {
	scopeOption(*Scopes)
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt    map[string]float64
	resolveopt func(name string) (float64, bool)
)

func (o varopt) scopeOption(s *Scopes) { s.stack[0][o.name] = o.val }

func (o varsopt) scopeOption(s *Scopes) {
	for k, v := range o {
		s.stack[0][k] = v
	}
}

func (o resolveopt) scopeOption(s *Scopes) { s.resolve = o }

// SetVar sets the value of a variable in the outermost scope.
func SetVar(name string, val float64) ScopeOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the outermost scope.
func SetVars(vars map[string]float64) ScopeOption {
	return varsopt(vars)
}

// Resolver sets a function to look up names that no scope binds.
func Resolver(f func(name string) (float64, bool)) ScopeOption {
	return resolveopt(f)
}

// NewScopes creates a namespace with only the outermost scope.
func NewScopes(opts ...ScopeOption) *Scopes {
	s := &Scopes{stack: []map[string]float64{make(map[string]float64)}}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.scopeOption(s)
	}
	return s
}

// Lookup returns the value of a variable.
func (s *Scopes) Lookup(name string) (float64, bool) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if v, ok := s.stack[i][name]; ok {
			return v, true
		}
	}
	if s.resolve != nil {
		return s.resolve(name)
	}
	return 0, false
}

// Bind binds a variable in the innermost scope. It is an error to bind a name
// that the innermost scope already binds; use Set to overwrite.
func (s *Scopes) Bind(name string, val float64) error {
	top := s.stack[len(s.stack)-1]
	if _, ok := top[name]; ok {
		return &BindError{Name: name}
	}
	top[name] = val
	return nil
}

// Set sets the value of a variable in the innermost scope, whether or not it
// is already bound there. Returns s for chaining.
func (s *Scopes) Set(name string, val float64) *Scopes {
	s.stack[len(s.stack)-1][name] = val
	return s
}

// PushScope begins a new innermost scope.
func (s *Scopes) PushScope() {
	s.stack = append(s.stack, make(map[string]float64))
}

// PopScope discards the innermost scope. Panics if only the outermost scope
// remains.
func (s *Scopes) PopScope() {
	if len(s.stack) == 1 {
		panic("evaler: pop of outermost scope")
	}
	s.stack[len(s.stack)-1] = nil
	s.stack = s.stack[:len(s.stack)-1]
}

// Depth returns the number of scopes, including the outermost.
func (s *Scopes) Depth() int {
	return len(s.stack)
}

// EnterReeval marks the start of an eval body. Calls may nest.
func (s *Scopes) EnterReeval() {
	s.reeval++
}

// ExitReeval marks the end of an eval body.
func (s *Scopes) ExitReeval() {
	if s.reeval == 0 {
		panic("evaler: ExitReeval without EnterReeval")
	}
	s.reeval--
}

// Reevaluating reports whether an eval body is being evaluated.
func (s *Scopes) Reevaluating() bool {
	return s.reeval > 0
}

// Clone creates a copy of the namespace with the same scopes and resolver.
// Changes to either do not affect the other.
func (s *Scopes) Clone() *Scopes {
	n := &Scopes{
		stack:   make([]map[string]float64, len(s.stack)),
		resolve: s.resolve,
		reeval:  s.reeval,
	}
	for i, m := range s.stack {
		c := make(map[string]float64, len(m))
		for k, v := range m {
			c[k] = v
		}
		n.stack[i] = c
	}
	return n
}

var _ Namespace = (*Scopes)(nil)
