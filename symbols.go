package fexpr

import (
	"strings"
)

// Binding associates a name with a variable, function, or closure for
// compiling expressions. Exactly one of Value and Fn must be set.
//
// Bindings passed to Compile are checked before the built-in functions, so
// they may shadow them. When several bindings have the same name, the first
// one wins.
type Binding struct {
	// Name is the identifier used in expressions. It must be lowercase ASCII
	// letters, digits, and underscores, not starting with a digit.
	Name string
	// Value is the storage of a variable. Compiled expressions read it each
	// time they are evaluated, so callers may change it between evaluations.
	Value *float64
	// Fn is the function to call.
	Fn Callable
	// Context is passed as the first argument to each call of a closure. It
	// must be nil unless Fn is a closure.
	Context interface{}
	// Pure marks Fn as depending only on its arguments, which allows the
	// compiler to evaluate calls with constant arguments ahead of time.
	Pure bool
}

// Var creates a variable binding.
func Var(name string, v *float64) Binding {
	return Binding{Name: name, Value: v}
}

// Func creates a binding to a function that the compiler never folds.
func Func(name string, fn Callable) Binding {
	return Binding{Name: name, Fn: fn}
}

// PureFunc creates a binding to a pure function.
func PureFunc(name string, fn Callable) Binding {
	return Binding{Name: name, Fn: fn, Pure: true}
}

// Closure creates a binding to a closure with its context. fn should be one
// of Cl0 through Cl7.
func Closure(name string, fn Callable, ctx interface{}) Binding {
	return Binding{Name: name, Fn: fn, Context: ctx}
}

// PureClosure is like Closure, but marks the closure as pure. The result of
// fn must then not depend on anything reachable through ctx that might change
// after compiling.
func PureClosure(name string, fn Callable, ctx interface{}) Binding {
	return Binding{Name: name, Fn: fn, Context: ctx, Pure: true}
}

func (b *Binding) validate() error {
	if !isIdent(b.Name) {
		return &BindingError{Name: b.Name, Reason: "invalid name"}
	}
	switch {
	case b.Value != nil && b.Fn != nil:
		return &BindingError{Name: b.Name, Reason: "both value and function given"}
	case b.Value == nil && b.Fn == nil:
		return &BindingError{Name: b.Name, Reason: "no value or function given"}
	case b.Value != nil && b.Context != nil:
		return &BindingError{Name: b.Name, Reason: "context given for variable"}
	case b.Fn != nil && b.Fn.isNil():
		return &BindingError{Name: b.Name, Reason: "nil function"}
	case b.Fn != nil && b.Context != nil && !b.Fn.IsClosure():
		return &BindingError{Name: b.Name, Reason: "context given for non-closure"}
	}
	return nil
}

// isIdent reports whether s is a name that the lexer can produce.
func isIdent(s string) bool {
	if s == "" || !isLower(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}

// symtab resolves identifiers for the lexer.
type symtab struct {
	// vars is the caller's bindings in the order given.
	vars []Binding
	// builtins is the sorted built-in table selected by options.
	builtins []Binding
}

// lookup resolves a name. Caller bindings shadow built-ins.
func (s *symtab) lookup(name string) (Binding, bool) {
	for _, b := range s.vars {
		if b.Name == name {
			return b, true
		}
	}
	return findBuiltin(s.builtins, name)
}

// findBuiltin binary searches a sorted table for an exact name.
func findBuiltin(tab []Binding, name string) (Binding, bool) {
	lo, hi := 0, len(tab)-1
	for lo <= hi {
		i := lo + (hi-lo)/2
		c := strings.Compare(name, tab[i].Name)
		switch {
		case c == 0:
			return tab[i], true
		case c > 0:
			lo = i + 1
		default:
			hi = i - 1
		}
	}
	return Binding{}, false
}
