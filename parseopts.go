package fexpr

// Option is an option for compiling.
type Option interface {
	compileOption(compilectx) compilectx
}

type (
	powopt struct{}
	logopt struct{}
)

// compilectx holds the policies that options select. It is also an Option.
type compilectx struct {
	// powright makes exponentiation associate right to left.
	powright bool
	// natlog makes log the natural logarithm.
	natlog bool
}

// PowFromRight makes exponentiation associate right to left, so that "a^b^c"
// is "a^(b^c)". The default is left to right, "(a^b)^c".
//
// In either mode, a sign in front of the first operand of an exponentiation
// applies to the result of the whole chain: "-a^b^c" is "-(a^(b^c))" with
// this option and "-((a^b)^c)" without it.
func PowFromRight() Option {
	return powopt{}
}

func (powopt) compileOption(p compilectx) compilectx {
	p.powright = true
	return p
}

// NaturalLog makes log the natural logarithm instead of the base 10
// logarithm. ln is always the natural logarithm, and log10 is always base 10.
func NaturalLog() Option {
	return logopt{}
}

func (logopt) compileOption(p compilectx) compilectx {
	p.natlog = true
	return p
}

// CompilePreset bundles options so that they can be applied together. Later
// options still apply after a preset.
func CompilePreset(opts ...Option) Option {
	var p compilectx
	for _, opt := range opts {
		if opt != nil {
			p = opt.compileOption(p)
		}
	}
	return &p
}

func (o *compilectx) compileOption(p compilectx) compilectx {
	p.powright = p.powright || o.powright
	p.natlog = p.natlog || o.natlog
	return p
}

// symbols creates the symbol table for a compile with the given caller
// bindings.
func (p compilectx) symbols(vars []Binding) *symtab {
	s := symtab{vars: vars, builtins: builtins}
	if p.natlog {
		s.builtins = natlogBuiltins
	}
	return &s
}
