package fexpr

import (
	"strings"
)

// list   = expr {"," expr}
// expr   = term {("+" | "-") term}
// term   = factor {("*" | "/" | "%") factor}
// factor = power {"^" power}
// power  = {("-" | "+")} base
// base   = number | variable
//        | function0 ["(" ")"]
//        | function1 power
//        | functionN "(" expr {"," expr} ")"
//        | "(" list ")"

// Expr is a compiled expression. An Expr may be evaluated any number of
// times, but not by multiple goroutines at once.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names used in the expression.
	names []string
}

// parser holds the state of a single compile.
type parser struct {
	lex *lexer
	// powright makes exponentiation associate right to left.
	powright bool
	// err is the first error encountered. Once it is set, the lexer stays on
	// an error token and the parser only unwinds.
	err error
	// names is the set of variable names that have been seen this parse.
	names map[string]bool
}

// Compile parses an expression, resolving identifiers through vars and then
// the built-in functions, and folds its constant subexpressions. If the
// expression is invalid, the result is nil and the error is an InputError
// locating the problem.
func Compile(src string, vars []Binding, opts ...Option) (*Expr, error) {
	n, names, err := parse(src, vars, opts...)
	if err != nil {
		n.free()
		return nil, err
	}
	optimize(n)
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(names)),
	}
	for k := range names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// parse builds the tree for an expression without folding it. On error, the
// tree is the parser's best effort, with every node holding as many args as
// its arity.
func parse(src string, vars []Binding, opts ...Option) (*node, map[string]bool, error) {
	var c compilectx
	for _, opt := range opts {
		if opt != nil {
			c = opt.compileOption(c)
		}
	}
	for i := range vars {
		if err := vars[i].validate(); err != nil {
			tracer().Infof("fexpr: rejecting binding %d: %v", i, err)
			return nil, nil, err
		}
	}
	p := parser{
		lex:      lex(src, c.symbols(vars)),
		powright: c.powright,
		names:    make(map[string]bool),
	}
	p.next()
	n := p.list()
	if p.err == nil && p.tok().kind != tokenEOF {
		p.fail(&TokenError{Col: p.lex.col(), Got: p.tok().text})
	}
	if p.err != nil {
		tracer().Debugf("fexpr: compiling %q failed: %v", src, p.err)
	}
	return n, p.names, p.err
}

// MustCompile is like Compile but panics if the expression is invalid.
func MustCompile(src string, vars []Binding, opts ...Option) *Expr {
	e, err := Compile(src, vars, opts...)
	if err != nil {
		panic("fexpr: compiling " + src + ": " + err.Error())
	}
	return e
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

// tok returns the current token.
func (p *parser) tok() *lexToken {
	return &p.lex.tok
}

// next advances to the next token. An error token becomes the parse error.
func (p *parser) next() {
	p.lex.advance()
	if t := p.tok(); t.kind == tokenError && p.err == nil {
		p.err = t.err
	}
}

// fail records err if it is the first error and stops the token stream.
func (p *parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
	p.lex.tok.kind = tokenError
}

// unexpected fails with a TokenError for the current token.
func (p *parser) unexpected(want string) {
	p.fail(&TokenError{Col: p.lex.col(), Got: p.tok().text, Want: want})
}

// isInfix reports whether the current token is one of the given operators.
func (p *parser) isInfix(ops string) bool {
	t := p.tok()
	return t.kind == tokenInfix && strings.Contains(ops, t.text)
}

func (p *parser) infix(op string, l, r *node) *node {
	return operator(op, infixfns[op[0]], l, r)
}

func (p *parser) list() *node {
	n := p.expr()
	for p.tok().kind == tokenSep {
		p.next()
		n = operator(",", comma, n, p.expr())
	}
	return n
}

func (p *parser) expr() *node {
	n := p.term()
	for p.isInfix("+-") {
		op := p.tok().text
		p.next()
		n = p.infix(op, n, p.term())
	}
	return n
}

func (p *parser) term() *node {
	n := p.factor()
	for p.isInfix("*/%") {
		op := p.tok().text
		p.next()
		n = p.infix(op, n, p.factor())
	}
	return n
}

// factor parses a chain of exponentiations. A sign on the first operand
// applies to the whole chain.
func (p *parser) factor() *node {
	neg := p.sign()
	n := p.base()
	if p.powright {
		// ins is the rightmost exponentiation so far. Each new operand
		// replaces its exponent.
		var ins *node
		for p.isInfix("^") {
			p.next()
			if ins == nil {
				n = p.infix("^", n, p.power())
				ins = n
			} else {
				x := p.infix("^", ins.args[1], p.power())
				ins.args[1] = x
				ins = x
			}
		}
	} else {
		for p.isInfix("^") {
			p.next()
			n = p.infix("^", n, p.power())
		}
	}
	if neg {
		n = operator("-", negate, n)
	}
	return n
}

// power parses a signed base.
func (p *parser) power() *node {
	if p.sign() {
		return operator("-", negate, p.base())
	}
	return p.base()
}

// sign consumes a run of unary signs and reports whether they negate.
func (p *parser) sign() bool {
	neg := false
	for p.isInfix("+-") {
		if p.tok().text == "-" {
			neg = !neg
		}
		p.next()
	}
	return neg
}

func (p *parser) base() *node {
	t := *p.tok()
	switch t.kind {
	case tokenNum:
		p.next()
		return &node{kind: nodeConst, value: t.num}
	case tokenVar:
		p.next()
		p.names[t.sym.Name] = true
		return &node{kind: nodeVar, name: t.sym.Name, bound: t.sym.Value}
	case tokenFunc:
		p.next()
		return p.call(t.sym)
	case tokenOpen:
		p.next()
		n := p.list()
		if p.tok().kind != tokenClose {
			p.unexpected(")")
			return n
		}
		p.next()
		return n
	default:
		// Includes the error token, in which case the error is already set.
		p.unexpected("")
		return nan()
	}
}

// call parses the arguments of a function whose name was the last token.
func (p *parser) call(b Binding) *node {
	n := call(b)
	switch n.arity {
	case 0:
		if p.tok().kind == tokenOpen {
			p.next()
			if p.tok().kind != tokenClose {
				p.unexpected(")")
				return n
			}
			p.next()
		}
	case 1:
		n.args[0] = p.power()
	default:
		defer fillnan(n.args)
		if p.tok().kind != tokenOpen {
			p.unexpected("(")
			return n
		}
		i := 0
		for ; i < len(n.args); i++ {
			p.next()
			n.args[i] = p.expr()
			if p.tok().kind != tokenSep {
				break
			}
		}
		switch {
		case p.err != nil:
			// Error inside an argument.
		case p.tok().kind == tokenClose && i == len(n.args)-1:
			p.next()
		case p.tok().kind == tokenClose, p.tok().kind == tokenSep:
			p.fail(&CallError{Col: p.lex.col(), Func: b.Name, Arity: len(n.args), Len: i + 1})
		default:
			p.unexpected(")")
		}
	}
	return n
}

// fillnan replaces missing arguments after a failed call parse so that every
// node keeps as many args as its arity.
func fillnan(args []*node) {
	for i, a := range args {
		if a == nil {
			args[i] = nan()
		}
	}
}

// Vars returns the names of the variables used in the expression, sorted.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a fully parenthesized representation of the compiled
// expression. Folded subexpressions appear as their values.
func (e *Expr) String() string {
	if e == nil || e.n == nil {
		return "<nil>"
	}
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}
