package fexpr

import (
	"math"
)

// Eval evaluates the expression. Variables are read from their bound storage
// on every call. Evaluating a nil or freed expression gives NaN.
func (e *Expr) Eval() float64 {
	if e == nil || e.n == nil {
		return math.NaN()
	}
	return e.n.eval()
}

// Free releases the compiled tree. Afterward, e evaluates to NaN. It is safe
// to call Free on a nil expression and to call it more than once.
func (e *Expr) Free() {
	if e == nil {
		return
	}
	e.n.free()
	e.n = nil
	e.names = nil
}

// Interpret is a shortcut to compile an expression with no variables,
// evaluate it, and free it. If compiling fails, the result is NaN along with
// the error.
func Interpret(src string, opts ...Option) (float64, error) {
	e, err := Compile(src, nil, opts...)
	if err != nil {
		return math.NaN(), err
	}
	defer e.Free()
	return e.Eval(), nil
}

// eval computes the node's value.
func (n *node) eval() float64 {
	switch n.kind {
	case nodeConst:
		return n.value
	case nodeVar:
		return *n.bound
	case nodeFunc, nodeClosure:
		return n.call()
	default:
		return math.NaN()
	}
}

// call evaluates the node's args from left to right and passes them to its
// function. An arity that disagrees with the function gives NaN.
func (n *node) call() float64 {
	a := n.args
	if n.fn == nil || len(a) != int(n.arity) || int(n.arity) != n.fn.Arity() {
		return math.NaN()
	}
	switch f := n.fn.(type) {
	case Fn0:
		return f()
	case Fn1:
		return f(a[0].eval())
	case Fn2:
		return f(a[0].eval(), a[1].eval())
	case Fn3:
		return f(a[0].eval(), a[1].eval(), a[2].eval())
	case Fn4:
		return f(a[0].eval(), a[1].eval(), a[2].eval(), a[3].eval())
	case Fn5:
		return f(a[0].eval(), a[1].eval(), a[2].eval(), a[3].eval(), a[4].eval())
	case Fn6:
		return f(a[0].eval(), a[1].eval(), a[2].eval(), a[3].eval(), a[4].eval(), a[5].eval())
	case Fn7:
		return f(a[0].eval(), a[1].eval(), a[2].eval(), a[3].eval(), a[4].eval(), a[5].eval(), a[6].eval())
	case Cl0:
		return f(n.ctx)
	case Cl1:
		return f(n.ctx, a[0].eval())
	case Cl2:
		return f(n.ctx, a[0].eval(), a[1].eval())
	case Cl3:
		return f(n.ctx, a[0].eval(), a[1].eval(), a[2].eval())
	case Cl4:
		return f(n.ctx, a[0].eval(), a[1].eval(), a[2].eval(), a[3].eval())
	case Cl5:
		return f(n.ctx, a[0].eval(), a[1].eval(), a[2].eval(), a[3].eval(), a[4].eval())
	case Cl6:
		return f(n.ctx, a[0].eval(), a[1].eval(), a[2].eval(), a[3].eval(), a[4].eval(), a[5].eval())
	case Cl7:
		return f(n.ctx, a[0].eval(), a[1].eval(), a[2].eval(), a[3].eval(), a[4].eval(), a[5].eval(), a[6].eval())
	default:
		return math.NaN()
	}
}
